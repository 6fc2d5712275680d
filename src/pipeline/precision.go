package pipeline

import (
	"math"
	"sort"
	"strconv"
)

// inferPrecision derives the number of decimal digits for a metric axis from
// the gap between the two smallest distinct values, treated as the tick size.
// Degenerate series (fewer than two distinct values, or a non-positive gap)
// fall back to zero digits.
func inferPrecision(values []*float64) int {
	distinct := map[float64]bool{}
	for _, v := range values {
		if v != nil {
			distinct[*v] = true
		}
	}

	if len(distinct) < 2 {
		return 0
	}

	sorted := make([]float64, 0, len(distinct))
	for v := range distinct {
		sorted = append(sorted, v)
	}
	sort.Float64s(sorted)

	diff := sorted[1] - sorted[0]
	if diff <= 0 || math.IsNaN(diff) || math.IsInf(diff, 0) {
		return 0
	}

	step := math.Round(1 / diff)
	if step < 1 {
		return 0
	}

	return len(strconv.FormatFloat(step, 'f', 0, 64))
}
