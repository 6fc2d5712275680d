package pipeline

import (
	"sort"
)

type axisValue struct {
	label string
	ord1  int64
	ord2  int64
}

// reconcileGaps expands the grouped table to the full cross-product of the
// distinct x values and distinct breakdown values, so every series covers the
// whole category axis. Missing combinations get nil metric values; no data is
// invented. Without a breakdown the rows are simply in x order.
func reconcileGaps(table *groupedTable) *groupedTable {
	if !table.hasBreakdown {
		sort.SliceStable(table.rows, func(i, j int) bool {
			return table.rows[i].key.xOrd < table.rows[j].key.xOrd
		})
		return table
	}

	var xs []axisValue
	seenX := map[string]bool{}
	var breakdowns []axisValue
	seenB := map[string]bool{}
	existing := map[[2]string]groupedRow{}

	for _, row := range table.rows {
		if !seenX[row.key.xLabel] {
			seenX[row.key.xLabel] = true
			xs = append(xs, axisValue{label: row.key.xLabel, ord1: row.key.xOrd})
		}
		if !seenB[row.key.bLabel] {
			seenB[row.key.bLabel] = true
			breakdowns = append(breakdowns, axisValue{label: row.key.bLabel, ord1: row.key.bOrd1, ord2: row.key.bOrd2})
		}
		existing[[2]string{row.key.xLabel, row.key.bLabel}] = row
	}

	sort.Slice(xs, func(i, j int) bool { return xs[i].ord1 < xs[j].ord1 })
	sort.Slice(breakdowns, func(i, j int) bool {
		if breakdowns[i].ord1 != breakdowns[j].ord1 {
			return breakdowns[i].ord1 < breakdowns[j].ord1
		}
		return breakdowns[i].ord2 < breakdowns[j].ord2
	})

	out := &groupedTable{hasBreakdown: true, rows: make([]groupedRow, 0, len(xs)*len(breakdowns))}
	for _, b := range breakdowns {
		for _, x := range xs {
			if row, ok := existing[[2]string{x.label, b.label}]; ok {
				out.rows = append(out.rows, row)
				continue
			}

			var row groupedRow
			row.key = groupKey{xLabel: x.label, xOrd: x.ord1, bLabel: b.label, bOrd1: b.ord1, bOrd2: b.ord2}
			row.X = x.label
			row.Breakdown = b.label
			out.rows = append(out.rows, row)
		}
	}

	return out
}
