package eventmodels

import "time"

// OutputRow is one point of the plot-ready series. Metric values are nil
// where the GapReconciler exposed a missing (x, breakdown) combination.
type OutputRow struct {
	X         string
	Breakdown string

	Metric  *float64
	Metric2 *float64

	// OHLCV summary of the underlying group.
	Date          time.Time
	SessionStarts int
	Open          float64
	High          float64
	Low           float64
	Close         float64
	BPV           float64
	Volume        float64
}

type AnnotationKind string

const (
	AnnotationVLine AnnotationKind = "vline"
	AnnotationRect  AnnotationKind = "rect"
)

// Annotation is an overlay marker positioned in the same axis domain as the
// result rows (session-end line, settlement line, trading-session shading).
type Annotation struct {
	Kind  AnnotationKind
	X0    string
	X1    string
	Label string
}

// ResultTable is the plot-ready output of one pipeline run.
type ResultTable struct {
	Rows []OutputRow

	XLabel         string
	BreakdownLabel string
	MetricLabels   []string

	// Precision holds the number of decimal digits for each metric axis.
	Precision []int

	Annotations []Annotation
	Warnings    []string
}

// BreakdownValues returns the distinct breakdown labels in row order.
func (t *ResultTable) BreakdownValues() []string {
	seen := map[string]bool{}
	var out []string
	for _, row := range t.Rows {
		if row.Breakdown == "" || seen[row.Breakdown] {
			continue
		}
		seen[row.Breakdown] = true
		out = append(out, row.Breakdown)
	}
	return out
}

func Float64Ptr(v float64) *float64 {
	return &v
}
