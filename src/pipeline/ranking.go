package pipeline

import (
	"sort"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

const rankingSize = 15

// TopsBottoms ranks the result rows by metric value for the horizontal-bar
// view: the top block holds the highest values, the bottom block the lowest.
// For one-sided metrics (everything but Delta close and the open-relative
// spreads) the "bottom" block is ranks 16-30 instead, since the true minimum
// of e.g. Range or Volume is noise near zero.
func TopsBottoms(table *eventmodels.ResultTable, metric eventmodels.Metric) (top, bottom []eventmodels.OutputRow) {
	rows := make([]eventmodels.OutputRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		if row.Metric != nil {
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return *rows[i].Metric > *rows[j].Metric
	})

	n := rankingSize
	if n > len(rows) {
		n = len(rows)
	}
	top = rows[:n]

	oneSided := false
	switch metric {
	case eventmodels.MetricClose, eventmodels.MetricBody, eventmodels.MetricRange,
		eventmodels.MetricNumHighs, eventmodels.MetricNumLows, eventmodels.MetricNumHighsOrLows, eventmodels.MetricVolume:
		oneSided = true
	}

	if oneSided {
		end := 2 * rankingSize
		if end > len(rows) {
			end = len(rows)
		}
		bottom = rows[n:end]
	} else {
		start := len(rows) - rankingSize
		if start < n {
			start = n
		}
		bottom = rows[start:]
	}

	return top, bottom
}
