package pipeline

import (
	"github.com/tradeviz/tradeviz/src/eventmodels"
)

// computeMetric derives the scalar metric series, one value per bar. Count
// metrics mark session extrema: within each session window exactly one bar
// (the first occurrence) is marked even when several bars share the extreme
// value. Price-based metrics are rescaled by BPV under the currency unit.
func computeMetric(bars eventmodels.Bars, metric eventmodels.Metric, unit eventmodels.Unit) []float64 {
	values := make([]float64, len(bars))

	switch metric {
	case eventmodels.MetricClose:
		for i, bar := range bars {
			values[i] = bar.Close
		}
	case eventmodels.MetricDeltaClose:
		for i, bar := range bars {
			if i == 0 || bar.SessionStart > 0 {
				values[i] = 0
			} else {
				values[i] = bar.Close - bars[i-1].Close
			}
		}
	case eventmodels.MetricBody:
		for i, bar := range bars {
			values[i] = bar.Close - bar.Open
		}
	case eventmodels.MetricRange:
		for i, bar := range bars {
			values[i] = bar.High - bar.Low
		}
	case eventmodels.MetricOpenHigh:
		for i, bar := range bars {
			values[i] = bar.High - bar.Open
		}
	case eventmodels.MetricOpenLow:
		for i, bar := range bars {
			values[i] = bar.Open - bar.Low
		}
	case eventmodels.MetricNumHighs:
		markExtrema(bars, values, true, false)
	case eventmodels.MetricNumLows:
		markExtrema(bars, values, false, true)
	case eventmodels.MetricNumHighsOrLows:
		markExtrema(bars, values, true, true)
	case eventmodels.MetricVolume:
		for i, bar := range bars {
			values[i] = bar.Volume
		}
	}

	if unit == eventmodels.UnitCurrency && metric.IsPriceBased() {
		for i, bar := range bars {
			values[i] *= bar.BPV
		}
	}

	return values
}

// markExtrema adds an indicator to values for the bar holding the maximum
// high and/or the minimum low of each session window.
func markExtrema(bars eventmodels.Bars, values []float64, highs, lows bool) {
	for _, run := range sessionRuns(bars) {
		hiIdx, loIdx := run[0], run[0]
		for i := run[0] + 1; i < run[1]; i++ {
			if bars[i].High > bars[hiIdx].High {
				hiIdx = i
			}
			if bars[i].Low < bars[loIdx].Low {
				loIdx = i
			}
		}
		if highs {
			values[hiIdx]++
		}
		if lows {
			values[loIdx]++
		}
	}
}
