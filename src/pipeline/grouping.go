package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

// groupKey identifies one (x, breakdown) bucket. Labels are the presentation
// values; the ord fields give the sort order (weekday and month labels do not
// sort lexicographically).
type groupKey struct {
	xLabel string
	xOrd   int64
	bLabel string
	bOrd1  int64
	bOrd2  int64
}

type groupedRow struct {
	eventmodels.OutputRow
	key groupKey
}

type groupedTable struct {
	rows         []groupedRow
	hasBreakdown bool
}

// maxSeriesLen is the row-budget measure: total rows without a breakdown,
// otherwise the longest breakdown series.
func (t *groupedTable) maxSeriesLen() int {
	if !t.hasBreakdown {
		return len(t.rows)
	}

	counts := map[string]int{}
	maxLen := 0
	for _, row := range t.rows {
		counts[row.Breakdown]++
		if counts[row.Breakdown] > maxLen {
			maxLen = counts[row.Breakdown]
		}
	}
	return maxLen
}

func (t *groupedTable) outputRows() []eventmodels.OutputRow {
	out := make([]eventmodels.OutputRow, len(t.rows))
	for i, row := range t.rows {
		out[i] = row.OutputRow
	}
	return out
}

func weekdayOrd(wd time.Weekday) int64 {
	return int64((int(wd) + 6) % 7) // Monday first
}

func weekdayLabel(wd time.Weekday) string {
	return wd.String()[:3]
}

func monthLabel(m time.Month) string {
	return m.String()[:3]
}

// periodSplitter buckets calendar years into fixed-size spans. Years that do
// not fill a whole span are dropped from the oldest end.
type periodSplitter struct {
	size      int
	firstYear int
	lastYear  int
}

func newPeriodSplitter(bars eventmodels.Bars, size int) *periodSplitter {
	if size <= 0 || len(bars) == 0 {
		return nil
	}

	minYear := bars[0].Timestamp.Year()
	maxYear := bars[len(bars)-1].Timestamp.Year()
	total := maxYear - minYear + 1
	remainder := total % size
	if total < size {
		return nil
	}

	return &periodSplitter{size: size, firstYear: minYear + remainder, lastYear: maxYear}
}

// bucket returns the period label and its ordering for a year, or ok=false
// for years dropped from the oldest end.
func (p *periodSplitter) bucket(year int) (string, int64, bool) {
	if year < p.firstYear || year > p.lastYear {
		return "", 0, false
	}

	start := p.firstYear + ((year-p.firstYear)/p.size)*p.size
	if p.size == 1 {
		return fmt.Sprintf("%d", start), int64(start), true
	}
	return fmt.Sprintf("%d-%d", start, start+p.size-1), int64(start), true
}

// Labels lists the period labels in chronological order, for display.
func (p *periodSplitter) Labels() []string {
	var out []string
	for start := p.firstYear; start <= p.lastYear; start += p.size {
		label, _, _ := p.bucket(start)
		out = append(out, label)
	}
	return out
}

// keyFor computes the grouping key of one bar. The time key is expressed as
// elapsed time since session start mapped onto a 00:00-based clock, so
// sessions that wrap midnight line up across days.
func keyFor(bar eventmodels.Bar, info sessionInfo, groupBy eventmodels.GroupBy, sessStart eventmodels.TimeOfDay, period *periodSplitter) (groupKey, bool) {
	var key groupKey

	shifted := barTimeOfDay(bar.Timestamp).Sub(sessStart)

	switch groupBy.XAxis() {
	case "Time":
		key.xLabel = shifted.String()
		key.xOrd = int64(shifted)
	default:
		key.xLabel = bar.Timestamp.Format("2006-01-02 15:04:05")
		key.xOrd = bar.Timestamp.Unix()
	}

	switch groupBy {
	case eventmodels.GroupByWeekdayTime, eventmodels.GroupByWeekdayHistory:
		key.bLabel = weekdayLabel(info.weekday)
		key.bOrd1 = weekdayOrd(info.weekday)
	case eventmodels.GroupByDayOfMonthTime, eventmodels.GroupByDayOfMonthHistory:
		key.bLabel = fmt.Sprintf("%d", bar.Timestamp.Day())
		key.bOrd1 = int64(bar.Timestamp.Day())
	case eventmodels.GroupByMonthTime, eventmodels.GroupByMonthHistory:
		key.bLabel = monthLabel(bar.Timestamp.Month())
		key.bOrd1 = int64(bar.Timestamp.Month())
	case eventmodels.GroupByMonthDayOfMonthTime:
		key.bLabel = fmt.Sprintf("%s %d", monthLabel(bar.Timestamp.Month()), bar.Timestamp.Day())
		key.bOrd1 = int64(bar.Timestamp.Month())*100 + int64(bar.Timestamp.Day())
	}

	if period != nil {
		label, ord, ok := period.bucket(bar.Timestamp.Year())
		if !ok {
			return groupKey{}, false
		}
		if key.bLabel == "" {
			key.bLabel = label
		} else {
			key.bLabel = fmt.Sprintf("%s - %s", key.bLabel, label)
		}
		key.bOrd2 = ord
	}

	return key, true
}

// group accumulates one bucket's metric samples and OHLCV summary.
type group struct {
	key     groupKey
	samples [2][]float64

	date     time.Time
	sessSum  int
	open     float64
	high     float64
	low      float64
	closePx  float64
	bpv      float64
	volume   float64
	nonEmpty bool
}

func (g *group) add(bar eventmodels.Bar, metricValues []float64) {
	for j := range metricValues {
		g.samples[j] = append(g.samples[j], metricValues[j])
	}

	if !g.nonEmpty {
		g.open = bar.Open
		g.bpv = bar.BPV
		g.high = bar.High
		g.low = bar.Low
		g.nonEmpty = true
	} else {
		if bar.High > g.high {
			g.high = bar.High
		}
		if bar.Low < g.low {
			g.low = bar.Low
		}
	}

	if bar.Timestamp.After(g.date) {
		g.date = bar.Timestamp
	}
	g.sessSum += bar.SessionStart
	g.closePx = bar.Close
	g.volume += bar.Volume
}

// aggregate applies fn to one group's samples. The mean of a count metric is
// promoted to a sum; counting extrema and averaging them makes no sense.
func aggregate(samples []float64, fn eventmodels.AggregateFunc, metric eventmodels.Metric) (float64, error) {
	if fn == eventmodels.AggregateMean && metric.IsCount() {
		fn = eventmodels.AggregateSum
	}

	switch fn {
	case eventmodels.AggregateMean:
		return stats.Mean(samples)
	case eventmodels.AggregateMedian:
		return stats.Median(samples)
	case eventmodels.AggregateSum:
		return stats.Sum(samples)
	case eventmodels.AggregateCount:
		return float64(len(samples)), nil
	case eventmodels.AggregateStd:
		if len(samples) < 2 {
			return 0, nil
		}
		return stats.StandardDeviationSample(samples)
	default:
		return 0, fmt.Errorf("aggregate: unsupported function: %s", fn)
	}
}

// groupRows buckets the bars by the grouping key and aggregates each metric.
// Cumsum is a two-step policy: the per-group mean first, then a running sum in
// key order restarted at the beginning of each breakdown series. With no
// grouping the bars pass through one row each, optionally split into period
// series.
func groupRows(bars eventmodels.Bars, metricCols [][]float64, req *eventmodels.AggregationRequest, sessStart eventmodels.TimeOfDay) (*groupedTable, error) {
	period := newPeriodSplitter(bars, req.PeriodYears)
	sessions := annotateSessions(bars)
	hasBreakdown := req.GroupBy.Breakdown() != "" || period != nil

	if req.GroupBy == eventmodels.GroupByNone {
		return passthroughRows(bars, metricCols, period, hasBreakdown)
	}

	groups := map[groupKey]*group{}
	var order []groupKey
	for i, bar := range bars {
		key, ok := keyFor(bar, sessions[i], req.GroupBy, sessStart, period)
		if !ok {
			continue
		}

		g, exists := groups[key]
		if !exists {
			g = &group{key: key}
			groups[key] = g
			order = append(order, key)
		}

		values := make([]float64, len(metricCols))
		for j, col := range metricCols {
			values[j] = col[i]
		}
		g.add(bar, values)
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.bOrd1 != b.bOrd1 {
			return a.bOrd1 < b.bOrd1
		}
		if a.bOrd2 != b.bOrd2 {
			return a.bOrd2 < b.bOrd2
		}
		return a.xOrd < b.xOrd
	})

	cumulative := req.Func == eventmodels.AggregateCumsum
	fn := req.Func
	if cumulative {
		fn = eventmodels.AggregateMean
	}

	table := &groupedTable{hasBreakdown: hasBreakdown}
	running := make([]float64, len(metricCols))
	prevBreakdown := ""
	for idx, key := range order {
		g := groups[key]

		row := groupedRow{key: key}
		row.X = key.xLabel
		row.Breakdown = key.bLabel
		row.Date = g.date
		row.SessionStarts = g.sessSum
		row.Open = g.open
		row.High = g.high
		row.Low = g.low
		row.Close = g.closePx
		row.BPV = g.bpv
		row.Volume = g.volume

		if cumulative && (idx == 0 || key.bLabel != prevBreakdown) {
			for j := range running {
				running[j] = 0
			}
		}
		prevBreakdown = key.bLabel

		for j := range metricCols {
			v, err := aggregate(g.samples[j], fn, req.Metrics[j])
			if err != nil {
				return nil, fmt.Errorf("groupRows: %w", err)
			}
			if cumulative {
				running[j] += v
				v = running[j]
			}
			if j == 0 {
				row.Metric = eventmodels.Float64Ptr(v)
			} else {
				row.Metric2 = eventmodels.Float64Ptr(v)
			}
		}

		table.rows = append(table.rows, row)
	}

	return table, nil
}

// passthroughRows emits one output row per bar when no grouping is selected.
func passthroughRows(bars eventmodels.Bars, metricCols [][]float64, period *periodSplitter, hasBreakdown bool) (*groupedTable, error) {
	table := &groupedTable{hasBreakdown: hasBreakdown}
	for i, bar := range bars {
		key := groupKey{
			xLabel: bar.Timestamp.Format("2006-01-02 15:04:05"),
			xOrd:   bar.Timestamp.Unix(),
		}
		if period != nil {
			label, ord, ok := period.bucket(bar.Timestamp.Year())
			if !ok {
				continue
			}
			key.bLabel = label
			key.bOrd2 = ord
		}

		row := groupedRow{key: key}
		row.X = key.xLabel
		row.Breakdown = key.bLabel
		row.Date = bar.Timestamp
		row.SessionStarts = bar.SessionStart
		row.Open = bar.Open
		row.High = bar.High
		row.Low = bar.Low
		row.Close = bar.Close
		row.BPV = bar.BPV
		row.Volume = bar.Volume
		row.Metric = eventmodels.Float64Ptr(metricCols[0][i])
		if len(metricCols) == 2 {
			row.Metric2 = eventmodels.Float64Ptr(metricCols[1][i])
		}

		table.rows = append(table.rows, row)
	}

	return table, nil
}
