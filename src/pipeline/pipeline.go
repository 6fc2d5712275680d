package pipeline

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tradeviz/tradeviz/src/calendar"
	"github.com/tradeviz/tradeviz/src/eventmodels"
)

// Pipeline turns a raw 1-minute bar series into a plot-ready table: filter,
// resample, derive the metric, group, guard the row budget, and reconcile
// gaps. Each run works on its own data; nothing is shared between runs.
type Pipeline struct {
	calendar *calendar.SessionCalendar
}

func NewPipeline(cal *calendar.SessionCalendar) *Pipeline {
	return &Pipeline{calendar: cal}
}

// Run executes one pass over the given bars. The bars are treated as
// immutable input; every stage produces a new sequence.
func (p *Pipeline) Run(bars eventmodels.Bars, spec eventmodels.FilterSpec, req *eventmodels.AggregationRequest) (*eventmodels.ResultTable, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("Pipeline.Run: %w", err)
	}

	runID := uuid.NewString()
	logger := log.WithField("run_id", runID).WithField("instrument", req.Instrument)

	var warnings []string

	hours, err := p.calendar.Get(req.Instrument)
	if err != nil {
		// Missing calendar metadata degrades the session-relative features
		// but never fails the run.
		logger.Warnf("Pipeline.Run: %v; assuming full-day sessions", err)
		warnings = append(warnings, fmt.Sprintf("no session metadata for %s; assuming full-day sessions", req.Instrument))
		hours = calendar.SessionHours{Start: 0, End: eventmodels.MustTimeOfDay("23:59:00")}
	}

	filtered := applyFilters(bars, spec, req.Timeframe)
	logger.Debugf("Pipeline.Run: %d of %d bars retained after filtering", len(filtered), len(bars))

	tf := req.Timeframe
	resampled := resample(filtered, tf)

	// Historical quirk: with two metrics, a leading count metric trades
	// places with a non-count second metric so the non-count one is
	// processed as metric 1. Kept for parity with existing consumers.
	metrics := append([]eventmodels.Metric{}, req.Metrics...)
	if len(metrics) == 2 && req.Func != eventmodels.AggregateCumsum && metrics[0].IsCount() && !metrics[1].IsCount() {
		metrics[0], metrics[1] = metrics[1], metrics[0]
	}
	runReq := *req
	runReq.Metrics = metrics

	grouped, err := p.deriveAndGroup(resampled, &runReq, hours.Start)
	if err != nil {
		return nil, fmt.Errorf("Pipeline.Run: %w", err)
	}

	// Row-budget guard: a single escalation to a coarser bar size, re-run
	// once, never recursive. If still over budget the result stands.
	if n := grouped.maxSeriesLen(); n > req.MaxRows {
		if coarser, ok := tf.Escalate(n, req.MaxRows); ok {
			logger.Infof("Pipeline.Run: %d rows exceed budget %d, escalating %s -> %s", n, req.MaxRows, tf, coarser)
			warnings = append(warnings, fmt.Sprintf("the series was too long; the timeframe has been automatically changed to %d minutes", coarser.Minutes()))

			tf = coarser
			resampled = resample(resampled, tf)
			grouped, err = p.deriveAndGroup(resampled, &runReq, hours.Start)
			if err != nil {
				return nil, fmt.Errorf("Pipeline.Run: %w", err)
			}
		}
	}

	reconciled := reconcileGaps(grouped)

	table := &eventmodels.ResultTable{
		Rows:           reconciled.outputRows(),
		XLabel:         runReq.GroupBy.XAxis(),
		BreakdownLabel: breakdownLabel(&runReq),
		Warnings:       warnings,
	}

	for _, m := range metrics {
		table.MetricLabels = append(table.MetricLabels, m.Label(req.Unit))
	}

	table.Precision = append(table.Precision, inferPrecisionColumn(table.Rows, false))
	if len(metrics) == 2 {
		table.Precision = append(table.Precision, inferPrecisionColumn(table.Rows, true))
	}

	if runReq.GroupBy.UsesTime() {
		table.Annotations = buildAnnotations(req.Instrument, hours, p.calendar)
	}

	if splitter := newPeriodSplitter(resampled, req.PeriodYears); splitter != nil {
		table.Warnings = append(table.Warnings, fmt.Sprintf("periods: %s", strings.Join(splitter.Labels(), ", ")))
	}

	logger.Infof("Pipeline.Run: produced %d rows at %s", len(table.Rows), tf)

	return table, nil
}

func (p *Pipeline) deriveAndGroup(bars eventmodels.Bars, req *eventmodels.AggregationRequest, sessStart eventmodels.TimeOfDay) (*groupedTable, error) {
	metricCols := make([][]float64, len(req.Metrics))
	for j, m := range req.Metrics {
		metricCols[j] = computeMetric(bars, m, req.Unit)
	}

	return groupRows(bars, metricCols, req, sessStart)
}

func breakdownLabel(req *eventmodels.AggregationRequest) string {
	label := req.GroupBy.Breakdown()
	if req.PeriodYears > 0 {
		if label == "" {
			return "Period"
		}
		return label + " + period"
	}
	return label
}

func inferPrecisionColumn(rows []eventmodels.OutputRow, second bool) int {
	values := make([]*float64, len(rows))
	for i, row := range rows {
		if second {
			values[i] = row.Metric2
		} else {
			values[i] = row.Metric
		}
	}
	return inferPrecision(values)
}
