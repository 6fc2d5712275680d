package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeviz/tradeviz/src/calendar"
	"github.com/tradeviz/tradeviz/src/eventmodels"
)

// wrappingSessionBars builds n full 17:00-16:00 sessions of 1-minute bars,
// 1380 bars each.
func wrappingSessionBars(t *testing.T, sessions int) eventmodels.Bars {
	t.Helper()

	var bars eventmodels.Bars
	for s := 0; s < sessions; s++ {
		open := ts(t, "2024-01-02 17:00:00").AddDate(0, 0, s)
		for i := 0; i < 23*60; i++ {
			px := 100 + float64(len(bars))*0.25
			bar := mkBar(t, open.Add(time.Duration(i)*time.Minute).Format("2006-01-02 15:04:05"), px, px, px, px, 0)
			if i == 0 {
				bar.SessionStart = 1
			}
			bars = append(bars, bar)
		}
	}

	return bars
}

func esRequest() *eventmodels.AggregationRequest {
	return &eventmodels.AggregationRequest{
		Instrument: "ES",
		Timeframe:  eventmodels.Timeframe1m,
		Metrics:    []eventmodels.Metric{eventmodels.MetricClose},
		GroupBy:    eventmodels.GroupByNone,
		Func:       eventmodels.AggregateMean,
		Unit:       eventmodels.UnitPoint,
		MaxRows:    eventmodels.DefaultMaxRows,
	}
}

func TestPipelineEndToEndWrappingSession(t *testing.T) {
	bars := wrappingSessionBars(t, 2)
	p := NewPipeline(calendar.Default())

	table, err := p.Run(bars, eventmodels.FilterSpec{}, esRequest())
	require.NoError(t, err)

	// no grouping collapses rows: one output row per bar, closes unchanged
	require.Len(t, table.Rows, len(bars))
	for i, row := range table.Rows {
		require.NotNil(t, row.Metric)
		assert.Equal(t, bars[i].Close, *row.Metric)
	}

	assert.Equal(t, "Date", table.XLabel)
	assert.Equal(t, []string{"Close [Point]"}, table.MetricLabels)
	assert.Empty(t, table.Warnings)
	assert.Empty(t, table.Annotations)
}

func TestPipelineOverflowEscalatesOnce(t *testing.T) {
	bars := wrappingSessionBars(t, 2) // 2760 rows ungrouped

	req := esRequest()
	req.MaxRows = 100 // 2760/30 = 92 < 100: 30-minute bars fit

	table, err := NewPipeline(calendar.Default()).Run(bars, eventmodels.FilterSpec{}, req)
	require.NoError(t, err)

	require.Len(t, table.Warnings, 1)
	assert.Contains(t, table.Warnings[0], "30 minutes")
	assert.Less(t, len(table.Rows), len(bars)/20)
}

func TestPipelineTimeGroupingAnnotations(t *testing.T) {
	bars := wrappingSessionBars(t, 2)

	req := esRequest()
	req.GroupBy = eventmodels.GroupByTime

	table, err := NewPipeline(calendar.Default()).Run(bars, eventmodels.FilterSpec{}, req)
	require.NoError(t, err)

	require.Len(t, table.Rows, 23*60, "one row per session-relative minute")
	assert.Equal(t, "00:00:00", table.Rows[0].X)
	assert.Equal(t, "Time", table.XLabel)

	byLabel := map[string]eventmodels.Annotation{}
	for _, a := range table.Annotations {
		byLabel[a.Label] = a
	}

	// session end 16:00 and settlement 15:00, shifted by the 17:00 start
	require.Contains(t, byLabel, "End session")
	assert.Equal(t, "23:00:00", byLabel["End session"].X0)
	require.Contains(t, byLabel, "Settlement")
	assert.Equal(t, "22:00:00", byLabel["Settlement"].X0)
	require.Contains(t, byLabel, "RTH")
	assert.Contains(t, byLabel, "Asia")
	assert.Contains(t, byLabel, "Europe")
	assert.Contains(t, byLabel, "US")
}

func TestPipelineTwoMetricSwapQuirk(t *testing.T) {
	bars := wrappingSessionBars(t, 2)

	req := esRequest()
	req.GroupBy = eventmodels.GroupByTime
	req.Metrics = []eventmodels.Metric{eventmodels.MetricNumHighs, eventmodels.MetricClose}

	table, err := NewPipeline(calendar.Default()).Run(bars, eventmodels.FilterSpec{}, req)
	require.NoError(t, err)

	// the leading count metric trades places with the non-count metric
	assert.Equal(t, []string{"Close [Point]", "Num highs"}, table.MetricLabels)
}

func TestPipelineRejectsInvalidRequest(t *testing.T) {
	req := esRequest()
	req.Metrics = []eventmodels.Metric{"Bogus"}

	_, err := NewPipeline(calendar.Default()).Run(nil, eventmodels.FilterSpec{}, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported metric")
}

func TestPipelineEmptyResultIsNotAnError(t *testing.T) {
	bars := wrappingSessionBars(t, 1)

	spec := eventmodels.FilterSpec{DateStart: ts(t, "2030-01-01 00:00:00")}
	table, err := NewPipeline(calendar.Default()).Run(bars, spec, esRequest())
	require.NoError(t, err)

	assert.Empty(t, table.Rows)
}

func TestPipelineUnknownInstrumentDegrades(t *testing.T) {
	bars := wrappingSessionBars(t, 1)

	req := esRequest()
	req.Instrument = "ZZZ"

	table, err := NewPipeline(calendar.Default()).Run(bars, eventmodels.FilterSpec{}, req)
	require.NoError(t, err)

	require.NotEmpty(t, table.Warnings)
	assert.Contains(t, table.Warnings[0], "no session metadata")
	assert.Len(t, table.Rows, len(bars))
}

func TestPipelineMetricValuesMatchFixture(t *testing.T) {
	bars := eventmodels.Bars{}
	for i := 0; i < 3; i++ {
		bar := flatBar(t, fmt.Sprintf("2024-01-08 10:0%d:00", i), float64(10+i), 0)
		if i == 0 {
			bar.SessionStart = 1
		}
		bars = append(bars, bar)
	}

	req := esRequest()
	req.Instrument = "BTCUSD"
	req.Metrics = []eventmodels.Metric{eventmodels.MetricDeltaClose}

	table, err := NewPipeline(calendar.Default()).Run(bars, eventmodels.FilterSpec{}, req)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 1}, metricValues(table.Rows))
}
