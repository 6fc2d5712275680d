package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

func rankingTable(n int) *eventmodels.ResultTable {
	table := &eventmodels.ResultTable{}
	for i := 0; i < n; i++ {
		table.Rows = append(table.Rows, eventmodels.OutputRow{
			X:      fmt.Sprintf("x%02d", i),
			Metric: eventmodels.Float64Ptr(float64(i)),
		})
	}
	return table
}

func TestTopsBottomsSignedMetric(t *testing.T) {
	top, bottom := TopsBottoms(rankingTable(40), eventmodels.MetricDeltaClose)

	require.Len(t, top, 15)
	assert.Equal(t, 39.0, *top[0].Metric)
	assert.Equal(t, 25.0, *top[14].Metric)

	// a signed metric ranks its true minimum
	require.Len(t, bottom, 15)
	assert.Equal(t, 14.0, *bottom[0].Metric)
	assert.Equal(t, 0.0, *bottom[14].Metric)
}

func TestTopsBottomsOneSidedMetric(t *testing.T) {
	top, bottom := TopsBottoms(rankingTable(40), eventmodels.MetricRange)

	require.Len(t, top, 15)
	assert.Equal(t, 39.0, *top[0].Metric)

	// one-sided metrics show ranks 16-30 instead of the noisy minimum
	require.Len(t, bottom, 15)
	assert.Equal(t, 24.0, *bottom[0].Metric)
	assert.Equal(t, 10.0, *bottom[14].Metric)
}

func TestTopsBottomsSkipsGaps(t *testing.T) {
	table := rankingTable(5)
	table.Rows = append(table.Rows, eventmodels.OutputRow{X: "gap"})

	top, bottom := TopsBottoms(table, eventmodels.MetricClose)
	assert.Len(t, top, 5)
	assert.Empty(t, bottom)
}
