package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

func gapRow(x string, xOrd int64, b string, bOrd int64, metric float64) groupedRow {
	row := groupedRow{key: groupKey{xLabel: x, xOrd: xOrd, bLabel: b, bOrd1: bOrd}}
	row.X = x
	row.Breakdown = b
	row.Metric = eventmodels.Float64Ptr(metric)
	return row
}

func TestReconcileGapsBuildsFullGrid(t *testing.T) {
	table := &groupedTable{
		hasBreakdown: true,
		rows: []groupedRow{
			gapRow("01:00:00", 3600, "Mon", 0, 1),
			gapRow("02:00:00", 7200, "Mon", 0, 2),
			gapRow("02:00:00", 7200, "Tue", 1, 3),
			gapRow("03:00:00", 10800, "Tue", 1, 4),
		},
	}

	out := reconcileGaps(table)

	// 3 x-values x 2 breakdowns, 4 present, 2 exposed as gaps
	require.Len(t, out.rows, 6)

	var gaps int
	for _, row := range out.rows {
		if row.Metric == nil {
			gaps++
		}
	}
	assert.Equal(t, 2, gaps)

	// rectangular and ordered: each breakdown covers every x in order
	assert.Equal(t, "Mon", out.rows[0].Breakdown)
	assert.Equal(t, "01:00:00", out.rows[0].X)
	assert.Equal(t, "03:00:00", out.rows[2].X)
	assert.Nil(t, out.rows[2].Metric, "Mon 03:00 had no data")
	assert.Equal(t, "Tue", out.rows[3].Breakdown)
	assert.Nil(t, out.rows[3].Metric, "Tue 01:00 had no data")
}

func TestReconcileGapsSortsWithoutBreakdown(t *testing.T) {
	table := &groupedTable{
		rows: []groupedRow{
			gapRow("02:00:00", 7200, "", 0, 2),
			gapRow("01:00:00", 3600, "", 0, 1),
		},
	}

	out := reconcileGaps(table)

	require.Len(t, out.rows, 2)
	assert.Equal(t, "01:00:00", out.rows[0].X)
	assert.Equal(t, "02:00:00", out.rows[1].X)
}
