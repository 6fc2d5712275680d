package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	require.NoError(t, err)
	return parsed
}

func mkBar(t *testing.T, timestamp string, open, high, low, closePx float64, sessionStart int) eventmodels.Bar {
	t.Helper()
	return eventmodels.Bar{
		Timestamp:    ts(t, timestamp),
		Open:         open,
		High:         high,
		Low:          low,
		Close:        closePx,
		Volume:       100,
		BPV:          50,
		SessionStart: sessionStart,
	}
}

// flatBar builds a bar whose OHLC all equal px.
func flatBar(t *testing.T, timestamp string, px float64, sessionStart int) eventmodels.Bar {
	t.Helper()
	return mkBar(t, timestamp, px, px, px, px, sessionStart)
}

func metricValues(rows []eventmodels.OutputRow) []float64 {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.Metric != nil {
			out = append(out, *row.Metric)
		}
	}
	return out
}
