package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

func TestEscalate(t *testing.T) {
	tests := []struct {
		name      string
		tf        eventmodels.Timeframe
		nRows     int
		maxRows   int
		want      eventmodels.Timeframe
		escalated bool
	}{
		{"1m within budget", eventmodels.Timeframe1m, 1000, 250000, eventmodels.Timeframe1m, false},
		{"1m to 5m", eventmodels.Timeframe1m, 1000000, 250000, eventmodels.Timeframe5m, true},
		{"1m to 15m", eventmodels.Timeframe1m, 1000000, 150000, eventmodels.Timeframe15m, true},
		{"1m to 30m", eventmodels.Timeframe1m, 1000000, 50000, eventmodels.Timeframe30m, true},
		{"1m to 60m", eventmodels.Timeframe1m, 1000000, 10000, eventmodels.Timeframe60m, true},
		{"5m to 15m", eventmodels.Timeframe5m, 300000, 150000, eventmodels.Timeframe15m, true},
		{"5m to 30m", eventmodels.Timeframe5m, 300000, 80000, eventmodels.Timeframe30m, true},
		{"5m to 60m", eventmodels.Timeframe5m, 300000, 20000, eventmodels.Timeframe60m, true},
		{"15m to 30m", eventmodels.Timeframe15m, 300000, 200000, eventmodels.Timeframe30m, true},
		{"15m to 60m", eventmodels.Timeframe15m, 300000, 100000, eventmodels.Timeframe60m, true},
		{"30m to 60m", eventmodels.Timeframe30m, 300000, 200000, eventmodels.Timeframe60m, true},
		{"60m cannot escalate", eventmodels.Timeframe60m, 300000, 100, eventmodels.Timeframe60m, false},
		{"daily cannot escalate", eventmodels.TimeframeDaily, 300000, 100, eventmodels.TimeframeDaily, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, escalated := tc.tf.Escalate(tc.nRows, tc.maxRows)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.escalated, escalated)
		})
	}
}
