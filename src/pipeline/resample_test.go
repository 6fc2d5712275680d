package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

func TestCeilTimestamp(t *testing.T) {
	d := eventmodels.Timeframe5m.Duration()

	onBoundary := ts(t, "2024-01-02 10:05:00")
	assert.Equal(t, onBoundary, ceilTimestamp(onBoundary, d), "a bar exactly on a boundary maps to itself")

	between := ts(t, "2024-01-02 10:02:00")
	assert.Equal(t, ts(t, "2024-01-02 10:05:00"), ceilTimestamp(between, d))

	nearMidnight := ts(t, "2024-01-02 23:58:00")
	assert.Equal(t, ts(t, "2024-01-03 00:00:00"), ceilTimestamp(nearMidnight, d))
}

func TestResampleIntraday(t *testing.T) {
	bars := eventmodels.Bars{
		mkBar(t, "2024-01-02 10:01:00", 10, 12, 9, 11, 1),
		mkBar(t, "2024-01-02 10:02:00", 11, 15, 10, 14, 0),
		mkBar(t, "2024-01-02 10:05:00", 14, 14, 8, 9, 0),
		mkBar(t, "2024-01-02 10:06:00", 9, 10, 9, 10, 1),
	}

	out := resample(bars, eventmodels.Timeframe5m)

	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, ts(t, "2024-01-02 10:05:00"), first.Timestamp)
	assert.Equal(t, 10.0, first.Open)
	assert.Equal(t, 15.0, first.High)
	assert.Equal(t, 8.0, first.Low)
	assert.Equal(t, 9.0, first.Close)
	assert.Equal(t, 300.0, first.Volume)
	assert.Equal(t, 1, first.SessionStart)
	assert.Equal(t, 50.0, first.BPV)

	second := out[1]
	assert.Equal(t, ts(t, "2024-01-02 10:10:00"), second.Timestamp)
	assert.Equal(t, 1, second.SessionStart)
}

func TestResampleDailyRoundTrip(t *testing.T) {
	bars := eventmodels.Bars{
		mkBar(t, "2024-01-02 10:00:00", 10, 12, 9, 11, 1),
		mkBar(t, "2024-01-02 11:00:00", 11, 18, 10, 14, 0),
		mkBar(t, "2024-01-02 12:00:00", 14, 16, 13, 15, 0),
		mkBar(t, "2024-01-03 10:00:00", 15, 17, 14, 16, 1),
	}

	out := resample(bars, eventmodels.TimeframeDaily)

	require.Len(t, out, 2)
	assert.Equal(t, 15.0, out[0].Close, "daily close equals the last 1-minute close of the day")
	assert.Equal(t, 18.0, out[0].High, "daily high equals the max high over the day")
	assert.Equal(t, 10.0, out[0].Open)
	assert.Equal(t, 9.0, out[0].Low)
}

func TestResampleWeekly(t *testing.T) {
	bars := eventmodels.Bars{
		mkBar(t, "2024-01-03 10:00:00", 10, 12, 9, 11, 1),  // ISO week 1
		mkBar(t, "2024-01-05 10:00:00", 11, 13, 10, 12, 1), // ISO week 1
		mkBar(t, "2024-01-08 10:00:00", 12, 14, 11, 13, 1), // ISO week 2
	}

	out := resample(bars, eventmodels.TimeframeWeekly)

	require.Len(t, out, 2)
	assert.Equal(t, ts(t, "2024-01-05 10:00:00"), out[0].Timestamp, "weekly bucket is dated at its last bar")
	assert.Equal(t, 13.0, out[0].High)
	assert.Equal(t, 12.0, out[0].Close)
	assert.Equal(t, 2, out[0].SessionStart)
}

func TestResample1mPassthrough(t *testing.T) {
	bars := eventmodels.Bars{
		mkBar(t, "2024-01-02 10:00:30", 10, 12, 9, 11, 1),
	}

	out := resample(bars, eventmodels.Timeframe1m)
	assert.Equal(t, bars, out)
}
