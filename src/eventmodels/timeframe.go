package eventmodels

import (
	"fmt"
	"time"
)

type Timeframe string

const (
	Timeframe1m     Timeframe = "1m"
	Timeframe5m     Timeframe = "5m"
	Timeframe15m    Timeframe = "15m"
	Timeframe30m    Timeframe = "30m"
	Timeframe60m    Timeframe = "60m"
	Timeframe120m   Timeframe = "120m"
	Timeframe240m   Timeframe = "240m"
	Timeframe480m   Timeframe = "480m"
	TimeframeDaily  Timeframe = "Daily"
	TimeframeWeekly Timeframe = "Weekly"
)

func (tf Timeframe) Validate() error {
	switch tf {
	case Timeframe1m, Timeframe5m, Timeframe15m, Timeframe30m, Timeframe60m, Timeframe120m, Timeframe240m, Timeframe480m, TimeframeDaily, TimeframeWeekly:
		return nil
	default:
		return fmt.Errorf("Timeframe: unsupported timeframe: %s", tf)
	}
}

func (tf Timeframe) IsIntraday() bool {
	return tf != TimeframeDaily && tf != TimeframeWeekly
}

// Minutes returns the bar size for intraday timeframes, 0 otherwise.
func (tf Timeframe) Minutes() int {
	switch tf {
	case Timeframe1m:
		return 1
	case Timeframe5m:
		return 5
	case Timeframe15m:
		return 15
	case Timeframe30m:
		return 30
	case Timeframe60m:
		return 60
	case Timeframe120m:
		return 120
	case Timeframe240m:
		return 240
	case Timeframe480m:
		return 480
	default:
		return 0
	}
}

func (tf Timeframe) Duration() time.Duration {
	return time.Duration(tf.Minutes()) * time.Minute
}

// Escalate picks a coarser bar size when the output of a run exceeds its row
// budget. Only the four finest intraday sizes can escalate; anything coarser
// is accepted as-is. The second return is false when no escalation applies.
func (tf Timeframe) Escalate(nRows, maxRows int) (Timeframe, bool) {
	if nRows <= maxRows {
		return tf, false
	}

	n := float64(nRows)
	budget := float64(maxRows)

	switch tf {
	case Timeframe1m:
		if budget > n/5 {
			return Timeframe5m, true
		} else if budget > n/15 {
			return Timeframe15m, true
		} else if budget > n/30 {
			return Timeframe30m, true
		}
		return Timeframe60m, true
	case Timeframe5m:
		if budget > n/3 {
			return Timeframe15m, true
		} else if budget > n/6 {
			return Timeframe30m, true
		}
		return Timeframe60m, true
	case Timeframe15m:
		if budget > n/2 {
			return Timeframe30m, true
		}
		return Timeframe60m, true
	case Timeframe30m:
		return Timeframe60m, true
	default:
		return tf, false
	}
}
