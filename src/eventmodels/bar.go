package eventmodels

import (
	"fmt"
	"time"
)

// Bar is one OHLCV record at a fixed resolution (1 minute in raw form).
// SessionStart marks the first bar of a trading session; after resampling it
// becomes a count of the original session starts folded into the bucket.
type Bar struct {
	Timestamp    time.Time
	Open         float64
	High         float64
	Low          float64
	Close        float64
	Volume       float64
	BPV          float64
	SessionStart int
}

type Bars []Bar

// Validate checks the ordering invariant: strictly ascending timestamps.
func (b Bars) Validate() error {
	for i := 1; i < len(b); i++ {
		if !b[i-1].Timestamp.Before(b[i].Timestamp) {
			return fmt.Errorf("Bars.Validate: bars out of order at index %d: %v >= %v", i, b[i-1].Timestamp, b[i].Timestamp)
		}
	}

	return nil
}

func (b Bars) Clone() Bars {
	out := make(Bars, len(b))
	copy(out, b)
	return out
}
