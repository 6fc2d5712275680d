package pipeline

import (
	"time"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

// ceilTimestamp rounds t up to the next boundary of size d. A timestamp
// already on a boundary maps to itself.
func ceilTimestamp(t time.Time, d time.Duration) time.Time {
	truncated := t.Truncate(d)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(d)
}

// isoWeekKey identifies a bar's (ISO year, ISO week) bucket.
func isoWeekKey(t time.Time) int {
	year, week := t.ISOWeek()
	return year*100 + week
}

// resample rolls 1-minute bars up to the requested bar size. Aggregation per
// bucket: open first, high max, low min, close last, volume and session-start
// counts summed, bpv first. Buckets are keyed by the ceiled timestamp for
// intraday sizes, the calendar date for daily, and the ISO week for weekly
// (with the bucket dated at its last bar).
func resample(bars eventmodels.Bars, tf eventmodels.Timeframe) eventmodels.Bars {
	if len(bars) == 0 || tf == eventmodels.Timeframe1m {
		return bars
	}

	keyOf := func(t time.Time) time.Time { return t }
	switch {
	case tf.IsIntraday():
		d := tf.Duration()
		keyOf = func(t time.Time) time.Time { return ceilTimestamp(t, d) }
	case tf == eventmodels.TimeframeDaily:
		keyOf = dateOnly
	}

	weekly := tf == eventmodels.TimeframeWeekly

	var out eventmodels.Bars
	var cur eventmodels.Bar
	var curWeek int
	open := false

	boundary := func(bar eventmodels.Bar) bool {
		if weekly {
			return isoWeekKey(bar.Timestamp) != curWeek
		}
		return !keyOf(bar.Timestamp).Equal(cur.Timestamp)
	}

	for _, bar := range bars {
		if open && !boundary(bar) {
			if bar.High > cur.High {
				cur.High = bar.High
			}
			if bar.Low < cur.Low {
				cur.Low = bar.Low
			}
			cur.Close = bar.Close
			cur.Volume += bar.Volume
			cur.SessionStart += bar.SessionStart
			if weekly {
				cur.Timestamp = bar.Timestamp
			}
			continue
		}

		if open {
			out = append(out, cur)
		}

		cur = bar
		if weekly {
			curWeek = isoWeekKey(bar.Timestamp)
		} else {
			cur.Timestamp = keyOf(bar.Timestamp)
		}
		open = true
	}

	if open {
		out = append(out, cur)
	}

	return out
}
