package pipeline

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tradeviz/tradeviz/src/calendar"
	"github.com/tradeviz/tradeviz/src/eventmodels"
)

func sameDate(a, b time.Time) bool {
	y0, m0, d0 := a.Date()
	y1, m1, d1 := b.Date()
	return y0 == y1 && m0 == m1 && d0 == d1
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func barTimeOfDay(t time.Time) eventmodels.TimeOfDay {
	return eventmodels.TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// applyFilters narrows the raw bar sequence per the filter spec, preserving
// the original relative order. The weekday exclusion resolves each bar's
// weekday through its session-start bar, because a session can span midnight.
// An empty result is not an error.
func applyFilters(bars eventmodels.Bars, spec eventmodels.FilterSpec, tf eventmodels.Timeframe) eventmodels.Bars {
	sessions := annotateSessions(bars)

	excludedMonth := map[time.Month]bool{}
	for _, m := range spec.ExcludeMonths {
		excludedMonth[m] = true
	}
	excludedDay := map[int]bool{}
	for _, d := range spec.ExcludeDaysOfMonth {
		excludedDay[d] = true
	}
	excludedWeekday := map[time.Weekday]bool{}
	for _, wd := range spec.ExcludeWeekdays {
		excludedWeekday[wd] = true
	}

	timeFiltered := tf.IsIntraday() && spec.HasTimeWindow()

	out := make(eventmodels.Bars, 0, len(bars))
	for i, bar := range bars {
		if !spec.DateStart.IsZero() && dateOnly(bar.Timestamp).Before(dateOnly(spec.DateStart)) {
			continue
		}
		if !spec.DateEnd.IsZero() && dateOnly(bar.Timestamp).After(dateOnly(spec.DateEnd)) {
			continue
		}
		if excludedMonth[bar.Timestamp.Month()] {
			continue
		}
		if excludedDay[bar.Timestamp.Day()] {
			continue
		}
		if excludedWeekday[sessions[i].weekday] {
			continue
		}
		if timeFiltered && !calendar.Contains(*spec.TimeStart, *spec.TimeEnd, barTimeOfDay(bar.Timestamp)) {
			continue
		}
		out = append(out, bar)
	}

	// The time filter can drop the bar that opened a session, so the first
	// retained bar of each calendar date becomes a synthetic session start.
	if timeFiltered {
		for i := range out {
			if i == 0 || !sameDate(out[i-1].Timestamp, out[i].Timestamp) {
				out[i].SessionStart = 1
			} else {
				out[i].SessionStart = 0
			}
		}
	}

	if len(out) == 0 {
		log.Debugf("applyFilters: all %d bars filtered out", len(bars))
	}

	return out
}
