package eventmodels

import "time"

// FilterSpec narrows the raw bar sequence before resampling. Zero-valued
// date bounds mean unbounded; nil time bounds disable the intraday
// time-of-day filter.
type FilterSpec struct {
	DateStart time.Time
	DateEnd   time.Time

	// Exclusion sets. The weekday exclusion applies to the weekday of the
	// session-start bar, forward-filled to every bar of that session.
	ExcludeMonths      []time.Month
	ExcludeDaysOfMonth []int
	ExcludeWeekdays    []time.Weekday

	// Intraday time-of-day window [TimeStart, TimeEnd), wrap-aware.
	TimeStart *TimeOfDay
	TimeEnd   *TimeOfDay
}

func (f FilterSpec) HasTimeWindow() bool {
	return f.TimeStart != nil && f.TimeEnd != nil
}
