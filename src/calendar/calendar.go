package calendar

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

// SessionHours holds the per-instrument session metadata. A session whose
// start is later than its end by wall clock wraps past midnight, except the
// full-day 00:00:00-23:59:00 crypto window.
type SessionHours struct {
	Start      eventmodels.TimeOfDay
	End        eventmodels.TimeOfDay
	Settlement *eventmodels.TimeOfDay
	RTHStart   *eventmodels.TimeOfDay
	RTHEnd     *eventmodels.TimeOfDay
}

type SessionCalendar struct {
	entries map[string]SessionHours
}

func New(entries map[string]SessionHours) *SessionCalendar {
	c := &SessionCalendar{entries: map[string]SessionHours{}}
	for sym, hours := range entries {
		c.entries[sym] = hours
	}
	return c
}

func (c *SessionCalendar) Instruments() []string {
	syms := make([]string, 0, len(c.entries))
	for sym := range c.entries {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

func (c *SessionCalendar) Get(instrument string) (SessionHours, error) {
	hours, ok := c.entries[instrument]
	if !ok {
		return SessionHours{}, fmt.Errorf("SessionCalendar.Get: no session metadata for %s", instrument)
	}
	return hours, nil
}

// SessionWindow returns the session start and end times of day.
func (c *SessionCalendar) SessionWindow(instrument string) (eventmodels.TimeOfDay, eventmodels.TimeOfDay, error) {
	hours, err := c.Get(instrument)
	if err != nil {
		return 0, 0, err
	}
	return hours.Start, hours.End, nil
}

// IsWrapping reports whether the instrument's session crosses midnight. The
// full-day 00:00:00-23:59:00 window is treated as non-wrapping.
func (c *SessionCalendar) IsWrapping(instrument string) (bool, error) {
	hours, err := c.Get(instrument)
	if err != nil {
		return false, err
	}
	return hours.IsWrapping(), nil
}

func (h SessionHours) IsWrapping() bool {
	if h.Start == 0 && h.End == eventmodels.MustTimeOfDay("23:59:00") {
		return false
	}
	return h.Start > h.End
}

// SettlementTime returns the settlement time of day, if the instrument has
// one configured.
func (c *SessionCalendar) SettlementTime(instrument string) (eventmodels.TimeOfDay, bool) {
	hours, ok := c.entries[instrument]
	if !ok || hours.Settlement == nil {
		return 0, false
	}
	return *hours.Settlement, true
}

// RegularHours returns the regular-trading-hours window, if configured.
func (c *SessionCalendar) RegularHours(instrument string) (eventmodels.TimeOfDay, eventmodels.TimeOfDay, bool) {
	hours, ok := c.entries[instrument]
	if !ok || hours.RTHStart == nil || hours.RTHEnd == nil {
		return 0, 0, false
	}
	return *hours.RTHStart, *hours.RTHEnd, true
}

// Contains reports whether t lies inside the half-open window [start, end),
// treating a wrapping window as crossing midnight.
func Contains(start, end, t eventmodels.TimeOfDay) bool {
	if start > end {
		return t >= start || t < end
	}
	return t >= start && t < end
}

// EnumerateTimes lists the instrument's session times of day at five-minute
// granularity, from session start to session end inclusive. When the window
// wraps midnight the enumeration is driven by a date+time accumulator so the
// sequence crosses 00:00:00 instead of wrapping back to the start. Full-day
// sessions get a trailing 23:59:59 entry so the last raw bar is selectable.
func (c *SessionCalendar) EnumerateTimes(instrument string) ([]string, error) {
	hours, err := c.Get(instrument)
	if err != nil {
		return nil, err
	}

	base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	cur := base.Add(time.Duration(hours.Start) * time.Second)
	end := base.Add(time.Duration(hours.End) * time.Second)
	if hours.IsWrapping() {
		end = end.Add(24 * time.Hour)
	}

	var out []string
	for !cur.After(end) {
		out = append(out, cur.Format("15:04:05"))
		cur = cur.Add(5 * time.Minute)
	}

	if hours.End == eventmodels.MustTimeOfDay("23:59:00") {
		out = append(out, "23:59:59")
	}

	return out, nil
}

type sessionHoursYAML struct {
	Start      string `yaml:"start"`
	End        string `yaml:"end"`
	Settlement string `yaml:"settlement,omitempty"`
	RTHStart   string `yaml:"rth_start,omitempty"`
	RTHEnd     string `yaml:"rth_end,omitempty"`
}

type calendarYAML struct {
	Instruments map[string]sessionHoursYAML `yaml:"instruments"`
}

// LoadYAML reads per-instrument session overrides from a YAML file and merges
// them over the compiled-in defaults.
func LoadYAML(path string) (*SessionCalendar, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadYAML: failed to read %s: %w", path, err)
	}

	var dto calendarYAML
	if err := yaml.Unmarshal(raw, &dto); err != nil {
		return nil, fmt.Errorf("LoadYAML: failed to parse %s: %w", path, err)
	}

	c := Default()
	for sym, entry := range dto.Instruments {
		hours, err := entry.toSessionHours()
		if err != nil {
			return nil, fmt.Errorf("LoadYAML: instrument %s: %w", sym, err)
		}
		c.entries[sym] = hours
	}

	return c, nil
}

func (d sessionHoursYAML) toSessionHours() (SessionHours, error) {
	start, err := eventmodels.ParseTimeOfDay(d.Start)
	if err != nil {
		return SessionHours{}, err
	}

	end, err := eventmodels.ParseTimeOfDay(d.End)
	if err != nil {
		return SessionHours{}, err
	}

	hours := SessionHours{Start: start, End: end}

	if d.Settlement != "" {
		tod, err := eventmodels.ParseTimeOfDay(d.Settlement)
		if err != nil {
			return SessionHours{}, err
		}
		hours.Settlement = &tod
	}

	if d.RTHStart != "" && d.RTHEnd != "" {
		rthStart, err := eventmodels.ParseTimeOfDay(d.RTHStart)
		if err != nil {
			return SessionHours{}, err
		}
		rthEnd, err := eventmodels.ParseTimeOfDay(d.RTHEnd)
		if err != nil {
			return SessionHours{}, err
		}
		hours.RTHStart = &rthStart
		hours.RTHEnd = &rthEnd
	}

	return hours, nil
}
