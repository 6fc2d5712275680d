package eventmodels

import (
	"fmt"
)

// TimeOfDay is a wall-clock time expressed as seconds since midnight.
type TimeOfDay int

const SecondsPerDay = 24 * 60 * 60

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("ParseTimeOfDay: failed to parse %q: %w", s, err)
	}

	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("ParseTimeOfDay: %q out of range", s)
	}

	return TimeOfDay(h*3600 + m*60 + sec), nil
}

func MustTimeOfDay(s string) TimeOfDay {
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return tod
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, (int(t)%3600)/60, int(t)%60)
}

// Sub returns the elapsed time from u to t, wrapping past midnight.
func (t TimeOfDay) Sub(u TimeOfDay) TimeOfDay {
	return TimeOfDay(((int(t) - int(u)) + SecondsPerDay) % SecondsPerDay)
}

func (t TimeOfDay) AddMinutes(m int) TimeOfDay {
	return TimeOfDay((int(t) + m*60) % SecondsPerDay)
}
