package pipeline

import (
	"time"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

// sessionInfo carries the session context of a bar: the timestamp of the most
// recent preceding session-start bar and that bar's calendar weekday. Computed
// in a single left-to-right pass; bars before the first session start fall
// back to their own timestamp and weekday.
type sessionInfo struct {
	open    time.Time
	weekday time.Weekday
}

func annotateSessions(bars eventmodels.Bars) []sessionInfo {
	infos := make([]sessionInfo, len(bars))

	var cur sessionInfo
	haveSession := false
	for i, bar := range bars {
		if bar.SessionStart > 0 || !haveSession {
			cur = sessionInfo{open: bar.Timestamp, weekday: bar.Timestamp.Weekday()}
			haveSession = bar.SessionStart > 0
		}
		infos[i] = cur
	}

	return infos
}

// sessionRuns splits the bar sequence into session windows: each run starts
// at a bar carrying a session start and extends to the bar before the next
// one. When no bar carries a session start (daily and coarser grains), runs
// are calendar dates instead.
func sessionRuns(bars eventmodels.Bars) [][2]int {
	var runs [][2]int

	hasSessionStarts := false
	for _, bar := range bars {
		if bar.SessionStart > 0 {
			hasSessionStarts = true
			break
		}
	}

	start := 0
	for i := 1; i < len(bars); i++ {
		var boundary bool
		if hasSessionStarts {
			boundary = bars[i].SessionStart > 0
		} else {
			y0, m0, d0 := bars[i-1].Timestamp.Date()
			y1, m1, d1 := bars[i].Timestamp.Date()
			boundary = y0 != y1 || m0 != m1 || d0 != d1
		}
		if boundary {
			runs = append(runs, [2]int{start, i})
			start = i
		}
	}

	if len(bars) > 0 {
		runs = append(runs, [2]int{start, len(bars)})
	}

	return runs
}
