package pipeline

import (
	"github.com/tradeviz/tradeviz/src/calendar"
	"github.com/tradeviz/tradeviz/src/eventmodels"
)

// sessionShading describes the Asia/Europe/US windows drawn behind a
// time-axis chart, by wall clock.
type sessionShading struct {
	asiaEnd   string
	europeEnd string
	usEnd     string
}

// buildAnnotations computes the overlay positions for a time-axis result:
// session-end and settlement vertical lines, the RTH window, and the regional
// trading-session rectangles for the schedules that have them. All positions
// are shifted into the session-relative axis domain the grouped rows use.
func buildAnnotations(instrument string, hours calendar.SessionHours, cal *calendar.SessionCalendar) []eventmodels.Annotation {
	shift := func(t eventmodels.TimeOfDay) string {
		return t.Sub(hours.Start).String()
	}

	var out []eventmodels.Annotation

	out = append(out, eventmodels.Annotation{
		Kind:  eventmodels.AnnotationVLine,
		X0:    shift(hours.End),
		Label: "End session",
	})

	if settlement, ok := cal.SettlementTime(instrument); ok {
		out = append(out, eventmodels.Annotation{
			Kind:  eventmodels.AnnotationVLine,
			X0:    shift(settlement),
			Label: "Settlement",
		})
	}

	if rthStart, rthEnd, ok := cal.RegularHours(instrument); ok {
		out = append(out, eventmodels.Annotation{
			Kind:  eventmodels.AnnotationRect,
			X0:    shift(rthStart),
			X1:    shift(rthEnd),
			Label: "RTH",
		})
	}

	if shading, ok := regionalShading(instrument, hours); ok {
		regionStart := hours.Start
		for _, region := range []struct {
			end   string
			label string
		}{
			{shading.asiaEnd, "Asia"},
			{shading.europeEnd, "Europe"},
			{shading.usEnd, "US"},
		} {
			end := eventmodels.MustTimeOfDay(region.end)
			out = append(out, eventmodels.Annotation{
				Kind:  eventmodels.AnnotationRect,
				X0:    shift(regionStart),
				X1:    shift(end),
				Label: region.label,
			})
			regionStart = end
		}
	}

	return out
}

// regionalShading returns the regional windows for the schedules the
// dashboard highlights: the 17:00 and 18:00 US futures sessions and FDAX.
func regionalShading(instrument string, hours calendar.SessionHours) (sessionShading, bool) {
	switch {
	case hours.Start == eventmodels.MustTimeOfDay("17:00:00") && hours.End == eventmodels.MustTimeOfDay("16:00:00"):
		return sessionShading{asiaEnd: "01:00:00", europeEnd: "08:00:00", usEnd: "16:00:00"}, true
	case hours.Start == eventmodels.MustTimeOfDay("18:00:00") && hours.End == eventmodels.MustTimeOfDay("17:00:00"):
		return sessionShading{asiaEnd: "02:00:00", europeEnd: "09:00:00", usEnd: "17:00:00"}, true
	case instrument == "FDAX":
		return sessionShading{asiaEnd: "08:00:00", europeEnd: "15:00:00", usEnd: "22:00:00"}, true
	default:
		return sessionShading{}, false
	}
}
