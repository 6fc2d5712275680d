package calendar

import (
	"github.com/tradeviz/tradeviz/src/eventmodels"
)

func tod(s string) eventmodels.TimeOfDay {
	return eventmodels.MustTimeOfDay(s)
}

func todPtr(s string) *eventmodels.TimeOfDay {
	t := eventmodels.MustTimeOfDay(s)
	return &t
}

// Default returns the built-in futures and crypto session table. Crypto pairs
// trade the full day; futures sessions follow the exchange schedules, most of
// them wrapping past midnight.
func Default() *SessionCalendar {
	entries := map[string]SessionHours{
		"AD":       {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("14:00:00")},
		"ADAUSD":   {Start: tod("00:00:00"), End: tod("23:59:00")},
		"AVAXUSD":  {Start: tod("00:00:00"), End: tod("23:59:00")},
		"BP":       {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("14:00:00")},
		"BTC":      {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("15:00:00")},
		"BTCUSD":   {Start: tod("00:00:00"), End: tod("23:59:00")},
		"C":        {Start: tod("19:00:00"), End: tod("13:20:00"), Settlement: todPtr("13:15:00")},
		"CD":       {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("14:00:00")},
		"CL":       {Start: tod("18:00:00"), End: tod("17:00:00"), Settlement: todPtr("14:30:00")},
		"CT":       {Start: tod("21:00:00"), End: tod("14:20:00")},
		"DOGEUSD":  {Start: tod("00:00:00"), End: tod("23:59:00")},
		"EC":       {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("14:00:00")},
		"ES":       {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("15:00:00"), RTHStart: todPtr("08:30:00"), RTHEnd: todPtr("15:15:00")},
		"ETHUSD":   {Start: tod("00:00:00"), End: tod("23:59:00")},
		"FC":       {Start: tod("08:30:00"), End: tod("13:05:00"), Settlement: todPtr("13:00:00")},
		"FDAX":     {Start: tod("01:10:00"), End: tod("22:00:00"), Settlement: todPtr("22:00:00")},
		"GC":       {Start: tod("18:00:00"), End: tod("17:00:00"), Settlement: todPtr("13:30:00")},
		"HG":       {Start: tod("18:00:00"), End: tod("17:00:00"), Settlement: todPtr("13:00:00")},
		"HO":       {Start: tod("18:00:00"), End: tod("17:00:00"), Settlement: todPtr("14:30:00")},
		"LC":       {Start: tod("08:30:00"), End: tod("13:05:00"), Settlement: todPtr("13:00:00")},
		"LH":       {Start: tod("08:30:00"), End: tod("13:05:00"), Settlement: todPtr("13:00:00")},
		"NG":       {Start: tod("18:00:00"), End: tod("17:00:00"), Settlement: todPtr("14:30:00")},
		"NQ":       {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("15:00:00"), RTHStart: todPtr("08:30:00"), RTHEnd: todPtr("15:15:00")},
		"PL":       {Start: tod("18:00:00"), End: tod("17:00:00"), Settlement: todPtr("13:05:00")},
		"RB":       {Start: tod("18:00:00"), End: tod("17:00:00"), Settlement: todPtr("14:30:00")},
		"RTY":      {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("15:00:00"), RTHStart: todPtr("08:30:00"), RTHEnd: todPtr("15:15:00")},
		"S":        {Start: tod("19:00:00"), End: tod("13:20:00"), Settlement: todPtr("13:15:00")},
		"SB":       {Start: tod("03:30:00"), End: tod("13:00:00")},
		"SI":       {Start: tod("18:00:00"), End: tod("17:00:00"), Settlement: todPtr("13:25:00")},
		"SOLUSD":   {Start: tod("00:00:00"), End: tod("23:59:00")},
		"THETAUSD": {Start: tod("00:00:00"), End: tod("23:59:00")},
		"TY":       {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("15:00:00")},
		"US":       {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("14:00:00")},
		"VX":       {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("15:00:00")},
		"XRPUSD":   {Start: tod("00:00:00"), End: tod("23:59:00")},
		"YM":       {Start: tod("17:00:00"), End: tod("16:00:00"), Settlement: todPtr("14:00:00"), RTHStart: todPtr("08:30:00"), RTHEnd: todPtr("15:15:00")},
	}

	return New(entries)
}
