package eventmodels

import "fmt"

// GroupBy selects the grouping key combination. The x-axis key is always the
// last component (time or history); the leading components become the
// breakdown dimension rendered as separate series.
type GroupBy string

const (
	GroupByNone                GroupBy = "None"
	GroupByTime                GroupBy = "Time"
	GroupByWeekdayTime         GroupBy = "Day of week + time"
	GroupByDayOfMonthTime      GroupBy = "Day of month + time"
	GroupByMonthTime           GroupBy = "Month + time"
	GroupByMonthDayOfMonthTime GroupBy = "Month + day of month + time"
	GroupByHistory             GroupBy = "History"
	GroupByWeekdayHistory      GroupBy = "Day of week + history"
	GroupByDayOfMonthHistory   GroupBy = "Day of month + history"
	GroupByMonthHistory        GroupBy = "Month + history"
)

func (g GroupBy) Validate() error {
	switch g {
	case GroupByNone, GroupByTime, GroupByWeekdayTime, GroupByDayOfMonthTime, GroupByMonthTime,
		GroupByMonthDayOfMonthTime, GroupByHistory, GroupByWeekdayHistory, GroupByDayOfMonthHistory, GroupByMonthHistory:
		return nil
	default:
		return fmt.Errorf("GroupBy: unsupported grouping: %s", g)
	}
}

// XAxis returns the name of the x-axis dimension for the grouping.
func (g GroupBy) XAxis() string {
	switch g {
	case GroupByNone:
		return "Date"
	case GroupByTime, GroupByWeekdayTime, GroupByDayOfMonthTime, GroupByMonthTime, GroupByMonthDayOfMonthTime:
		return "Time"
	default:
		return "History"
	}
}

// UsesTime reports whether the x-axis is a session-relative time of day.
func (g GroupBy) UsesTime() bool {
	return g.XAxis() == "Time"
}

// Breakdown returns the name of the breakdown dimension, or "" when the
// grouping produces a single series.
func (g GroupBy) Breakdown() string {
	switch g {
	case GroupByWeekdayTime, GroupByWeekdayHistory:
		return "Weekday"
	case GroupByDayOfMonthTime, GroupByDayOfMonthHistory:
		return "Day of month"
	case GroupByMonthTime, GroupByMonthHistory:
		return "Month"
	case GroupByMonthDayOfMonthTime:
		return "Month + day of month"
	default:
		return ""
	}
}

type AggregateFunc string

const (
	AggregateMean   AggregateFunc = "Mean"
	AggregateMedian AggregateFunc = "Median"
	AggregateSum    AggregateFunc = "Sum"
	AggregateCumsum AggregateFunc = "Cumsum"
	AggregateCount  AggregateFunc = "Count"
	AggregateStd    AggregateFunc = "Std"
)

func (f AggregateFunc) Validate() error {
	switch f {
	case AggregateMean, AggregateMedian, AggregateSum, AggregateCumsum, AggregateCount, AggregateStd:
		return nil
	default:
		return fmt.Errorf("AggregateFunc: unsupported function: %s", f)
	}
}

type Unit string

const (
	UnitPoint    Unit = "Point"
	UnitCurrency Unit = "$"
)

func (u Unit) Validate() error {
	switch u {
	case UnitPoint, UnitCurrency:
		return nil
	default:
		return fmt.Errorf("Unit: unsupported unit: %s", u)
	}
}
