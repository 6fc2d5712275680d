package eventmodels

import "fmt"

type Metric string

const (
	MetricClose          Metric = "Close"
	MetricDeltaClose     Metric = "Delta close"
	MetricBody           Metric = "Body"
	MetricRange          Metric = "Range"
	MetricOpenHigh       Metric = "Open-high"
	MetricOpenLow        Metric = "Open-low"
	MetricNumHighs       Metric = "Num highs"
	MetricNumLows        Metric = "Num lows"
	MetricNumHighsOrLows Metric = "Num highs or lows"
	MetricVolume         Metric = "Volume"
)

func (m Metric) Validate() error {
	switch m {
	case MetricClose, MetricDeltaClose, MetricBody, MetricRange, MetricOpenHigh, MetricOpenLow, MetricNumHighs, MetricNumLows, MetricNumHighsOrLows, MetricVolume:
		return nil
	default:
		return fmt.Errorf("Metric: unsupported metric: %s", m)
	}
}

// IsCount reports whether the metric counts session extrema. Counts are
// summed, never averaged, and are never rescaled to currency.
func (m Metric) IsCount() bool {
	switch m {
	case MetricNumHighs, MetricNumLows, MetricNumHighsOrLows:
		return true
	default:
		return false
	}
}

// IsPriceBased reports whether the metric is denominated in price units and
// therefore rescaled by BPV when the currency unit is selected.
func (m Metric) IsPriceBased() bool {
	switch m {
	case MetricClose, MetricDeltaClose, MetricBody, MetricRange, MetricOpenHigh, MetricOpenLow:
		return true
	default:
		return false
	}
}

// Label returns the presentation name for the metric, with the unit appended
// for price-based metrics.
func (m Metric) Label(unit Unit) string {
	if m.IsPriceBased() {
		return fmt.Sprintf("%s [%s]", m, unit)
	}
	return string(m)
}
