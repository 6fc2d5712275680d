package eventmodels

import "fmt"

const DefaultMaxRows = 250000

// AggregationRequest describes one pipeline run: which derived series to
// compute and how to bucket it. An invalid combination is rejected up front;
// the UI layer should never produce one.
type AggregationRequest struct {
	Instrument string
	Timeframe  Timeframe
	Metrics    []Metric
	GroupBy    GroupBy
	Func       AggregateFunc
	Unit       Unit

	// PeriodYears splits calendar years into buckets of this size as an
	// added breakdown dimension. Zero disables the split.
	PeriodYears int

	// MaxRows caps the output cardinality before the timeframe is escalated.
	MaxRows int
}

func (r *AggregationRequest) Validate() error {
	if r.Instrument == "" {
		return fmt.Errorf("AggregationRequest: instrument is required")
	}

	if err := r.Timeframe.Validate(); err != nil {
		return fmt.Errorf("AggregationRequest: %w", err)
	}

	if len(r.Metrics) < 1 || len(r.Metrics) > 2 {
		return fmt.Errorf("AggregationRequest: expected 1 or 2 metrics, got %d", len(r.Metrics))
	}

	for _, m := range r.Metrics {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("AggregationRequest: %w", err)
		}
	}

	if err := r.GroupBy.Validate(); err != nil {
		return fmt.Errorf("AggregationRequest: %w", err)
	}

	if err := r.Func.Validate(); err != nil {
		return fmt.Errorf("AggregationRequest: %w", err)
	}

	if err := r.Unit.Validate(); err != nil {
		return fmt.Errorf("AggregationRequest: %w", err)
	}

	if r.PeriodYears < 0 {
		return fmt.Errorf("AggregationRequest: period years must be >= 0, got %d", r.PeriodYears)
	}

	if r.MaxRows <= 0 {
		return fmt.Errorf("AggregationRequest: max rows must be positive, got %d", r.MaxRows)
	}

	return nil
}
