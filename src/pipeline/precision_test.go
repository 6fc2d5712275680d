package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

func ptrs(values ...float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = eventmodels.Float64Ptr(v)
	}
	return out
}

func TestInferPrecision(t *testing.T) {
	// quarter-point ticks: 1/0.25 = 4, one digit
	assert.Equal(t, 1, inferPrecision(ptrs(100.0, 100.25, 101.5)))

	// cent ticks: 1/0.01 = 100, three digits
	assert.Equal(t, 3, inferPrecision(ptrs(5.0, 5.01, 5.2)))

	// whole-point ticks
	assert.Equal(t, 1, inferPrecision(ptrs(1, 2, 3)))
}

func TestInferPrecisionDegenerateFallsBack(t *testing.T) {
	assert.Equal(t, 0, inferPrecision(ptrs(7)))
	assert.Equal(t, 0, inferPrecision(ptrs(7, 7, 7)))
	assert.Equal(t, 0, inferPrecision(nil))
	assert.Equal(t, 0, inferPrecision([]*float64{nil, nil}))
}
