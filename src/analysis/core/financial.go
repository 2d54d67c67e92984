package core

import (
	"errors"
	"fmt"
)

var ErrEmptySeries = errors.New("cannot normalize an empty series")

// -----------------------------------------------------------------------------

// Normalize divides every value by the first one so the series starts at 1.0.
func Normalize(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptySeries
	}
	base := values[0]
	if base == 0 {
		return nil, fmt.Errorf("cannot normalize series with zero first value")
	}

	out := make([]float64, len(values))
	out[0] = 1.0
	for i := 1; i < len(values); i++ {
		out[i] = values[i] / base
	}
	return out, nil
}

// -----------------------------------------------------------------------------

// CalculateChangePercent calculates percentage change.
func CalculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return (current - previous) / previous
}
