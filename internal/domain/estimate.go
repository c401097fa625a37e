package domain

import (
	"fmt"
	"slices"
	"time"
)

// Estimate is the predicted next capture derived from a capture history.
type Estimate struct {
	Captures        int           `json:"captures"`
	First           time.Time     `json:"first"`
	Last            time.Time     `json:"last"`
	AverageInterval time.Duration `json:"average_interval"`
	Next            time.Time     `json:"next"`
	ComputedAt      time.Time     `json:"computed_at"`
}

// DueIn returns the time from ComputedAt until Next. It is negative when the
// predicted capture is already in the past.
func (e Estimate) DueIn() time.Duration {
	return e.Next.Sub(e.ComputedAt)
}

// EstimateNextCapture predicts the next capture time from dates.
//
// Dates are sorted ascending (the input slice is not modified), the gaps
// between neighbours are summed and divided by the gap count, and the mean
// gap is added to the latest date. Fewer than two dates yields
// ErrInsufficientData.
func EstimateNextCapture(dates []time.Time) (Estimate, error) {
	if len(dates) < 2 {
		return Estimate{}, fmt.Errorf("%w: %d dates", ErrInsufficientData, len(dates))
	}

	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	deltas := intervals(sorted)
	var total time.Duration
	for _, d := range deltas {
		total += d
	}
	avg := total / time.Duration(len(deltas))

	last := sorted[len(sorted)-1]
	return Estimate{
		Captures:        len(sorted),
		First:           sorted[0],
		Last:            last,
		AverageInterval: avg,
		Next:            last.Add(avg),
		ComputedAt:      clock.Now(),
	}, nil
}

// intervals returns the gaps between consecutive sorted timestamps.
func intervals(sorted []time.Time) []time.Duration {
	deltas := make([]time.Duration, 0, len(sorted)-1)
	for i := 0; i < len(sorted)-1; i++ {
		deltas = append(deltas, sorted[i+1].Sub(sorted[i]))
	}
	return deltas
}
