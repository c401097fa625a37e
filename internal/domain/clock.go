package domain

import "github.com/jonboulle/clockwork"

// clock stamps Estimate.ComputedAt, which DueIn measures from.
var clock = clockwork.NewRealClock()

// SetClock replaces the time source behind Estimate.ComputedAt. Pass nil for
// the wall clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
