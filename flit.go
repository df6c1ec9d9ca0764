package flit

import "time"

// Outcome is the terminal state of a driven property animation. Every animation
// started through a Driver ends with exactly one Outcome: OutcomeFinished when
// it ran to its natural end, OutcomeCancelled when it was cut short via
// Driver.Cancel. The engine uses the distinction to decide whether visual state
// still needs to be snapped back to neutral.
type Outcome uint8

const (
	OutcomeFinished Outcome = iota
	OutcomeCancelled
)

// String returns "finished" or "cancelled".
func (o Outcome) String() string {
	if o == OutcomeCancelled {
		return "cancelled"
	}
	return "finished"
}

// Default per-category animation durations. Applied by NewAnimator when the
// corresponding config field is zero.
const (
	DefaultRemoveDuration = 120 * time.Millisecond
	DefaultAddDuration    = 120 * time.Millisecond
	DefaultMoveDuration   = 250 * time.Millisecond
	DefaultChangeDuration = 250 * time.Millisecond
)
