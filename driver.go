package flit

import "time"

// Property names one of the numeric item properties a Driver can interpolate.
type Property uint8

const (
	PropOffsetX Property = iota
	PropOffsetY
	PropAlpha
)

// field returns a pointer to the item field backing the property.
func (p Property) field(it *Item) *float64 {
	switch p {
	case PropOffsetX:
		return &it.OffsetX
	case PropOffsetY:
		return &it.OffsetY
	default:
		return &it.Alpha
	}
}

// Target pairs a property with the value it should reach by the end of the
// animation. The start value is whatever the property holds when the
// animation begins.
type Target struct {
	Prop Property
	To   float64
}

// Hooks carries the engine's callbacks for one driven animation. OnStart fires
// when interpolation actually begins (after any Driver-internal scheduling).
// OnEnd fires exactly once with the terminal Outcome. Either may be nil.
type Hooks struct {
	OnStart func()
	OnEnd   func(Outcome)
}

// Handle identifies a live animation for cancellation. Opaque to callers;
// each Driver returns its own concrete type.
type Handle interface{}

// Driver is the platform timing primitive flit runs on: timed interpolation of
// named numeric properties, plus frame-aligned delayed callbacks. The engine
// is single-threaded and cooperative; a Driver must deliver every callback on
// the same logical thread that calls the engine's public methods.
//
// TweenDriver is the stock implementation. Hosts with their own animation
// clock (a game loop, a UI toolkit's frame callback) can supply an adapter
// instead.
type Driver interface {
	// Animate starts interpolating the given targets on the item over the
	// duration and returns a handle usable with Cancel. A zero duration
	// completes immediately: properties are set to their targets and
	// OnStart/OnEnd(OutcomeFinished) fire before Animate returns.
	Animate(item *Item, targets []Target, duration time.Duration, hooks Hooks) Handle

	// Cancel stops the animation synchronously. Property values are left
	// where interpolation last put them; hooks.OnEnd(OutcomeCancelled) fires
	// before Cancel returns. Cancelling an already-finished or unknown
	// handle is a no-op.
	Cancel(h Handle)

	// ScheduleAfter runs fn once the delay has elapsed, aligned to the next
	// frame boundary at or after the deadline.
	ScheduleAfter(delay time.Duration, fn func())
}
