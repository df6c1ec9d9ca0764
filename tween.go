package flit

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenDriver is the stock Driver, built on gween. It has no goroutines and no
// global clock — the host calls Update(dt) once per frame, and every callback
// (start, end, cancel, scheduled functions) is delivered from inside Update or
// from inside Animate/Cancel on the caller's stack.
//
// The zero value is ready to use. Easing defaults to ease.OutQuad; set Ease to
// override for all subsequently started animations.
type TweenDriver struct {
	Ease ease.TweenFunc

	anims  []*tweenAnim
	timers []*frameTimer
}

// tweenAnim interpolates up to 3 float64 fields on one item.
type tweenAnim struct {
	item    *Item
	tweens  [3]*gween.Tween
	fields  [3]*float64
	count   int
	hooks   Hooks
	started bool
	done    bool
}

// frameTimer is a pending ScheduleAfter callback.
type frameTimer struct {
	remaining float32
	fn        func()
}

func (d *TweenDriver) easeFunc() ease.TweenFunc {
	if d.Ease != nil {
		return d.Ease
	}
	return ease.OutQuad
}

// Animate implements Driver. A zero duration completes synchronously.
func (d *TweenDriver) Animate(item *Item, targets []Target, duration time.Duration, hooks Hooks) Handle {
	if item == nil {
		panic("flit: Animate on nil item")
	}
	a := &tweenAnim{item: item, hooks: hooks}
	for _, t := range targets {
		if a.count == len(a.tweens) {
			break
		}
		f := t.Prop.field(item)
		a.fields[a.count] = f
		a.tweens[a.count] = gween.New(float32(*f), float32(t.To), float32(duration.Seconds()), d.easeFunc())
		a.count++
	}

	if duration <= 0 {
		// Nothing to interpolate over: jump to targets and finish now.
		a.started = true
		a.done = true
		for _, t := range targets {
			*t.Prop.field(item) = t.To
		}
		if hooks.OnStart != nil {
			hooks.OnStart()
		}
		if hooks.OnEnd != nil {
			hooks.OnEnd(OutcomeFinished)
		}
		return a
	}

	d.anims = append(d.anims, a)
	return a
}

// Cancel implements Driver. The animation is marked dead immediately and its
// OnEnd(OutcomeCancelled) fires before Cancel returns; the Update loop sweeps
// the carcass on the next frame.
func (d *TweenDriver) Cancel(h Handle) {
	a, ok := h.(*tweenAnim)
	if !ok || a == nil || a.done {
		return
	}
	a.done = true
	if a.hooks.OnEnd != nil {
		a.hooks.OnEnd(OutcomeCancelled)
	}
}

// ScheduleAfter implements Driver. fn runs on the first Update tick at or
// after the deadline, which is how "aligned to the next frame" is realized
// with a host-driven clock.
func (d *TweenDriver) ScheduleAfter(delay time.Duration, fn func()) {
	d.timers = append(d.timers, &frameTimer{remaining: float32(delay.Seconds()), fn: fn})
}

// Update advances all timers and animations by dt seconds. Timers fire before
// animations step, so a batch whose delay expires this frame starts (and
// receives its OnStart) on this same frame. Animations and timers created
// from animation callbacks begin advancing on the next Update.
func (d *TweenDriver) Update(dt float32) {
	// Timers: split due from surviving before running any callback, so that
	// callbacks appending new timers do not perturb the scan.
	var due []func()
	rest := d.timers[:0]
	for _, t := range d.timers {
		t.remaining -= dt
		if t.remaining <= 0 {
			due = append(due, t.fn)
		} else {
			rest = append(rest, t)
		}
	}
	d.timers = rest
	for _, fn := range due {
		fn()
	}

	// Animations: step only those present at frame start.
	n := len(d.anims)
	for i := 0; i < n; i++ {
		a := d.anims[i]
		if a.done {
			continue
		}
		if !a.started {
			a.started = true
			if a.hooks.OnStart != nil {
				a.hooks.OnStart()
			}
			if a.done {
				// OnStart cancelled us.
				continue
			}
		}
		allDone := true
		for j := 0; j < a.count; j++ {
			val, finished := a.tweens[j].Update(dt)
			*a.fields[j] = float64(val)
			if !finished {
				allDone = false
			}
		}
		if allDone {
			a.done = true
			if a.hooks.OnEnd != nil {
				a.hooks.OnEnd(OutcomeFinished)
			}
		}
	}

	// Sweep dead animations.
	live := d.anims[:0]
	for _, a := range d.anims {
		if !a.done {
			live = append(live, a)
		}
	}
	for i := len(live); i < len(d.anims); i++ {
		d.anims[i] = nil
	}
	d.anims = live
}

// Idle reports whether the driver has no live animations and no pending
// timers. Useful for demo loops and tests.
func (d *TweenDriver) Idle() bool {
	return len(d.anims) == 0 && len(d.timers) == 0
}
