package flit

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Bounce is the overscroll decorator: while the host reports pull deltas past
// the end of the list, Bounce accumulates a damped offset and writes it to
// the attached items' OffsetY; on release it springs the offset back to zero.
// It is entirely independent of the Animator's ordering state machine —
// attach it to items that are not currently transition-animating, or read
// Offset and apply it at draw time instead.
type Bounce struct {
	// Resistance scales pull deltas into visual offset, (0, 1]. Defaults
	// to 0.5: the content moves half as far as the finger.
	Resistance float64
	// Duration of the spring-back animation. Defaults to 300ms.
	Duration time.Duration
	// Ease for the spring-back. Defaults to ease.OutElastic.
	Ease ease.TweenFunc

	items  []*Item
	offset float64
	tween  *gween.Tween
}

// NewBounce creates a bounce decorator over the given items.
func NewBounce(items ...*Item) *Bounce {
	return &Bounce{items: items}
}

// Attach adds items to the set the decorator perturbs.
func (b *Bounce) Attach(items ...*Item) {
	b.items = append(b.items, items...)
}

// Pull accumulates an overscroll delta. Any in-progress spring-back is
// abandoned; the user grabbed the list again.
func (b *Bounce) Pull(delta float64) {
	r := b.Resistance
	if r <= 0 || r > 1 {
		r = 0.5
	}
	b.tween = nil
	b.offset += delta * r
	b.apply()
}

// Release starts the spring-back of the accumulated offset to zero.
func (b *Bounce) Release() {
	if b.offset == 0 {
		return
	}
	d := b.Duration
	if d <= 0 {
		d = 300 * time.Millisecond
	}
	fn := b.Ease
	if fn == nil {
		fn = ease.OutElastic
	}
	b.tween = gween.New(float32(b.offset), 0, float32(d.Seconds()), fn)
}

// Update advances the spring-back by dt seconds and reapplies the offset.
func (b *Bounce) Update(dt float32) {
	if b.tween == nil {
		return
	}
	val, finished := b.tween.Update(dt)
	b.offset = float64(val)
	if finished {
		b.offset = 0
		b.tween = nil
	}
	b.apply()
}

// Offset returns the current overscroll perturbation.
func (b *Bounce) Offset() float64 {
	return b.offset
}

// Active reports whether a spring-back is in progress.
func (b *Bounce) Active() bool {
	return b.tween != nil
}

func (b *Bounce) apply() {
	for _, it := range b.items {
		it.OffsetY = b.offset
	}
}
