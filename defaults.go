package flit

import "time"

// Effect is the pluggable default animator for one category. Pre prepares the
// item's visual state at request time, before the item enters its pending
// queue; Animate starts the actual animation when the batch runs and must
// route the given hooks into the driver unchanged.
type Effect interface {
	Pre(it *Item)
	Animate(d Driver, it *Item, duration time.Duration, hooks Hooks) Handle
}

// FadeOut is the default remove effect: the item fades to fully transparent
// in place.
type FadeOut struct{}

func (FadeOut) Pre(*Item) {}

func (FadeOut) Animate(d Driver, it *Item, duration time.Duration, hooks Hooks) Handle {
	return d.Animate(it, []Target{{PropAlpha, 0}}, duration, hooks)
}

// FadeIn is the default add effect: the item is hidden at request time and
// fades to fully opaque when its batch runs.
type FadeIn struct{}

func (FadeIn) Pre(it *Item) {
	it.Alpha = 0
}

func (FadeIn) Animate(d Driver, it *Item, duration time.Duration, hooks Hooks) Handle {
	return d.Animate(it, []Target{{PropAlpha, 1}}, duration, hooks)
}

// --- Stagger helpers ---

// RemoveDelay suggests a stagger delay for the item's remove animation,
// proportional to how far down the list it was: |OldPosition| × RemoveDuration / 4.
// Purely advisory; the ordering protocol does not depend on it.
func (a *Animator) RemoveDelay(it *Item) time.Duration {
	pos := it.OldPosition
	if pos < 0 {
		pos = -pos
	}
	return time.Duration(pos) * a.RemoveDuration / 4
}

// AddDelay suggests a stagger delay for the item's add animation:
// |Position| × AddDuration / 4.
func (a *Animator) AddDelay(it *Item) time.Duration {
	pos := it.Position
	if pos < 0 {
		pos = -pos
	}
	return time.Duration(pos) * a.AddDuration / 4
}
