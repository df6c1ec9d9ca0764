package flit

import "time"

// --- Records & batches ---

// moveRecord is a queued move: the item slides from (fromX, fromY) to
// (toX, toY). The inverse offset is pre-applied at request time, so the
// animation itself always runs the offset back to zero.
type moveRecord struct {
	item         *Item
	fromX, fromY float64
	toX, toY     float64
}

// changeRecord is a queued content swap: the old item fades out while sliding
// to the new position, the new item fades in from the old position. Either
// side is set to nil independently when that side is finished or cancelled;
// the record is dropped once both sides are nil.
type changeRecord struct {
	oldItem, newItem *Item
	fromX, fromY     float64
	toX, toY         float64
}

// batch is a snapshot of one category's pending queue taken at a single
// scheduling instant. The id doubles as the cancellation token: a delayed
// start callback re-checks that the id is still registered in the in-flight
// batch list before touching anything, so a batch cancelled during its wait
// window is a guaranteed no-op. Checking the id by value (rather than the
// batch pointer by reference) means a coincidentally recreated batch can
// never be confused with a cancelled one.
type batch[T any] struct {
	id      uint64
	records []T
}

func batchRegistered[T any](list []*batch[T], id uint64) bool {
	for _, b := range list {
		if b.id == id {
			return true
		}
	}
	return false
}

func dropBatch[T any](list []*batch[T], id uint64) []*batch[T] {
	for i, b := range list {
		if b.id == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// removeItem deletes the first occurrence of it from the slice, reporting
// whether it was present. Identity comparison, matching Item equality.
func removeItem(list *[]*Item, it *Item) bool {
	for i, cur := range *list {
		if cur == it {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

// --- Animator ---

// Animator batches and sequences item transition animations for an ordered
// list view. The host classifies mutations itself and reports them via
// RequestAdd, RequestRemove, RequestMove and RequestChange; once per update
// cycle it calls RunPendingAnimations, which starts everything queued since
// the previous cycle under a fixed ordering: removals first, then moves and
// changes together, then additions.
//
// Animator is single-threaded and cooperative. All of its state is mutated
// either inside a public method or inside a Driver callback, and the Driver
// contract requires callbacks on the same logical thread as the host.
type Animator struct {
	driver Driver

	// Per-category durations. Zero values are replaced with the package
	// defaults by NewAnimator.
	RemoveDuration time.Duration
	MoveDuration   time.Duration
	AddDuration    time.Duration
	ChangeDuration time.Duration

	// Default category animators, used for items without an Override.
	RemoveEffect Effect
	AddEffect    Effect

	// Event callbacks (nil by default; zero cost when unused). Starting
	// events fire when the animation actually begins interpolating,
	// finished events fire on natural end and on cancellation. The bool on
	// change events reports whether the item was the old (fading out) side.
	OnAddStarting    func(*Item)
	OnAddFinished    func(*Item)
	OnRemoveStarting func(*Item)
	OnRemoveFinished func(*Item)
	OnMoveStarting   func(*Item)
	OnMoveFinished   func(*Item)
	OnChangeStarting func(*Item, bool)
	OnChangeFinished func(*Item, bool)
	OnAllFinished    func()

	// Pending queues, FIFO, drained into batches by RunPendingAnimations.
	pendingRemovals  []*Item
	pendingAdditions []*Item
	pendingMoves     []*moveRecord
	pendingChanges   []*changeRecord

	// In-flight batch lists: batches scheduled or starting, per category.
	// Removals have no batch list; they start synchronously.
	moveBatches   []*batch[*moveRecord]
	changeBatches []*batch[*changeRecord]
	addBatches    []*batch[*Item]

	// In-flight sets: items currently mid-animation, per category.
	removeAnims map[*Item]struct{}
	addAnims    map[*Item]struct{}
	moveAnims   map[*Item]struct{}
	changeAnims map[*Item]struct{}

	// active maps each mid-animation item to its cancellation handle: a
	// Driver handle, or the *Notifier for overrides that animate outside
	// the driver.
	active map[*Item]Handle

	batchIDCounter uint64

	// idleNotified suppresses duplicate OnAllFinished dispatch: set when
	// the signal fires, cleared when a new operation is enqueued.
	idleNotified bool
	// ending suppresses incremental completion checks while EndAnimations
	// force-drains everything; EndAnimations fires the signal itself.
	ending bool
}

// NewAnimator creates an animator running on the given driver, with default
// durations and fade-based default add/remove effects.
func NewAnimator(d Driver) *Animator {
	if d == nil {
		panic("flit: NewAnimator with nil driver")
	}
	return &Animator{
		driver:         d,
		RemoveDuration: DefaultRemoveDuration,
		MoveDuration:   DefaultMoveDuration,
		AddDuration:    DefaultAddDuration,
		ChangeDuration: DefaultChangeDuration,
		RemoveEffect:   FadeOut{},
		AddEffect:      FadeIn{},
		removeAnims:    make(map[*Item]struct{}),
		addAnims:       make(map[*Item]struct{}),
		moveAnims:      make(map[*Item]struct{}),
		changeAnims:    make(map[*Item]struct{}),
		active:         make(map[*Item]Handle),
		idleNotified:   true,
	}
}

func (a *Animator) removeEffect() Effect {
	if a.RemoveEffect != nil {
		return a.RemoveEffect
	}
	return FadeOut{}
}

func (a *Animator) addEffect() Effect {
	if a.AddEffect != nil {
		return a.AddEffect
	}
	return FadeIn{}
}

func (a *Animator) nextBatchID() uint64 {
	a.batchIDCounter++
	return a.batchIDCounter
}

// --- Enqueue operations ---

// resetAnimation force-terminates whatever the item is currently doing and
// snaps its visual state back to neutral, so a new request starts clean.
func (a *Animator) resetAnimation(it *Item) {
	a.EndAnimation(it)
	it.ResetVisuals()
}

// RequestRemove queues a remove animation for the item. The animation starts
// on the next RunPendingAnimations, before any moves, changes or additions
// queued in the same cycle. Returns true: a remove always animates.
func (a *Animator) RequestRemove(it *Item) bool {
	if it == nil {
		panic("flit: RequestRemove on nil item")
	}
	a.resetAnimation(it)
	if ov := it.Override; ov != nil {
		ov.PreAnimateRemove(it)
	} else {
		a.removeEffect().Pre(it)
	}
	a.pendingRemovals = append(a.pendingRemovals, it)
	a.idleNotified = false
	return true
}

// RequestAdd queues an add animation for the item. The item is pre-positioned
// by the effect's Pre hook (faded out, for the default effect) so it is not
// visible until its batch starts. Returns true: an add always animates.
func (a *Animator) RequestAdd(it *Item) bool {
	if it == nil {
		panic("flit: RequestAdd on nil item")
	}
	a.resetAnimation(it)
	if ov := it.Override; ov != nil {
		ov.PreAnimateAdd(it)
	} else {
		a.addEffect().Pre(it)
	}
	a.pendingAdditions = append(a.pendingAdditions, it)
	a.idleNotified = false
	return true
}

// RequestMove queues a move animation from (fromX, fromY) to (toX, toY) in
// the host's layout space. Any offset the item is already carrying counts
// toward the start position, so interrupting a move mid-flight and moving
// again animates from where the item visually is, not where it was laid out.
//
// If the net displacement is zero the move is skipped entirely: move-finished
// is signalled immediately and RequestMove returns false. Otherwise the
// inverse offset is pre-applied (the item appears at its old position) and
// the batch animates the offset back to zero.
func (a *Animator) RequestMove(it *Item, fromX, fromY, toX, toY float64) bool {
	if it == nil {
		panic("flit: RequestMove on nil item")
	}
	fromX += it.OffsetX
	fromY += it.OffsetY
	a.resetAnimation(it)
	dx := toX - fromX
	dy := toY - fromY
	if dx == 0 && dy == 0 {
		a.dispatchMoveFinished(it)
		return false
	}
	it.OffsetX = -dx
	it.OffsetY = -dy
	a.pendingMoves = append(a.pendingMoves, &moveRecord{item: it, fromX: fromX, fromY: fromY, toX: toX, toY: toY})
	a.idleNotified = false
	return true
}

// RequestChange queues a content-change animation: oldItem fades out while
// sliding toward the new position, newItem fades in from the old position.
// A change where oldItem and newItem are the same handle degrades to a move
// (a reused item cannot fade between two independent visuals). newItem may
// be nil when the host reuses nothing, in which case only the old side runs.
func (a *Animator) RequestChange(oldItem, newItem *Item, fromX, fromY, toX, toY float64) bool {
	if oldItem == nil {
		panic("flit: RequestChange on nil old item")
	}
	if oldItem == newItem {
		return a.RequestMove(oldItem, fromX, fromY, toX, toY)
	}
	// The old item keeps whatever transient offset and opacity it already
	// has across the forced termination; the combined delta accounts for it.
	prevX := oldItem.OffsetX
	prevY := oldItem.OffsetY
	prevAlpha := oldItem.Alpha
	a.resetAnimation(oldItem)
	dx := toX - fromX - prevX
	dy := toY - fromY - prevY
	oldItem.OffsetX = prevX
	oldItem.OffsetY = prevY
	oldItem.Alpha = prevAlpha
	if newItem != nil {
		a.resetAnimation(newItem)
		newItem.OffsetX = -dx
		newItem.OffsetY = -dy
		newItem.Alpha = 0
	}
	a.pendingChanges = append(a.pendingChanges, &changeRecord{
		oldItem: oldItem, newItem: newItem,
		fromX: fromX, fromY: fromY, toX: toX, toY: toY,
	})
	a.idleNotified = false
	return true
}

// --- Batch scheduler ---

// RunPendingAnimations drains the pending queues and starts everything queued
// since the last cycle. Removals start synchronously and immediately. Moves
// and changes start together, delayed by RemoveDuration when removals were
// pending this cycle so the removed items visually depart first. Additions
// start after RemoveDuration (if removals were pending) plus the longer of
// MoveDuration/ChangeDuration (if moves/changes were pending), so new items
// always animate into settled layout. A no-op when nothing is pending.
func (a *Animator) RunPendingAnimations() {
	removalsPending := len(a.pendingRemovals) > 0
	movesPending := len(a.pendingMoves) > 0
	changesPending := len(a.pendingChanges) > 0
	additionsPending := len(a.pendingAdditions) > 0
	if !removalsPending && !movesPending && !changesPending && !additionsPending {
		return
	}

	// Removals: no batch, no delay.
	for _, it := range a.pendingRemovals {
		a.animateRemoveImpl(it)
	}
	a.pendingRemovals = nil

	if movesPending {
		mb := &batch[*moveRecord]{id: a.nextBatchID(), records: a.pendingMoves}
		a.pendingMoves = nil
		a.moveBatches = append(a.moveBatches, mb)
		run := func() {
			if !batchRegistered(a.moveBatches, mb.id) {
				return // cancelled while waiting
			}
			for _, rec := range mb.records {
				a.animateMoveImpl(rec)
			}
			mb.records = nil
			a.moveBatches = dropBatch(a.moveBatches, mb.id)
			// A zero MoveDuration completes every record synchronously
			// above, while the batch still counted as running.
			a.checkDone()
		}
		if removalsPending {
			a.driver.ScheduleAfter(a.RemoveDuration, run)
		} else {
			run()
		}
	}

	if changesPending {
		cb := &batch[*changeRecord]{id: a.nextBatchID(), records: a.pendingChanges}
		a.pendingChanges = nil
		a.changeBatches = append(a.changeBatches, cb)
		run := func() {
			if !batchRegistered(a.changeBatches, cb.id) {
				return
			}
			for _, rec := range cb.records {
				a.animateChangeImpl(rec)
			}
			cb.records = nil
			a.changeBatches = dropBatch(a.changeBatches, cb.id)
			a.checkDone()
		}
		if removalsPending {
			a.driver.ScheduleAfter(a.RemoveDuration, run)
		} else {
			run()
		}
	}

	if additionsPending {
		ab := &batch[*Item]{id: a.nextBatchID(), records: a.pendingAdditions}
		a.pendingAdditions = nil
		a.addBatches = append(a.addBatches, ab)
		run := func() {
			if !batchRegistered(a.addBatches, ab.id) {
				return
			}
			for _, it := range ab.records {
				a.animateAddImpl(it)
			}
			ab.records = nil
			a.addBatches = dropBatch(a.addBatches, ab.id)
			a.checkDone()
		}
		if removalsPending || movesPending || changesPending {
			var delay time.Duration
			if removalsPending {
				delay += a.RemoveDuration
			}
			var settle time.Duration
			if movesPending {
				settle = a.MoveDuration
			}
			if changesPending && a.ChangeDuration > settle {
				settle = a.ChangeDuration
			}
			delay += settle
			a.driver.ScheduleAfter(delay, run)
		} else {
			run()
		}
	}

	// Covers a removals-only cycle with a zero RemoveDuration, where the
	// terminal callbacks all ran while the pending queue was still draining.
	a.checkDone()
	a.debugLogState()
}

// --- Per-item animation starters ---

// register/guard pattern: the item enters its in-flight set before the
// animation starts, because a zero-duration driver completes synchronously
// and the terminal callback must find the bookkeeping in place. The handle
// is recorded afterwards only if the item is still live.

func (a *Animator) animateRemoveImpl(it *Item) {
	a.removeAnims[it] = struct{}{}
	hooks := Hooks{
		OnStart: func() { a.dispatchRemoveStarting(it) },
		OnEnd: func(Outcome) {
			it.ResetVisuals()
			delete(a.active, it)
			delete(a.removeAnims, it)
			a.dispatchRemoveFinished(it)
			a.checkDone()
		},
	}
	var h Handle
	if ov := it.Override; ov != nil {
		n := newNotifier(hooks)
		h = ov.AnimateRemove(a.driver, it, n)
		if h == nil {
			h = n
		}
	} else {
		h = a.removeEffect().Animate(a.driver, it, a.RemoveDuration, hooks)
	}
	if _, live := a.removeAnims[it]; live {
		a.active[it] = h
	}
}

func (a *Animator) animateAddImpl(it *Item) {
	a.addAnims[it] = struct{}{}
	hooks := Hooks{
		OnStart: func() { a.dispatchAddStarting(it) },
		OnEnd: func(Outcome) {
			it.ResetVisuals()
			delete(a.active, it)
			delete(a.addAnims, it)
			a.dispatchAddFinished(it)
			a.checkDone()
		},
	}
	var h Handle
	if ov := it.Override; ov != nil {
		n := newNotifier(hooks)
		h = ov.AnimateAdd(a.driver, it, n)
		if h == nil {
			h = n
		}
	} else {
		h = a.addEffect().Animate(a.driver, it, a.AddDuration, hooks)
	}
	if _, live := a.addAnims[it]; live {
		a.active[it] = h
	}
}

func (a *Animator) animateMoveImpl(rec *moveRecord) {
	it := rec.item
	a.moveAnims[it] = struct{}{}
	h := a.driver.Animate(it,
		[]Target{{PropOffsetX, 0}, {PropOffsetY, 0}},
		a.MoveDuration,
		Hooks{
			OnStart: func() { a.dispatchMoveStarting(it) },
			OnEnd: func(o Outcome) {
				if o == OutcomeCancelled {
					it.OffsetX = 0
					it.OffsetY = 0
				}
				delete(a.active, it)
				delete(a.moveAnims, it)
				a.dispatchMoveFinished(it)
				a.checkDone()
			},
		})
	if _, live := a.moveAnims[it]; live {
		a.active[it] = h
	}
}

func (a *Animator) animateChangeImpl(rec *changeRecord) {
	if old := rec.oldItem; old != nil {
		a.changeAnims[old] = struct{}{}
		h := a.driver.Animate(old,
			[]Target{
				{PropOffsetX, rec.toX - rec.fromX},
				{PropOffsetY, rec.toY - rec.fromY},
				{PropAlpha, 0},
			},
			a.ChangeDuration,
			Hooks{
				OnStart: func() { a.dispatchChangeStarting(old, true) },
				OnEnd: func(Outcome) {
					old.ResetVisuals()
					delete(a.active, old)
					delete(a.changeAnims, old)
					a.dispatchChangeFinished(old, true)
					a.checkDone()
				},
			})
		if _, live := a.changeAnims[old]; live {
			a.active[old] = h
		}
	}
	if newIt := rec.newItem; newIt != nil {
		a.changeAnims[newIt] = struct{}{}
		h := a.driver.Animate(newIt,
			[]Target{{PropOffsetX, 0}, {PropOffsetY, 0}, {PropAlpha, 1}},
			a.ChangeDuration,
			Hooks{
				OnStart: func() { a.dispatchChangeStarting(newIt, false) },
				OnEnd: func(Outcome) {
					newIt.ResetVisuals()
					delete(a.active, newIt)
					delete(a.changeAnims, newIt)
					a.dispatchChangeFinished(newIt, false)
					a.checkDone()
				},
			})
		if _, live := a.changeAnims[newIt]; live {
			a.active[newIt] = h
		}
	}
}

// --- Event dispatch ---

func (a *Animator) dispatchAddStarting(it *Item) {
	if a.OnAddStarting != nil {
		a.OnAddStarting(it)
	}
}

func (a *Animator) dispatchAddFinished(it *Item) {
	if a.OnAddFinished != nil {
		a.OnAddFinished(it)
	}
}

func (a *Animator) dispatchRemoveStarting(it *Item) {
	if a.OnRemoveStarting != nil {
		a.OnRemoveStarting(it)
	}
}

func (a *Animator) dispatchRemoveFinished(it *Item) {
	if a.OnRemoveFinished != nil {
		a.OnRemoveFinished(it)
	}
}

func (a *Animator) dispatchMoveStarting(it *Item) {
	if a.OnMoveStarting != nil {
		a.OnMoveStarting(it)
	}
}

func (a *Animator) dispatchMoveFinished(it *Item) {
	if a.OnMoveFinished != nil {
		a.OnMoveFinished(it)
	}
}

func (a *Animator) dispatchChangeStarting(it *Item, oldSide bool) {
	if a.OnChangeStarting != nil {
		a.OnChangeStarting(it, oldSide)
	}
}

func (a *Animator) dispatchChangeFinished(it *Item, oldSide bool) {
	if a.OnChangeFinished != nil {
		a.OnChangeFinished(it, oldSide)
	}
}
