package flit

// EndAnimation force-terminates every pending and running animation for one
// item, synchronously. When it returns, the item is absent from all pending
// queues, in-flight sets and in-flight batches, and its visual state is
// neutral. Total and idempotent: calling it on an idle item is a no-op, as is
// calling it twice. Other items — including batch-mates of a cancelled move
// or change — are unaffected and complete normally.
func (a *Animator) EndAnimation(it *Item) {
	if it == nil {
		return
	}

	// Cancel the live driven animation first; its terminal callback snaps
	// the item back to neutral and evicts it from the in-flight sets.
	a.cancelActive(it)

	// Pending move: zero the offset and signal finished.
	for i := len(a.pendingMoves) - 1; i >= 0; i-- {
		if a.pendingMoves[i].item == it {
			it.OffsetX = 0
			it.OffsetY = 0
			a.pendingMoves = append(a.pendingMoves[:i], a.pendingMoves[i+1:]...)
			a.dispatchMoveFinished(it)
		}
	}

	// Pending change: null out whichever side matches; drop fully-null records.
	endChangeRecords(a, &a.pendingChanges, it)

	// Pending removal / addition.
	if removeItem(&a.pendingRemovals, it) {
		it.ResetVisuals()
		a.dispatchRemoveFinished(it)
	}
	if removeItem(&a.pendingAdditions, it) {
		it.ResetVisuals()
		a.dispatchAddFinished(it)
	}

	// Scheduled-but-unstarted batches. An emptied batch is dropped so its
	// delayed start callback no-ops on the registration check.
	for i := len(a.changeBatches) - 1; i >= 0; i-- {
		b := a.changeBatches[i]
		endChangeRecords(a, &b.records, it)
		if len(b.records) == 0 {
			a.changeBatches = append(a.changeBatches[:i], a.changeBatches[i+1:]...)
		}
	}
	for i := len(a.moveBatches) - 1; i >= 0; i-- {
		b := a.moveBatches[i]
		for j := len(b.records) - 1; j >= 0; j-- {
			if b.records[j].item == it {
				it.OffsetX = 0
				it.OffsetY = 0
				b.records = append(b.records[:j], b.records[j+1:]...)
				a.dispatchMoveFinished(it)
				break
			}
		}
		if len(b.records) == 0 {
			a.moveBatches = append(a.moveBatches[:i], a.moveBatches[i+1:]...)
		}
	}
	for i := len(a.addBatches) - 1; i >= 0; i-- {
		b := a.addBatches[i]
		if removeItem(&b.records, it) {
			it.ResetVisuals()
			a.dispatchAddFinished(it)
		}
		if len(b.records) == 0 {
			a.addBatches = append(a.addBatches[:i], a.addBatches[i+1:]...)
		}
	}

	// The cancel at the top should already have evicted the item from the
	// in-flight sets; finding it here is a bookkeeping bug. Redundant
	// deletion is tolerated outside debug mode.
	debugCheckEvicted(a, it)
	delete(a.removeAnims, it)
	delete(a.addAnims, it)
	delete(a.moveAnims, it)
	delete(a.changeAnims, it)
	delete(a.active, it)

	a.checkDone()
}

// cancelActive cancels the item's live driven animation, if any. Overrides
// that animate outside the driver registered their Notifier as the handle;
// cancelling through it reaches the same terminal path.
func (a *Animator) cancelActive(it *Item) {
	h, ok := a.active[it]
	if !ok {
		return
	}
	if n, isNotifier := h.(*Notifier); isNotifier {
		n.Cancel()
		return
	}
	a.driver.Cancel(h)
}

// endChangeRecords nulls out every side of every change record matching the
// item and drops records left with both sides nil. A record with both sides
// nil never survives in any collection.
func endChangeRecords(a *Animator, records *[]*changeRecord, it *Item) {
	for i := len(*records) - 1; i >= 0; i-- {
		rec := (*records)[i]
		if endChangeRecordIfNecessary(a, rec, it) {
			if rec.oldItem == nil && rec.newItem == nil {
				*records = append((*records)[:i], (*records)[i+1:]...)
			}
		}
	}
}

// endChangeRecordIfNecessary finishes one side of a change record early.
// An item matching neither side reports false and changes nothing.
func endChangeRecordIfNecessary(a *Animator, rec *changeRecord, it *Item) bool {
	oldSide := false
	switch {
	case rec.newItem == it:
		rec.newItem = nil
	case rec.oldItem == it:
		rec.oldItem = nil
		oldSide = true
	default:
		return false
	}
	it.ResetVisuals()
	a.dispatchChangeFinished(it, oldSide)
	return true
}

// EndAnimations force-completes every pending and in-flight operation without
// running the normal animations — teardown or full reset. Every affected item
// ends in neutral visual state with its finished event dispatched, and the
// all-finished signal fires exactly once, unconditionally, at the end.
func (a *Animator) EndAnimations() {
	// Incremental completion checks from the cancellations below would fire
	// the signal early; suppress them and fire once ourselves.
	a.ending = true

	// Pending queues, drained straight to their finished dispatch.
	for i := len(a.pendingMoves) - 1; i >= 0; i-- {
		rec := a.pendingMoves[i]
		rec.item.OffsetX = 0
		rec.item.OffsetY = 0
		a.pendingMoves = a.pendingMoves[:i]
		a.dispatchMoveFinished(rec.item)
	}
	for i := len(a.pendingRemovals) - 1; i >= 0; i-- {
		it := a.pendingRemovals[i]
		it.ResetVisuals()
		a.pendingRemovals = a.pendingRemovals[:i]
		a.dispatchRemoveFinished(it)
	}
	for i := len(a.pendingAdditions) - 1; i >= 0; i-- {
		it := a.pendingAdditions[i]
		it.ResetVisuals()
		a.pendingAdditions = a.pendingAdditions[:i]
		a.dispatchAddFinished(it)
	}
	for i := len(a.pendingChanges) - 1; i >= 0; i-- {
		rec := a.pendingChanges[i]
		if old := rec.oldItem; old != nil {
			endChangeRecordIfNecessary(a, rec, old)
		}
		if newIt := rec.newItem; newIt != nil {
			endChangeRecordIfNecessary(a, rec, newIt)
		}
	}
	a.pendingChanges = nil

	// Scheduled-but-unstarted batches.
	for i := len(a.moveBatches) - 1; i >= 0; i-- {
		b := a.moveBatches[i]
		for j := len(b.records) - 1; j >= 0; j-- {
			rec := b.records[j]
			rec.item.OffsetX = 0
			rec.item.OffsetY = 0
			b.records = b.records[:j]
			a.dispatchMoveFinished(rec.item)
		}
		a.moveBatches = a.moveBatches[:i]
	}
	for i := len(a.changeBatches) - 1; i >= 0; i-- {
		b := a.changeBatches[i]
		for j := len(b.records) - 1; j >= 0; j-- {
			rec := b.records[j]
			if old := rec.oldItem; old != nil {
				endChangeRecordIfNecessary(a, rec, old)
			}
			if newIt := rec.newItem; newIt != nil {
				endChangeRecordIfNecessary(a, rec, newIt)
			}
			b.records = b.records[:j]
		}
		a.changeBatches = a.changeBatches[:i]
	}
	for i := len(a.addBatches) - 1; i >= 0; i-- {
		b := a.addBatches[i]
		for j := len(b.records) - 1; j >= 0; j-- {
			it := b.records[j]
			it.ResetVisuals()
			b.records = b.records[:j]
			a.dispatchAddFinished(it)
		}
		a.addBatches = a.addBatches[:i]
	}

	// Mid-flight animations: cancellation runs each item's terminal
	// callback, which dispatches finished and clears the bookkeeping.
	a.cancelAll(a.removeAnims)
	a.cancelAll(a.moveAnims)
	a.cancelAll(a.addAnims)
	a.cancelAll(a.changeAnims)

	a.ending = false
	a.idleNotified = true
	if a.OnAllFinished != nil {
		a.OnAllFinished()
	}
}

// cancelAll cancels the live animation of every item in the set. The terminal
// callbacks delete entries while we range; deleting during range is safe.
func (a *Animator) cancelAll(set map[*Item]struct{}) {
	for it := range set {
		a.cancelActive(it)
	}
}

// IsRunning reports whether any animation is pending or in flight. The
// all-finished signal fires at the exact transition from true to false.
func (a *Animator) IsRunning() bool {
	return len(a.pendingRemovals) > 0 ||
		len(a.pendingAdditions) > 0 ||
		len(a.pendingMoves) > 0 ||
		len(a.pendingChanges) > 0 ||
		len(a.removeAnims) > 0 ||
		len(a.addAnims) > 0 ||
		len(a.moveAnims) > 0 ||
		len(a.changeAnims) > 0 ||
		len(a.moveBatches) > 0 ||
		len(a.changeBatches) > 0 ||
		len(a.addBatches) > 0
}

// checkDone fires OnAllFinished the instant nothing is pending or running.
// The idleNotified latch keeps repeated checks in an already-idle state from
// re-firing; any new request re-arms it.
func (a *Animator) checkDone() {
	if a.ending || a.idleNotified || a.IsRunning() {
		return
	}
	a.idleNotified = true
	if a.OnAllFinished != nil {
		a.OnAllFinished()
	}
}
