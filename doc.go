// Package flit coordinates transition animations for items in a dynamically
// mutating ordered list view.
//
// The host's diffing decides which items were added, removed, moved, or had
// their content changed; flit takes those already-classified per-item
// operations and batches, sequences and finishes them: removals animate
// first, then moves and changes together, then additions, so new items never
// visually precede the space-clearing and content-settling animations. Any
// item's animation can be cancelled or force-completed at any time without
// disturbing other items, and a single all-finished signal fires exactly once
// each time every animation has settled.
//
// # Quick start
//
// Create a driver, an animator, and feed it operations; pump the driver from
// your frame loop:
//
//	driver := &flit.TweenDriver{}
//	anim := flit.NewAnimator(driver)
//	anim.OnAllFinished = func() { list.Relayout() }
//
//	anim.RequestRemove(gone)
//	anim.RequestMove(kept, 0, 120, 0, 80)
//	anim.RequestAdd(fresh)
//	anim.RunPendingAnimations()
//
//	// each frame:
//	driver.Update(dt)
//
// Items are plain handles: flit writes their OffsetX/OffsetY and Alpha, and
// the host applies those on top of laid-out positions when drawing.
//
// # Custom visuals
//
// Swap the per-category defaults by setting [Animator.RemoveEffect] and
// [Animator.AddEffect], or give a single item its own add/remove animation by
// setting [Item.Override]; an override wins over the category default while
// the item keeps participating in the shared ordering and bookkeeping.
//
// Hosts with their own animation clock can replace [TweenDriver] with any
// [Driver] implementation.
package flit
