package flit

import (
	"fmt"
	"os"
)

// globalDebug enables the development-only invariant checks. Off by default;
// production builds tolerate redundant bookkeeping silently.
var globalDebug bool

// SetDebug toggles debug mode for the whole package. In debug mode,
// bookkeeping violations panic with a descriptive message instead of being
// silently repaired.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugCheckEvicted verifies that an item whose driven animation was just
// cancelled is no longer in any in-flight set: the cancel's terminal callback
// is responsible for the eviction, so finding the item here means that
// callback never ran or skipped its cleanup.
func debugCheckEvicted(a *Animator, it *Item) {
	if !globalDebug {
		return
	}
	if _, ok := a.removeAnims[it]; ok {
		panic(fmt.Sprintf("flit debug: item %q still in remove in-flight set after cancel", it.Name))
	}
	if _, ok := a.addAnims[it]; ok {
		panic(fmt.Sprintf("flit debug: item %q still in add in-flight set after cancel", it.Name))
	}
	if _, ok := a.moveAnims[it]; ok {
		panic(fmt.Sprintf("flit debug: item %q still in move in-flight set after cancel", it.Name))
	}
	if _, ok := a.changeAnims[it]; ok {
		panic(fmt.Sprintf("flit debug: item %q still in change in-flight set after cancel", it.Name))
	}
}

// debugLogState dumps queue and registry sizes to stderr. Handy when chasing
// items stuck in limbo.
func (a *Animator) debugLogState() {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[flit] pending: rm=%d add=%d mv=%d ch=%d | in-flight: rm=%d add=%d mv=%d ch=%d | batches: mv=%d ch=%d add=%d\n",
		len(a.pendingRemovals), len(a.pendingAdditions), len(a.pendingMoves), len(a.pendingChanges),
		len(a.removeAnims), len(a.addAnims), len(a.moveAnims), len(a.changeAnims),
		len(a.moveBatches), len(a.changeBatches), len(a.addBatches))
}
