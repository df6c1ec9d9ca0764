package flit

// Override is the optional per-item animation capability. An item whose
// Override field is non-nil customizes its own add and remove visuals; the
// engine calls the override instead of the configured default Effect, while
// the item still participates in the shared ordering and bookkeeping.
//
// Animate methods receive the engine's Notifier and must drive it to exactly
// one terminal call (Finish or Cancel) when the animation truly ends. An
// override that animates through the Driver should pass n.Hooks() so the
// driver's callbacks feed the notifier, and return the driver handle so the
// engine can cancel it. Returning nil is allowed; the engine then cancels
// through the notifier directly.
type Override interface {
	PreAnimateRemove(it *Item)
	AnimateRemove(d Driver, it *Item, n *Notifier) Handle
	PreAnimateAdd(it *Item)
	AnimateAdd(d Driver, it *Item, n *Notifier) Handle
}

// Notifier is the exactly-once completion channel between an Override and the
// engine. Start is idempotent; Finish and Cancel are terminal and all calls
// after the first terminal one are no-ops, so a sloppy override cannot
// produce duplicate finished events or corrupt the engine's bookkeeping.
type Notifier struct {
	hooks   Hooks
	started bool
	ended   bool
}

func newNotifier(hooks Hooks) *Notifier {
	return &Notifier{hooks: hooks}
}

// Start reports that the animation began. Safe to call more than once or not
// at all; only the first call before a terminal call dispatches.
func (n *Notifier) Start() {
	if n.started || n.ended {
		return
	}
	n.started = true
	if n.hooks.OnStart != nil {
		n.hooks.OnStart()
	}
}

// Finish reports natural completion. Terminal.
func (n *Notifier) Finish() {
	n.terminate(OutcomeFinished)
}

// Cancel reports forced termination. Terminal. The engine calls this itself
// when the item's animation is ended early and the override gave it no
// driver handle to cancel.
func (n *Notifier) Cancel() {
	n.terminate(OutcomeCancelled)
}

// Hooks adapts the notifier to the Driver callback shape, for overrides that
// animate through a Driver.
func (n *Notifier) Hooks() Hooks {
	return Hooks{
		OnStart: n.Start,
		OnEnd:   n.terminate,
	}
}

func (n *Notifier) terminate(o Outcome) {
	if n.ended {
		return
	}
	n.ended = true
	if n.hooks.OnEnd != nil {
		n.hooks.OnEnd(o)
	}
}
