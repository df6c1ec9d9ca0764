package flit

// --- ID counter ---

// itemIDCounter is a plain counter (no atomic — flit is single-threaded).
var itemIDCounter uint32

func nextItemID() uint32 {
	itemIDCounter++
	return itemIDCounter
}

// --- Item ---

// Item is the handle for one visual element of the host list view. Flit never
// owns an item's lifecycle; it only holds transient references while the item
// is queued or animating. Identity is pointer identity — two *Item values are
// the same item iff they are the same pointer.
//
// The engine reads and writes OffsetX, OffsetY and Alpha. The host is expected
// to add OffsetX/OffsetY to the item's laid-out position and multiply Alpha
// into its opacity when drawing. An idle item has offset (0, 0) and alpha 1.
type Item struct {
	// Identity
	ID   uint32
	Name string

	// Transient visual state mutated by animations. Offsets are relative to
	// the item's laid-out position; Alpha is in [0, 1].
	OffsetX float64
	OffsetY float64
	Alpha   float64

	// Adapter positions, used only by the optional stagger-delay helpers
	// (RemoveDelay, AddDelay). The ordering protocol does not depend on them.
	Position    int
	OldPosition int

	// Override, when non-nil, takes precedence over the engine's default
	// add/remove animators for this item. See the Override interface.
	Override Override

	// Metadata for the host; flit never touches it.
	UserData any
}

// NewItem creates an item with neutral visual state.
func NewItem(name string) *Item {
	return &Item{
		ID:    nextItemID(),
		Name:  name,
		Alpha: 1,
	}
}

// ResetVisuals snaps the item back to neutral: offset (0, 0), alpha 1.
// Called by the engine before queuing a new animation and after forced
// termination. Safe to call on an idle item.
func (it *Item) ResetVisuals() {
	it.OffsetX = 0
	it.OffsetY = 0
	it.Alpha = 1
}
