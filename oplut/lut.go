package oplut

// LUT is a built lookup structure. It is immutable and safe for concurrent
// use until Release is called.
type LUT struct {
	slots  []Slot
	tables []Table
	def    Action
	depth  int
	owned  bool
}

// Resolve invokes the action of the pattern matching val, or the default
// action if there is none, and returns its result.
func (l *LUT) Resolve(ctx any, val Op) int {
	if l == nil {
		return 0
	}

	s, ok := l.Lookup(val)
	if !ok {
		return l.def.Invoke(ctx, val)
	}

	return s.Action.Invoke(ctx, val)
}

// Lookup returns the slot Resolve acts on for val and whether it holds a
// pattern matching val. The slot is a SlotTerminal or SlotGuarded one when ok
// is true.
func (l *LUT) Lookup(val Op) (Slot, bool) {
	if l == nil || len(l.tables) == 0 {
		return Slot{}, false
	}

	t := &l.tables[0]

	for {
		s := &l.slots[t.Offset+t.Field.Index(val)]

		switch s.Kind {
		case SlotTerminal:
			return *s, true

		case SlotGuarded:
			// not in a unique position given the masks - double check
			return *s, val&s.Mask == s.Value

		case SlotTable:
			t = &l.tables[s.Table]

		default:
			return *s, false
		}
	}
}

// Plan returns the storage used by the structure.
func (l *LUT) Plan() Plan {
	if l == nil {
		return Plan{}
	}
	return Plan{Slots: len(l.slots), Tables: len(l.tables)}
}

// Depth returns the number of tables on the longest path.
func (l *LUT) Depth() int {
	if l == nil {
		return 0
	}
	return l.depth
}

// Release detaches the structure from its storage. Storage allocated by
// Create is dropped, storage given to Build is left as is and may be reused.
// A released LUT resolves everything to the default action.
func (l *LUT) Release() {
	if l == nil {
		return
	}

	if l.owned {
		clear(l.slots)
	}

	l.slots = nil
	l.tables = nil
	l.depth = 0
	l.owned = false
}
