package oplut

// SlotKind tells what a slot resolves to.
type SlotKind uint8

const (
	SlotDefault  SlotKind = iota // no pattern - default action
	SlotTerminal                 // one pattern, fully known on the path
	SlotGuarded                  // one pattern, re-checked at dispatch
	SlotTable                    // two or more patterns - nested table
)

func (k SlotKind) String() string {
	switch k {
	case SlotDefault:
		return "default"
	case SlotTerminal:
		return "terminal"
	case SlotGuarded:
		return "guarded"
	case SlotTable:
		return "table"
	}
	return "unknown"
}

// Slot is a single entry of a table.
type Slot struct {
	Kind SlotKind

	// Value and Mask are copied from the pattern of a terminal or guarded slot.
	Value Op
	Mask  Op

	// Pattern is the index of the pattern of a terminal or guarded slot.
	Pattern int

	// Table is the index of the nested table of a SlotTable slot.
	Table int

	Action Action
}

// Table is a level of the lookup structure: Field.Width slots starting at
// Offset in the slot pool.
type Table struct {
	Field  Field
	Offset int
}

// Plan is the exact amount of storage needed to build a pattern set.
type Plan struct {
	Slots  int
	Tables int
}

// Storage holds the slots and tables of a built structure.
type Storage struct {
	Slots  []Slot
	Tables []Table
}

// NewStorage allocates zeroed storage sized exactly for the plan.
func NewStorage(p Plan) *Storage {
	return &Storage{
		Slots:  make([]Slot, p.Slots),
		Tables: make([]Table, p.Tables),
	}
}

// Plan returns the size of the storage.
func (st *Storage) Plan() Plan {
	return Plan{Slots: len(st.Slots), Tables: len(st.Tables)}
}
