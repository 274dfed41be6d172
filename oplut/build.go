package oplut

import (
	"fmt"

	"go.uber.org/zap"
)

// filler is a sink which materializes the structure in a Storage.
type filler struct {
	st       *Storage
	patterns []Pattern
	def      Action
	used     Plan
}

func (fl *filler) open(f Field) (int, error) {
	var (
		table  = fl.used.Tables
		offset = fl.used.Slots
	)

	if table >= len(fl.st.Tables) || offset+f.Width > len(fl.st.Slots) {
		return 0, fmt.Errorf("%w: need more than %d slots and %d tables",
			ErrStorageSize, len(fl.st.Slots), len(fl.st.Tables))
	}

	fl.used.Tables++
	fl.used.Slots += f.Width

	fl.st.Tables[table] = Table{Field: f, Offset: offset}

	slots := fl.st.Slots[offset : offset+f.Width]
	for i := range slots {
		slots[i] = Slot{} // the storage may be reused
	}

	return table, nil
}

func (fl *filler) slot(table, idx int) *Slot {
	return &fl.st.Slots[fl.st.Tables[table].Offset+idx]
}

func (fl *filler) place(table, idx, pattern int, resolved bool) {
	var (
		s = fl.slot(table, idx)
		p = &fl.patterns[pattern]
	)

	*s = Slot{
		Kind:    SlotTerminal,
		Value:   p.Value & p.Mask,
		Mask:    p.Mask,
		Pattern: pattern,
		Action:  p.Action,
	}

	if !resolved {
		// some mask bits were not consulted on the way here
		s.Kind = SlotGuarded
	}
}

func (fl *filler) link(table, idx, child int) {
	*fl.slot(table, idx) = Slot{
		Kind:  SlotTable,
		Table: child,
	}
}

func (fl *filler) seal(table int) {
	t := fl.st.Tables[table]

	for i := t.Offset; i < t.Offset+t.Field.Width; i++ {
		if s := &fl.st.Slots[i]; s.Kind == SlotDefault {
			s.Action = fl.def
		}
	}
}

// Build fills the storage, which must be sized by PlanFor for the same
// patterns and config, and returns the resulting lookup structure.
//
// The storage is owned by the returned LUT until it is released; the patterns
// are not referenced after Build returns.
func Build(st *Storage, patterns []Pattern, cfg Config) (*LUT, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	if err = checkPatterns(patterns); err != nil {
		return nil, err
	}

	return build(st, patterns, cfg)
}

func build(st *Storage, patterns []Pattern, cfg Config) (*LUT, error) {
	var (
		fl = &filler{st: st, patterns: patterns, def: cfg.Default}
		w  = newWalker(patterns, cfg, fl)
	)

	if _, err := w.walk(glob{}); err != nil {
		Logger().Debug("building failed",
			zap.Int("patterns", len(patterns)),
			zap.Uint8("max_field_width", cfg.MaxFieldWidth),
			zap.Error(err),
		)
		return nil, err
	}

	if fl.used != st.Plan() {
		return nil, fmt.Errorf("%w: used %d of %d slots and %d of %d tables",
			ErrStorageSize, fl.used.Slots, len(st.Slots), fl.used.Tables, len(st.Tables))
	}

	Logger().Debug("built lookup table",
		zap.Int("patterns", len(patterns)),
		zap.Int("slots", fl.used.Slots),
		zap.Int("tables", fl.used.Tables),
		zap.Int("depth", w.maxDepth),
	)

	return &LUT{
		slots:  st.Slots,
		tables: st.Tables,
		def:    cfg.Default,
		depth:  w.maxDepth,
	}, nil
}

// Create plans, allocates and builds a lookup structure for the patterns.
func Create(patterns []Pattern, cfg Config) (*LUT, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	if err = checkPatterns(patterns); err != nil {
		return nil, err
	}

	p, err := plan(patterns, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.MaxSlots != 0 && p.Slots > cfg.MaxSlots {
		return nil, fmt.Errorf("%w: %d slots planned, at most %d allowed",
			ErrAllocation, p.Slots, cfg.MaxSlots)
	}

	lut, err := build(NewStorage(p), patterns, cfg)
	if err != nil {
		return nil, err
	}

	lut.owned = true

	return lut, nil
}
