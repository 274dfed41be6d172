package oplut

// sink receives the shape of the structure from a walker. Planning counts it,
// building materializes it; both see exactly the same calls.
type sink interface {
	// open claims a table for the field and returns its index
	open(f Field) (int, error)

	// place stores the first pattern arriving at a slot
	place(table, idx, pattern int, resolved bool)

	// link turns a slot into a reference to a nested table
	link(table, idx, child int)

	// seal finalizes a table once all of its patterns were placed
	seal(table int)
}

type walker struct {
	patterns []Pattern
	maxWidth uint8
	sink     sink
	depth    int
	maxDepth int
}

func newWalker(patterns []Pattern, cfg Config, s sink) *walker {
	return &walker{
		patterns: patterns,
		maxWidth: cfg.MaxFieldWidth,
		sink:     s,
	}
}

// walk visits the node selected by the glob and all of its descendants in
// pre-order. It returns the index of the node's table.
func (w *walker) walk(g glob) (int, error) {
	f, ok := selectField(w.patterns, w.maxWidth, g)
	if !ok {
		return 0, ambiguityError(w.patterns, g)
	}

	table, err := w.sink.open(f)
	if err != nil {
		return 0, err
	}

	w.depth++
	if w.depth > w.maxDepth {
		w.maxDepth = w.depth
	}
	defer func() { w.depth-- }()

	known := g.mask | f.Known()

	for i := range w.patterns {
		p := &w.patterns[i]

		if !g.admits(p) {
			continue
		}

		idx := f.Index(p.Value)

		switch w.arrivals(g, f, i, idx) {
		case 0:
			// 1st time - the pattern takes the slot
			w.sink.place(table, idx, i, known == p.Mask)

		case 1:
			// 2nd time - the slot needs another level
			child, err := w.walk(g.narrow(f, p))
			if err != nil {
				return 0, err
			}

			w.sink.link(table, idx, child)

			// later arrivals are already covered by the nested table
		}
	}

	w.sink.seal(table)

	return table, nil
}

// arrivals counts the alive patterns preceding pattern i that fall into the
// same slot. Counting stops at 2, the caller only distinguishes 0, 1 and more.
// It scans instead of remembering so that planning needs no memory.
func (w *walker) arrivals(g glob, f Field, i, idx int) int {
	count := 0

	for j := 0; j < i && count < 2; j++ {
		p := &w.patterns[j]

		if g.admits(p) && f.Index(p.Value) == idx {
			count++
		}
	}

	return count
}
