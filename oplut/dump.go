package oplut

import (
	"fmt"
	"io"
	"strings"

	"github.com/hideo55/go-popcount"
)

// Dump writes the tables reachable from the root as an indented tree.
func (l *LUT) Dump(w io.Writer) error {
	if l == nil || len(l.tables) == 0 {
		_, err := io.WriteString(w, "<oplut|empty>\n")
		return err
	}

	return l.dumpTable(w, 0, "")
}

func (l *LUT) dumpTable(w io.Writer, table int, indent string) error {
	t := &l.tables[table]

	_, err := fmt.Fprintf(w, "%s<oplut|tbl:%d|sh:%d|%dbit|used:%d/%d>\n",
		indent, table, t.Field.Shift, t.Field.Bits(), l.used(t), t.Field.Width)
	if err != nil {
		return err
	}

	indent += "  "

	for i, s := range l.slots[t.Offset : t.Offset+t.Field.Width] {
		switch s.Kind {
		case SlotDefault:
			continue

		case SlotTable:
			if _, err = fmt.Fprintf(w, "%s%#x:\n", indent, i); err != nil {
				return err
			}
			if err = l.dumpTable(w, s.Table, indent+"  "); err != nil {
				return err
			}

		default:
			_, err = fmt.Fprintf(w, "%s%#x: %s #%d %#x/%#x\n",
				indent, i, s.Kind, s.Pattern, uint32(s.Value), uint32(s.Mask))
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// used counts the slots of a table taken by patterns or nested tables.
func (l *LUT) used(t *Table) int {
	var (
		bitmap uint64
		total  uint64
	)

	for i, s := range l.slots[t.Offset : t.Offset+t.Field.Width] {
		if s.Kind != SlotDefault {
			bitmap |= 1 << (i & 63)
		}
		if i&63 == 63 {
			total += popcount.Count(bitmap)
			bitmap = 0
		}
	}

	return int(total + popcount.Count(bitmap))
}

func (l *LUT) String() string {
	var b strings.Builder

	_ = l.Dump(&b)

	return b.String()
}
