package oplut

import (
	"math/bits"

	"github.com/hideo55/go-popcount"
)

// Field is the run of bits consulted by a single table.
type Field struct {
	Width int // number of slots, a power of two
	Mask  Op  // Width-1, relative to Shift
	Shift uint8
}

// Index returns the slot index of val.
func (f Field) Index(val Op) int {
	return int(val >> f.Shift & f.Mask)
}

// Bits returns the number of bits consulted by the field.
func (f Field) Bits() int {
	return int(popcount.Count(uint64(f.Mask)))
}

// Known returns the consulted bits in place.
func (f Field) Known() Op {
	return f.Mask << f.Shift
}

// glob holds the bits known on the path to a node.
type glob struct {
	mask  Op
	value Op
}

// admits reports whether the pattern is still alive under the glob.
func (g glob) admits(p *Pattern) bool {
	return p.Value&g.mask == g.value
}

// narrow returns the glob of the child table reached by p through field f.
func (g glob) narrow(f Field, p *Pattern) glob {
	mask := g.mask | f.Known()

	return glob{
		mask:  mask,
		value: p.Value & mask,
	}
}

// selectField picks the lowest run of unknown bits every alive pattern cares
// about, at most maxWidth bits long. It returns false if there is none.
func selectField(patterns []Pattern, maxWidth uint8, g glob) (Field, bool) {
	candidate := ^Op(0)

	for i := range patterns {
		if !g.admits(&patterns[i]) {
			continue
		}
		candidate &= patterns[i].Mask &^ g.mask
	}

	if candidate == 0 {
		return Field{}, false // indistinguishable
	}

	var (
		shift = bits.TrailingZeros32(uint32(candidate))
		run   = uint64(candidate) >> shift
		width = uint64(2)
	)

	for n := uint8(1); run&width != 0 && n < maxWidth; n++ {
		width <<= 1
	}

	return Field{
		Width: int(width),
		Mask:  Op(run & (width - 1)),
		Shift: uint8(shift),
	}, true
}
