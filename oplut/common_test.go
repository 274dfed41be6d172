package oplut

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

const defaultResult = -1

var defaultAction = Func(func(any, Op) int { return defaultResult })

// indexAction returns the index of the pattern it is bound to.
func indexAction(idx int) Action {
	return Bind(func(data, _ any, _ Op) int { return data.(int) }, idx)
}

// withIndexActions binds every pattern to indexAction.
func withIndexActions(patterns []Pattern) []Pattern {
	for i := range patterns {
		patterns[i].Action = indexAction(i)
	}
	return patterns
}

// mnemonicAction stores its name into a *string context.
func mnemonicAction(name string) Action {
	return Bind(func(data, ctx any, val Op) int {
		if out, ok := ctx.(*string); ok {
			*out = data.(string)
		}
		return int(val)
	}, name)
}

type namedPattern struct {
	Name  string
	Value Op
	Mask  Op
}

func toPatterns(named []namedPattern) []Pattern {
	patterns := make([]Pattern, len(named))

	for i, np := range named {
		patterns[i] = Pattern{Value: np.Value, Mask: np.Mask, Action: mnemonicAction(np.Name)}
	}

	return patterns
}

// mulPatterns is a small excerpt of the AVR instruction set.
func mulPatterns() []namedPattern {
	return []namedPattern{
		{"movw", 0x0100, 0xff00},
		{"muls", 0x0200, 0xff00},
		{"mulsu", 0x0300, 0xff88},
		{"fmul", 0x0308, 0xff88},
	}
}

// avrPatterns is a larger excerpt of the AVR instruction set.
func avrPatterns() []namedPattern {
	return []namedPattern{
		{"nop", 0x0000, 0xffff},
		{"movw", 0x0100, 0xff00},
		{"muls", 0x0200, 0xff00},
		{"mulsu", 0x0300, 0xff88},
		{"fmul", 0x0308, 0xff88},
		{"fmuls", 0x0380, 0xff88},
		{"fmulsu", 0x0388, 0xff88},
		{"cpc", 0x0400, 0xfc00},
	}
}

// linearMatch is the reference matcher: the index of the first pattern
// matching val or defaultResult.
func linearMatch(patterns []Pattern, val Op) int {
	for i := range patterns {
		if patterns[i].Matches(val) {
			return i
		}
	}
	return defaultResult
}

// randomPatterns generates patterns with fully random values and masks.
func randomPatterns(fake *gofakeit.Faker, num int) []Pattern {
	patterns := make([]Pattern, num)

	for i := range patterns {
		patterns[i].Value = Op(fake.Uint16())
		patterns[i].Mask = Op(fake.Uint16())
	}

	return withIndexActions(patterns)
}

// opcodePatterns generates patterns shaped like instruction encodings: a
// fixed opcode in the high bits and a run of operand bits at the bottom.
func opcodePatterns(fake *gofakeit.Faker, num int) []Pattern {
	patterns := make([]Pattern, num)

	for i := range patterns {
		operand := fake.Number(0, 8)

		patterns[i].Value = Op(fake.Uint32())
		patterns[i].Mask = ^Op(0) << operand
	}

	return withIndexActions(patterns)
}

func opToBitString(val Op) string {
	var b strings.Builder

	for i := 12; i >= 0; i -= 4 {
		b.WriteString(fmt.Sprintf("%04b", val>>i&0xf))
		if i != 0 {
			b.WriteByte('_')
		}
	}

	return b.String()
}
