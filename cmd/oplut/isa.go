package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aglyzov/go-oplut/oplut"
	"github.com/spf13/viper"
)

// patternSpec is a single instruction as it appears in a config file.
// Value and Mask accept any base strconv understands (0x0100, 0b1111, 256).
type patternSpec struct {
	Name  string `mapstructure:"name"`
	Value string `mapstructure:"value"`
	Mask  string `mapstructure:"mask"`
}

// isa is a named instruction set ready to be compiled.
type isa struct {
	names    []string
	patterns []oplut.Pattern
	cfg      oplut.Config
}

// avrSpecs is the excerpt of the AVR instruction set used without a config.
var avrSpecs = []patternSpec{
	{"nop", "0x0000", "0xffff"},
	{"movw", "0x0100", "0xff00"},
	{"muls", "0x0200", "0xff00"},
	{"mulsu", "0x0300", "0xff88"},
	{"fmul", "0x0308", "0xff88"},
	{"fmuls", "0x0380", "0xff88"},
	{"fmulsu", "0x0388", "0xff88"},
	{"cpc", "0x0400", "0xfc00"},
}

// printOp writes the mnemonic and the decoded value to the io.Writer passed
// as the dispatch context.
func printOp(data, ctx any, val oplut.Op) int {
	n, _ := fmt.Fprintf(ctx.(io.Writer), "%s %#x\n", data, uint32(val))
	return n
}

func parseOp(s string) (oplut.Op, error) {
	v, err := strconv.ParseUint(s, 0, oplut.OpBits)
	if err != nil {
		return 0, err
	}
	return oplut.Op(v), nil
}

func loadISA(v *viper.Viper) (*isa, error) {
	specs := avrSpecs

	if v.IsSet("patterns") {
		specs = nil
		if err := v.UnmarshalKey("patterns", &specs); err != nil {
			return nil, fmt.Errorf("patterns: %w", err)
		}
	}

	res := &isa{
		names:    make([]string, len(specs)),
		patterns: make([]oplut.Pattern, len(specs)),
		cfg: oplut.Config{
			Default:       oplut.Bind(printOp, "unknown"),
			MaxFieldWidth: uint8(v.GetUint("max_field_width")),
			MaxSlots:      v.GetInt("max_slots"),
		},
	}

	for i, ps := range specs {
		val, err := parseOp(ps.Value)
		if err != nil {
			return nil, fmt.Errorf("pattern %d (%s): value: %w", i, ps.Name, err)
		}

		mask, err := parseOp(ps.Mask)
		if err != nil {
			return nil, fmt.Errorf("pattern %d (%s): mask: %w", i, ps.Name, err)
		}

		res.names[i] = ps.Name
		res.patterns[i] = oplut.Pattern{
			Value:  val,
			Mask:   mask,
			Action: oplut.Bind(printOp, ps.Name),
		}
	}

	return res, nil
}

// explain replaces the pattern indices of an ambiguity error by names.
func (s *isa) explain(err error) []string {
	var ambErr *oplut.AmbiguityError

	if !errors.As(err, &ambErr) {
		return nil
	}

	names := make([]string, len(ambErr.Patterns))
	for i, idx := range ambErr.Patterns {
		names[i] = s.names[idx]
	}

	return names
}
