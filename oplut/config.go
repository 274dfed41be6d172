package oplut

import "fmt"

const (
	// DefaultMaxFieldWidth is used when Config.MaxFieldWidth is zero.
	DefaultMaxFieldWidth = 4

	// MaxFieldWidthLimit bounds a single table to 65536 slots.
	MaxFieldWidthLimit = 16
)

// Config controls how a pattern set is compiled.
type Config struct {
	// Default is invoked for values matching no pattern. Nil means Nop.
	Default Action

	// MaxFieldWidth is log2 of the largest table permitted at a single level.
	MaxFieldWidth uint8

	// MaxSlots caps the number of slots Create is allowed to allocate
	// (0 - unlimited).
	MaxSlots int
}

func (c Config) normalize() (Config, error) {
	if c.Default == nil {
		c.Default = Nop
	}

	if c.MaxFieldWidth == 0 {
		c.MaxFieldWidth = DefaultMaxFieldWidth
	}

	if c.MaxFieldWidth > MaxFieldWidthLimit {
		return c, fmt.Errorf("%w: max field width %d exceeds %d",
			ErrInvalidConfig, c.MaxFieldWidth, MaxFieldWidthLimit)
	}

	if c.MaxSlots < 0 {
		return c, fmt.Errorf("%w: negative max slots %d", ErrInvalidConfig, c.MaxSlots)
	}

	return c, nil
}

func checkPatterns(patterns []Pattern) error {
	for i := range patterns {
		if patterns[i].Action == nil {
			return fmt.Errorf("%w: pattern %d has no action", ErrInvalidPattern, i)
		}
	}

	return nil
}
