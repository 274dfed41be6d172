package oplut

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrAmbiguous is returned when some patterns cannot be told apart.
	ErrAmbiguous = errors.New("oplut: ambiguous patterns")

	// ErrAllocation is returned by Create when the planned storage exceeds
	// Config.MaxSlots.
	ErrAllocation = errors.New("oplut: allocation failed")

	// ErrStorageSize is returned by Build when the storage does not match the
	// plan of the pattern set.
	ErrStorageSize = errors.New("oplut: storage does not match the plan")

	ErrInvalidConfig  = errors.New("oplut: invalid config")
	ErrInvalidPattern = errors.New("oplut: invalid pattern")
)

// AmbiguityError describes the node at which the remaining patterns share no
// discriminating bit.
type AmbiguityError struct {
	// known bits on the path to the node
	KnownMask  Op
	KnownValue Op

	// indices of the patterns alive at the node
	Patterns []int
}

func (e *AmbiguityError) Error() string {
	var b strings.Builder

	b.WriteString(ErrAmbiguous.Error())
	fmt.Fprintf(&b, " at known mask %#x value %#x", uint32(e.KnownMask), uint32(e.KnownValue))

	if len(e.Patterns) > 0 {
		b.WriteString(": patterns ")

		for i, idx := range e.Patterns {
			if i != 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(idx))
		}
	}

	return b.String()
}

func (e *AmbiguityError) Unwrap() error {
	return ErrAmbiguous
}

func ambiguityError(patterns []Pattern, g glob) *AmbiguityError {
	err := &AmbiguityError{
		KnownMask:  g.mask,
		KnownValue: g.value,
	}

	for i := range patterns {
		if g.admits(&patterns[i]) {
			err.Patterns = append(err.Patterns, i)
		}
	}

	return err
}
