package oplut

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFor(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Name     string
		Patterns []Pattern
		MaxWidth uint8
		ExpPlan  Plan
	}{
		{"mul", toPatterns(mulPatterns()), 4, Plan{Slots: 18, Tables: 2}},
		{"mul/default-width", toPatterns(mulPatterns()), 0, Plan{Slots: 18, Tables: 2}},
		{"mul/narrow", toPatterns(mulPatterns()), 1, Plan{Slots: 6, Tables: 3}},
		{"avr", toPatterns(avrPatterns()), 4, Plan{Slots: 26, Tables: 5}},
		{"empty", nil, 4, Plan{Slots: 16, Tables: 1}},
		{"single", []Pattern{{Value: 0x12, Mask: 0xff, Action: Nop}}, 8, Plan{Slots: 256, Tables: 1}},
		{"distinct", []Pattern{
			{Value: 0x10, Mask: 0xff, Action: Nop},
			{Value: 0x11, Mask: 0xff, Action: Nop},
		}, 4, Plan{Slots: 16, Tables: 1}},
	} {
		tcase := tcase

		t.Run(tcase.Name, func(t *testing.T) {
			t.Parallel()

			plan, err := PlanFor(tcase.Patterns, Config{MaxFieldWidth: tcase.MaxWidth})

			require.NoError(t, err)
			assert.Equal(t, tcase.ExpPlan, plan)
		})
	}
}

func TestPlanFor_Ambiguous(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Name         string
		Patterns     []Pattern
		ExpKnownMask Op
		ExpPatterns  []int
	}{
		{
			"zero-masks",
			[]Pattern{{Value: 0x00, Mask: 0x00, Action: Nop}, {Value: 0x01, Mask: 0x00, Action: Nop}},
			0x00,
			[]int{0, 1},
		},
		{
			"subset",
			[]Pattern{{Value: 0x10, Mask: 0xf0, Action: Nop}, {Value: 0x10, Mask: 0xff, Action: Nop}},
			0xf0,
			[]int{0, 1},
		},
		{
			"duplicate",
			[]Pattern{
				{Value: 0x0100, Mask: 0xff00, Action: Nop},
				{Value: 0x0234, Mask: 0xffff, Action: Nop},
				{Value: 0x0234, Mask: 0xffff, Action: Nop},
			},
			0xffff,
			[]int{1, 2},
		},
		{
			"catch-all",
			append(toPatterns(mulPatterns()), Pattern{Value: 0, Mask: 0, Action: Nop}),
			0x00,
			[]int{0, 1, 2, 3, 4},
		},
	} {
		tcase := tcase

		t.Run(tcase.Name, func(t *testing.T) {
			t.Parallel()

			plan, err := PlanFor(tcase.Patterns, Config{MaxFieldWidth: 4})

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrAmbiguous))
			assert.Equal(t, Plan{}, plan)

			var amb *AmbiguityError

			require.True(t, errors.As(err, &amb))
			assert.Equal(t, tcase.ExpKnownMask, amb.KnownMask)
			assert.Equal(t, tcase.ExpPatterns, amb.Patterns)
		})
	}
}

func TestPlanFor_Invalid(t *testing.T) {
	t.Parallel()

	_, err := PlanFor(toPatterns(mulPatterns()), Config{MaxFieldWidth: MaxFieldWidthLimit + 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = PlanFor(toPatterns(mulPatterns()), Config{MaxSlots: -1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = PlanFor([]Pattern{{Value: 1, Mask: 1}}, Config{})
	assert.ErrorIs(t, err, ErrInvalidPattern)
}
