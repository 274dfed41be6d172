package oplut

import (
	"go.uber.org/zap"
)

// counter is a sink which only sums up the storage.
type counter struct {
	plan Plan
}

func (c *counter) open(f Field) (int, error) {
	table := c.plan.Tables

	c.plan.Tables++
	c.plan.Slots += f.Width

	return table, nil
}

func (c *counter) place(int, int, int, bool) {}
func (c *counter) link(int, int, int)        {}
func (c *counter) seal(int)                  {}

// PlanFor computes the storage needed to build the patterns with the given
// config without allocating anything. It fails if the patterns are ambiguous.
func PlanFor(patterns []Pattern, cfg Config) (Plan, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return Plan{}, err
	}

	if err = checkPatterns(patterns); err != nil {
		return Plan{}, err
	}

	return plan(patterns, cfg)
}

func plan(patterns []Pattern, cfg Config) (Plan, error) {
	var c counter

	if _, err := newWalker(patterns, cfg, &c).walk(glob{}); err != nil {
		Logger().Debug("planning failed",
			zap.Int("patterns", len(patterns)),
			zap.Uint8("max_field_width", cfg.MaxFieldWidth),
			zap.Error(err),
		)
		return Plan{}, err
	}

	return c.plan, nil
}
