package masks

import (
	"fmt"

	"github.com/banshee-data/bulksolvent/internal/config"
)

// MaskConfig provides a configuration builder for mask computations.
// It allows setting parameters with defaults and validation before creating
// an AtomMask.
type MaskConfig struct {
	SolventRadius          float64 // Probe radius in Å (default: 1.11)
	ShrinkTruncationRadius float64 // Contact-pass radius in Å (default: 0.9)

	// Gridding
	GridStepFactor float64 // Resolution divided by this gives the step (default: 4)
	MinGridStep    float64 // Lower clamp on the step in Å (default: 0.15)
	MaxGridStep    float64 // Upper clamp on the step in Å (default: 0.8)
}

// DefaultMaskConfig returns a MaskConfig loaded from the canonical tuning
// defaults file (config/mask.defaults.json).
// Panics if the file cannot be found, intended for tests and binaries
// that have already validated config availability.
func DefaultMaskConfig() *MaskConfig {
	return MaskConfigFromTuning(config.MustLoadDefaultConfig())
}

// MaskConfigFromTuning builds a MaskConfig from a loaded MaskTuning.
func MaskConfigFromTuning(cfg *config.MaskTuning) *MaskConfig {
	return &MaskConfig{
		SolventRadius:          cfg.GetSolventRadius(),
		ShrinkTruncationRadius: cfg.GetShrinkTruncationRadius(),
		GridStepFactor:         cfg.GetGridStepFactor(),
		MinGridStep:            cfg.GetMinGridStep(),
		MaxGridStep:            cfg.GetMaxGridStep(),
	}
}

// Validate checks if the configuration is valid.
func (c *MaskConfig) Validate() error {
	if c.SolventRadius < 0 {
		return fmt.Errorf("SolventRadius must be non-negative, got %g", c.SolventRadius)
	}
	if c.ShrinkTruncationRadius < 0 {
		return fmt.Errorf("ShrinkTruncationRadius must be non-negative, got %g", c.ShrinkTruncationRadius)
	}
	if c.GridStepFactor <= 0 {
		return fmt.Errorf("GridStepFactor must be positive, got %g", c.GridStepFactor)
	}
	if c.MinGridStep <= 0 || c.MaxGridStep < c.MinGridStep {
		return fmt.Errorf("grid step clamp [%g, %g] is empty or non-positive", c.MinGridStep, c.MaxGridStep)
	}
	return nil
}

// GridStep returns the real-space step for a given resolution.
func (c *MaskConfig) GridStep(resolution float64) float64 {
	return StepFromResolution(resolution, c.GridStepFactor, c.MinGridStep, c.MaxGridStep)
}

// WithSolventRadius sets the probe radius.
func (c *MaskConfig) WithSolventRadius(r float64) *MaskConfig {
	c.SolventRadius = r
	return c
}

// WithShrinkTruncationRadius sets the contact-pass radius.
func (c *MaskConfig) WithShrinkTruncationRadius(r float64) *MaskConfig {
	c.ShrinkTruncationRadius = r
	return c
}

// WithGridStepFactor sets the resolution sampling factor.
func (c *MaskConfig) WithGridStepFactor(f float64) *MaskConfig {
	c.GridStepFactor = f
	return c
}

// WithGridStepClamp sets the bounds on the real-space step.
func (c *MaskConfig) WithGridStepClamp(lo, hi float64) *MaskConfig {
	c.MinGridStep, c.MaxGridStep = lo, hi
	return c
}
