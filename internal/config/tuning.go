package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/bulksolvent/internal/fsutil"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigPath is the path to the canonical mask tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/mask.defaults.json"

// maxFileSize bounds tuning files.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// MaskTuning holds the tunable parameters of a bulk-solvent mask computation.
// Every field is optional; the Get* accessors supply defaults for nil fields.
type MaskTuning struct {
	SolventRadius          *float64 `json:"solvent_radius,omitempty" toml:"solvent_radius,omitempty"`
	ShrinkTruncationRadius *float64 `json:"shrink_truncation_radius,omitempty" toml:"shrink_truncation_radius,omitempty"`

	// Gridding: step = resolution / grid_step_factor, clamped to [min_grid_step, max_grid_step]
	GridStepFactor *float64 `json:"grid_step_factor,omitempty" toml:"grid_step_factor,omitempty"`
	MinGridStep    *float64 `json:"min_grid_step,omitempty" toml:"min_grid_step,omitempty"`
	MaxGridStep    *float64 `json:"max_grid_step,omitempty" toml:"max_grid_step,omitempty"`
	Resolution     *float64 `json:"resolution,omitempty" toml:"resolution,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }

// EmptyMaskTuning returns a MaskTuning with all fields set to nil.
func EmptyMaskTuning() *MaskTuning {
	return &MaskTuning{}
}

// DefaultMaskTuning returns a MaskTuning with every field set to its default.
func DefaultMaskTuning() *MaskTuning {
	e := EmptyMaskTuning()
	return &MaskTuning{
		SolventRadius:          ptrFloat64(e.GetSolventRadius()),
		ShrinkTruncationRadius: ptrFloat64(e.GetShrinkTruncationRadius()),
		GridStepFactor:         ptrFloat64(e.GetGridStepFactor()),
		MinGridStep:            ptrFloat64(e.GetMinGridStep()),
		MaxGridStep:            ptrFloat64(e.GetMaxGridStep()),
	}
}

// LoadMaskTuning loads a MaskTuning from a .json or .toml file.
// Fields omitted from the file keep their defaults, so partial files are safe.
func LoadMaskTuning(fsys fsutil.FileSystem, path string) (*MaskTuning, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".json" && ext != ".toml" {
		return nil, fmt.Errorf("config file must have .json or .toml extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyMaskTuning()
	switch ext {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", ext, err)
	}

	if err := cfg.Validate(); err != nil {
		opsf("rejected %s: %v", cleanPath, err)
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	diagf("loaded mask tuning from %s", cleanPath)
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches the current directory and its parents up to the repository
// root. Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *MaskTuning {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	fsys := fsutil.OSFileSystem{}
	for _, path := range candidates {
		if cfg, err := LoadMaskTuning(fsys, path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that set values are in range.
func (c *MaskTuning) Validate() error {
	if c.SolventRadius != nil && *c.SolventRadius < 0 {
		return fmt.Errorf("solvent_radius must be non-negative, got %g", *c.SolventRadius)
	}
	if c.ShrinkTruncationRadius != nil && *c.ShrinkTruncationRadius < 0 {
		return fmt.Errorf("shrink_truncation_radius must be non-negative, got %g", *c.ShrinkTruncationRadius)
	}
	if c.GridStepFactor != nil && *c.GridStepFactor <= 0 {
		return fmt.Errorf("grid_step_factor must be positive, got %g", *c.GridStepFactor)
	}
	if c.Resolution != nil && *c.Resolution <= 0 {
		return fmt.Errorf("resolution must be positive, got %g", *c.Resolution)
	}
	if lo, hi := c.GetMinGridStep(), c.GetMaxGridStep(); lo <= 0 || hi < lo {
		return fmt.Errorf("grid step clamp [%g, %g] is empty or non-positive", lo, hi)
	}
	return nil
}

// GetSolventRadius returns the solvent_radius value or the default.
func (c *MaskTuning) GetSolventRadius() float64 {
	if c.SolventRadius == nil {
		return 1.11 // default
	}
	return *c.SolventRadius
}

// GetShrinkTruncationRadius returns the shrink_truncation_radius value or the default.
func (c *MaskTuning) GetShrinkTruncationRadius() float64 {
	if c.ShrinkTruncationRadius == nil {
		return 0.9 // default
	}
	return *c.ShrinkTruncationRadius
}

// GetGridStepFactor returns the grid_step_factor value or the default.
func (c *MaskTuning) GetGridStepFactor() float64 {
	if c.GridStepFactor == nil {
		return 4.0 // default
	}
	return *c.GridStepFactor
}

// GetMinGridStep returns the min_grid_step value or the default.
func (c *MaskTuning) GetMinGridStep() float64 {
	if c.MinGridStep == nil {
		return 0.15 // default
	}
	return *c.MinGridStep
}

// GetMaxGridStep returns the max_grid_step value or the default.
func (c *MaskTuning) GetMaxGridStep() float64 {
	if c.MaxGridStep == nil {
		return 0.8 // default
	}
	return *c.MaxGridStep
}

// GetResolution returns the resolution and whether it was set. There is no default.
func (c *MaskTuning) GetResolution() (float64, bool) {
	if c.Resolution == nil {
		return 0, false
	}
	return *c.Resolution, true
}
