// Package config handles terrain generator configuration loading and
// validation.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/terraforge/pkg/heightfield"
)

// Configuration errors.
var (
	ErrBadMeshType  = errors.New("mesh type must be one of none, plane, heightfield, trimesh")
	ErrBadDimension = errors.New("terrain dimensions must be positive")
	ErrBadGrid      = errors.New("terrain grid must have at least one row and column")
)

// Mesh output types.
const (
	MeshNone        = "none"
	MeshPlane       = "plane"
	MeshHeightfield = "heightfield"
	MeshTrimesh     = "trimesh"
)

// Config holds all generator settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`
	Seed    int64         `yaml:"seed"`
}

// TerrainConfig describes the sub-terrain grid and generation strategy.
// Strategy priority when several are set: map_path > curriculum >
// selected > randomized.
type TerrainConfig struct {
	Length          float64 `yaml:"length"` // per-cell length in meters
	Width           float64 `yaml:"width"`  // per-cell width in meters
	HorizontalScale float64 `yaml:"horizontal_scale"`
	VerticalScale   float64 `yaml:"vertical_scale"`
	BorderSize      float64 `yaml:"border_size"`

	NumRows int `yaml:"num_rows"`
	NumCols int `yaml:"num_cols"`

	// Proportions is the 8-entry terrain-kind probability vector, in
	// dispatch order: sloped, rough sloped, stairs up, stairs down,
	// discrete obstacles, obstacle cells, stepping stones, gap. The
	// remaining probability mass falls through to pit. Only consulted
	// by the curriculum and randomized strategies.
	Proportions []float64 `yaml:"proportions"`

	Curriculum bool           `yaml:"curriculum"`
	Selected   bool           `yaml:"selected"`
	SelectedAs SelectedConfig `yaml:"selected_terrain"`

	// MapPath points at a greyscale/alpha image used as the heightfield
	// instead of procedural generation.
	MapPath string `yaml:"map_path"`
}

// SelectedConfig names one terrain kind and its generator parameters,
// used for every cell in selected mode. Fields not consumed by the named
// kind are ignored.
type SelectedConfig struct {
	Type string `yaml:"type"`

	Slope            float64 `yaml:"slope"`
	StepWidth        float64 `yaml:"step_width"`
	StepHeight       float64 `yaml:"step_height"`
	MinHeight        float64 `yaml:"min_height"`
	MaxHeight        float64 `yaml:"max_height"`
	Step             float64 `yaml:"step"`
	DownsampledScale float64 `yaml:"downsampled_scale"`
	MinSize          float64 `yaml:"min_size"`
	MaxSize          float64 `yaml:"max_size"`
	NumRects         int     `yaml:"num_rects"`
	StoneSize        float64 `yaml:"stone_size"`
	StoneDistance    float64 `yaml:"stone_distance"`
	GapSize          float64 `yaml:"gap_size"`
	Depth            float64 `yaml:"depth"`
	PlatformSize     float64 `yaml:"platform_size"`
}

// MeshConfig holds mesh conversion settings.
type MeshConfig struct {
	Type           string  `yaml:"type"`
	SlopeThreshold float64 `yaml:"slope_threshold"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values: a 10x20
// curriculum grid of 8m cells converted to a trimesh.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Length:          8.0,
			Width:           8.0,
			HorizontalScale: 0.1,
			VerticalScale:   0.005,
			BorderSize:      25.0,
			NumRows:         10,
			NumCols:         20,
			Proportions:     []float64{0.1, 0.1, 0.35, 0.25, 0.05, 0.05, 0.05, 0.05},
			Curriculum:      true,
		},
		Mesh: MeshConfig{
			Type:           MeshTrimesh,
			SlopeThreshold: 0.75,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Seed: 42,
	}
}

// Validate checks the configuration and fails fast on anything that
// would otherwise produce garbage terrain.
func (c *Config) Validate() error {
	switch c.Mesh.Type {
	case MeshNone, MeshPlane, MeshHeightfield, MeshTrimesh:
	default:
		return fmt.Errorf("%w: got %q", ErrBadMeshType, c.Mesh.Type)
	}

	// none/plane skip terrain generation entirely; nothing else to check.
	if c.Mesh.Type == MeshNone || c.Mesh.Type == MeshPlane {
		return nil
	}

	t := &c.Terrain
	if t.Length <= 0 || t.Width <= 0 || t.HorizontalScale <= 0 || t.VerticalScale <= 0 || t.BorderSize < 0 {
		return fmt.Errorf("%w: length=%g width=%g hscale=%g vscale=%g border=%g",
			ErrBadDimension, t.Length, t.Width, t.HorizontalScale, t.VerticalScale, t.BorderSize)
	}
	if t.NumRows < 1 || t.NumCols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrBadGrid, t.NumRows, t.NumCols)
	}

	// Image and selected modes never draw over the proportion vector, so
	// it may be omitted there. Curriculum outranks selected.
	if t.MapPath == "" && (t.Curriculum || !t.Selected) {
		if _, err := heightfield.NewProportionTable(t.Proportions); err != nil {
			return fmt.Errorf("terrain proportions: %w", err)
		}
	}

	if t.Selected {
		if _, err := heightfield.ParseKind(t.SelectedAs.Type); err != nil {
			return fmt.Errorf("selected terrain: %w", err)
		}
	}

	return nil
}
