// Package config handles braidgen configuration loading and management.
package config

import (
	"fmt"
	"strings"

	"github.com/Faultbox/braidgen/pkg/braid"
)

// Config holds all generator settings.
type Config struct {
	Braid    BraidConfig    `yaml:"braid"`
	Sweep    SweepConfig    `yaml:"sweep"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BraidConfig holds the helix parameters.
type BraidConfig struct {
	Length         float64 `yaml:"length"`
	Radius         float64 `yaml:"radius"`
	Fibers         int     `yaml:"fibers"`
	Turns          float64 `yaml:"turns"`
	SamplesPerTurn int     `yaml:"samples_per_turn"`
}

// SweepConfig holds tube cross-section settings.
type SweepConfig struct {
	Radius     float64 `yaml:"radius"`
	Resolution int     `yaml:"resolution"`
	Capped     bool    `yaml:"capped"`
	Resample   int     `yaml:"resample"` // spline points per fiber, 0 = raw samples
}

// PipelineConfig selects how fibers are turned into a surface.
type PipelineConfig struct {
	Strategy   string `yaml:"strategy"`   // tube or ribbon
	Interleave string `yaml:"interleave"` // uniform or alternating
	Workers    int    `yaml:"workers"`    // 0 = one per CPU
}

// OutputConfig holds export and preview destinations.
type OutputConfig struct {
	Mesh    string        `yaml:"mesh"`    // .obj or .stl, empty to skip
	Preview string        `yaml:"preview"` // .png or .webp, empty to skip
	Camera  PreviewConfig `yaml:"camera"`
}

// PreviewConfig holds preview image settings.
type PreviewConfig struct {
	Size        int     `yaml:"size"`
	Supersample int     `yaml:"supersample"`
	Yaw         float64 `yaml:"yaw"`   // degrees
	Pitch       float64 `yaml:"pitch"` // degrees
	Color       string  `yaml:"color"`
	Background  string  `yaml:"background"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	LogFile string `yaml:"log_file"`
}

// Default returns the triaxial braid: 3 fibers, 5 turns over length 10.
func Default() *Config {
	return &Config{
		Braid: BraidConfig{
			Length:         10,
			Radius:         1,
			Fibers:         3,
			Turns:          5,
			SamplesPerTurn: 100,
		},
		Sweep: SweepConfig{
			Radius:     0.1,
			Resolution: 8,
			Capped:     false,
			Resample:   0,
		},
		Pipeline: PipelineConfig{
			Strategy:   "tube",
			Interleave: "uniform",
			Workers:    0,
		},
		Output: OutputConfig{
			Mesh:    "braid.obj",
			Preview: "",
			Camera: PreviewConfig{
				Size:        512,
				Supersample: 2,
				Yaw:         45,
				Pitch:       35.264,
				Color:       "#4682b4", // steelblue
				Background:  "#ffffff",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "console",
			LogFile: "",
		},
	}
}

// Presets maps preset names to functions that modify a config in place.
var Presets = map[string]func(*Config){
	// Tube presets sweep along a 100-point spline through each centerline.
	// 3 phase-shifted fibers turning the same way.
	"triaxial": func(c *Config) {
		c.Braid.Fibers = 3
		c.Sweep.Radius = 0.1
		c.Sweep.Resample = 100
		c.Pipeline.Strategy = "tube"
		c.Pipeline.Interleave = "uniform"
	},
	// 6 fibers with alternating direction for an over/under crossing.
	"interwoven": func(c *Config) {
		c.Braid.Fibers = 6
		c.Sweep.Radius = 0.05
		c.Sweep.Resample = 100
		c.Pipeline.Strategy = "tube"
		c.Pipeline.Interleave = "alternating"
	},
	// Fiber centerlines stitched directly into a surface.
	"ribbon": func(c *Config) {
		c.Braid.Fibers = 3
		c.Sweep.Resample = 0
		c.Pipeline.Strategy = "ribbon"
		c.Pipeline.Interleave = "uniform"
	},
}

// ApplyPreset applies a named preset.
func (c *Config) ApplyPreset(name string) error {
	apply, ok := Presets[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	apply(c)
	return nil
}

// BraidParams converts the braid and sweep sections into validated braid geometry.
func (c *Config) BraidParams() (braid.Config, error) {
	return braid.NewConfig(braid.Params{
		Length:             c.Braid.Length,
		Radius:             c.Braid.Radius,
		FiberCount:         c.Braid.Fibers,
		Turns:              c.Braid.Turns,
		SamplesPerTurn:     c.Braid.SamplesPerTurn,
		CrossSectionRadius: c.Sweep.Radius,
	})
}
