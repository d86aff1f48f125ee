// Package braid generates helical fiber centerlines for multi-fiber braids.
package braid

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds surfaced by geometry generation.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrGeometry         = errors.New("geometry error")
)

// MaxPoints bounds the centerline points of one braid (FiberCount * SampleCount).
// Larger requests are rejected instead of exhausting memory in the sweeper.
const MaxPoints = 1 << 24

// Config fully determines the geometry of one braid.
// It is immutable once built by NewConfig.
type Config struct {
	length             float64
	radius             float64
	fiberCount         int
	turns              float64
	samplesPerTurn     int
	crossSectionRadius float64
}

// Params carries the raw values for NewConfig.
type Params struct {
	Length             float64 // Braid length along Z
	Radius             float64 // Helix envelope radius
	FiberCount         int
	Turns              float64 // Full revolutions over Length
	SamplesPerTurn     int
	CrossSectionRadius float64 // Tube radius used by the sweeper
}

// NewConfig validates p and returns an immutable Config.
func NewConfig(p Params) (Config, error) {
	switch {
	case !(p.Length > 0) || math.IsInf(p.Length, 0):
		return Config{}, fmt.Errorf("%w: length must be positive, got %v", ErrInvalidParameter, p.Length)
	case !(p.Radius > 0) || math.IsInf(p.Radius, 0):
		return Config{}, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidParameter, p.Radius)
	case p.FiberCount < 1:
		return Config{}, fmt.Errorf("%w: fiber count must be at least 1, got %d", ErrInvalidParameter, p.FiberCount)
	case !(p.Turns > 0) || math.IsInf(p.Turns, 0):
		return Config{}, fmt.Errorf("%w: turns must be positive, got %v", ErrInvalidParameter, p.Turns)
	case p.SamplesPerTurn < 1:
		return Config{}, fmt.Errorf("%w: samples per turn must be at least 1, got %d", ErrInvalidParameter, p.SamplesPerTurn)
	case !(p.CrossSectionRadius > 0) || math.IsInf(p.CrossSectionRadius, 0):
		return Config{}, fmt.Errorf("%w: cross-section radius must be positive, got %v", ErrInvalidParameter, p.CrossSectionRadius)
	}

	// Checked in float64 so huge products cannot overflow int.
	if pts := math.Round(p.Turns*float64(p.SamplesPerTurn)) * float64(p.FiberCount); pts > MaxPoints {
		return Config{}, fmt.Errorf("%w: %d fibers x %g turns x %d samples per turn exceeds %d points",
			ErrInvalidParameter, p.FiberCount, p.Turns, p.SamplesPerTurn, MaxPoints)
	}

	cfg := Config{
		length:             p.Length,
		radius:             p.Radius,
		fiberCount:         p.FiberCount,
		turns:              p.Turns,
		samplesPerTurn:     p.SamplesPerTurn,
		crossSectionRadius: p.CrossSectionRadius,
	}
	if cfg.SampleCount() < 1 {
		return Config{}, fmt.Errorf("%w: turns*samples per turn rounds to zero samples", ErrInvalidParameter)
	}
	return cfg, nil
}

// MustConfig is like NewConfig but panics on invalid parameters.
func MustConfig(p Params) Config {
	cfg, err := NewConfig(p)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c Config) Length() float64             { return c.length }
func (c Config) Radius() float64             { return c.radius }
func (c Config) FiberCount() int             { return c.fiberCount }
func (c Config) Turns() float64              { return c.turns }
func (c Config) SamplesPerTurn() int         { return c.samplesPerTurn }
func (c Config) CrossSectionRadius() float64 { return c.crossSectionRadius }

// Params returns the values the Config was built from.
func (c Config) Params() Params {
	return Params{
		Length:             c.length,
		Radius:             c.radius,
		FiberCount:         c.fiberCount,
		Turns:              c.turns,
		SamplesPerTurn:     c.samplesPerTurn,
		CrossSectionRadius: c.crossSectionRadius,
	}
}

// SampleCount returns the number of centerline samples per fiber.
// Fractional turns are rounded to the nearest whole sample.
func (c Config) SampleCount() int {
	return int(math.Round(c.turns * float64(c.samplesPerTurn)))
}

// String implements fmt.Stringer.
func (c Config) String() string {
	return fmt.Sprintf("braid{length=%g radius=%g fibers=%d turns=%g samples/turn=%d tube=%g}",
		c.length, c.radius, c.fiberCount, c.turns, c.samplesPerTurn, c.crossSectionRadius)
}
