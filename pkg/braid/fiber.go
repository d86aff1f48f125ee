package braid

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Direction is the rotation sense of a fiber around the braid axis.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Interleave selects how fiber directions are assigned.
type Interleave int

const (
	// Uniform keeps every fiber Forward.
	Uniform Interleave = iota
	// Alternating makes odd-indexed fibers Reverse, giving an over/under crossing pattern.
	Alternating
)

func (m Interleave) String() string {
	switch m {
	case Uniform:
		return "uniform"
	case Alternating:
		return "alternating"
	default:
		return fmt.Sprintf("Interleave(%d)", int(m))
	}
}

// ParseInterleave converts a name to an Interleave mode.
func ParseInterleave(s string) (Interleave, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "uniform":
		return Uniform, nil
	case "alternating", "interwoven":
		return Alternating, nil
	}
	return 0, fmt.Errorf("%w: unknown interleave mode %q", ErrInvalidParameter, s)
}

// FiberSpec describes one fiber of the braid.
type FiberSpec struct {
	Index      int
	PhaseShift float64 // Index * 2π / FiberCount
	Direction  Direction
}

// Fibers returns the spec of every fiber in index order.
func Fibers(cfg Config, mode Interleave) []FiberSpec {
	specs := make([]FiberSpec, cfg.fiberCount)
	for i := range specs {
		dir := Forward
		if mode == Alternating && i%2 == 1 {
			dir = Reverse
		}
		specs[i] = FiberSpec{
			Index:      i,
			PhaseShift: float64(i) * 2 * math.Pi / float64(cfg.fiberCount),
			Direction:  dir,
		}
	}
	return specs
}

// Path is an ordered fiber centerline.
type Path []r3.Vec

// GeneratePath samples the centerline of one fiber.
// Angles run evenly over [0, 2π·turns] and z over [0, length], both ends inclusive,
// so every fiber of a Config shares the same sample count and z sequence.
func GeneratePath(cfg Config, spec FiberSpec) Path {
	n := cfg.SampleCount()
	path := make(Path, n)

	sweep := 2 * math.Pi * cfg.turns
	for k := range path {
		t := 0.0
		if n > 1 {
			t = float64(k) / float64(n-1)
		}
		theta := sweep * t
		if spec.Direction == Reverse {
			theta = -theta
		}
		angle := theta + spec.PhaseShift
		path[k] = r3.Vec{
			X: cfg.radius * math.Cos(angle),
			Y: cfg.radius * math.Sin(angle),
			Z: cfg.length * t,
		}
	}
	return path
}

// GeneratePaths samples every fiber of the braid in index order.
func GeneratePaths(cfg Config, mode Interleave) []Path {
	specs := Fibers(cfg, mode)
	paths := make([]Path, len(specs))
	for i, spec := range specs {
		paths[i] = GeneratePath(cfg, spec)
	}
	return paths
}

// Length returns the arc length of the polyline.
func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += r3.Norm(r3.Sub(p[i], p[i-1]))
	}
	return total
}
