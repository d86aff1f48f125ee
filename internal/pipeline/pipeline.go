// Package pipeline turns braid parameters into one combined mesh.
//
// Stages run strictly in order: every fiber path is generated first, then each
// path is swept into a tube (concurrently, one task per fiber) or all paths are
// stitched into a ribbon at once, and finally the per-fiber meshes are merged
// in fiber order. A failure in any fiber fails the whole run.
package pipeline

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/braidgen/internal/logger"
	"github.com/Faultbox/braidgen/pkg/braid"
	"github.com/Faultbox/braidgen/pkg/mesh"
	"github.com/Faultbox/braidgen/pkg/sweep"
)

// Strategy selects how fiber paths become a surface.
type Strategy int

const (
	// TubeSweep sweeps a circular cross-section along every fiber.
	TubeSweep Strategy = iota
	// DirectTriangulation stitches neighbouring centerlines into a ribbon.
	DirectTriangulation
)

func (s Strategy) String() string {
	switch s {
	case TubeSweep:
		return "tube"
	case DirectTriangulation:
		return "ribbon"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tube", "sweep":
		return TubeSweep, nil
	case "ribbon", "direct", "triangulate":
		return DirectTriangulation, nil
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", braid.ErrInvalidParameter, s)
}

// Options controls one pipeline run.
type Options struct {
	Strategy   Strategy
	Interleave braid.Interleave
	Resolution int  // ring resolution for TubeSweep
	Capped     bool // close tube ends
	Resample   int  // spline points per fiber before sweeping, 0 = raw samples
	Workers    int  // concurrent sweeps, 0 = GOMAXPROCS
}

// DefaultOptions returns tube sweeping with uniform fibers.
func DefaultOptions() Options {
	return Options{
		Strategy:   TubeSweep,
		Interleave: braid.Uniform,
		Resolution: sweep.DefaultResolution,
	}
}

// FiberError reports which fiber a geometry failure came from.
type FiberError struct {
	Fiber int
	Err   error
}

func (e *FiberError) Error() string {
	return fmt.Sprintf("fiber %d: %v", e.Fiber, e.Err)
}

func (e *FiberError) Unwrap() error {
	return e.Err
}

// Stats summarizes a run.
type Stats struct {
	Fibers    int
	Samples   int // per fiber
	Vertices  int
	Faces     int
	Triangles int
	Elapsed   time.Duration
}

// Result is the output of Build.
type Result struct {
	Mesh  mesh.Mesh
	Paths []braid.Path
	Stats Stats
}

// Build runs the full pipeline for cfg.
func Build(cfg braid.Config, opts Options) (Result, error) {
	log := logger.Named("pipeline")
	start := time.Now()

	// Reject bad options before any geometry is generated.
	switch opts.Strategy {
	case TubeSweep:
		if err := sweepOptions(cfg, opts).Validate(); err != nil {
			return Result{}, err
		}
	case DirectTriangulation:
	default:
		return Result{}, fmt.Errorf("%w: unknown strategy %v", braid.ErrInvalidParameter, opts.Strategy)
	}

	paths := braid.GeneratePaths(cfg, opts.Interleave)
	log.Debug("paths generated",
		zap.Int("fibers", len(paths)),
		zap.Int("samples", cfg.SampleCount()),
		zap.Stringer("interleave", opts.Interleave))

	var (
		combined mesh.Mesh
		err      error
	)
	switch opts.Strategy {
	case TubeSweep:
		combined, err = buildTubes(cfg, paths, opts, log)
	case DirectTriangulation:
		combined, err = braid.Triangulate(paths)
	}
	if err != nil {
		return Result{}, err
	}

	stats := Stats{
		Fibers:    len(paths),
		Samples:   cfg.SampleCount(),
		Vertices:  combined.VertexCount(),
		Faces:     combined.FaceCount(),
		Triangles: combined.TriangleCount(),
		Elapsed:   time.Since(start),
	}
	log.Info("mesh built",
		zap.Stringer("strategy", opts.Strategy),
		zap.Int("fibers", stats.Fibers),
		zap.Int("vertices", stats.Vertices),
		zap.Int("faces", stats.Faces),
		zap.Duration("elapsed", stats.Elapsed))

	return Result{Mesh: combined, Paths: paths, Stats: stats}, nil
}

func sweepOptions(cfg braid.Config, opts Options) sweep.Options {
	return sweep.Options{
		Radius:     cfg.CrossSectionRadius(),
		Resolution: opts.Resolution,
		Capped:     opts.Capped,
		Resample:   opts.Resample,
	}
}

// buildTubes sweeps every fiber concurrently and merges the tubes in fiber order.
func buildTubes(cfg braid.Config, paths []braid.Path, opts Options, log *zap.Logger) (mesh.Mesh, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	so := sweepOptions(cfg, opts)
	tubes := make([]mesh.Mesh, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			tube, err := sweep.Tube(path, so)
			if err != nil {
				errs[i] = &FiberError{Fiber: i, Err: err}
				return errs[i]
			}
			tubes[i] = tube
			log.Debug("fiber swept",
				zap.Int("fiber", i),
				zap.Int("vertices", tube.VertexCount()))
			return nil
		})
	}
	if g.Wait() != nil {
		// report the lowest failing fiber regardless of scheduling
		for _, err := range errs {
			if err != nil {
				return mesh.Mesh{}, err
			}
		}
	}

	return mesh.Merge(tubes...), nil
}

// Sink consumes a finished mesh, e.g. a file exporter or preview renderer.
type Sink interface {
	Consume(m mesh.Mesh) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(m mesh.Mesh) error

// Consume calls f(m).
func (f SinkFunc) Consume(m mesh.Mesh) error {
	return f(m)
}

// ErrInvalidMesh is returned by Deliver when the mesh fails validation.
var ErrInvalidMesh = errors.New("invalid mesh")

// Deliver validates m and hands it to each sink in order, stopping at the first error.
func Deliver(m mesh.Mesh, sinks ...Sink) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMesh, err)
	}
	for i, s := range sinks {
		if err := s.Consume(m); err != nil {
			return fmt.Errorf("sink %d: %w", i, err)
		}
	}
	return nil
}
