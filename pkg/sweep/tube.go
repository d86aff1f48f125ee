package sweep

import (
	"fmt"
	"math"

	"github.com/Faultbox/braidgen/pkg/braid"
	"github.com/Faultbox/braidgen/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultResolution is the ring resolution used when none is configured.
const DefaultResolution = 8

// Options controls the cross-section sweep.
type Options struct {
	// Radius is the tube cross-section radius.
	Radius float64
	// Resolution is the number of vertices per ring (at least 3).
	Resolution int
	// Capped closes both tube ends with one polygon each.
	Capped bool
	// Resample, when non-zero, replaces the path by that many points on a
	// cubic spline through it before sweeping. Zero sweeps the raw samples.
	Resample int
}

// Validate reports invalid sweep options.
func (o Options) Validate() error {
	if !(o.Radius > 0) || math.IsInf(o.Radius, 0) {
		return fmt.Errorf("%w: cross-section radius must be positive, got %v", braid.ErrInvalidParameter, o.Radius)
	}
	if o.Resolution < 3 {
		return fmt.Errorf("%w: ring resolution must be at least 3, got %d", braid.ErrInvalidParameter, o.Resolution)
	}
	if o.Resample != 0 && (o.Resample < 2 || o.Resample > braid.MaxPoints) {
		return fmt.Errorf("%w: resample count must be 0 or in [2, %d], got %d", braid.ErrInvalidParameter, braid.MaxPoints, o.Resample)
	}
	return nil
}

// Tube sweeps a circle of opts.Radius along path and returns the tube surface.
//
// Ring k occupies vertices [k*R, (k+1)*R). Adjacent rings are joined by R quads
// that wrap from the last ring vertex back to the first. The tube is open unless
// opts.Capped is set. With opts.Resample set, rings follow the resampled
// spline instead of the input samples.
func Tube(path braid.Path, opts Options) (mesh.Mesh, error) {
	if err := opts.Validate(); err != nil {
		return mesh.Mesh{}, err
	}

	if opts.Resample > 0 {
		var err error
		if path, err = Resample(path, opts.Resample); err != nil {
			return mesh.Mesh{}, err
		}
	}

	frames, err := Frames(path)
	if err != nil {
		return mesh.Mesh{}, err
	}

	res := opts.Resolution
	cos := make([]float64, res)
	sin := make([]float64, res)
	for j := range res {
		a := 2 * math.Pi * float64(j) / float64(res)
		cos[j] = math.Cos(a)
		sin[j] = math.Sin(a)
	}

	vertices := make([]r3.Vec, 0, len(path)*res)
	for k, p := range path {
		f := frames[k]
		for j := range res {
			offset := r3.Add(r3.Scale(cos[j], f.Normal), r3.Scale(sin[j], f.Binormal))
			vertices = append(vertices, r3.Add(p, r3.Scale(opts.Radius, offset)))
		}
	}

	rings := len(path)
	faceCount := (rings - 1) * res
	if opts.Capped {
		faceCount += 2
	}
	faces := make([]mesh.Face, 0, faceCount)
	for k := 0; k+1 < rings; k++ {
		base := k * res
		next := base + res
		for j := range res {
			jn := (j + 1) % res
			faces = append(faces, mesh.Face{base + j, base + jn, next + jn, next + j})
		}
	}

	if opts.Capped {
		// The start cap looks back along -tangent, so its ring order is reversed.
		start := make(mesh.Face, res)
		end := make(mesh.Face, res)
		last := (rings - 1) * res
		for j := range res {
			start[j] = res - 1 - j
			end[j] = last + j
		}
		faces = append(faces, start, end)
	}

	return mesh.Mesh{Vertices: vertices, Faces: faces}, nil
}
