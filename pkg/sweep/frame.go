// Package sweep builds tube meshes by sweeping a circular cross-section along a centerline.
package sweep

import (
	"fmt"
	"math"

	"github.com/Faultbox/braidgen/pkg/braid"
	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon below which a vector is treated as zero length.
const epsilon = 1e-12

// Frame is an orthonormal basis at one centerline sample.
type Frame struct {
	Tangent  r3.Vec
	Normal   r3.Vec
	Binormal r3.Vec
}

// Frames computes one frame per path sample.
//
// The tangent at k points toward sample k+1; the last sample, and any sample
// followed by a zero-length segment, reuses the previous tangent. The first
// normal is built from the world axis least aligned with the tangent and then
// carried along by parallel transport so consecutive rings do not twist.
func Frames(path braid.Path) ([]Frame, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples for a tangent, got %d", braid.ErrGeometry, len(path))
	}

	tangents, err := tangents(path)
	if err != nil {
		return nil, err
	}

	frames := make([]Frame, len(path))
	normal := referenceNormal(tangents[0])
	for k, t := range tangents {
		if k > 0 {
			normal = transport(normal, t)
		}
		frames[k] = Frame{
			Tangent:  t,
			Normal:   normal,
			Binormal: r3.Cross(t, normal),
		}
	}
	return frames, nil
}

func tangents(path braid.Path) ([]r3.Vec, error) {
	out := make([]r3.Vec, len(path))

	first := -1
	for k := 0; k+1 < len(path); k++ {
		d := r3.Sub(path[k+1], path[k])
		if l := r3.Norm(d); l > epsilon {
			out[k] = r3.Scale(1/l, d)
			if first < 0 {
				first = k
			}
		} else if k > 0 {
			out[k] = out[k-1]
		}
	}
	if first < 0 {
		return nil, fmt.Errorf("%w: all %d samples coincide", braid.ErrGeometry, len(path))
	}

	// Leading zero-length segments take the first real tangent.
	for k := 0; k < first; k++ {
		out[k] = out[first]
	}
	out[len(path)-1] = out[len(path)-2]
	return out, nil
}

// referenceNormal returns a unit vector perpendicular to t, derived from the
// world axis with the smallest component along t.
func referenceNormal(t r3.Vec) r3.Vec {
	ax, ay, az := math.Abs(t.X), math.Abs(t.Y), math.Abs(t.Z)

	ref := r3.Vec{Z: 1}
	switch {
	case ax <= ay && ax <= az:
		ref = r3.Vec{X: 1}
	case ay <= az:
		ref = r3.Vec{Y: 1}
	}

	side := r3.Cross(t, ref)
	n := r3.Cross(side, t)
	return r3.Scale(1/r3.Norm(n), n)
}

// transport projects the previous normal onto the plane perpendicular to t.
func transport(prev, t r3.Vec) r3.Vec {
	n := r3.Sub(prev, r3.Scale(r3.Dot(prev, t), t))
	l := r3.Norm(n)
	if l < 1e-6 {
		return referenceNormal(t)
	}
	return r3.Scale(1/l, n)
}
