package sweep

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/braidgen/pkg/braid"
)

// Resample fits a natural cubic spline through path, parameterised by
// cumulative arc length, and returns n points evenly spaced along it.
//
// The first and last points of path are reproduced exactly. Zero-length
// segments are dropped before fitting. Paths with only two distinct points
// are resampled along the straight segment.
func Resample(path braid.Path, n int) (braid.Path, error) {
	if n < 2 || n > braid.MaxPoints {
		return nil, fmt.Errorf("%w: resample count must be in [2, %d], got %d", braid.ErrInvalidParameter, braid.MaxPoints, n)
	}
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples to resample, got %d", braid.ErrGeometry, len(path))
	}

	knots, ts := arcKnots(path)
	if len(knots) < 2 {
		return nil, fmt.Errorf("%w: all %d samples coincide", braid.ErrGeometry, len(path))
	}

	var splines [3]interp.FittablePredictor
	ys := make([]float64, len(knots))
	for axis := range splines {
		for i, p := range knots {
			ys[i] = component(p, axis)
		}
		var s interp.FittablePredictor = &interp.NaturalCubic{}
		if len(knots) < 3 {
			s = &interp.PiecewiseLinear{}
		}
		if err := s.Fit(ts, ys); err != nil {
			return nil, fmt.Errorf("%w: fitting spline: %v", braid.ErrGeometry, err)
		}
		splines[axis] = s
	}

	total := ts[len(ts)-1]
	out := make(braid.Path, n)
	out[0] = path[0]
	out[n-1] = path[len(path)-1]
	for i := 1; i < n-1; i++ {
		t := total * float64(i) / float64(n-1)
		out[i] = r3.Vec{
			X: splines[0].Predict(t),
			Y: splines[1].Predict(t),
			Z: splines[2].Predict(t),
		}
	}
	return out, nil
}

// arcKnots returns the distinct consecutive points of path and their
// cumulative arc length, which is strictly increasing.
func arcKnots(path braid.Path) ([]r3.Vec, []float64) {
	knots := []r3.Vec{path[0]}
	ts := []float64{0}
	for _, p := range path[1:] {
		d := r3.Norm(r3.Sub(p, knots[len(knots)-1]))
		if d <= epsilon {
			continue
		}
		knots = append(knots, p)
		ts = append(ts, ts[len(ts)-1]+d)
	}
	return knots, ts
}

func component(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
