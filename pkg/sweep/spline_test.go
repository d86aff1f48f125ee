package sweep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/braidgen/pkg/braid"
)

func TestResampleCountAndEndpoints(t *testing.T) {
	path := helix(t, 1, braid.Uniform)[0]

	for _, n := range []int{2, 100, 1000} {
		out, err := Resample(path, n)
		require.NoError(t, err)
		require.Len(t, out, n)
		assert.Equal(t, path[0], out[0])
		assert.Equal(t, path[len(path)-1], out[n-1])
	}
}

func TestResampleStaysOnHelix(t *testing.T) {
	path := helix(t, 1, braid.Uniform)[0]

	out, err := Resample(path, 1500)
	require.NoError(t, err)

	for i, p := range out {
		r := math.Hypot(p.X, p.Y)
		assert.InDelta(t, 1.0, r, 1e-2, "point %d off the helix envelope", i)
		assert.True(t, p.Z >= -1e-9 && p.Z <= 10+1e-9, "point %d z=%v outside braid length", i, p.Z)
	}
}

func TestResampleEvenArcSpacing(t *testing.T) {
	path := braid.Path{{}, {X: 1}, {X: 1}, {X: 3}, {X: 4}}

	out, err := Resample(path, 9)
	require.NoError(t, err)

	for i, p := range out {
		assert.InDelta(t, 0.5*float64(i), p.X, 1e-9, "point %d", i)
		assert.InDelta(t, 0, p.Y, 1e-9)
		assert.InDelta(t, 0, p.Z, 1e-9)
	}
}

func TestResampleTwoDistinctPoints(t *testing.T) {
	out, err := Resample(braid.Path{{}, {}, {Z: 2}}, 5)
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.InDelta(t, 1.0, out[2].Z, 1e-12)
}

func TestResampleErrors(t *testing.T) {
	line := braid.Path{{}, {Z: 1}}

	_, err := Resample(line, 1)
	assert.ErrorIs(t, err, braid.ErrInvalidParameter)

	_, err = Resample(line, braid.MaxPoints+1)
	assert.ErrorIs(t, err, braid.ErrInvalidParameter)

	_, err = Resample(braid.Path{{}}, 10)
	assert.ErrorIs(t, err, braid.ErrGeometry)

	p := r3.Vec{X: 1, Y: 2, Z: 3}
	_, err = Resample(braid.Path{p, p, p}, 10)
	assert.ErrorIs(t, err, braid.ErrGeometry)
}

func TestTubeResampled(t *testing.T) {
	const res = 8
	path := helix(t, 1, braid.Uniform)[0]

	m, err := Tube(path, Options{Radius: 0.1, Resolution: res, Resample: 200})
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, 200*res, m.VertexCount())
	assert.Equal(t, 199*res, m.FaceCount())

	// first ring is still centred on the first raw sample
	var c r3.Vec
	for _, v := range m.Vertices[:res] {
		c = r3.Add(c, v)
	}
	c = r3.Scale(1.0/res, c)
	assert.InDelta(t, 0, r3.Norm(r3.Sub(c, path[0])), 1e-9)
}
