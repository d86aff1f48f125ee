package braid

import (
	"testing"

	"github.com/Faultbox/braidgen/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTriangulateIndexing(t *testing.T) {
	cfg := MustConfig(Params{Length: 10, Radius: 1, FiberCount: 3, Turns: 1, SamplesPerTurn: 4, CrossSectionRadius: 0.1})
	paths := GeneratePaths(cfg, Uniform)

	m, err := Triangulate(paths)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	n := 4
	assert.Equal(t, 3*n, m.VertexCount())
	assert.Equal(t, 3*(n-1)*2, m.FaceCount())

	// vertex f*N+i is sample i of fiber f
	for f, p := range paths {
		for i, v := range p {
			assert.Equal(t, v, m.Vertices[f*n+i])
		}
	}

	// first quad between fiber 0 and fiber 1
	assert.Equal(t, mesh.Face{0, 1, n + 1}, m.Faces[0])
	assert.Equal(t, mesh.Face{0, n + 1, n}, m.Faces[1])

	// wrap-around pair (2, 0)
	last := m.Faces[len(m.Faces)-1]
	assert.Equal(t, mesh.Face{2*n + 2, 3, 2}, last)
}

func TestTriangulateFacesStayWithinNeighbours(t *testing.T) {
	cfg := MustConfig(Params{Length: 2, Radius: 1, FiberCount: 6, Turns: 2, SamplesPerTurn: 10, CrossSectionRadius: 0.1})
	paths := GeneratePaths(cfg, Alternating)
	n := len(paths[0])

	m, err := Triangulate(paths)
	require.NoError(t, err)

	for _, f := range m.Faces {
		fibers := map[int]bool{}
		for _, idx := range f {
			fibers[idx/n] = true
		}
		assert.LessOrEqual(t, len(fibers), 2, "face %v spans more than two fibers", f)
	}
}

func TestTriangulateTwoFibers(t *testing.T) {
	cfg := MustConfig(Params{Length: 1, Radius: 1, FiberCount: 2, Turns: 1, SamplesPerTurn: 5, CrossSectionRadius: 0.1})
	m, err := Triangulate(GeneratePaths(cfg, Uniform))
	require.NoError(t, err)
	assert.Equal(t, 4*2, m.FaceCount())
}

func TestTriangulateSingleFiber(t *testing.T) {
	cfg := MustConfig(Params{Length: 1, Radius: 1, FiberCount: 1, Turns: 1, SamplesPerTurn: 5, CrossSectionRadius: 0.1})
	m, err := Triangulate(GeneratePaths(cfg, Uniform))
	require.NoError(t, err)
	assert.Equal(t, 5, m.VertexCount())
	assert.Zero(t, m.FaceCount())
}

func TestTriangulateMismatchedPaths(t *testing.T) {
	paths := []Path{
		make(Path, 4),
		make(Path, 3),
	}
	_, err := Triangulate(paths)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestTriangulateEmpty(t *testing.T) {
	m, err := Triangulate(nil)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())

	m, err = Triangulate([]Path{{r3.Vec{}}, {r3.Vec{X: 1}}, {r3.Vec{Y: 1}}})
	require.NoError(t, err)
	assert.Equal(t, 3, m.VertexCount())
	assert.Zero(t, m.FaceCount())
}
