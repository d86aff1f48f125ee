// Package mesh provides the vertex/face mesh value shared by every geometry stage.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Validation errors.
var (
	ErrIndexOutOfRange = errors.New("face index out of range")
	ErrDegenerateFace  = errors.New("face has fewer than 3 indices")
)

// Face is a polygon referencing vertices by index.
// Tube sweeps emit quads, the ribbon triangulator emits triangles.
type Face []int

// Mesh holds vertex positions and the faces built on them.
// A Mesh returned by a generator is treated as immutable.
type Mesh struct {
	Vertices []r3.Vec
	Faces    []Face
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min r3.Vec
	Max r3.Vec
}

// Size returns the box extent along each axis.
func (b Box) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Center returns the box midpoint.
func (b Box) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m Mesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no vertices.
func (m Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// TriangleCount returns the number of triangles a fan split of every face produces.
func (m Mesh) TriangleCount() int {
	n := 0
	for _, f := range m.Faces {
		if len(f) >= 3 {
			n += len(f) - 2
		}
	}
	return n
}

// Validate checks that every face has at least 3 indices and that every index
// refers to an existing vertex.
func (m Mesh) Validate() error {
	nv := len(m.Vertices)
	for i, f := range m.Faces {
		if len(f) < 3 {
			return fmt.Errorf("%w: face %d has %d", ErrDegenerateFace, i, len(f))
		}
		for _, idx := range f {
			if idx < 0 || idx >= nv {
				return fmt.Errorf("%w: face %d references %d, have %d vertices", ErrIndexOutOfRange, i, idx, nv)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of all vertices.
// An empty mesh yields the zero Box.
func (m Mesh) Bounds() Box {
	if len(m.Vertices) == 0 {
		return Box{}
	}

	b := Box{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, v := range m.Vertices {
		b.Min.X = math.Min(b.Min.X, v.X)
		b.Min.Y = math.Min(b.Min.Y, v.Y)
		b.Min.Z = math.Min(b.Min.Z, v.Z)
		b.Max.X = math.Max(b.Max.X, v.X)
		b.Max.Y = math.Max(b.Max.Y, v.Y)
		b.Max.Z = math.Max(b.Max.Z, v.Z)
	}
	return b
}

// Triangles fan-splits every face into triangles in face order.
// Faces with fewer than 3 indices are skipped.
func (m Mesh) Triangles() []r3.Triangle {
	tris := make([]r3.Triangle, 0, m.TriangleCount())
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			tris = append(tris, r3.Triangle{
				m.Vertices[f[0]],
				m.Vertices[f[i]],
				m.Vertices[f[i+1]],
			})
		}
	}
	return tris
}

// Clone returns a deep copy of the mesh.
func (m Mesh) Clone() Mesh {
	out := Mesh{
		Vertices: append([]r3.Vec(nil), m.Vertices...),
		Faces:    make([]Face, len(m.Faces)),
	}
	for i, f := range m.Faces {
		out.Faces[i] = append(Face(nil), f...)
	}
	return out
}

// FaceNormal returns the unit normal of a face using Newell's method,
// which stays well defined for non-planar quads.
// A degenerate face returns the zero vector.
func (m Mesh) FaceNormal(f Face) r3.Vec {
	var n r3.Vec
	for i := range f {
		cur := m.Vertices[f[i]]
		next := m.Vertices[f[(i+1)%len(f)]]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	l := r3.Norm(n)
	if l < 1e-12 {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}
