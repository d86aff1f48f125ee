package braid

import (
	"fmt"

	"github.com/Faultbox/braidgen/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangulate stitches neighbouring fiber centerlines into a ribbon surface
// without sweeping a cross-section.
//
// Vertices are every path point in fiber-major order, so sample i of fiber f
// lives at index f*N+i. Each adjacent fiber pair (f, f+1 mod F) contributes two
// triangles per segment:
//
//	[f·N+i, f·N+i+1, g·N+i+1] and [f·N+i, g·N+i+1, g·N+i]
//
// With two fibers the wrap-around pair duplicates the first and is skipped;
// a single fiber produces vertices only.
func Triangulate(paths []Path) (mesh.Mesh, error) {
	if len(paths) == 0 {
		return mesh.Mesh{}, nil
	}

	n := len(paths[0])
	for f, p := range paths {
		if len(p) != n {
			return mesh.Mesh{}, fmt.Errorf("%w: path %d has %d samples, path 0 has %d",
				ErrInvalidParameter, f, len(p), n)
		}
	}

	fibers := len(paths)
	vertices := make([]r3.Vec, 0, fibers*n)
	for _, p := range paths {
		vertices = append(vertices, p...)
	}

	pairs := fibers
	switch fibers {
	case 1:
		pairs = 0
	case 2:
		pairs = 1
	}

	var faces []mesh.Face
	if pairs > 0 && n > 1 {
		faces = make([]mesh.Face, 0, pairs*(n-1)*2)
	}
	for f := 0; f < pairs; f++ {
		g := (f + 1) % fibers
		for i := 0; i < n-1; i++ {
			a := f*n + i
			b := f*n + i + 1
			c := g*n + i + 1
			d := g*n + i
			faces = append(faces, mesh.Face{a, b, c}, mesh.Face{a, c, d})
		}
	}

	return mesh.Mesh{Vertices: vertices, Faces: faces}, nil
}
