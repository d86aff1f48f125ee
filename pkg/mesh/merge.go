package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Merge concatenates meshes in the given order into a new Mesh.
// Faces of each input are shifted by the number of vertices appended before it,
// so every index stays valid in the combined vertex list. Inputs are not modified
// and the result shares no backing arrays with them.
func Merge(meshes ...Mesh) Mesh {
	var nv, nf int
	for _, m := range meshes {
		nv += len(m.Vertices)
		nf += len(m.Faces)
	}

	out := Mesh{
		Vertices: make([]r3.Vec, 0, nv),
		Faces:    make([]Face, 0, nf),
	}

	offset := 0
	for _, m := range meshes {
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			shifted := make(Face, len(f))
			for i, idx := range f {
				shifted[i] = idx + offset
			}
			out.Faces = append(out.Faces, shifted)
		}
		offset += len(m.Vertices)
	}

	return out
}
