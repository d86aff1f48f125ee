package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/Faultbox/braidgen/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// STL parsing errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrASCIISTL         = errors.New("ASCII STL not supported")
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // normal + 3 vertices (12 float32) + attribute count
)

// STLHeader is the fixed-size comment block that opens a binary STL file.
type STLHeader [stlHeaderSize]byte

// NewSTLHeader builds a header from text, truncated to 80 bytes.
// Text must not start with "solid", which readers take as an ASCII file.
func NewSTLHeader(text string) STLHeader {
	var h STLHeader
	copy(h[:], text)
	return h
}

// WriteSTL writes m as binary STL. Every face is fan-split into triangles and
// each facet carries its computed unit normal. Coordinates narrow to float32.
func WriteSTL(w io.Writer, m mesh.Mesh, header STLHeader) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	tris := m.Triangles()
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(tris))); err != nil {
		return err
	}

	var rec [stlTriangleSize]byte
	for _, t := range tris {
		n := triangleNormal(t)
		putVec(rec[0:], n)
		putVec(rec[12:], t[0])
		putVec(rec[24:], t[1])
		putVec(rec[36:], t[2])
		// rec[48:50] attribute byte count stays zero
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ParseSTL parses binary STL data. Vertices that share an exact position are
// merged so the resulting mesh is indexed rather than a triangle soup.
func ParseSTL(data []byte) (mesh.Mesh, error) {
	if len(data) < stlHeaderSize+4 {
		return mesh.Mesh{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedSTLData, len(data), stlHeaderSize+4)
	}

	count := int(binary.LittleEndian.Uint32(data[stlHeaderSize:]))
	body := data[stlHeaderSize+4:]
	if len(body) < count*stlTriangleSize {
		if bytes.HasPrefix(data, []byte("solid")) {
			return mesh.Mesh{}, ErrASCIISTL
		}
		return mesh.Mesh{}, fmt.Errorf("%w: header declares %d triangles, data holds %d",
			ErrTruncatedSTLData, count, len(body)/stlTriangleSize)
	}

	m := mesh.Mesh{Faces: make([]mesh.Face, 0, count)}
	index := make(map[r3.Vec]int)
	lookup := func(v r3.Vec) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(m.Vertices)
		index[v] = i
		m.Vertices = append(m.Vertices, v)
		return i
	}

	for i := range count {
		rec := body[i*stlTriangleSize:]
		m.Faces = append(m.Faces, mesh.Face{
			lookup(getVec(rec[12:])),
			lookup(getVec(rec[24:])),
			lookup(getVec(rec[36:])),
		})
	}

	return m, nil
}

func triangleNormal(t r3.Triangle) r3.Vec {
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	l := r3.Norm(n)
	if l < 1e-20 {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}

func putVec(b []byte, v r3.Vec) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}

func getVec(b []byte) r3.Vec {
	return r3.Vec{
		X: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))),
		Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
		Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
	}
}
