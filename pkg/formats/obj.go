package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/braidgen/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// OBJ parsing errors.
var (
	ErrInvalidOBJRecord   = errors.New("invalid OBJ record")
	ErrOBJIndexOutOfRange = errors.New("OBJ face index out of range")
)

// WriteOBJ writes m as a Wavefront OBJ document with 1-based face indices.
// Polygon faces are written as-is, without triangulation.
func WriteOBJ(w io.Writer, m mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# braidgen mesh\n# vertices %d faces %d\n", len(m.Vertices), len(m.Faces))
	for _, v := range m.Vertices {
		bw.WriteString("v ")
		bw.WriteString(strconv.FormatFloat(v.X, 'g', -1, 64))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(v.Y, 'g', -1, 64))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(v.Z, 'g', -1, 64))
		bw.WriteByte('\n')
	}
	for _, f := range m.Faces {
		bw.WriteByte('f')
		for _, idx := range f {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(idx + 1))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// ParseOBJ parses vertex and face records from OBJ data.
// Face entries may use the v, v/vt, v//vn or v/vt/vn forms and negative
// (relative) indices. Other record types are ignored.
func ParseOBJ(data []byte) (mesh.Mesh, error) {
	var m mesh.Mesh

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}

		fields := strings.Fields(text)
		switch fields[0] {
		case "v":
			v, err := parseOBJVertex(fields[1:])
			if err != nil {
				return mesh.Mesh{}, fmt.Errorf("line %d: %w", line, err)
			}
			m.Vertices = append(m.Vertices, v)
		case "f":
			f, err := parseOBJFace(fields[1:], len(m.Vertices))
			if err != nil {
				return mesh.Mesh{}, fmt.Errorf("line %d: %w", line, err)
			}
			m.Faces = append(m.Faces, f)
		}
	}
	if err := sc.Err(); err != nil {
		return mesh.Mesh{}, fmt.Errorf("reading OBJ: %w", err)
	}

	return m, nil
}

func parseOBJVertex(fields []string) (r3.Vec, error) {
	// A fourth (w) component is allowed and ignored.
	if len(fields) < 3 || len(fields) > 4 {
		return r3.Vec{}, fmt.Errorf("%w: vertex needs 3 coordinates, got %d", ErrInvalidOBJRecord, len(fields))
	}

	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("%w: vertex coordinate %q", ErrInvalidOBJRecord, fields[i])
		}
		c[i] = f
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseOBJFace resolves face references against the nv vertices read so far.
func parseOBJFace(fields []string, nv int) (mesh.Face, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: face needs 3 indices, got %d", ErrInvalidOBJRecord, len(fields))
	}

	face := make(mesh.Face, len(fields))
	for i, ref := range fields {
		vref, _, _ := strings.Cut(ref, "/")
		n, err := strconv.Atoi(vref)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("%w: face index %q", ErrInvalidOBJRecord, ref)
		}

		idx := n - 1
		if n < 0 {
			idx = nv + n
		}
		if idx < 0 || idx >= nv {
			return nil, fmt.Errorf("%w: %d with %d vertices", ErrOBJIndexOutOfRange, n, nv)
		}
		face[i] = idx
	}
	return face, nil
}
