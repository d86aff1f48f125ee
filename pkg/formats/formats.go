// Package formats reads and writes mesh interchange files (Wavefront OBJ, binary STL).
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/braidgen/pkg/mesh"
)

// Format identifies a mesh file format.
type Format int

const (
	Unknown Format = iota
	OBJ
	STL
)

func (f Format) String() string {
	switch f {
	case OBJ:
		return "obj"
	case STL:
		return "stl"
	default:
		return "unknown"
	}
}

// ErrUnknownFormat is returned for unsupported file extensions.
var ErrUnknownFormat = errors.New("unknown mesh format")

// Detect maps a file extension to a Format.
func Detect(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return OBJ
	case ".stl":
		return STL
	default:
		return Unknown
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, f Format) (mesh.Mesh, error) {
	switch f {
	case OBJ:
		return ParseOBJ(data)
	case STL:
		return ParseSTL(data)
	default:
		return mesh.Mesh{}, ErrUnknownFormat
	}
}

// Load reads a mesh file, choosing the parser by extension.
func Load(path string) (mesh.Mesh, error) {
	f := Detect(path)
	if f == Unknown {
		return mesh.Mesh{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("reading %s file: %w", f, err)
	}
	return Parse(data, f)
}

// Encode writes m in the given format to a byte slice.
func Encode(m mesh.Mesh, f Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case OBJ:
		err = WriteOBJ(&buf, m)
	case STL:
		err = WriteSTL(&buf, m, NewSTLHeader("braidgen binary STL"))
	default:
		err = ErrUnknownFormat
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes m to path, choosing the writer by extension and creating parent
// directories as needed.
func Save(path string, m mesh.Mesh) error {
	f := Detect(path)
	if f == Unknown {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	data, err := Encode(m, f)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
