package main

import (
	"errors"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/braidgen/internal/render"
	"github.com/Faultbox/braidgen/pkg/formats"
	"github.com/Faultbox/braidgen/pkg/mesh"
)

func quad() mesh.Mesh {
	return mesh.Mesh{
		Vertices: []r3.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Faces:    []mesh.Face{{0, 1, 2, 3}},
	}
}

func TestCheckMesh(t *testing.T) {
	if err := checkMesh(quad()); err != nil {
		t.Errorf("expected valid mesh, got %v", err)
	}

	bad := quad()
	bad.Faces = append(bad.Faces, mesh.Face{0, 1, 9})
	if err := checkMesh(bad); !errors.Is(err, mesh.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	flat := quad()
	flat.Faces = append(flat.Faces, mesh.Face{0, 0, 1})
	if err := checkMesh(flat); !errors.Is(err, mesh.ErrDegenerateFace) {
		t.Errorf("expected ErrDegenerateFace, got %v", err)
	}
}

func TestConvertAndPreview(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "quad.obj")
	dst := filepath.Join(dir, "quad.stl")
	img := filepath.Join(dir, "quad.png")

	if err := formats.Save(src, quad()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := cmdConvert([]string{src, dst}); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	m, err := formats.Load(dst)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.FaceCount() != 2 {
		t.Errorf("expected quad split into 2 triangles, got %d", m.FaceCount())
	}

	if err := cmdInfo([]string{dst}); err != nil {
		t.Errorf("info failed: %v", err)
	}
	if err := cmdCheck([]string{dst}); err != nil {
		t.Errorf("check failed: %v", err)
	}
	if err := cmdPreview([]string{"-size", "16", "-ss", "1", dst, img}); err != nil {
		t.Errorf("preview failed: %v", err)
	}
}

func TestUsageErrors(t *testing.T) {
	for name, fn := range map[string]func([]string) error{
		"info":    cmdInfo,
		"convert": cmdConvert,
		"check":   cmdCheck,
		"preview": cmdPreview,
	} {
		if err := fn(nil); !errors.Is(err, errUsage) {
			t.Errorf("%s: expected errUsage, got %v", name, err)
		}
	}
}

func TestPreviewRejectsOversizedImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "quad.obj")
	if err := formats.Save(src, quad()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	err := cmdPreview([]string{"-size", "100000", "-ss", "8", src, filepath.Join(dir, "quad.png")})
	if !errors.Is(err, render.ErrInvalidCamera) {
		t.Errorf("expected ErrInvalidCamera, got %v", err)
	}
}
