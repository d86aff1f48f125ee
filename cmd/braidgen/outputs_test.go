package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/braidgen/internal/config"
	"github.com/Faultbox/braidgen/internal/logger"
	"github.com/Faultbox/braidgen/internal/pipeline"
	"github.com/Faultbox/braidgen/internal/render"
	"github.com/Faultbox/braidgen/pkg/braid"
	"github.com/Faultbox/braidgen/pkg/formats"
)

func TestPipelineOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.Strategy = "ribbon"
	cfg.Pipeline.Interleave = "alternating"
	cfg.Sweep.Resolution = 12
	cfg.Pipeline.Workers = 2
	cfg.Sweep.Resample = 80

	opts, err := pipelineOptions(cfg)
	if err != nil {
		t.Fatalf("pipelineOptions failed: %v", err)
	}
	if opts.Strategy != pipeline.DirectTriangulation {
		t.Errorf("expected ribbon strategy, got %v", opts.Strategy)
	}
	if opts.Interleave != braid.Alternating {
		t.Errorf("expected alternating, got %v", opts.Interleave)
	}
	if opts.Resolution != 12 || opts.Workers != 2 || opts.Resample != 80 {
		t.Errorf("unexpected options %+v", opts)
	}

	cfg.Pipeline.Strategy = "knot"
	if _, err := pipelineOptions(cfg); !errors.Is(err, braid.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestCamera(t *testing.T) {
	cam, err := camera(config.Default().Output.Camera)
	if err != nil {
		t.Fatalf("camera failed: %v", err)
	}
	if cam.Size != 512 || cam.Supersample != 2 {
		t.Errorf("unexpected size %d x%d", cam.Size, cam.Supersample)
	}
	if cam.Color != render.DefaultCamera().Color {
		t.Errorf("expected steelblue, got %v", cam.Color)
	}

	if _, err := camera(config.PreviewConfig{Color: "blue"}); err == nil {
		t.Error("expected error for non-hex color")
	}
	if _, err := camera(config.PreviewConfig{Size: 100000, Supersample: 8}); !errors.Is(err, render.ErrInvalidCamera) {
		t.Errorf("expected ErrInvalidCamera, got %v", err)
	}
}

func TestOutputSinks(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Mesh = ""
	sinks, err := outputSinks(cfg)
	if err != nil {
		t.Fatalf("outputSinks failed: %v", err)
	}
	if len(sinks) != 0 {
		t.Errorf("expected no sinks, got %d", len(sinks))
	}

	cfg.Output.Mesh = "braid.ply"
	if _, err := outputSinks(cfg); !errors.Is(err, formats.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}

	cfg.Output.Mesh = ""
	cfg.Output.Preview = "braid.gif"
	if _, err := outputSinks(cfg); !errors.Is(err, render.ErrUnknownImageFormat) {
		t.Errorf("expected ErrUnknownImageFormat, got %v", err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Braid.SamplesPerTurn = 20
	cfg.Output.Mesh = filepath.Join(dir, "braid.stl")
	cfg.Output.Preview = filepath.Join(dir, "braid.png")
	cfg.Output.Camera.Size = 32

	if err := run(cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	m, err := formats.Load(cfg.Output.Mesh)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	// 3 fibers, 100 samples, 8-vertex rings, 2 triangles per quad
	if got, want := m.FaceCount(), 3*99*8*2; got != want {
		t.Errorf("expected %d triangles, got %d", want, got)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Sweep.Radius = -1
	cfg.Output.Mesh = ""

	if err := run(cfg); !errors.Is(err, braid.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestRunRejectsOutputsBeforeBuilding(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	defer func() { logger.Log = prev }()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output.Mesh = filepath.Join(dir, "braid.obj")
	cfg.Output.Preview = filepath.Join(dir, "braid.gif")

	if err := run(cfg); !errors.Is(err, render.ErrUnknownImageFormat) {
		t.Fatalf("expected ErrUnknownImageFormat, got %v", err)
	}
	if n := logs.FilterMessage("mesh built").Len(); n != 0 {
		t.Errorf("expected no mesh to be built, got %d build logs", n)
	}
	if _, err := os.Stat(cfg.Output.Mesh); !os.IsNotExist(err) {
		t.Errorf("expected no mesh file, stat returned %v", err)
	}
}
