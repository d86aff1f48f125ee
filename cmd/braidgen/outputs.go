package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/braidgen/internal/config"
	"github.com/Faultbox/braidgen/internal/logger"
	"github.com/Faultbox/braidgen/internal/pipeline"
	"github.com/Faultbox/braidgen/internal/render"
	"github.com/Faultbox/braidgen/pkg/braid"
	"github.com/Faultbox/braidgen/pkg/formats"
	"github.com/Faultbox/braidgen/pkg/mesh"
)

// pipelineOptions converts the pipeline and sweep sections.
func pipelineOptions(cfg *config.Config) (pipeline.Options, error) {
	strategy, err := pipeline.ParseStrategy(cfg.Pipeline.Strategy)
	if err != nil {
		return pipeline.Options{}, err
	}
	interleave, err := braid.ParseInterleave(cfg.Pipeline.Interleave)
	if err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{
		Strategy:   strategy,
		Interleave: interleave,
		Resolution: cfg.Sweep.Resolution,
		Capped:     cfg.Sweep.Capped,
		Resample:   cfg.Sweep.Resample,
		Workers:    cfg.Pipeline.Workers,
	}, nil
}

// camera converts the preview section into a render camera.
func camera(pc config.PreviewConfig) (render.Camera, error) {
	cam := render.DefaultCamera()
	if pc.Size > 0 {
		cam.Size = pc.Size
	}
	if pc.Supersample > 0 {
		cam.Supersample = pc.Supersample
	}
	cam.Yaw = pc.Yaw
	cam.Pitch = pc.Pitch

	if pc.Color != "" {
		c, err := render.ParseHexColor(pc.Color)
		if err != nil {
			return render.Camera{}, fmt.Errorf("camera color: %w", err)
		}
		cam.Color = c
	}
	if pc.Background != "" {
		c, err := render.ParseHexColor(pc.Background)
		if err != nil {
			return render.Camera{}, fmt.Errorf("camera background: %w", err)
		}
		cam.Background = c
	}
	if err := cam.Validate(); err != nil {
		return render.Camera{}, err
	}
	return cam, nil
}

// outputSinks builds the mesh file and preview sinks requested by cfg.
func outputSinks(cfg *config.Config) ([]pipeline.Sink, error) {
	var sinks []pipeline.Sink

	if path := cfg.Output.Mesh; path != "" {
		if formats.Detect(path) == formats.Unknown {
			return nil, fmt.Errorf("%w: %s", formats.ErrUnknownFormat, path)
		}
		sinks = append(sinks, pipeline.SinkFunc(func(m mesh.Mesh) error {
			if err := formats.Save(path, m); err != nil {
				return err
			}
			logger.Info("mesh written",
				zap.String("path", path),
				zap.Int("vertices", m.VertexCount()),
				zap.Int("faces", m.FaceCount()))
			return nil
		}))
	}

	if path := cfg.Output.Preview; path != "" {
		if _, err := render.FormatFromPath(path); err != nil {
			return nil, err
		}
		cam, err := camera(cfg.Output.Camera)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, render.FileSink{Path: path, Camera: cam})
	}

	return sinks, nil
}
