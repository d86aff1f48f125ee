// Package main is the entry point for the braid mesh generator.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/braidgen/internal/config"
	"github.com/Faultbox/braidgen/internal/logger"
	"github.com/Faultbox/braidgen/internal/pipeline"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.SaveConfigPath(); path != "" {
		if err := saveConfig(cfg, path); err != nil {
			fmt.Fprintf(os.Stderr, "Save config error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := logger.InitWithOptions(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Console: true,
		File:    logFile(cfg.Logging.LogFile),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	bc, err := cfg.BraidParams()
	if err != nil {
		return err
	}
	opts, err := pipelineOptions(cfg)
	if err != nil {
		return err
	}
	sinks, err := outputSinks(cfg)
	if err != nil {
		return err
	}

	logger.Info("generating braid",
		zap.Stringer("braid", bc),
		zap.Stringer("strategy", opts.Strategy),
		zap.Stringer("interleave", opts.Interleave))

	res, err := pipeline.Build(bc, opts)
	if err != nil {
		return err
	}

	if len(sinks) == 0 {
		logger.Warn("no output configured, mesh discarded")
		return nil
	}
	return pipeline.Deliver(res.Mesh, sinks...)
}

func saveConfig(cfg *config.Config, path string) error {
	if path == "default" {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", config.ConfigDir())
		return nil
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Printf("Config written to %s\n", path)
	return nil
}

func logFile(path string) logger.FileConfig {
	if path == "" {
		return logger.FileConfig{}
	}
	return logger.DefaultFileConfig(path)
}
