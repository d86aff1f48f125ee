package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagPreset     = flag.String("preset", "", "Braid preset: triaxial, interwoven, ribbon")
	flagFibers     = flag.Int("fibers", 0, "Number of fibers")
	flagTurns      = flag.Float64("turns", 0, "Turns over the braid length")
	flagSamples    = flag.Int("samples", 0, "Samples per turn")
	flagTubeRadius = flag.Float64("tube-radius", 0, "Fiber tube radius")
	flagResolution = flag.Int("resolution", 0, "Vertices per tube ring")
	flagResample   = flag.Int("resample", -1, "Spline points per fiber before sweeping (0 = raw samples)")
	flagStrategy   = flag.String("strategy", "", "Surface strategy: tube or ribbon")
	flagInterleave = flag.String("interleave", "", "Fiber directions: uniform or alternating")
	flagOut        = flag.String("out", "", "Mesh output path (.obj or .stl)")
	flagPreview    = flag.String("preview", "", "Preview image path (.png or .webp)")
	flagSaveConfig = flag.String("save-config", "", "Write the effective config to this path (\"default\" = user config dir) and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveConfigPath returns the --save-config target, if any.
func SaveConfigPath() string {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
// A preset is applied first so the individual flags can refine it.
func applyFlags(cfg *Config) error {
	if *flagPreset != "" {
		if err := cfg.ApplyPreset(*flagPreset); err != nil {
			return err
		}
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFibers > 0 {
		cfg.Braid.Fibers = *flagFibers
	}
	if *flagTurns > 0 {
		cfg.Braid.Turns = *flagTurns
	}
	if *flagSamples > 0 {
		cfg.Braid.SamplesPerTurn = *flagSamples
	}
	if *flagTubeRadius > 0 {
		cfg.Sweep.Radius = *flagTubeRadius
	}
	if *flagResolution > 0 {
		cfg.Sweep.Resolution = *flagResolution
	}
	if *flagResample >= 0 {
		cfg.Sweep.Resample = *flagResample
	}
	if *flagStrategy != "" {
		cfg.Pipeline.Strategy = *flagStrategy
	}
	if *flagInterleave != "" {
		cfg.Pipeline.Interleave = *flagInterleave
	}
	if *flagOut != "" {
		cfg.Output.Mesh = *flagOut
	}
	if *flagPreview != "" {
		cfg.Output.Preview = *flagPreview
	}
	return nil
}
