package config

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.String("seed", "", "Planet seed")
	flagNoise      = flag.String("noise", "", "Noise generator: simplex or perlin")
	flagRadius     = flag.Int("radius", -1, "View radius in chunks")
	flagDB         = flag.String("db", "", "Chunk snapshot database path")
	flagLookup     = flag.String("tileset", "", "Tileset lookup file")
	flagWindowed   = flag.Bool("windowed", false, "Run viewer in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run viewer in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Viewer window width")
	flagHeight     = flag.Int("height", 0, "Viewer window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != "" {
		seed, err := strconv.ParseInt(*flagSeed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid -seed %q: %w", *flagSeed, err)
		}
		cfg.Planet.Seed = seed
	}
	if *flagNoise != "" {
		cfg.Planet.Noise = *flagNoise
	}
	if *flagRadius >= 0 {
		cfg.World.ViewRadius = *flagRadius
	}
	if *flagDB != "" {
		cfg.Storage.Path = *flagDB
	}
	if *flagLookup != "" {
		cfg.Tileset.Lookup = *flagLookup
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	return nil
}
