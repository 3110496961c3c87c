// Package config handles planet and tool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/solis/pkg/math"
)

// Config holds all settings.
type Config struct {
	Planet  PlanetSettings `yaml:"planet"`
	World   WorldConfig    `yaml:"world"`
	Tileset TilesetConfig  `yaml:"tileset"`
	Storage StorageConfig  `yaml:"storage"`
	Viewer  ViewerConfig   `yaml:"viewer"`
	Logging LoggingConfig  `yaml:"logging"`
}

// PlanetSettings is the static per-planet configuration. Chunks read it
// but never modify it.
type PlanetSettings struct {
	Seed          int64               `yaml:"seed"`
	Noise         string              `yaml:"noise"` // simplex or perlin
	FeatureSize   float32             `yaml:"feature_size"`
	TerrainColor  math.Color          `yaml:"terrain_color"`
	WaterColor    math.Color          `yaml:"water_color"`
	Tree          DecorationPrototype `yaml:"tree"`
	Bush          DecorationPrototype `yaml:"bush"`
	TreeLeafColor math.Color          `yaml:"tree_leaf_color"`
	TreeBaseColor math.Color          `yaml:"tree_base_color"`
	BushColor     math.Color          `yaml:"bush_color"`
}

// DecorationPrototype describes a decoration sprite.
type DecorationPrototype struct {
	Sprite string  `yaml:"sprite"`
	Height float32 `yaml:"height"` // sprite height in tile units
}

// WorldConfig holds chunk layout and streaming settings.
type WorldConfig struct {
	ChunkWidth  int `yaml:"chunk_width"`
	ChunkHeight int `yaml:"chunk_height"`
	Margin      int `yaml:"margin"`      // tiles sampled around each chunk for seam-aware autotiling
	ViewRadius  int `yaml:"view_radius"` // in chunks
	Workers     int `yaml:"workers"`     // noise workers, 0 = GOMAXPROCS
}

// TilesetConfig points at the tileset lookup file.
type TilesetConfig struct {
	Lookup string `yaml:"lookup"` // empty uses the built-in layout
}

// StorageConfig holds chunk snapshot storage settings.
type StorageConfig struct {
	Path string `yaml:"path"` // empty disables snapshots
}

// ViewerConfig holds display settings for the chunk viewer.
type ViewerConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	Zoom       float32 `yaml:"zoom"` // pixels per tile
	Screenshot string  `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Planet: PlanetSettings{
			Seed:          1337,
			Noise:         "simplex",
			FeatureSize:   24,
			TerrainColor:  math.Color{R: 0.42, G: 0.71, B: 0.31, A: 1},
			WaterColor:    math.Color{R: 0.16, G: 0.38, B: 0.71, A: 1},
			Tree:          DecorationPrototype{Sprite: "tree", Height: 3},
			Bush:          DecorationPrototype{Sprite: "bush", Height: 1},
			TreeLeafColor: math.Color{R: 0.18, G: 0.55, B: 0.24, A: 1},
			TreeBaseColor: math.Color{R: 0.45, G: 0.3, B: 0.16, A: 1},
			BushColor:     math.Color{R: 0.27, G: 0.6, B: 0.22, A: 1},
		},
		World: WorldConfig{
			ChunkWidth:  16,
			ChunkHeight: 16,
			Margin:      1,
			ViewRadius:  2,
			Workers:     0,
		},
		Tileset: TilesetConfig{
			Lookup: "",
		},
		Storage: StorageConfig{
			Path: "",
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Zoom:       16,
			Screenshot: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values the generator cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Planet.FeatureSize <= 0 {
		errs = append(errs, fmt.Errorf("planet.feature_size must be positive, got %v", c.Planet.FeatureSize))
	}
	switch c.Planet.Noise {
	case "", "simplex", "perlin":
	default:
		errs = append(errs, fmt.Errorf("planet.noise must be simplex or perlin, got %q", c.Planet.Noise))
	}
	if c.World.ChunkWidth <= 0 || c.World.ChunkHeight <= 0 {
		errs = append(errs, fmt.Errorf("world chunk size must be positive, got %dx%d", c.World.ChunkWidth, c.World.ChunkHeight))
	}
	if c.World.Margin < 0 {
		errs = append(errs, fmt.Errorf("world.margin must not be negative, got %d", c.World.Margin))
	}
	if c.World.ViewRadius < 0 {
		errs = append(errs, fmt.Errorf("world.view_radius must not be negative, got %d", c.World.ViewRadius))
	}
	if c.World.Workers < 0 {
		errs = append(errs, fmt.Errorf("world.workers must not be negative, got %d", c.World.Workers))
	}
	return errors.Join(errs...)
}
