package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Planet.Seed != 1337 {
		t.Errorf("expected seed 1337, got %d", cfg.Planet.Seed)
	}
	if cfg.Planet.FeatureSize != 24 {
		t.Errorf("expected feature size 24, got %v", cfg.Planet.FeatureSize)
	}
	if cfg.Planet.Tree.Height != 3 {
		t.Errorf("expected tree height 3, got %v", cfg.Planet.Tree.Height)
	}

	if cfg.World.ChunkWidth != 16 || cfg.World.ChunkHeight != 16 {
		t.Errorf("expected 16x16 chunks, got %dx%d", cfg.World.ChunkWidth, cfg.World.ChunkHeight)
	}
	if cfg.World.Margin != 1 {
		t.Errorf("expected margin 1, got %d", cfg.World.Margin)
	}

	if cfg.Tileset.Lookup != "" {
		t.Errorf("expected built-in tileset, got %s", cfg.Tileset.Lookup)
	}
	if cfg.Storage.Path != "" {
		t.Errorf("expected storage disabled, got %s", cfg.Storage.Path)
	}

	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Viewer.Screenshot != "screenshots" {
		t.Errorf("expected screenshot dir 'screenshots', got %s", cfg.Viewer.Screenshot)
	}
	if cfg.Planet.Noise != "simplex" {
		t.Errorf("expected simplex noise, got %s", cfg.Planet.Noise)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "solis.yaml")

	yamlContent := `
planet:
  seed: 42
  feature_size: 32.5
  terrain_color: "#6BB54F"
  water_color: "#2961B5FF"
  tree:
    sprite: pine
    height: 4
  bush_color: "#00FF00"

world:
  chunk_width: 32
  chunk_height: 8
  margin: 2
  view_radius: 3

tileset:
  lookup: tiles/grass.yaml

storage:
  path: /var/lib/solis/chunks.db

logging:
  level: "debug"
  log_file: "solis.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Planet.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Planet.Seed)
	}
	if cfg.Planet.FeatureSize != 32.5 {
		t.Errorf("expected feature size 32.5, got %v", cfg.Planet.FeatureSize)
	}
	if got := cfg.Planet.TerrainColor.Hex(); got != "#6BB54FFF" {
		t.Errorf("expected terrain color #6BB54FFF, got %s", got)
	}
	if cfg.Planet.Tree.Sprite != "pine" || cfg.Planet.Tree.Height != 4 {
		t.Errorf("unexpected tree prototype %+v", cfg.Planet.Tree)
	}
	// Fields not in the file keep their defaults.
	if cfg.Planet.Bush.Height != 1 {
		t.Errorf("expected default bush height 1, got %v", cfg.Planet.Bush.Height)
	}

	if cfg.World.ChunkWidth != 32 || cfg.World.ChunkHeight != 8 {
		t.Errorf("expected 32x8 chunks, got %dx%d", cfg.World.ChunkWidth, cfg.World.ChunkHeight)
	}
	if cfg.World.Margin != 2 || cfg.World.ViewRadius != 3 {
		t.Errorf("unexpected world config %+v", cfg.World)
	}

	wantLookup := filepath.Join(tmpDir, "tiles", "grass.yaml")
	if cfg.Tileset.Lookup != wantLookup {
		t.Errorf("expected tileset %s, got %s", wantLookup, cfg.Tileset.Lookup)
	}
	if cfg.Storage.Path != "/var/lib/solis/chunks.db" {
		t.Errorf("unexpected storage path %s", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "solis.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
planet:
  seed: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileBadColor(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "color.yaml")

	if err := os.WriteFile(configPath, []byte("planet:\n  water_color: \"#12\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for malformed color, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/solis.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "zero feature size", mutate: func(c *Config) { c.Planet.FeatureSize = 0 }, wantErr: "feature_size"},
		{name: "empty chunk", mutate: func(c *Config) { c.World.ChunkWidth = 0 }, wantErr: "chunk size"},
		{name: "negative margin", mutate: func(c *Config) { c.World.Margin = -1 }, wantErr: "margin"},
		{name: "negative radius", mutate: func(c *Config) { c.World.ViewRadius = -2 }, wantErr: "view_radius"},
		{name: "negative workers", mutate: func(c *Config) { c.World.Workers = -1 }, wantErr: "workers"},
		{name: "unknown noise", mutate: func(c *Config) { c.Planet.Noise = "value" }, wantErr: "planet.noise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "solis.yaml"), []byte("world:\n  chunk_width: 8\n"), 0o644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find solis.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = "-99" },
			verify: func(cfg *Config) {
				if cfg.Planet.Seed != -99 {
					t.Errorf("expected seed -99, got %d", cfg.Planet.Seed)
				}
			},
			teardown: func() { *flagSeed = "" },
		},
		{
			name:  "noise flag",
			setup: func() { *flagNoise = "perlin" },
			verify: func(cfg *Config) {
				if cfg.Planet.Noise != "perlin" {
					t.Errorf("expected perlin noise, got %s", cfg.Planet.Noise)
				}
			},
			teardown: func() { *flagNoise = "" },
		},
		{
			name:  "radius and db flags",
			setup: func() { *flagRadius = 0; *flagDB = "chunks.db" },
			verify: func(cfg *Config) {
				if cfg.World.ViewRadius != 0 {
					t.Errorf("expected radius 0, got %d", cfg.World.ViewRadius)
				}
				if cfg.Storage.Path != "chunks.db" {
					t.Errorf("expected db chunks.db, got %s", cfg.Storage.Path)
				}
			},
			teardown: func() { *flagRadius = -1; *flagDB = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth = 2560; *flagHeight = 1440 },
			verify: func(cfg *Config) {
				if cfg.Viewer.Width != 2560 || cfg.Viewer.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
				}
			},
			teardown: func() { *flagWidth = 0; *flagHeight = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags failed: %v", err)
			}
			tt.verify(cfg)
		})
	}
}

func TestApplyFlagsBadSeed(t *testing.T) {
	*flagSeed = "forty-two"
	defer func() { *flagSeed = "" }()

	if err := applyFlags(Default()); err == nil {
		t.Error("expected error for non-numeric seed")
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "solis.yaml")

	yamlContent := `
planet:
  seed: 7
world:
  view_radius: 5
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagRadius = 1
	defer func() {
		*flagConfig = ""
		*flagRadius = -1
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Radius comes from the flag, seed from the file.
	if cfg.World.ViewRadius != 1 {
		t.Errorf("expected radius 1 from flag, got %d", cfg.World.ViewRadius)
	}
	if cfg.Planet.Seed != 7 {
		t.Errorf("expected seed 7 from file, got %d", cfg.Planet.Seed)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "solis.yaml")

	cfg := Default()
	cfg.Planet.Seed = 99
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if loaded.Planet.Seed != 99 {
		t.Errorf("expected seed 99, got %d", loaded.Planet.Seed)
	}
	if loaded.Planet.WaterColor.Hex() != cfg.Planet.WaterColor.Hex() {
		t.Errorf("water color changed: %s -> %s", cfg.Planet.WaterColor.Hex(), loaded.Planet.WaterColor.Hex())
	}
}

func TestExampleMatchesDefault(t *testing.T) {
	cfg, err := LoadFile(filepath.Join("..", "..", "configs", "solis.example.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	def := Default()
	if cfg.Planet.Seed != def.Planet.Seed || cfg.Planet.Noise != def.Planet.Noise {
		t.Errorf("planet = %+v", cfg.Planet)
	}
	if cfg.Planet.TerrainColor.Hex() != def.Planet.TerrainColor.Hex() {
		t.Errorf("terrain color = %s, want %s", cfg.Planet.TerrainColor.Hex(), def.Planet.TerrainColor.Hex())
	}
	if cfg.World != def.World {
		t.Errorf("world = %+v, want %+v", cfg.World, def.World)
	}
	if cfg.Viewer != def.Viewer {
		t.Errorf("viewer = %+v, want %+v", cfg.Viewer, def.Viewer)
	}
	if cfg.Tileset.Lookup == "" {
		t.Error("example should point at the example tileset")
	}
}
