package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 900 || cfg.Graphics.Height != 700 {
		t.Errorf("expected 900x700, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.PointSize != 8 || cfg.Graphics.LineWidth != 2 {
		t.Errorf("expected point size 8 and line width 2, got %v and %v",
			cfg.Graphics.PointSize, cfg.Graphics.LineWidth)
	}

	if cfg.Scene.Exercise != "shapes" {
		t.Errorf("expected exercise 'shapes', got %s", cfg.Scene.Exercise)
	}
	if cfg.Scene.Segments != 16 {
		t.Errorf("expected 16 segments, got %d", cfg.Scene.Segments)
	}
	if cfg.Scene.Distance != 0 {
		t.Errorf("expected no distance override, got %v", cfg.Scene.Distance)
	}

	if cfg.Camera.Tick != 20*time.Millisecond {
		t.Errorf("expected 20ms tick, got %v", cfg.Camera.Tick)
	}
	if cfg.Camera.Sensitivity != 0.5 {
		t.Errorf("expected sensitivity 0.5, got %v", cfg.Camera.Sensitivity)
	}
	if cfg.Camera.MinScale != 0.25 || cfg.Camera.ScaleStep != 0.25 {
		t.Errorf("expected scale step and floor 0.25, got %v and %v",
			cfg.Camera.ScaleStep, cfg.Camera.MinScale)
	}
	if cfg.Camera.FovY != 45 || cfg.Camera.Near != 0.1 || cfg.Camera.Far != 50 {
		t.Errorf("unexpected perspective defaults %+v", cfg.Camera)
	}

	if cfg.Textures.Size != 512 {
		t.Errorf("expected texture size 512, got %d", cfg.Textures.Size)
	}
	if cfg.Textures.ImageFile != "media/texture.bmp" {
		t.Errorf("expected image media/texture.bmp, got %s", cfg.Textures.ImageFile)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

scene:
  exercise: texturing
  shape: cylinder
  segments: 48
  render_mode: line
  distance: 6.5

camera:
  tick: 40ms
  sensitivity: 0.25
  fov: 60

textures:
  size: 256
  source: spiral

logging:
  level: "debug"
  log_file: "solidlab.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Scene.Exercise != "texturing" || cfg.Scene.Shape != "cylinder" {
		t.Errorf("expected texturing cylinder, got %s %s", cfg.Scene.Exercise, cfg.Scene.Shape)
	}
	if cfg.Scene.Segments != 48 {
		t.Errorf("expected 48 segments, got %d", cfg.Scene.Segments)
	}
	if cfg.Scene.RenderMode != "line" {
		t.Errorf("expected render mode line, got %s", cfg.Scene.RenderMode)
	}
	if cfg.Scene.Distance != 6.5 {
		t.Errorf("expected distance 6.5, got %v", cfg.Scene.Distance)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Scene.Radius != 0.5 {
		t.Errorf("expected default radius 0.5, got %v", cfg.Scene.Radius)
	}

	if cfg.Camera.Tick != 40*time.Millisecond {
		t.Errorf("expected 40ms tick, got %v", cfg.Camera.Tick)
	}
	if cfg.Camera.Sensitivity != 0.25 {
		t.Errorf("expected sensitivity 0.25, got %v", cfg.Camera.Sensitivity)
	}
	if cfg.Camera.FovY != 60 {
		t.Errorf("expected fov 60, got %v", cfg.Camera.FovY)
	}
	if cfg.Camera.Near != 0.1 {
		t.Errorf("expected default near 0.1, got %v", cfg.Camera.Near)
	}

	if cfg.Textures.Size != 256 || cfg.Textures.Source != "spiral" {
		t.Errorf("expected 256 spiral, got %d %s", cfg.Textures.Size, cfg.Textures.Source)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "solidlab.log" {
		t.Errorf("expected log file 'solidlab.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
scene:
  segments: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
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
	os.Chdir(tmpDir)
	// Keep a real user config out of the search.
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.Shape = "pyramid"
	cfg.Camera.Tick = 10 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Scene.Shape != "pyramid" || loaded.Camera.Tick != 10*time.Millisecond {
		t.Errorf("reloaded %s %v", loaded.Scene.Shape, loaded.Camera.Tick)
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
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "scene flags",
			setup: func() {
				*flagExercise = "coloring"
				*flagTask = "4"
				*flagSegments = 32
				*flagMode = "point"
			},
			verify: func(cfg *Config) {
				if cfg.Scene.Exercise != "coloring" || cfg.Scene.Task != "4" {
					t.Errorf("expected coloring task 4, got %s %s", cfg.Scene.Exercise, cfg.Scene.Task)
				}
				if cfg.Scene.Segments != 32 {
					t.Errorf("expected 32 segments, got %d", cfg.Scene.Segments)
				}
				if cfg.Scene.RenderMode != "point" {
					t.Errorf("expected point mode, got %s", cfg.Scene.RenderMode)
				}
			},
			teardown: func() {
				*flagExercise = ""
				*flagTask = ""
				*flagSegments = 0
				*flagMode = ""
			},
		},
		{
			name:  "image flag selects the image source",
			setup: func() { *flagImage = "wood.png" },
			verify: func(cfg *Config) {
				if cfg.Textures.ImageFile != "wood.png" || cfg.Textures.Source != "image" {
					t.Errorf("expected image source wood.png, got %s %s", cfg.Textures.Source, cfg.Textures.ImageFile)
				}
			},
			teardown: func() { *flagImage = "" },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
scene:
  shape: prism
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	*flagShape = "pyramid"
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagShape = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flags beat the file; the file beats the defaults.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Scene.Shape != "pyramid" {
		t.Errorf("expected shape pyramid from flag, got %s", cfg.Scene.Shape)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick", func(c *Config) { c.Camera.Tick = 0 }},
		{"negative tick", func(c *Config) { c.Camera.Tick = -time.Millisecond }},
		{"zero texture size", func(c *Config) { c.Textures.Size = 0 }},
		{"negative sensitivity", func(c *Config) { c.Camera.Sensitivity = -0.5 }},
		{"negative scale step", func(c *Config) { c.Camera.ScaleStep = -0.25 }},
		{"near beyond far", func(c *Config) { c.Camera.Near, c.Camera.Far = 10, 1 }},
		{"near equals far", func(c *Config) { c.Camera.Near, c.Camera.Far = 5, 5 }},
		{"fov too wide", func(c *Config) { c.Camera.FovY = 180 }},
		{"too few segments", func(c *Config) { c.Scene.Segments = 2 }},
		{"zero radius", func(c *Config) { c.Scene.Radius = 0 }},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"zero line width", func(c *Config) { c.Graphics.LineWidth = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults rejected: %v", err)
	}
	cfg := Default()
	cfg.Camera.FovY, cfg.Camera.Near, cfg.Camera.Far = 0, 0, 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero projection overrides rejected: %v", err)
	}
}

func TestLoadRejectsZeroTick(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  tick: 0s\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestSaveWritesUserConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("APPDATA", tmpDir)

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(ConfigDir(), "config.yaml") {
		t.Errorf("path = %s, want under %s", path, ConfigDir())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved config missing: %v", err)
	}
}
