package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// minSegments mirrors the mesh package's lower bound on lateral segments.
const minSegments = 3

// Load loads configuration with priority: defaults < file < flags, and
// validates the result.
func Load() (*Config, error) {
	cfg := Default()

	// An explicit path takes priority over the standard locations.
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the numeric settings the app would otherwise trip over at
// runtime. Names (exercise, shape, mode, task, source) are resolved by the
// app. Zero fov, near, far and distance keep the exercise defaults.
func (c *Config) Validate() error {
	g, s, cam := c.Graphics, c.Scene, c.Camera
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return invalid("graphics: window size %dx%d", g.Width, g.Height)
	case g.PointSize <= 0 || g.LineWidth <= 0:
		return invalid("graphics: point_size %v and line_width %v must be positive", g.PointSize, g.LineWidth)
	case s.Segments < minSegments:
		return invalid("scene.segments %d is below %d", s.Segments, minSegments)
	case s.Radius <= 0 || s.Height <= 0:
		return invalid("scene: radius %v and height %v must be positive", s.Radius, s.Height)
	case s.Distance < 0:
		return invalid("scene.distance %v is negative", s.Distance)
	case cam.Tick <= 0:
		return invalid("camera.tick %s must be positive", cam.Tick)
	case cam.Sensitivity < 0 || cam.ScaleStep < 0 || cam.MinScale < 0:
		return invalid("camera: sensitivity %v, scale_step %v and min_scale %v must not be negative",
			cam.Sensitivity, cam.ScaleStep, cam.MinScale)
	case cam.FovY < 0 || cam.FovY >= 180:
		return invalid("camera.fov %v is outside [0, 180)", cam.FovY)
	case cam.Near < 0 || cam.Far < 0:
		return invalid("camera: near %v and far %v must not be negative", cam.Near, cam.Far)
	case cam.Near > 0 && cam.Far > 0 && cam.Near >= cam.Far:
		return invalid("camera: near %v must be less than far %v", cam.Near, cam.Far)
	case c.Textures.Size <= 0:
		return invalid("textures.size %d must be positive", c.Textures.Size)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "SolidLab")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "SolidLab")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "solidlab")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "solidlab")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	return nil
}
