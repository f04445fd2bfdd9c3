// Package config handles solidlab configuration loading and management.
package config

import "time"

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	Textures TexturesConfig `yaml:"textures"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rasterization settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	PointSize  float32 `yaml:"point_size"`
	LineWidth  float32 `yaml:"line_width"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// SceneConfig selects the exercise and the solid it starts with.
// Names are resolved by the command, so unknown values fail at startup.
type SceneConfig struct {
	Exercise   string  `yaml:"exercise"` // shapes, coloring, texturing
	Shape      string  `yaml:"shape"`    // cube, prism, pyramid, cylinder
	Segments   int     `yaml:"segments"` // lateral segments of curved solids
	Radius     float32 `yaml:"radius"`
	Height     float32 `yaml:"height"`
	RenderMode string  `yaml:"render_mode"` // fill, line, point
	Task       string  `yaml:"task"`        // coloring task name or number
	Distance   float32 `yaml:"distance"`    // 0 keeps the exercise default
}

// CameraConfig tunes the spin, drag and projection.
type CameraConfig struct {
	Tick        time.Duration `yaml:"tick"`
	SpinStep    float32       `yaml:"spin_step"`   // degrees per tick
	Sensitivity float32       `yaml:"sensitivity"` // degrees per dragged pixel
	ScaleStep   float32       `yaml:"scale_step"`
	MinScale    float32       `yaml:"min_scale"`
	FovY        float32       `yaml:"fov"`
	Near        float32       `yaml:"near"`
	Far         float32       `yaml:"far"`
}

// TexturesConfig holds texture sources and the artifact directory.
type TexturesConfig struct {
	Size      int    `yaml:"size"`
	Source    string `yaml:"source"` // checkerboard, spiral, image
	ImageFile string `yaml:"image_file"`
	MediaDir  string `yaml:"media_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      900,
			Height:     700,
			Fullscreen: false,
			VSync:      true,
			PointSize:  8,
			LineWidth:  2,

			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			Exercise:   "shapes",
			Shape:      "cube",
			Segments:   16,
			Radius:     0.5,
			Height:     1,
			RenderMode: "fill",
			Task:       "colored-cube",
		},
		Camera: CameraConfig{
			Tick:        20 * time.Millisecond,
			SpinStep:    1,
			Sensitivity: 0.5,
			ScaleStep:   0.25,
			MinScale:    0.25,
			FovY:        45,
			Near:        0.1,
			Far:         50,
		},
		Textures: TexturesConfig{
			Size:      512,
			Source:    "checkerboard",
			ImageFile: "media/texture.bmp",
			MediaDir:  "media",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
