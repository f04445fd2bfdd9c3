package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagExercise   = flag.String("exercise", "", "Exercise: shapes, coloring or texturing")
	flagShape      = flag.String("shape", "", "Solid: cube, prism, pyramid or cylinder")
	flagSegments   = flag.Int("segments", 0, "Lateral segments of curved solids")
	flagMode       = flag.String("mode", "", "Render mode: fill, line or point")
	flagTask       = flag.String("task", "", "Coloring task name or number")
	flagTexture    = flag.String("texture", "", "Texture source: checkerboard, spiral or image")
	flagImage      = flag.String("image", "", "Image file for the image texture source")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagExercise != "" {
		cfg.Scene.Exercise = *flagExercise
	}
	if *flagShape != "" {
		cfg.Scene.Shape = *flagShape
	}
	if *flagSegments != 0 {
		cfg.Scene.Segments = *flagSegments
	}
	if *flagMode != "" {
		cfg.Scene.RenderMode = *flagMode
	}
	if *flagTask != "" {
		cfg.Scene.Task = *flagTask
	}
	if *flagTexture != "" {
		cfg.Textures.Source = *flagTexture
	}
	if *flagImage != "" {
		cfg.Textures.ImageFile = *flagImage
		if *flagTexture == "" {
			cfg.Textures.Source = "image"
		}
	}
}
