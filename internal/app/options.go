package app

import (
	"fmt"

	"github.com/Faultbox/solidlab/internal/config"
	"github.com/Faultbox/solidlab/internal/engine/camera"
	"github.com/Faultbox/solidlab/internal/engine/mesh"
	"github.com/Faultbox/solidlab/internal/engine/raster"
	"github.com/Faultbox/solidlab/internal/engine/render"
)

// OptionsFromConfig resolves the named selections of cfg into orchestrator
// options. Unknown names are errors.
func OptionsFromConfig(cfg *config.Config) (render.Options, error) {
	opts := render.DefaultOptions()

	var err error
	if opts.Exercise, err = render.ParseExercise(cfg.Scene.Exercise); err != nil {
		return opts, fmt.Errorf("scene.exercise: %w", err)
	}
	if opts.Shape, err = mesh.ParseKind(cfg.Scene.Shape); err != nil {
		return opts, fmt.Errorf("scene.shape: %w", err)
	}
	if opts.Mode, err = raster.ParseFillMode(cfg.Scene.RenderMode); err != nil {
		return opts, fmt.Errorf("scene.render_mode: %w", err)
	}
	if opts.Task, err = render.ParseTask(cfg.Scene.Task); err != nil {
		return opts, fmt.Errorf("scene.task: %w", err)
	}
	if opts.Source, err = render.ParseTextureSource(cfg.Textures.Source); err != nil {
		return opts, fmt.Errorf("textures.source: %w", err)
	}

	opts.Segments = cfg.Scene.Segments
	opts.Radius = cfg.Scene.Radius
	opts.Height = cfg.Scene.Height
	opts.Distance = cfg.Scene.Distance

	opts.ImagePath = cfg.Textures.ImageFile
	opts.TextureSize = cfg.Textures.Size

	opts.Camera = camera.Settings{
		SpinStep:    cfg.Camera.SpinStep,
		Sensitivity: cfg.Camera.Sensitivity,
		MinScale:    cfg.Camera.MinScale,
	}
	opts.FovY = cfg.Camera.FovY
	opts.Near = cfg.Camera.Near
	opts.Far = cfg.Camera.Far
	return opts, nil
}
