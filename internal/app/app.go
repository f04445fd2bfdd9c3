// Package app runs the interactive window: it wires the SDL window, the GL
// renderer and the render orchestrator together and drives them from the
// event loop and the spin ticker.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/solidlab/internal/config"
	"github.com/Faultbox/solidlab/internal/engine/capture"
	"github.com/Faultbox/solidlab/internal/engine/input"
	"github.com/Faultbox/solidlab/internal/engine/mesh"
	"github.com/Faultbox/solidlab/internal/engine/raster"
	"github.com/Faultbox/solidlab/internal/engine/render"
	"github.com/Faultbox/solidlab/internal/engine/renderer"
	"github.com/Faultbox/solidlab/internal/engine/texture"
	"github.com/Faultbox/solidlab/internal/engine/window"
	"github.com/Faultbox/solidlab/internal/logger"
)

const title = "solidlab"

// App is the running application.
type App struct {
	config   *config.Config
	running  bool
	log      *zap.Logger
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	orch     *render.Orchestrator
	ticker   *time.Ticker
	capture  *capture.Capturer

	// captureNext saves the next frame before it is presented.
	captureNext bool

	// picked receives paths chosen in the file dialog, which runs off the
	// main thread.
	picked chan string
	title  string
}

// New creates the window, the GL renderer and the orchestrator.
func New(cfg *config.Config) (*App, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  cfg,
		log:     logger.Named("app"),
		picked:  make(chan string, 1),
		capture: capture.New(cfg.Graphics.ScreenshotDir, title),
	}

	if err := ensureMedia(cfg.Textures.MediaDir, cfg.Textures.ImageFile, a.log); err != nil {
		a.log.Warn("texture images not generated",
			zap.String("dir", cfg.Textures.MediaDir),
			zap.Error(err))
	}

	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	a.renderer, err = renderer.New(renderer.Config{
		PointSize: cfg.Graphics.PointSize,
		LineWidth: cfg.Graphics.LineWidth,
	}, logger.Named("gl"))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.orch, err = render.New(opts, a.renderer, texture.FileDecoder{}, logger.Named("render"))
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	a.orch.OnResize(a.window.DrawableSize())

	a.input = input.New()
	a.log.Info("app initialized", zap.Stringer("exercise", opts.Exercise))
	return a, nil
}

// Run processes events, advances the spin on every tick and draws a frame
// per loop iteration until the window is closed.
func (a *App) Run() error {
	a.running = true
	a.ticker = time.NewTicker(a.config.Camera.Tick)
	defer a.ticker.Stop()

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop", zap.Duration("tick", a.config.Camera.Tick))
	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}
		for _, e := range a.input.Events() {
			a.handle(e)
		}

		select {
		case <-a.ticker.C:
			a.orch.OnTick()
		case path := <-a.picked:
			a.loadImage(path)
		default:
		}

		if _, err := a.orch.RenderFrame(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.renderer.Flush()
		if a.captureNext {
			a.captureNext = false
			a.saveFrame()
		}
		a.window.SwapBuffers()
		a.updateTitle()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// Close stops the scene and releases GL and window resources.
func (a *App) Close() {
	a.log.Info("closing app")
	if a.orch != nil {
		a.orch.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handle(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		// Event sizes are in screen coordinates; the viewport needs pixels.
		a.orch.OnResize(a.window.DrawableSize())
	case input.EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			a.orch.OnPointerPress(float32(e.MouseX), float32(e.MouseY))
		}
	case input.EventMouseMove:
		a.orch.OnPointerMove(float32(e.MouseX), float32(e.MouseY))
	case input.EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			a.orch.OnPointerRelease()
		}
	case input.EventDropFile:
		a.loadImage(e.Path)
	case input.EventKeyDown:
		a.perform(bindKey(e.Key, e.Shift))
	}
}

func (a *App) perform(act Action) {
	opts := a.orch.Options()

	var err error
	switch act.Kind {
	case ActionQuit:
		a.running = false
	case ActionSelect:
		if opts.Exercise == render.Coloring {
			err = a.orch.SetTask(render.Tasks()[act.Index])
		} else if act.Index < len(mesh.Kinds()) {
			err = a.orch.SetShape(mesh.Kinds()[act.Index])
		}
	case ActionExercise:
		err = a.orch.SetExercise(render.Exercise(act.Index))
	case ActionCycleMode:
		modes := raster.Modes()
		err = a.orch.SetRenderMode(modes[(int(opts.Mode)+1)%len(modes)])
	case ActionCycleSource:
		sources := render.Sources()
		err = a.orch.SetTextureSource(sources[(int(opts.Source)+1)%len(sources)])
	case ActionOpenImage:
		a.openFileDialog()
	case ActionScaleUp:
		a.orch.AdjustScale(a.config.Camera.ScaleStep)
	case ActionScaleDown:
		a.orch.AdjustScale(-a.config.Camera.ScaleStep)
	case ActionScaleReset:
		a.orch.ResetScale()
	case ActionMoreSegments:
		err = a.orch.SetGeometry(opts.Segments+1, opts.Radius, opts.Height)
	case ActionFewerSegments:
		err = a.orch.SetGeometry(opts.Segments-1, opts.Radius, opts.Height)
	case ActionScreenshot:
		a.captureNext = true
	case ActionFullscreen:
		err = a.window.SetFullscreen(!a.window.Fullscreen())
	}
	if err != nil {
		a.log.Warn("action rejected", zap.Int("action", int(act.Kind)), zap.Error(err))
	}
}

// openFileDialog asks for a texture image without blocking the loop; the
// choice is applied on the main thread.
func (a *App) openFileDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Images", "bmp", "png", "jpg", "jpeg", "tga").
			Filter("All Files", "*").
			Title("Open texture image").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				a.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case a.picked <- path:
		default:
		}
	}()
}

func (a *App) loadImage(path string) {
	if err := a.orch.SetImagePath(path); err != nil {
		a.log.Warn("image not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	a.log.Info("image loaded", zap.String("path", path))
}

func (a *App) saveFrame() {
	w, h := a.window.DrawableSize()
	path, err := a.capture.Save(a.renderer.ReadPixels(w, h), w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) updateTitle() {
	t := title + " | " + a.orch.Describe()
	if t != a.title {
		a.window.SetTitle(t)
		a.title = t
	}
}
