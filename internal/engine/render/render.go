// Package render drives one interactive exercise: it owns the camera,
// the current mesh and texture, and replays them against a rasterizer
// every frame.
package render

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/solidlab/internal/engine/camera"
	"github.com/Faultbox/solidlab/internal/engine/mesh"
	"github.com/Faultbox/solidlab/internal/engine/raster"
	"github.com/Faultbox/solidlab/internal/engine/texture"
	"github.com/Faultbox/solidlab/pkg/math"
)

// ErrNoMesh is returned by RenderFrame when no mesh has been built.
var ErrNoMesh = errors.New("render: no mesh")

// DefaultImagePath is the texture file the image source reads by default.
const DefaultImagePath = "media/texture.bmp"

// Options selects the exercise and its initial parameters.
type Options struct {
	Exercise Exercise
	Shape    mesh.Kind
	Segments int
	Radius   float32
	Height   float32
	Mode     raster.FillMode
	Task     Task

	Source      TextureSource
	ImagePath   string
	TextureSize int

	// Camera tunes spin and drag; the starting orbit comes from the preset.
	Camera camera.Settings

	// Overrides of the exercise preset, applied when positive.
	Distance float32
	FovY     float32
	Near     float32
	Far      float32
}

// DefaultOptions returns the shapes exercise with a 16-segment solid of
// radius 0.5 and height 1.
func DefaultOptions() Options {
	return Options{
		Exercise:    Shapes,
		Shape:       mesh.Cube,
		Segments:    16,
		Radius:      0.5,
		Height:      1,
		Mode:        raster.Fill,
		Task:        TaskColoredCube,
		Source:      SourceCheckerboard,
		ImagePath:   DefaultImagePath,
		TextureSize: 512,
		Camera:      camera.DefaultSettings(),
	}
}

// Frame reports what RenderFrame submitted.
type Frame struct {
	ModelView     math.Mat4
	TextureMatrix math.Mat4
	Faces         int
	Vertices      int
}

// Orchestrator owns the scene state. All methods must be called from the
// goroutine that owns the rasterizer.
type Orchestrator struct {
	opts    Options
	preset  Preset
	rast    raster.Rasterizer
	decoder texture.Decoder
	log     *zap.Logger

	ctrl     *camera.Controller
	proj     camera.Projection
	viewport [2]int

	mesh *mesh.Mesh
	lit  bool
	tint Tint

	slot   *TextureSlot
	loaded TextureSource
	closed bool
}

// New builds the initial mesh and, for the texturing exercise, the initial
// texture. A texture failure is logged and leaves the solid untextured.
func New(opts Options, r raster.Rasterizer, dec texture.Decoder, log *zap.Logger) (*Orchestrator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dec == nil {
		dec = texture.FileDecoder{}
	}
	if opts.TextureSize <= 0 {
		return nil, fmt.Errorf("texture size %d: %w", opts.TextureSize, texture.ErrInvalidSize)
	}
	if opts.ImagePath == "" {
		opts.ImagePath = DefaultImagePath
	}

	o := &Orchestrator{
		opts:    opts,
		rast:    r,
		decoder: dec,
		log:     log,
		slot:    NewTextureSlot(r),
	}
	if err := o.enter(opts.Exercise); err != nil {
		return nil, err
	}
	return o, nil
}

// enter switches to exercise e: preset, camera, mesh and texture.
func (o *Orchestrator) enter(e Exercise) error {
	preset := PresetFor(e)
	if o.opts.Distance > 0 {
		preset.Distance = o.opts.Distance
	}
	if preset.Projection.Kind == camera.Perspective {
		if o.opts.FovY > 0 {
			preset.Projection.FovY = o.opts.FovY
		}
		if o.opts.Near > 0 {
			preset.Projection.Near = o.opts.Near
		}
		if o.opts.Far > 0 {
			preset.Projection.Far = o.opts.Far
		}
	}

	next := o.opts
	next.Exercise = e
	scene, err := buildScene(next)
	if err != nil {
		return err
	}

	o.opts = next
	o.preset = preset
	o.apply(scene)

	settings := o.opts.Camera
	settings.OrbitX, settings.OrbitY = preset.OrbitX, preset.OrbitY
	o.ctrl = camera.NewController(settings)

	o.proj = preset.Projection
	if o.viewport != [2]int{} {
		o.uploadProjection()
	}
	o.rast.SetClearColor(preset.ClearColor)

	o.slot.Release()
	if preset.Textured {
		if err := o.loadTexture(o.opts.Source, o.opts.ImagePath); err != nil {
			o.log.Warn("initial texture unavailable",
				zap.Stringer("source", o.opts.Source),
				zap.Error(err))
		}
	}

	o.log.Info("exercise ready",
		zap.Stringer("exercise", e),
		zap.Stringer("projection", o.proj.Kind),
		zap.Int("faces", len(o.mesh.Faces)))
	return nil
}

// buildScene generates the mesh the options call for.
func buildScene(opts Options) (taskScene, error) {
	switch opts.Exercise {
	case Shapes:
		m, err := mesh.Generate(opts.Shape, opts.Segments, opts.Radius, opts.Height)
		return taskScene{mesh: m, lit: true}, err
	case Coloring:
		return buildTask(opts.Task)
	case Texturing:
		m, err := mesh.GenerateWith(opts.Shape, opts.Segments, opts.Radius, opts.Height,
			mesh.Options{Attribute: mesh.AttrTexCoord})
		return taskScene{mesh: m}, err
	default:
		return taskScene{}, fmt.Errorf("unknown exercise %d", int(opts.Exercise))
	}
}

func (o *Orchestrator) apply(s taskScene) {
	o.mesh = s.mesh
	o.lit = s.lit
	o.tint = s.tint
}

// rebuild regenerates the mesh for next. On failure the current mesh and
// options stay in place.
func (o *Orchestrator) rebuild(next Options) error {
	scene, err := buildScene(next)
	if err != nil {
		o.log.Warn("mesh rejected",
			zap.Stringer("shape", next.Shape),
			zap.Int("segments", next.Segments),
			zap.Error(err))
		return err
	}
	o.opts = next
	o.apply(scene)
	o.log.Debug("mesh rebuilt",
		zap.Stringer("kind", scene.mesh.Kind),
		zap.Int("faces", len(scene.mesh.Faces)),
		zap.Int("vertices", scene.mesh.VertexCount()))
	return nil
}

// loadTexture produces the texels of src and uploads them. Any failure keeps
// the current texture and source.
func (o *Orchestrator) loadTexture(src TextureSource, path string) error {
	size := o.opts.TextureSize

	var (
		buf *texture.Buffer
		err error
	)
	if p, ok := src.pattern(); ok {
		buf, err = texture.Synthesize(p, size, size)
	} else if src == SourceImage {
		buf, err = o.decoder.Decode(path, size, size)
	} else {
		err = fmt.Errorf("unknown texture source %d", int(src))
	}
	if err != nil {
		return err
	}

	if err := o.slot.Replace(buf); err != nil {
		return fmt.Errorf("uploading texture: %w", err)
	}
	o.loaded = src
	o.opts.Source = src
	if src == SourceImage {
		o.opts.ImagePath = path
	}
	o.log.Debug("texture loaded",
		zap.Stringer("source", src),
		zap.Int("size", size))
	return nil
}

// SetExercise switches to another exercise, resetting the camera.
func (o *Orchestrator) SetExercise(e Exercise) error {
	if e == o.opts.Exercise {
		return nil
	}
	return o.enter(e)
}

// SetShape selects the solid. The coloring exercise keeps the shape for
// later but draws its task's mesh.
func (o *Orchestrator) SetShape(k mesh.Kind) error {
	next := o.opts
	next.Shape = k
	if o.opts.Exercise == Coloring {
		if _, err := mesh.Generate(k, next.Segments, next.Radius, next.Height); err != nil {
			return err
		}
		o.opts = next
		return nil
	}
	return o.rebuild(next)
}

// SetGeometry changes the segment count, radius and height of curved
// solids. An invalid segment count leaves the current mesh in place, even
// while the cube, which has no segments, is shown.
func (o *Orchestrator) SetGeometry(segments int, radius, height float32) error {
	if segments < mesh.MinSegments {
		return fmt.Errorf("%d segments: %w", segments, mesh.ErrInvalidSegments)
	}
	next := o.opts
	next.Segments, next.Radius, next.Height = segments, radius, height
	if o.opts.Exercise == Coloring {
		if _, err := mesh.Generate(next.Shape, segments, radius, height); err != nil {
			return err
		}
		o.opts = next
		return nil
	}
	return o.rebuild(next)
}

// SetTask selects a coloring task.
func (o *Orchestrator) SetTask(t Task) error {
	if _, ok := taskNames[t]; !ok {
		return fmt.Errorf("unknown coloring task %d", int(t))
	}
	next := o.opts
	next.Task = t
	if o.opts.Exercise != Coloring {
		o.opts = next
		return nil
	}
	return o.rebuild(next)
}

// SetRenderMode selects fill, line or point rasterization. Geometry is
// unaffected.
func (o *Orchestrator) SetRenderMode(m raster.FillMode) error {
	if m < raster.Fill || m > raster.Point {
		return fmt.Errorf("unknown render mode %d", int(m))
	}
	o.opts.Mode = m
	return nil
}

// SetTextureSource regenerates the texture from src. Outside the texturing
// exercise the choice is only remembered.
func (o *Orchestrator) SetTextureSource(src TextureSource) error {
	return o.setTexture(src, o.opts.ImagePath)
}

// SetImagePath switches to the image source reading path.
func (o *Orchestrator) SetImagePath(path string) error {
	return o.setTexture(SourceImage, path)
}

func (o *Orchestrator) setTexture(src TextureSource, path string) error {
	if int(src) < 0 || int(src) >= len(sourceNames) {
		return fmt.Errorf("unknown texture source %d", int(src))
	}
	if !o.preset.Textured {
		o.opts.Source = src
		o.opts.ImagePath = path
		return nil
	}
	if err := o.loadTexture(src, path); err != nil {
		o.log.Warn("texture not replaced",
			zap.Stringer("source", src),
			zap.String("path", path),
			zap.Error(err))
		return err
	}
	return nil
}

// AdjustScale changes the texture repeat factor by delta.
func (o *Orchestrator) AdjustScale(delta float32) {
	o.ctrl.AdjustScale(delta)
}

// ResetScale restores the texture repeat factor to 1.
func (o *Orchestrator) ResetScale() {
	o.ctrl.ResetScale()
}

// OnResize sets the viewport and uploads the projection for the new aspect.
func (o *Orchestrator) OnResize(width, height int) {
	o.viewport = [2]int{width, height}
	o.uploadProjection()
}

func (o *Orchestrator) uploadProjection() {
	w, h := o.viewport[0], o.viewport[1]
	o.proj.Resize(w, h)
	o.rast.SetViewport(0, 0, w, h)
	o.rast.SetProjection(o.proj.Matrix())
}

// OnPointerPress starts an orbit drag at (x, y).
func (o *Orchestrator) OnPointerPress(x, y float32) {
	o.ctrl.Press(math.Vec2{X: x, Y: y})
}

// OnPointerMove continues an orbit drag.
func (o *Orchestrator) OnPointerMove(x, y float32) {
	o.ctrl.Move(math.Vec2{X: x, Y: y})
}

// OnPointerRelease ends an orbit drag.
func (o *Orchestrator) OnPointerRelease() {
	o.ctrl.Release()
}

// OnTick advances the automatic spin.
func (o *Orchestrator) OnTick() {
	o.ctrl.Tick()
}

// Camera returns a snapshot of the camera state.
func (o *Orchestrator) Camera() camera.State {
	return o.ctrl.State()
}

// Options returns the current selections.
func (o *Orchestrator) Options() Options {
	return o.opts
}

// Projection returns the projection in use.
func (o *Orchestrator) Projection() camera.Projection {
	return o.proj
}

// Mesh returns the mesh drawn each frame.
func (o *Orchestrator) Mesh() *mesh.Mesh {
	return o.mesh
}

// Textured reports whether the frame binds a texture.
func (o *Orchestrator) Textured() bool {
	return o.preset.Textured && o.slot.Loaded()
}

// RenderFrame clears the target, loads the matrices and state of the
// current exercise, and submits every face of the mesh.
func (o *Orchestrator) RenderFrame() (Frame, error) {
	o.rast.Clear(raster.ClearColor | raster.ClearDepth)
	if o.mesh == nil || o.closed {
		return Frame{}, ErrNoMesh
	}

	frame := Frame{
		ModelView:     o.ctrl.ModelView(o.preset.Policy, o.preset.Distance),
		TextureMatrix: math.Identity(),
	}
	o.rast.LoadModelView(frame.ModelView)
	o.rast.SetFillMode(o.opts.Mode)
	o.rast.SetLighting(o.lit)

	if o.Textured() {
		s := o.ctrl.State().TextureScale
		frame.TextureMatrix = math.Scale(s, s, s)
		o.rast.BindTexture(o.slot.Handle())
	} else {
		o.rast.BindTexture(0)
	}
	o.rast.LoadTextureMatrix(frame.TextureMatrix)

	spin := o.ctrl.State().SpinAngle
	for _, f := range o.mesh.Faces {
		o.rast.Begin(f.Primitive)
		for _, v := range f.Vertices {
			if o.tint != nil {
				v.Color = o.tint(v, spin)
			}
			o.rast.Emit(v)
		}
		o.rast.End()
		frame.Faces++
		frame.Vertices += len(f.Vertices)
	}
	return frame, nil
}

// Describe summarizes the current selections, for a window title.
func (o *Orchestrator) Describe() string {
	switch o.opts.Exercise {
	case Coloring:
		return fmt.Sprintf("%s: task %d %s [%s]", o.opts.Exercise, int(o.opts.Task), o.opts.Task, o.opts.Mode)
	case Texturing:
		source := "none"
		if o.slot.Loaded() {
			source = o.loaded.String()
		}
		return fmt.Sprintf("%s: %s, %s x%.2f [%s]", o.opts.Exercise, o.opts.Shape, source,
			o.ctrl.State().TextureScale, o.opts.Mode)
	default:
		return fmt.Sprintf("%s: %s n=%d [%s]", o.opts.Exercise, o.opts.Shape, o.opts.Segments, o.opts.Mode)
	}
}

// Close releases the texture. The orchestrator renders nothing afterwards.
func (o *Orchestrator) Close() {
	if o.closed {
		return
	}
	o.slot.Release()
	o.closed = true
	o.log.Debug("orchestrator closed")
}
