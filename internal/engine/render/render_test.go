package render

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/solidlab/internal/engine/camera"
	"github.com/Faultbox/solidlab/internal/engine/mesh"
	"github.com/Faultbox/solidlab/internal/engine/raster"
	"github.com/Faultbox/solidlab/internal/engine/texture"
	"github.com/Faultbox/solidlab/pkg/math"
)

// stubDecoder returns a solid buffer, or err when set.
type stubDecoder struct {
	err   error
	calls int
}

func (d *stubDecoder) Decode(path string, w, h int) (*texture.Buffer, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return texture.NewBuffer(w, h)
}

func newOrchestrator(t *testing.T, opts Options) (*Orchestrator, *raster.Recorder, *stubDecoder) {
	t.Helper()
	rec := raster.NewRecorder()
	dec := &stubDecoder{}
	opts.TextureSize = 16
	o, err := New(opts, rec, dec, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	o.OnResize(800, 600)
	return o, rec, dec
}

func TestRenderFrameCallOrder(t *testing.T) {
	o, rec, _ := newOrchestrator(t, DefaultOptions())
	rec.Reset()

	frame, err := o.RenderFrame()
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	ops := rec.Ops()
	want := []raster.Op{
		raster.OpClear,
		raster.OpLoadModelView,
		raster.OpSetFillMode,
		raster.OpSetLighting,
		raster.OpBindTexture,
		raster.OpLoadTextureMatrix,
	}
	for i, op := range want {
		if ops[i] != op {
			t.Fatalf("call %d = %s, want %s (sequence %v)", i, ops[i], op, ops[:len(want)])
		}
	}

	// The rest are whole primitives, one per face.
	if got := rec.Count(raster.OpBegin); got != 6 || frame.Faces != 6 {
		t.Errorf("begins = %d, frame faces = %d, want 6", got, frame.Faces)
	}
	if got := rec.Count(raster.OpEmit); got != 24 || frame.Vertices != 24 {
		t.Errorf("emits = %d, frame vertices = %d, want 24", got, frame.Vertices)
	}
	if len(rec.Faults) != 0 {
		t.Errorf("faults: %v", rec.Faults)
	}

	mv, _ := rec.Last(raster.OpLoadModelView)
	if mv.Matrix != frame.ModelView {
		t.Error("loaded model-view differs from the returned frame")
	}
	if want := math.Translate(0, 0, -8); !approxEqual(frame.ModelView, want, 1e-6) {
		t.Errorf("model-view at spin 0 = %v, want translation by -8", frame.ModelView)
	}
	if lit, _ := rec.Last(raster.OpSetLighting); !lit.Enabled {
		t.Error("shapes exercise is not lit")
	}
}

func TestResizeUploadsProjection(t *testing.T) {
	o, rec, _ := newOrchestrator(t, DefaultOptions())
	rec.Reset()

	o.OnResize(300, 0)
	vp, ok := rec.Last(raster.OpSetViewport)
	if !ok || vp.Viewport != [4]int{0, 0, 300, 0} {
		t.Errorf("viewport = %v", vp.Viewport)
	}
	proj, ok := rec.Last(raster.OpSetProjection)
	if !ok {
		t.Fatal("projection not uploaded")
	}
	want := camera.NewOrtho(1.5, 1, 10).Matrix()
	if proj.Matrix != want {
		t.Errorf("projection = %v, want aspect-1 ortho", proj.Matrix)
	}

	rec.Reset()
	if _, err := o.RenderFrame(); err != nil {
		t.Fatal(err)
	}
	if rec.Count(raster.OpSetProjection) != 0 {
		t.Error("RenderFrame uploaded a projection")
	}
}

func TestRenderModeKeepsGeometry(t *testing.T) {
	opts := DefaultOptions()
	opts.Shape = mesh.Prism
	o, rec, _ := newOrchestrator(t, opts)

	var frames []Frame
	for _, m := range raster.Modes() {
		if err := o.SetRenderMode(m); err != nil {
			t.Fatal(err)
		}
		rec.Reset()
		f, err := o.RenderFrame()
		if err != nil {
			t.Fatal(err)
		}
		if got, _ := rec.Last(raster.OpSetFillMode); got.Mode != m {
			t.Errorf("fill mode = %s, want %s", got.Mode, m)
		}
		frames = append(frames, f)
	}
	for _, f := range frames[1:] {
		if f.Faces != frames[0].Faces || f.Vertices != frames[0].Vertices {
			t.Errorf("frame %+v differs from %+v", f, frames[0])
		}
	}
}

func TestInvalidSegmentsKeepMesh(t *testing.T) {
	opts := DefaultOptions()
	opts.Shape = mesh.Cylinder
	o, _, _ := newOrchestrator(t, opts)
	before := o.Mesh()

	err := o.SetGeometry(2, 0.5, 1)
	if !errors.Is(err, mesh.ErrInvalidSegments) {
		t.Fatalf("err = %v, want ErrInvalidSegments", err)
	}
	if o.Mesh() != before {
		t.Error("mesh replaced after a rejected segment count")
	}
	if o.Options().Segments != 16 {
		t.Errorf("segments = %d, want 16 kept", o.Options().Segments)
	}

	if err := o.SetGeometry(24, 0.5, 1); err != nil {
		t.Fatal(err)
	}
	if got := o.Mesh().LateralSegments(); got != 24 {
		t.Errorf("lateral segments = %d, want 24", got)
	}
}

func TestSegmentFloorHoldsOnCube(t *testing.T) {
	o, _, _ := newOrchestrator(t, DefaultOptions())
	for i := 0; i < 20; i++ {
		opts := o.Options()
		err := o.SetGeometry(opts.Segments-1, opts.Radius, opts.Height)
		if opts.Segments > mesh.MinSegments && err != nil {
			t.Fatalf("SetGeometry(%d): %v", opts.Segments-1, err)
		}
		if opts.Segments == mesh.MinSegments && !errors.Is(err, mesh.ErrInvalidSegments) {
			t.Fatalf("SetGeometry(%d) = %v, want ErrInvalidSegments", opts.Segments-1, err)
		}
	}
	if got := o.Options().Segments; got != mesh.MinSegments {
		t.Errorf("segments = %d, want %d", got, mesh.MinSegments)
	}
	if o.Mesh().Kind != mesh.Cube {
		t.Errorf("mesh kind = %s, want cube", o.Mesh().Kind)
	}

	// Curved solids are still reachable from the clamped count.
	for _, k := range []mesh.Kind{mesh.Prism, mesh.Pyramid, mesh.Cylinder} {
		if err := o.SetShape(k); err != nil {
			t.Errorf("SetShape(%s): %v", k, err)
		}
	}
}

func TestSegmentFloorInColoring(t *testing.T) {
	opts := DefaultOptions()
	opts.Exercise = Coloring
	o, _, _ := newOrchestrator(t, opts)
	if err := o.SetGeometry(0, 0.5, 1); !errors.Is(err, mesh.ErrInvalidSegments) {
		t.Errorf("err = %v, want ErrInvalidSegments", err)
	}
	if got := o.Options().Segments; got != 16 {
		t.Errorf("segments = %d, want 16 kept", got)
	}
}

func TestSetShapeRebuilds(t *testing.T) {
	o, _, _ := newOrchestrator(t, DefaultOptions())
	for _, k := range mesh.Kinds() {
		if err := o.SetShape(k); err != nil {
			t.Fatalf("SetShape(%s): %v", k, err)
		}
		if o.Mesh().Kind != k {
			t.Errorf("mesh kind = %s, want %s", o.Mesh().Kind, k)
		}
	}
}

func texturingOptions() Options {
	opts := DefaultOptions()
	opts.Exercise = Texturing
	return opts
}

func TestTextureSlotReplacesBeforeCreate(t *testing.T) {
	o, rec, _ := newOrchestrator(t, texturingOptions())
	first := o.slot.Handle()
	if first == 0 {
		t.Fatal("no initial texture")
	}

	rec.Reset()
	if err := o.SetTextureSource(SourceSpiral); err != nil {
		t.Fatal(err)
	}
	ops := rec.Ops()
	if len(ops) != 2 || ops[0] != raster.OpDeleteTexture || ops[1] != raster.OpCreateTexture {
		t.Fatalf("ops = %v, want delete then create", ops)
	}
	if rec.Calls[0].Handle != first {
		t.Errorf("deleted %d, want %d", rec.Calls[0].Handle, first)
	}
	if len(rec.Live) != 1 {
		t.Errorf("live textures = %d, want 1", len(rec.Live))
	}

	o.Close()
	o.Close()
	if len(rec.Live) != 0 {
		t.Errorf("live textures after close = %d", len(rec.Live))
	}
	if len(rec.Faults) != 0 {
		t.Errorf("faults: %v", rec.Faults)
	}
	if _, err := o.RenderFrame(); !errors.Is(err, ErrNoMesh) {
		t.Errorf("render after close err = %v", err)
	}
}

func TestDecodeFailureKeepsTexture(t *testing.T) {
	o, rec, dec := newOrchestrator(t, texturingOptions())
	before := o.slot.Handle()

	dec.err = errors.New("corrupt file")
	rec.Reset()
	if err := o.SetImagePath("missing.bmp"); err == nil {
		t.Fatal("expected decode error")
	}
	if o.slot.Handle() != before {
		t.Error("texture replaced after decode failure")
	}
	if rec.Count(raster.OpDeleteTexture) != 0 {
		t.Error("texture deleted after decode failure")
	}
	if got := o.Options().Source; got != SourceCheckerboard {
		t.Errorf("source = %s, want checkerboard kept", got)
	}

	dec.err = nil
	if err := o.SetImagePath("ok.bmp"); err != nil {
		t.Fatal(err)
	}
	if got := o.Options(); got.Source != SourceImage || got.ImagePath != "ok.bmp" {
		t.Errorf("source = %s %q", got.Source, got.ImagePath)
	}
	if dec.calls != 2 {
		t.Errorf("decoder calls = %d, want 2", dec.calls)
	}
}

func TestUploadFailureLeavesSlotEmpty(t *testing.T) {
	o, rec, _ := newOrchestrator(t, texturingOptions())
	rec.CreateErr = errors.New("out of memory")
	if err := o.SetTextureSource(SourceSpiral); err == nil {
		t.Fatal("expected upload error")
	}
	if o.Textured() {
		t.Error("slot still reports a texture")
	}
	rec.Reset()
	if _, err := o.RenderFrame(); err != nil {
		t.Fatal(err)
	}
	if bind, _ := rec.Last(raster.OpBindTexture); bind.Handle != 0 {
		t.Errorf("bound %d, want 0", bind.Handle)
	}
}

func TestDescribeWithoutTexture(t *testing.T) {
	rec := raster.NewRecorder()
	rec.CreateErr = errors.New("out of memory")
	opts := texturingOptions()
	opts.TextureSize = 16
	o, err := New(opts, rec, &stubDecoder{}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := o.Describe(), "texturing: cube, none x1.00 [fill]"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}

	if err := o.SetTextureSource(SourceSpiral); err != nil {
		t.Fatal(err)
	}
	if got, want := o.Describe(), "texturing: cube, spiral x1.00 [fill]"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestTexturingFrame(t *testing.T) {
	o, rec, _ := newOrchestrator(t, texturingOptions())
	o.AdjustScale(0.5)

	rec.Reset()
	frame, err := o.RenderFrame()
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Scale(1.5, 1.5, 1.5); frame.TextureMatrix != want {
		t.Errorf("texture matrix = %v, want scale 1.5", frame.TextureMatrix)
	}
	if bind, _ := rec.Last(raster.OpBindTexture); bind.Handle != o.slot.Handle() {
		t.Errorf("bound %d, want %d", bind.Handle, o.slot.Handle())
	}
	if lit, _ := rec.Last(raster.OpSetLighting); lit.Enabled {
		t.Error("texturing exercise is lit")
	}
	want := math.Translate(0, 0, -5).
		Mul(math.Rotate(20, math.Vec3{X: 1})).
		Mul(math.Rotate(30, math.Vec3{Y: 1}))
	if !approxEqual(frame.ModelView, want, 1e-6) {
		t.Errorf("model-view = %v, want %v", frame.ModelView, want)
	}
	if o.Mesh().Attribute != mesh.AttrTexCoord {
		t.Error("texturing mesh does not carry texture coordinates")
	}

	// Ticks do not turn an orbit-only view.
	o.OnTick()
	f2, _ := o.RenderFrame()
	if f2.ModelView != frame.ModelView {
		t.Error("tick changed the orbit view")
	}

	o.OnPointerPress(10, 10)
	o.OnPointerMove(30, 10)
	o.OnPointerRelease()
	if got := o.Camera().OrbitY; got != 40 {
		t.Errorf("orbit Y = %v, want 40", got)
	}
}

func TestColoringTasks(t *testing.T) {
	opts := DefaultOptions()
	opts.Exercise = Coloring
	o, rec, _ := newOrchestrator(t, opts)

	tests := []struct {
		task  Task
		faces int
		lit   bool
	}{
		{TaskColoredCube, 6, true},
		{TaskGradientCube, 6, false},
		{TaskDynamicCube, 6, false},
		{TaskCylinder, 3, true},
		{TaskEffects, 1, false},
	}
	for _, tt := range tests {
		if err := o.SetTask(tt.task); err != nil {
			t.Fatalf("SetTask(%s): %v", tt.task, err)
		}
		rec.Reset()
		f, err := o.RenderFrame()
		if err != nil {
			t.Fatal(err)
		}
		if f.Faces != tt.faces {
			t.Errorf("%s: faces = %d, want %d", tt.task, f.Faces, tt.faces)
		}
		if lit, _ := rec.Last(raster.OpSetLighting); lit.Enabled != tt.lit {
			t.Errorf("%s: lit = %v, want %v", tt.task, lit.Enabled, tt.lit)
		}
	}

	if err := o.SetTask(Task(9)); err == nil {
		t.Error("expected error for task 9")
	}
}

func TestDynamicTintFollowsSpin(t *testing.T) {
	top := mesh.Vertex{Position: math.Vec3{X: 1, Y: 1, Z: 1}}
	bottom := mesh.Vertex{Position: math.Vec3{X: 1, Y: -1, Z: 1}}

	if got := DynamicTint(top, 0); got != (math.Vec3{}) {
		t.Errorf("top at 0° = %v, want black", got)
	}
	got := DynamicTint(top, 45)
	if abs(got.X-1) > 1e-6 {
		t.Errorf("top red at 45° = %v, want |sin 90°| = 1", got.X)
	}
	if b := DynamicTint(bottom, 90); abs(b.X-1) > 1e-6 || abs(b.Y-1) > 1e-6 || abs(b.Z-1) > 1e-6 {
		t.Errorf("bottom at 90° = %v, want white", b)
	}
}

func TestEffectsTint(t *testing.T) {
	lower := mesh.Vertex{Position: math.Vec3{X: 1, Z: -1}}
	upper := mesh.Vertex{Position: math.Vec3{X: 1, Z: 1}}
	if got := EffectsTint(lower, 0); got != (math.Vec3{}) {
		t.Errorf("lower rim at 0° = %v, want black", got)
	}
	if got := EffectsTint(upper, 0); got != (math.Vec3{Y: 1}) {
		t.Errorf("upper rim at 0° = %v, want green", got)
	}
}

func TestSetExerciseResetsScene(t *testing.T) {
	o, rec, _ := newOrchestrator(t, DefaultOptions())
	rec.Reset()

	if err := o.SetExercise(Texturing); err != nil {
		t.Fatal(err)
	}
	if o.Projection().Kind != camera.Perspective {
		t.Error("texturing did not switch to perspective")
	}
	if rec.Count(raster.OpSetProjection) != 1 || rec.Count(raster.OpCreateTexture) != 1 {
		t.Errorf("ops = %v, want projection upload and texture create", rec.Ops())
	}
	if s := o.Camera(); s.OrbitX != 20 || s.OrbitY != 30 {
		t.Errorf("orbit = (%v,%v), want (20,30)", s.OrbitX, s.OrbitY)
	}

	if err := o.SetExercise(Shapes); err != nil {
		t.Fatal(err)
	}
	if len(rec.Live) != 0 {
		t.Errorf("leaving texturing kept %d textures", len(rec.Live))
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.TextureSize = 0
	if _, err := New(opts, raster.NewRecorder(), nil, nil); !errors.Is(err, texture.ErrInvalidSize) {
		t.Errorf("err = %v, want ErrInvalidSize", err)
	}

	opts = DefaultOptions()
	opts.Shape = mesh.Pyramid
	opts.Segments = 1
	if _, err := New(opts, raster.NewRecorder(), nil, nil); !errors.Is(err, mesh.ErrInvalidSegments) {
		t.Errorf("err = %v, want ErrInvalidSegments", err)
	}
}

func TestParseHelpers(t *testing.T) {
	if got, err := ParseTask("3"); err != nil || got != TaskDynamicCube {
		t.Errorf("ParseTask(3) = %v, %v", got, err)
	}
	if got, err := ParseTask("effects"); err != nil || got != TaskEffects {
		t.Errorf("ParseTask(effects) = %v, %v", got, err)
	}
	if _, err := ParseTask("6"); err == nil {
		t.Error("ParseTask(6) accepted")
	}
	for _, s := range Sources() {
		if got, err := ParseTextureSource(s.String()); err != nil || got != s {
			t.Errorf("ParseTextureSource(%s) = %v, %v", s, got, err)
		}
	}
	for _, e := range []Exercise{Shapes, Coloring, Texturing} {
		if got, err := ParseExercise(e.String()); err != nil || got != e {
			t.Errorf("ParseExercise(%s) = %v, %v", e, got, err)
		}
	}
}

// approxEqual reports whether every element of a and b differs by at most eps.
func approxEqual(a, b math.Mat4, eps float32) bool {
	for i := range a {
		if abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
