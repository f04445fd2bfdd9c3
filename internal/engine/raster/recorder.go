package raster

import (
	"errors"

	"github.com/Faultbox/solidlab/internal/engine/mesh"
	"github.com/Faultbox/solidlab/internal/engine/texture"
	"github.com/Faultbox/solidlab/pkg/math"
)

// Op identifies a recorded call.
type Op int

const (
	OpSetClearColor Op = iota
	OpClear
	OpSetViewport
	OpSetProjection
	OpLoadModelView
	OpLoadTextureMatrix
	OpSetFillMode
	OpSetLighting
	OpBegin
	OpEmit
	OpEnd
	OpCreateTexture
	OpBindTexture
	OpDeleteTexture
)

var opNames = [...]string{
	"SetClearColor", "Clear", "SetViewport", "SetProjection", "LoadModelView",
	"LoadTextureMatrix", "SetFillMode", "SetLighting", "Begin", "Emit", "End",
	"CreateTexture", "BindTexture", "DeleteTexture",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "Op(?)"
	}
	return opNames[o]
}

// Call is one recorded call with the argument relevant to its Op.
type Call struct {
	Op        Op
	Matrix    math.Mat4
	Color     math.Vec3
	Mask      ClearMask
	Viewport  [4]int
	Mode      FillMode
	Enabled   bool
	Primitive mesh.Primitive
	Vertex    mesh.Vertex
	Handle    Handle
}

// ErrDoubleFree is recorded when a handle is deleted that is not live.
var ErrDoubleFree = errors.New("raster: delete of a texture that is not live")

// Recorder is an in-memory Rasterizer. It keeps every call and tracks live
// texture handles, which makes it usable for tests and headless runs.
type Recorder struct {
	Calls []Call
	Live  map[Handle]*texture.Buffer

	// CreateErr, when set, is returned by the next CreateTexture.
	CreateErr error
	// Faults collects misuse: double frees and unbalanced Begin/End.
	Faults []error

	next  Handle
	open  bool
	bound Handle
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Live: make(map[Handle]*texture.Buffer)}
}

// Reset drops recorded calls but keeps live textures.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Ops returns the recorded operation sequence.
func (r *Recorder) Ops() []Op {
	ops := make([]Op, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many times op was recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Last returns the most recent call with the given op.
func (r *Recorder) Last(op Op) (Call, bool) {
	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Op == op {
			return r.Calls[i], true
		}
	}
	return Call{}, false
}

// Bound returns the currently bound texture handle.
func (r *Recorder) Bound() Handle {
	return r.bound
}

func (r *Recorder) record(c Call) {
	r.Calls = append(r.Calls, c)
}

func (r *Recorder) SetClearColor(c math.Vec3) {
	r.record(Call{Op: OpSetClearColor, Color: c})
}

func (r *Recorder) Clear(mask ClearMask) {
	r.record(Call{Op: OpClear, Mask: mask})
}

func (r *Recorder) SetViewport(x, y, width, height int) {
	r.record(Call{Op: OpSetViewport, Viewport: [4]int{x, y, width, height}})
}

func (r *Recorder) SetProjection(m math.Mat4) {
	r.record(Call{Op: OpSetProjection, Matrix: m})
}

func (r *Recorder) LoadModelView(m math.Mat4) {
	r.record(Call{Op: OpLoadModelView, Matrix: m})
}

func (r *Recorder) LoadTextureMatrix(m math.Mat4) {
	r.record(Call{Op: OpLoadTextureMatrix, Matrix: m})
}

func (r *Recorder) SetFillMode(mode FillMode) {
	r.record(Call{Op: OpSetFillMode, Mode: mode})
}

func (r *Recorder) SetLighting(enabled bool) {
	r.record(Call{Op: OpSetLighting, Enabled: enabled})
}

func (r *Recorder) Begin(p mesh.Primitive) {
	if r.open {
		r.Faults = append(r.Faults, errors.New("raster: Begin inside Begin"))
	}
	r.open = true
	r.record(Call{Op: OpBegin, Primitive: p})
}

func (r *Recorder) Emit(v mesh.Vertex) {
	if !r.open {
		r.Faults = append(r.Faults, errors.New("raster: Emit outside Begin"))
	}
	r.record(Call{Op: OpEmit, Vertex: v})
}

func (r *Recorder) End() {
	if !r.open {
		r.Faults = append(r.Faults, errors.New("raster: End without Begin"))
	}
	r.open = false
	r.record(Call{Op: OpEnd})
}

func (r *Recorder) CreateTexture(buf *texture.Buffer) (Handle, error) {
	if err := r.CreateErr; err != nil {
		r.CreateErr = nil
		return 0, err
	}
	r.next++
	h := r.next
	r.Live[h] = buf
	r.record(Call{Op: OpCreateTexture, Handle: h})
	return h, nil
}

func (r *Recorder) BindTexture(h Handle) {
	r.bound = h
	r.record(Call{Op: OpBindTexture, Handle: h})
}

func (r *Recorder) DeleteTexture(h Handle) {
	if _, ok := r.Live[h]; !ok {
		r.Faults = append(r.Faults, ErrDoubleFree)
	}
	delete(r.Live, h)
	if r.bound == h {
		r.bound = 0
	}
	r.record(Call{Op: OpDeleteTexture, Handle: h})
}

var _ Rasterizer = (*Recorder)(nil)
