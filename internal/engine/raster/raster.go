// Package raster defines the drawing surface the render orchestrator talks
// to: an immediate-mode style API with explicit matrices and owned textures.
package raster

import (
	"fmt"

	"github.com/Faultbox/solidlab/internal/engine/mesh"
	"github.com/Faultbox/solidlab/internal/engine/texture"
	"github.com/Faultbox/solidlab/pkg/math"
)

// FillMode is the polygon rasterization mode.
type FillMode int

const (
	Fill FillMode = iota
	Line
	Point
)

var fillModeNames = [...]string{
	Fill:  "fill",
	Line:  "line",
	Point: "point",
}

func (m FillMode) String() string {
	if m < 0 || int(m) >= len(fillModeNames) {
		return fmt.Sprintf("FillMode(%d)", int(m))
	}
	return fillModeNames[m]
}

// ParseFillMode maps a config name to a FillMode.
func ParseFillMode(s string) (FillMode, error) {
	for m, name := range fillModeNames {
		if name == s {
			return FillMode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// Modes lists every fill mode in cycling order.
func Modes() []FillMode {
	return []FillMode{Fill, Line, Point}
}

// ClearMask selects the buffers Clear resets.
type ClearMask uint8

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
)

// Handle names a texture owned by a Rasterizer. Zero means no texture.
type Handle uint32

// Rasterizer draws primitives. Calls are made from a single goroutine.
type Rasterizer interface {
	SetClearColor(c math.Vec3)
	Clear(mask ClearMask)
	SetViewport(x, y, width, height int)
	SetProjection(m math.Mat4)
	LoadModelView(m math.Mat4)
	LoadTextureMatrix(m math.Mat4)
	SetFillMode(mode FillMode)
	SetLighting(enabled bool)

	// Begin opens a primitive; Emit appends one vertex; End submits it.
	Begin(p mesh.Primitive)
	Emit(v mesh.Vertex)
	End()

	// CreateTexture uploads buf and returns its handle. BindTexture(0)
	// disables texturing. DeleteTexture frees the handle.
	CreateTexture(buf *texture.Buffer) (Handle, error)
	BindTexture(h Handle)
	DeleteTexture(h Handle)
}
