package camera

import (
	gomath "math"

	"github.com/Faultbox/solidlab/pkg/math"
)

// ProjectionKind selects orthographic or perspective projection.
type ProjectionKind int

const (
	Ortho ProjectionKind = iota
	Perspective
)

func (k ProjectionKind) String() string {
	if k == Perspective {
		return "perspective"
	}
	return "ortho"
}

// Projection describes a symmetric view volume. Aspect is updated by Resize.
type Projection struct {
	Kind       ProjectionKind
	HalfHeight float32 // ortho only
	FovY       float32 // perspective only, degrees
	Near       float32
	Far        float32
	Aspect     float32
}

// NewOrtho returns an orthographic projection with the given half-height.
func NewOrtho(halfHeight, near, far float32) Projection {
	return Projection{Kind: Ortho, HalfHeight: halfHeight, Near: near, Far: far, Aspect: 1}
}

// NewPerspective returns a perspective projection with a vertical field of
// view in degrees.
func NewPerspective(fovY, near, far float32) Projection {
	return Projection{Kind: Perspective, FovY: fovY, Near: near, Far: far, Aspect: 1}
}

// Resize sets the aspect ratio from a viewport size. A zero height gives 1.
func (p *Projection) Resize(width, height int) {
	if height == 0 {
		p.Aspect = 1
		return
	}
	p.Aspect = float32(width) / float32(height)
}

// Matrix builds the column-major projection matrix.
func (p Projection) Matrix() math.Mat4 {
	if p.Kind == Perspective {
		return perspective(p.FovY, p.Aspect, p.Near, p.Far)
	}
	hh := p.HalfHeight
	return ortho(-hh*p.Aspect, hh*p.Aspect, -hh, hh, p.Near, p.Far)
}

func perspective(fovY, aspect, near, far float32) math.Mat4 {
	f := float32(1 / gomath.Tan(float64(math.Radians(fovY))/2))
	return math.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), -1,
		0, 0, 2 * far * near / (near - far), 0,
	}
}

func ortho(left, right, bottom, top, near, far float32) math.Mat4 {
	return math.Mat4{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
