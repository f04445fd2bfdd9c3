// Package camera holds the spin, orbit and texture-scale state of the viewed
// solid and builds the view and projection matrices from it.
package camera

import (
	"fmt"

	"github.com/Faultbox/solidlab/pkg/math"
)

// Policy selects which angle sources drive the model-view rotation.
type Policy int

const (
	SpinOnly Policy = iota
	OrbitOnly
	SpinAndOrbit
)

var policyNames = [...]string{
	SpinOnly:     "spin",
	OrbitOnly:    "orbit",
	SpinAndOrbit: "spin-orbit",
}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy maps a config name to a Policy.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == s {
			return Policy(p), nil
		}
	}
	return 0, fmt.Errorf("unknown rotation policy %q", s)
}

// SpinAxis is the diagonal the automatic spin turns about.
var SpinAxis = math.Vec3{X: 1, Y: 1, Z: 1}

// State is a snapshot of the controller.
type State struct {
	SpinAngle    float32 // degrees, in [0,360)
	OrbitX       float32 // degrees about X, unbounded
	OrbitY       float32 // degrees about Y, unbounded
	Anchor       *math.Vec2
	TextureScale float32
}

// Settings configures a Controller.
type Settings struct {
	SpinStep    float32 // degrees added per tick
	Sensitivity float32 // degrees per pixel of drag
	MinScale    float32
	OrbitX      float32 // initial orbit angles
	OrbitY      float32
}

// DefaultSettings returns one-degree ticks, half-degree-per-pixel dragging and
// a 0.25 scale floor.
func DefaultSettings() Settings {
	return Settings{
		SpinStep:    1,
		Sensitivity: 0.5,
		MinScale:    0.25,
	}
}

// Controller is the drag state machine plus the tick-driven spin.
// It is not safe for concurrent use; the event loop owns it.
type Controller struct {
	settings Settings
	state    State
	anchor   math.Vec2
	dragging bool
}

// NewController creates an idle controller at the configured orbit angles.
func NewController(s Settings) *Controller {
	if s.MinScale <= 0 {
		s.MinScale = DefaultSettings().MinScale
	}
	return &Controller{
		settings: s,
		state: State{
			OrbitX:       s.OrbitX,
			OrbitY:       s.OrbitY,
			TextureScale: 1,
		},
	}
}

// Press starts a drag anchored at p.
func (c *Controller) Press(p math.Vec2) {
	c.anchor = p
	c.dragging = true
}

// Move rotates the orbit by the pointer delta since the last anchor.
// Horizontal motion turns about Y, vertical about X. Ignored when idle.
func (c *Controller) Move(p math.Vec2) {
	if !c.dragging {
		return
	}
	d := p.Sub(c.anchor)
	c.state.OrbitY += d.X * c.settings.Sensitivity
	c.state.OrbitX += d.Y * c.settings.Sensitivity
	c.anchor = p
}

// Release ends the drag.
func (c *Controller) Release() {
	c.dragging = false
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// Tick advances the spin by one step, wrapping to 0 at a full turn.
func (c *Controller) Tick() {
	c.state.SpinAngle += c.settings.SpinStep
	if c.state.SpinAngle >= 360 {
		c.state.SpinAngle = 0
	}
}

// AdjustScale changes the texture scale by delta, never going below the floor.
func (c *Controller) AdjustScale(delta float32) {
	c.state.TextureScale = max(c.settings.MinScale, c.state.TextureScale+delta)
}

// ResetScale restores the texture scale to 1.
func (c *Controller) ResetScale() {
	c.state.TextureScale = 1
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := c.state
	if c.dragging {
		a := c.anchor
		s.Anchor = &a
	}
	return s
}

// ModelView builds T(0,0,-distance), then the spin about SpinAxis, then
// the X orbit, then the Y orbit, each right-multiplied in that order.
func (c *Controller) ModelView(p Policy, distance float32) math.Mat4 {
	mv := math.Translate(0, 0, -distance)
	if p == SpinOnly || p == SpinAndOrbit {
		mv = mv.Mul(math.Rotate(c.state.SpinAngle, SpinAxis))
	}
	if p == OrbitOnly || p == SpinAndOrbit {
		mv = mv.Mul(math.Rotate(c.state.OrbitX, math.Vec3{X: 1}))
		mv = mv.Mul(math.Rotate(c.state.OrbitY, math.Vec3{Y: 1}))
	}
	return mv
}
