package render

import (
	"fmt"

	"github.com/Faultbox/solidlab/internal/engine/camera"
	"github.com/Faultbox/solidlab/pkg/math"
)

// Exercise selects one of the three interactive scenes.
type Exercise int

const (
	// Shapes spins a lit colored solid under an orthographic projection.
	Shapes Exercise = iota
	// Coloring runs the five coloring tasks on a spinning solid.
	Coloring
	// Texturing maps a texture onto a solid the user orbits by dragging.
	Texturing
)

var exerciseNames = [...]string{
	Shapes:    "shapes",
	Coloring:  "coloring",
	Texturing: "texturing",
}

func (e Exercise) String() string {
	if e < 0 || int(e) >= len(exerciseNames) {
		return fmt.Sprintf("Exercise(%d)", int(e))
	}
	return exerciseNames[e]
}

// ParseExercise maps a config name to an Exercise.
func ParseExercise(s string) (Exercise, error) {
	for e, name := range exerciseNames {
		if name == s {
			return Exercise(e), nil
		}
	}
	return 0, fmt.Errorf("unknown exercise %q", s)
}

// Preset is the fixed scene setup of an exercise.
type Preset struct {
	Projection camera.Projection
	Distance   float32
	Policy     camera.Policy
	ClearColor math.Vec3
	Textured   bool
	// OrbitX and OrbitY are the starting orbit angles in degrees.
	OrbitX, OrbitY float32
}

// PresetFor returns the scene setup of e.
func PresetFor(e Exercise) Preset {
	switch e {
	case Texturing:
		return Preset{
			Projection: camera.NewPerspective(45, 0.1, 50),
			Distance:   5,
			Policy:     camera.OrbitOnly,
			ClearColor: math.Vec3{X: 0.2, Y: 0.2, Z: 0.2},
			Textured:   true,
			OrbitX:     20,
			OrbitY:     30,
		}
	default:
		return Preset{
			Projection: camera.NewOrtho(1.5, 1, 10),
			Distance:   8,
			Policy:     camera.SpinOnly,
			ClearColor: math.Vec3{X: 0.1, Y: 0, Z: 0.2},
		}
	}
}
