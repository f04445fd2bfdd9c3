package render

import (
	"fmt"
	gomath "math"
	"strconv"

	"github.com/Faultbox/solidlab/internal/engine/mesh"
	"github.com/Faultbox/solidlab/pkg/math"
)

// Task is one of the coloring exercise's five scenes, numbered from 1.
type Task int

const (
	TaskColoredCube Task = iota + 1
	TaskGradientCube
	TaskDynamicCube
	TaskCylinder
	TaskEffects
)

var taskNames = map[Task]string{
	TaskColoredCube:  "colored-cube",
	TaskGradientCube: "gradient-cube",
	TaskDynamicCube:  "dynamic-cube",
	TaskCylinder:     "cylinder",
	TaskEffects:      "effects",
}

// Tasks lists every task in order.
func Tasks() []Task {
	return []Task{TaskColoredCube, TaskGradientCube, TaskDynamicCube, TaskCylinder, TaskEffects}
}

func (t Task) String() string {
	if name, ok := taskNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Task(%d)", int(t))
}

// ParseTask accepts a task name or its number.
func ParseTask(s string) (Task, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if _, ok := taskNames[Task(n)]; ok {
			return Task(n), nil
		}
	}
	for t, name := range taskNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown coloring task %q", s)
}

// Tint recomputes a vertex color from the current spin angle in degrees.
type Tint func(v mesh.Vertex, spin float32) math.Vec3

// Gradient colors: vertices above the equator are red, the rest yellow.
var (
	GradientTop    = math.Vec3{X: 1}
	GradientBottom = math.Vec3{X: 1, Y: 1}
)

// taskScene is the mesh and shading of one coloring task.
type taskScene struct {
	mesh *mesh.Mesh
	lit  bool
	tint Tint
}

func buildTask(t Task) (taskScene, error) {
	switch t {
	case TaskColoredCube:
		m, err := mesh.GenerateWith(mesh.Cube, 0, 0, 0, mesh.Options{Palette: &mesh.SoftCubePalette})
		return taskScene{mesh: m, lit: true}, err

	case TaskGradientCube:
		m, err := mesh.Generate(mesh.Cube, 0, 0, 0)
		if err != nil {
			return taskScene{}, err
		}
		return taskScene{mesh: mesh.Recolor(m, gradient)}, nil

	case TaskDynamicCube:
		m, err := mesh.Generate(mesh.Cube, 0, 0, 0)
		return taskScene{mesh: m, tint: DynamicTint}, err

	case TaskCylinder:
		m, err := mesh.Generate(mesh.Cylinder, 40, 0.5, 1)
		return taskScene{mesh: m, lit: true}, err

	case TaskEffects:
		m, err := mesh.GenerateWith(mesh.Cylinder, 80, 1, 2, mesh.Options{NoCaps: true})
		return taskScene{mesh: m, tint: EffectsTint}, err

	default:
		return taskScene{}, fmt.Errorf("unknown coloring task %d", int(t))
	}
}

func gradient(v mesh.Vertex) math.Vec3 {
	if v.Position.Y > 0 {
		return GradientTop
	}
	return GradientBottom
}

// absSin returns |sin(k·deg)| for an angle in degrees, plus an offset in radians.
func absSin(k float64, deg float32, offset float64) float32 {
	return float32(gomath.Abs(gomath.Sin(k*float64(deg)*gomath.Pi/180 + offset)))
}

// DynamicTint pulses the upper vertices with |sin(k·angle)| for k = 2, 3, 5
// and the lower ones with k = 7, 11, 13.
func DynamicTint(v mesh.Vertex, spin float32) math.Vec3 {
	if v.Position.Y > 0 {
		return math.Vec3{X: absSin(2, spin, 0), Y: absSin(3, spin, 0), Z: absSin(5, spin, 0)}
	}
	return math.Vec3{X: absSin(7, spin, 0), Y: absSin(11, spin, 0), Z: absSin(13, spin, 0)}
}

// EffectsTint runs a color wave around the cylinder. The lower rim has no
// green and moves against the angle; the upper rim is full green and moves
// with it.
func EffectsTint(v mesh.Vertex, spin float32) math.Vec3 {
	fi := gomath.Atan2(float64(v.Position.Y), float64(v.Position.X))
	if v.Position.Z < 0 {
		return math.Vec3{X: absSin(2, spin, -fi), Z: absSin(3, spin, -fi)}
	}
	return math.Vec3{X: absSin(5, spin, fi), Y: 1, Z: absSin(7, spin, fi)}
}
