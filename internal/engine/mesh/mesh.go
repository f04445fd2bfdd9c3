// Package mesh generates vertex data for the parametric solids drawn by the
// exercises: cube, prism, pyramid and cylinder.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/solidlab/pkg/math"
)

// MinSegments is the smallest lateral segment count of a curved solid.
const MinSegments = 3

var (
	// ErrInvalidSegments is returned when a curved shape is requested with fewer than 3 segments.
	ErrInvalidSegments = errors.New("segment count must be at least 3")
	// ErrUnknownKind is returned for a shape kind outside the known set.
	ErrUnknownKind = errors.New("unknown shape kind")
)

// Kind selects the solid to generate.
type Kind int

const (
	Cube Kind = iota
	Prism
	Pyramid
	Cylinder
)

var kindNames = [...]string{
	Cube:     "cube",
	Prism:    "prism",
	Pyramid:  "pyramid",
	Cylinder: "cylinder",
}

// Kinds returns every supported shape kind in declaration order.
func Kinds() []Kind {
	return []Kind{Cube, Prism, Pyramid, Cylinder}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Curved reports whether the kind is sampled around a circle and needs a segment count.
func (k Kind) Curved() bool {
	return k == Prism || k == Pyramid || k == Cylinder
}

// ParseKind maps a config or CLI name to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Attribute says which per-vertex attribute besides position and normal is meaningful.
type Attribute int

const (
	// AttrColor meshes carry Vertex.Color.
	AttrColor Attribute = iota
	// AttrTexCoord meshes carry Vertex.TexCoord.
	AttrTexCoord
)

// Primitive is the topology of a face.
type Primitive int

const (
	// PrimPolygon is a single convex polygon with counter-clockwise winding seen from outside.
	PrimPolygon Primitive = iota
	// PrimQuadStrip is a strip of quads where every pair of vertices adds one quad.
	PrimQuadStrip
)

func (p Primitive) String() string {
	switch p {
	case PrimPolygon:
		return "polygon"
	case PrimQuadStrip:
		return "quad-strip"
	default:
		return fmt.Sprintf("Primitive(%d)", int(p))
	}
}

// Role tells which part of the solid a face belongs to.
type Role int

const (
	RoleSide Role = iota
	RoleTop
	RoleBottom
)

// Vertex is a mesh vertex. Only one of Color and TexCoord is meaningful,
// depending on the owning mesh's Attribute.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Color    math.Vec3
	TexCoord math.Vec2
}

// Face is an ordered run of vertices sharing one winding order.
type Face struct {
	Primitive Primitive
	Role      Role
	Vertices  []Vertex
}

// Quads returns the number of quads in a strip face, or 1 for a polygon.
func (f Face) Quads() int {
	if f.Primitive == PrimQuadStrip {
		if len(f.Vertices) < 4 {
			return 0
		}
		return len(f.Vertices)/2 - 1
	}
	return 1
}

// StripQuad returns the i-th quad of a strip face in polygon winding order.
func (f Face) StripQuad(i int) [4]Vertex {
	v := f.Vertices
	return [4]Vertex{v[2*i], v[2*i+1], v[2*i+3], v[2*i+2]}
}

// Mesh is an immutable list of faces for one solid.
type Mesh struct {
	Kind      Kind
	Attribute Attribute
	Segments  int
	Faces     []Face
}

// VertexCount returns the number of vertices across all faces.
func (m *Mesh) VertexCount() int {
	n := 0
	for _, f := range m.Faces {
		n += len(f.Vertices)
	}
	return n
}

// SideFaces returns the lateral faces (all faces for a cube).
func (m *Mesh) SideFaces() []Face {
	var out []Face
	for _, f := range m.Faces {
		if f.Role == RoleSide {
			out = append(out, f)
		}
	}
	return out
}

// LateralSegments returns the number of lateral quads or triangles.
// For a strip this counts the quads the strip forms implicitly.
func (m *Mesh) LateralSegments() int {
	n := 0
	for _, f := range m.SideFaces() {
		n += f.Quads()
	}
	return n
}

// Recolor returns a copy of m with every vertex color replaced by fn(v).
// The result is a color mesh; m itself is left untouched.
func Recolor(m *Mesh, fn func(Vertex) math.Vec3) *Mesh {
	out := &Mesh{
		Kind:      m.Kind,
		Attribute: AttrColor,
		Segments:  m.Segments,
		Faces:     make([]Face, len(m.Faces)),
	}
	for i, f := range m.Faces {
		verts := make([]Vertex, len(f.Vertices))
		for j, v := range f.Vertices {
			v.Color = fn(v)
			verts[j] = v
		}
		out.Faces[i] = Face{Primitive: f.Primitive, Role: f.Role, Vertices: verts}
	}
	return out
}
