package mesh

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/solidlab/pkg/math"
)

// CubeHalfExtent is the half edge length of the generated cube.
const CubeHalfExtent = 1.0

// DefaultCubePalette colors the six cube faces in face order
// (front, right, back, left, top, bottom).
var DefaultCubePalette = [6]math.Vec3{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 1, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: 1, Y: 0, Z: 1},
	{X: 0, Y: 1, Z: 1},
}

// SoftCubePalette is the muted palette of the lit colored-cube task.
var SoftCubePalette = [6]math.Vec3{
	{X: 0.8, Y: 0.4, Z: 0.8},
	{X: 1, Y: 1, Z: 0.6},
	{X: 0.6, Y: 0.3, Z: 0.1},
	{X: 0, Y: 0.5, Z: 0.5},
	{X: 0.6, Y: 0, Z: 0.2},
	{X: 0.6, Y: 1, Z: 0.4},
}

// Colors holds the fixed colors of the curved solids.
type Colors struct {
	Side   math.Vec3 // prism and cylinder lateral surface
	Top    math.Vec3 // prism and cylinder top cap
	Bottom math.Vec3 // prism and cylinder bottom cap
	Base   math.Vec3 // pyramid base
}

// DefaultColors returns the stock colors of the curved solids.
func DefaultColors() Colors {
	return Colors{
		Side:   math.Vec3{X: 0, Y: 1, Z: 0},
		Top:    math.Vec3{X: 1, Y: 1, Z: 0},
		Bottom: math.Vec3{X: 1, Y: 0.5, Z: 0},
		Base:   math.Vec3{X: 0.8, Y: 0.8, Z: 0},
	}
}

// Options tunes generation beyond the shape parameters.
type Options struct {
	Attribute Attribute
	// Palette overrides DefaultCubePalette when non-nil.
	Palette *[6]math.Vec3
	// Colors overrides DefaultColors when non-nil.
	Colors *Colors
	// NoCaps drops the top and bottom caps of prisms and cylinders,
	// and the base of pyramids.
	NoCaps bool
}

// Generate builds a color mesh for the requested solid.
// n is the segment count of curved shapes and must be at least 3; the cube
// ignores n, r and h. Zero radius or height produce degenerate geometry.
func Generate(kind Kind, n int, r, h float32) (*Mesh, error) {
	return GenerateWith(kind, n, r, h, Options{})
}

// GenerateWith is Generate with explicit options.
func GenerateWith(kind Kind, n int, r, h float32, opts Options) (*Mesh, error) {
	if kind.Curved() && n < MinSegments {
		return nil, fmt.Errorf("%s with %d segments: %w", kind, n, ErrInvalidSegments)
	}

	palette := DefaultCubePalette
	if opts.Palette != nil {
		palette = *opts.Palette
	}
	colors := DefaultColors()
	if opts.Colors != nil {
		colors = *opts.Colors
	}

	var faces []Face
	switch kind {
	case Cube:
		faces = cube(palette)
	case Prism:
		faces = prism(n, r, h, colors, !opts.NoCaps)
	case Pyramid:
		faces = pyramid(n, r, h, colors, !opts.NoCaps)
	case Cylinder:
		faces = cylinder(n, r, h, colors, !opts.NoCaps)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	segments := n
	if kind == Cube {
		segments = 0
	}
	return &Mesh{
		Kind:      kind,
		Attribute: opts.Attribute,
		Segments:  segments,
		Faces:     faces,
	}, nil
}

// cubeFaces lists normal and corners per face, each wound counter-clockwise
// when seen from outside.
var cubeFaces = [6]struct {
	normal  math.Vec3
	corners [4]math.Vec3
}{
	{math.Vec3{X: 0, Y: 0, Z: 1}, [4]math.Vec3{{X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}}},
	{math.Vec3{X: 1, Y: 0, Z: 0}, [4]math.Vec3{{X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}}},
	{math.Vec3{X: 0, Y: 0, Z: -1}, [4]math.Vec3{{X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}}},
	{math.Vec3{X: -1, Y: 0, Z: 0}, [4]math.Vec3{{X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}}},
	{math.Vec3{X: 0, Y: 1, Z: 0}, [4]math.Vec3{{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}}},
	{math.Vec3{X: 0, Y: -1, Z: 0}, [4]math.Vec3{{X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}}},
}

// cubeTexCoords maps the image onto each face corner in order.
var cubeTexCoords = [4]math.Vec2{{X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}}

func cube(palette [6]math.Vec3) []Face {
	faces := make([]Face, 0, len(cubeFaces))
	for i, cf := range cubeFaces {
		verts := make([]Vertex, 4)
		for j, c := range cf.corners {
			verts[j] = Vertex{
				Position: c.Scale(CubeHalfExtent),
				Normal:   cf.normal,
				Color:    palette[i],
				TexCoord: cubeTexCoords[j],
			}
		}
		faces = append(faces, Face{Primitive: PrimPolygon, Role: RoleSide, Vertices: verts})
	}
	return faces
}

// ring samples the circle of radius r at n+1 angles fi = i*2π/n; the last
// sample closes the ring.
type ring struct {
	n    int
	r    float64
	step float64
}

func newRing(n int, r float32) ring {
	return ring{n: n, r: float64(r), step: 2 * gomath.Pi / float64(n)}
}

func (g ring) angle(i int) float64 {
	return float64(i) * g.step
}

func (g ring) point(i int, z float32) math.Vec3 {
	fi := g.angle(i)
	return math.Vec3{
		X: float32(g.r * gomath.Cos(fi)),
		Y: float32(g.r * gomath.Sin(fi)),
		Z: z,
	}
}

// capUV maps a ring sample onto the unit square.
func (g ring) capUV(i int) math.Vec2 {
	fi := g.angle(i)
	return math.Vec2{X: float32(0.5 + 0.5*gomath.Cos(fi)), Y: float32(0.5 + 0.5*gomath.Sin(fi))}
}

func (g ring) u(i int) float32 {
	return float32(i) / float32(g.n)
}

// radial returns the unit outward direction at angle fi in the XY plane.
func radial(fi float64) math.Vec3 {
	return math.Vec3{X: float32(gomath.Cos(fi)), Y: float32(gomath.Sin(fi))}
}

// capFace builds an n-gon at height z. The top cap runs counter-clockwise;
// the bottom cap runs in reverse so its winding still faces outward (-Z).
func capFace(g ring, z float32, top bool, color math.Vec3) Face {
	normal := math.Vec3{Z: 1}
	role := RoleTop
	if !top {
		normal = math.Vec3{Z: -1}
		role = RoleBottom
	}

	verts := make([]Vertex, 0, g.n)
	for k := 0; k < g.n; k++ {
		i := k
		if !top {
			i = g.n - 1 - k
		}
		verts = append(verts, Vertex{
			Position: g.point(i, z),
			Normal:   normal,
			Color:    color,
			TexCoord: g.capUV(i),
		})
	}
	return Face{Primitive: PrimPolygon, Role: role, Vertices: verts}
}

func prism(n int, r, h float32, colors Colors, caps bool) []Face {
	g := newRing(n, r)
	top, bottom := h/2, -h/2

	faces := make([]Face, 0, n+2)
	for i := 0; i < n; i++ {
		// Flat quad: the normal points at the middle of the face.
		normal := radial(g.angle(i) + g.step/2)
		u0, u1 := g.u(i), g.u(i+1)
		faces = append(faces, Face{
			Primitive: PrimPolygon,
			Role:      RoleSide,
			Vertices: []Vertex{
				{Position: g.point(i, top), Normal: normal, Color: colors.Side, TexCoord: math.Vec2{X: u0, Y: 1}},
				{Position: g.point(i, bottom), Normal: normal, Color: colors.Side, TexCoord: math.Vec2{X: u0, Y: 0}},
				{Position: g.point(i+1, bottom), Normal: normal, Color: colors.Side, TexCoord: math.Vec2{X: u1, Y: 0}},
				{Position: g.point(i+1, top), Normal: normal, Color: colors.Side, TexCoord: math.Vec2{X: u1, Y: 1}},
			},
		})
	}

	if caps {
		faces = append(faces, capFace(g, top, true, colors.Top), capFace(g, bottom, false, colors.Bottom))
	}
	return faces
}

// pyramidFaceColor gives each lateral face a distinct color.
func pyramidFaceColor(i int) math.Vec3 {
	return math.Vec3{
		X: float32(i % 2),
		Y: float32(i%3) / 2,
		Z: float32(i%5) / 4,
	}
}

func pyramid(n int, r, h float32, colors Colors, base bool) []Face {
	g := newRing(n, r)
	apex := math.Vec3{Z: h}
	slant := gomath.Atan(float64(h) / float64(r))
	sinT, cosT := float32(gomath.Sin(slant)), float32(gomath.Cos(slant))

	faces := make([]Face, 0, n+1)
	for i := 0; i < n; i++ {
		mid := radial(g.angle(i) + g.step/2)
		normal := math.Vec3{X: mid.X * sinT, Y: mid.Y * sinT, Z: cosT}
		color := pyramidFaceColor(i)
		u0, u1 := g.u(i), g.u(i+1)
		faces = append(faces, Face{
			Primitive: PrimPolygon,
			Role:      RoleSide,
			Vertices: []Vertex{
				{Position: apex, Normal: normal, Color: color, TexCoord: math.Vec2{X: (u0 + u1) / 2, Y: 1}},
				{Position: g.point(i, 0), Normal: normal, Color: color, TexCoord: math.Vec2{X: u0, Y: 0}},
				{Position: g.point(i+1, 0), Normal: normal, Color: color, TexCoord: math.Vec2{X: u1, Y: 0}},
			},
		})
	}

	if base {
		faces = append(faces, capFace(g, 0, false, colors.Base))
	}
	return faces
}

func cylinder(n int, r, h float32, colors Colors, caps bool) []Face {
	g := newRing(n, r)
	top, bottom := h/2, -h/2

	// One strip for the whole lateral surface; each sample is shared by the
	// two quads around it, so its normal is the pure radial direction.
	strip := make([]Vertex, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		normal := radial(g.angle(i))
		u := g.u(i)
		strip = append(strip,
			Vertex{Position: g.point(i, top), Normal: normal, Color: colors.Side, TexCoord: math.Vec2{X: u, Y: 1}},
			Vertex{Position: g.point(i, bottom), Normal: normal, Color: colors.Side, TexCoord: math.Vec2{X: u, Y: 0}},
		)
	}

	faces := []Face{{Primitive: PrimQuadStrip, Role: RoleSide, Vertices: strip}}
	if caps {
		faces = append(faces, capFace(g, top, true, colors.Top), capFace(g, bottom, false, colors.Bottom))
	}
	return faces
}
