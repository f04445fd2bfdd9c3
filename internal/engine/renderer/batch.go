package renderer

import "github.com/Faultbox/solidlab/internal/engine/mesh"

// Vertex layout in the batch: position, normal, color, texcoord.
var attribSizes = [...]int{3, 3, 3, 2}

const floatsPerVertex = 11

func appendVertex(dst []float32, v mesh.Vertex) []float32 {
	return append(dst,
		v.Position.X, v.Position.Y, v.Position.Z,
		v.Normal.X, v.Normal.Y, v.Normal.Z,
		v.Color.X, v.Color.Y, v.Color.Z,
		v.TexCoord.X, v.TexCoord.Y,
	)
}

// triangulate appends the triangles of one primitive to dst. A polygon
// becomes a fan around its first vertex; a quad strip becomes two triangles
// per quad, keeping the strip's winding. Degenerate input appends nothing.
func triangulate(p mesh.Primitive, vs []mesh.Vertex, dst []float32) []float32 {
	switch p {
	case mesh.PrimPolygon:
		for i := 1; i+1 < len(vs); i++ {
			dst = appendVertex(dst, vs[0])
			dst = appendVertex(dst, vs[i])
			dst = appendVertex(dst, vs[i+1])
		}
	case mesh.PrimQuadStrip:
		for i := 0; 2*i+3 < len(vs); i++ {
			a, b, c, d := vs[2*i], vs[2*i+1], vs[2*i+3], vs[2*i+2]
			dst = appendVertex(dst, a)
			dst = appendVertex(dst, b)
			dst = appendVertex(dst, c)
			dst = appendVertex(dst, a)
			dst = appendVertex(dst, c)
			dst = appendVertex(dst, d)
		}
	}
	return dst
}
