package shader

import _ "embed"

//go:embed solid.vert
var solidVertex string

//go:embed solid.frag
var solidFragment string

// Solid transforms solids by explicit model-view, projection and texture
// matrices, and shades them with vertex color or a decal texture, optionally
// lit by a single headlight.
var Solid = Source{Name: "solid", Vertex: solidVertex, Fragment: solidFragment}
