package render

import (
	"fmt"

	"github.com/Faultbox/solidlab/internal/engine/texture"
)

// TextureSource selects where the texturing exercise gets its texels.
type TextureSource int

const (
	SourceCheckerboard TextureSource = iota
	SourceSpiral
	SourceImage
)

var sourceNames = [...]string{
	SourceCheckerboard: "checkerboard",
	SourceSpiral:       "spiral",
	SourceImage:        "image",
}

// Sources lists every texture source in cycling order.
func Sources() []TextureSource {
	return []TextureSource{SourceCheckerboard, SourceSpiral, SourceImage}
}

func (s TextureSource) String() string {
	if s < 0 || int(s) >= len(sourceNames) {
		return fmt.Sprintf("TextureSource(%d)", int(s))
	}
	return sourceNames[s]
}

// ParseTextureSource maps a config name to a TextureSource.
func ParseTextureSource(s string) (TextureSource, error) {
	for src, name := range sourceNames {
		if name == s {
			return TextureSource(src), nil
		}
	}
	return 0, fmt.Errorf("unknown texture source %q", s)
}

// pattern returns the procedural pattern of a synthesized source.
func (s TextureSource) pattern() (texture.Pattern, bool) {
	switch s {
	case SourceCheckerboard:
		return texture.Checkerboard, true
	case SourceSpiral:
		return texture.RadialSpiral, true
	}
	return 0, false
}
