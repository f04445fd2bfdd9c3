package shader

import (
	"fmt"
	"strings"
	"testing"
)

func TestSolidTargetsCoreProfile(t *testing.T) {
	for stage, src := range map[string]string{"vertex": Solid.Vertex, "fragment": Solid.Fragment} {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s stage does not target GLSL 4.10 core: %.30q", stage, src)
		}
	}
}

func TestSolidAttributeLocations(t *testing.T) {
	// Locations follow the renderer's batch layout: position, normal, color, texcoord.
	attrs := []string{"vec3 aPosition", "vec3 aNormal", "vec3 aColor", "vec2 aTexCoord"}
	for loc, decl := range attrs {
		want := fmt.Sprintf("layout(location = %d) in %s;", loc, decl)
		if !strings.Contains(Solid.Vertex, want) {
			t.Errorf("vertex stage lacks %q", want)
		}
	}
}
