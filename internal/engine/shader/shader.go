// Package shader compiles the GLSL programs used to draw the solids.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Source is a named pair of vertex and fragment stages.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// Build compiles both stages of src and links them into a program. The
// returned error names the program and the failing stage.
func Build(src Source) (uint32, error) {
	vert, err := compile(gl.VERTEX_SHADER, src.Vertex)
	if err != nil {
		return 0, fmt.Errorf("shader %s: vertex: %w", src.Name, err)
	}
	defer gl.DeleteShader(vert)

	frag, err := compile(gl.FRAGMENT_SHADER, src.Fragment)
	if err != nil {
		return 0, fmt.Errorf("shader %s: fragment: %w", src.Name, err)
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader %s: link: %s", src.Name, msg)
	}
	return program, nil
}

func compile(stage uint32, source string) (uint32, error) {
	if strings.TrimSpace(source) == "" {
		return 0, errors.New("empty source")
	}
	id := gl.CreateShader(stage)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csource, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(id, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(id)
		return 0, errors.New(msg)
	}
	return id, nil
}

// infoLog reads a shader or program log with the matching pair of getters.
func infoLog(id uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var n int32
	getiv(id, gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return "no info log"
	}
	buf := make([]byte, n)
	getLog(id, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n ")
}

// Uniforms looks up every named uniform of program. A name that is not an
// active uniform is an error, so a renamed shader variable fails at startup.
func Uniforms(program uint32, names ...string) (map[string]int32, error) {
	locs := make(map[string]int32, len(names))
	for _, name := range names {
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		if loc < 0 {
			return nil, fmt.Errorf("uniform %q not found in program %d", name, program)
		}
		locs[name] = loc
	}
	return locs, nil
}
