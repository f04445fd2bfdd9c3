// Package renderer draws through OpenGL 4.1 core. It emulates the
// immediate-mode primitive API of raster.Rasterizer by triangulating each
// primitive into a vertex batch that is flushed whenever draw state changes.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/solidlab/internal/engine/mesh"
	"github.com/Faultbox/solidlab/internal/engine/raster"
	"github.com/Faultbox/solidlab/internal/engine/shader"
	"github.com/Faultbox/solidlab/internal/engine/texture"
	"github.com/Faultbox/solidlab/pkg/math"
)

// Config holds rasterization parameters that are not part of the per-frame
// protocol.
type Config struct {
	PointSize float32
	LineWidth float32
}

// DefaultConfig returns 8 pixel points and 2 pixel lines.
func DefaultConfig() Config {
	return Config{PointSize: 8, LineWidth: 2}
}

var uniformNames = []string{
	"uProjection", "uModelView", "uTextureMatrix",
	"uLighting", "uTextured", "uTexture",
}

// Renderer implements raster.Rasterizer on the current GL context.
type Renderer struct {
	config Config
	log    *zap.Logger

	program  uint32
	uniforms map[string]int32
	vao      uint32
	vbo      uint32

	// batch holds triangulated vertices not yet drawn.
	batch []float32
	// open collects the vertices of the primitive between Begin and End.
	open     []mesh.Vertex
	openPrim mesh.Primitive

	textures map[raster.Handle]struct{}
	bound    raster.Handle
}

// New creates the renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:   cfg,
		log:      log,
		batch:    make([]float32, 0, 4096),
		open:     make([]mesh.Vertex, 0, 256),
		textures: make(map[raster.Handle]struct{}),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.Build(shader.Solid)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.uniforms, err = shader.Uniforms(r.program, uniformNames...)
	if err != nil {
		gl.DeleteProgram(r.program)
		return nil, err
	}

	r.createBuffers()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.PointSize(cfg.PointSize)
	gl.LineWidth(cfg.LineWidth)
	// Core contexts may reject wide lines; only width 1 is guaranteed.
	if e := drainErrors(); e != gl.NO_ERROR {
		log.Warn("line width not supported", zap.Float32("width", cfg.LineWidth), zap.Uint32("error", e))
	}

	gl.UseProgram(r.program)
	gl.Uniform1i(r.uniforms["uTexture"], 0)
	identity := math.Identity()
	r.uploadMatrix("uProjection", identity)
	r.uploadMatrix("uModelView", identity)
	r.uploadMatrix("uTextureMatrix", identity)
	return r, nil
}

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(floatsPerVertex * 4)
	offset := 0
	for i, n := range attribSizes {
		gl.VertexAttribPointerWithOffset(uint32(i), int32(n), gl.FLOAT, false, stride, uintptr(offset*4))
		gl.EnableVertexAttribArray(uint32(i))
		offset += n
	}

	gl.BindVertexArray(0)
}

// Close releases GL resources, including textures still alive.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("textures", len(r.textures)))
	for h := range r.textures {
		id := uint32(h)
		gl.DeleteTextures(1, &id)
	}
	r.textures = map[raster.Handle]struct{}{}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

func (r *Renderer) uploadMatrix(name string, m math.Mat4) {
	gl.UniformMatrix4fv(r.uniforms[name], 1, false, m.Ptr())
}

// drainErrors clears the GL error queue and returns the first error.
func drainErrors() uint32 {
	first := uint32(gl.NO_ERROR)
	for e := gl.GetError(); e != gl.NO_ERROR; e = gl.GetError() {
		if first == gl.NO_ERROR {
			first = e
		}
	}
	return first
}

func boolUniform(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Flush draws the pending batch. Call it before presenting the frame.
func (r *Renderer) Flush() {
	if len(r.batch) == 0 {
		return
	}
	gl.UseProgram(r.program)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.batch)*4, unsafe.Pointer(&r.batch[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.batch)/floatsPerVertex))
	gl.BindVertexArray(0)
	r.batch = r.batch[:0]
}

// ReadPixels flushes and reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels(width, height int) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.Flush()
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels
}

func (r *Renderer) SetClearColor(c math.Vec3) {
	gl.ClearColor(c.X, c.Y, c.Z, 1)
}

func (r *Renderer) Clear(mask raster.ClearMask) {
	r.Flush()
	var bits uint32
	if mask&raster.ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&raster.ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (r *Renderer) SetViewport(x, y, width, height int) {
	r.Flush()
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
	r.log.Debug("viewport", zap.Int("width", width), zap.Int("height", height))
}

func (r *Renderer) SetProjection(m math.Mat4) {
	r.Flush()
	gl.UseProgram(r.program)
	r.uploadMatrix("uProjection", m)
}

func (r *Renderer) LoadModelView(m math.Mat4) {
	r.Flush()
	gl.UseProgram(r.program)
	r.uploadMatrix("uModelView", m)
}

func (r *Renderer) LoadTextureMatrix(m math.Mat4) {
	r.Flush()
	gl.UseProgram(r.program)
	r.uploadMatrix("uTextureMatrix", m)
}

var polygonModes = map[raster.FillMode]uint32{
	raster.Fill:  gl.FILL,
	raster.Line:  gl.LINE,
	raster.Point: gl.POINT,
}

func (r *Renderer) SetFillMode(mode raster.FillMode) {
	r.Flush()
	gl.PolygonMode(gl.FRONT_AND_BACK, polygonModes[mode])
}

func (r *Renderer) SetLighting(enabled bool) {
	r.Flush()
	gl.UseProgram(r.program)
	gl.Uniform1i(r.uniforms["uLighting"], boolUniform(enabled))
}

func (r *Renderer) Begin(p mesh.Primitive) {
	r.openPrim = p
	r.open = r.open[:0]
}

func (r *Renderer) Emit(v mesh.Vertex) {
	r.open = append(r.open, v)
}

func (r *Renderer) End() {
	r.batch = triangulate(r.openPrim, r.open, r.batch)
	r.open = r.open[:0]
}

func (r *Renderer) CreateTexture(buf *texture.Buffer) (raster.Handle, error) {
	if buf == nil || len(buf.Pix) != buf.Width*buf.Height*3 {
		return 0, fmt.Errorf("texture buffer: %w", texture.ErrInvalidSize)
	}
	r.Flush()
	drainErrors()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, int32(buf.Width), int32(buf.Height), 0,
		gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(buf.Pix))

	wrap := int32(gl.REPEAT)
	if buf.Wrap == texture.WrapClamp {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	// Restore the previous binding.
	gl.BindTexture(gl.TEXTURE_2D, uint32(r.bound))

	if e := drainErrors(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return 0, fmt.Errorf("glTexImage2D %dx%d: error 0x%x", buf.Width, buf.Height, e)
	}

	h := raster.Handle(id)
	r.textures[h] = struct{}{}
	r.log.Debug("texture created",
		zap.Uint32("id", id),
		zap.Int("width", buf.Width),
		zap.Int("height", buf.Height))
	return h, nil
}

func (r *Renderer) BindTexture(h raster.Handle) {
	r.Flush()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
	gl.UseProgram(r.program)
	gl.Uniform1i(r.uniforms["uTextured"], boolUniform(h != 0))
	r.bound = h
}

func (r *Renderer) DeleteTexture(h raster.Handle) {
	if _, ok := r.textures[h]; !ok {
		r.log.Warn("delete of unknown texture", zap.Uint32("id", uint32(h)))
		return
	}
	r.Flush()
	id := uint32(h)
	gl.DeleteTextures(1, &id)
	delete(r.textures, h)
	if r.bound == h {
		r.BindTexture(0)
	}
}

var _ raster.Rasterizer = (*Renderer)(nil)
