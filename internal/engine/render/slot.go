package render

import (
	"github.com/Faultbox/solidlab/internal/engine/raster"
	"github.com/Faultbox/solidlab/internal/engine/texture"
)

// TextureSlot owns at most one rasterizer texture.
type TextureSlot struct {
	rast   raster.Rasterizer
	handle raster.Handle
}

// NewTextureSlot returns an empty slot on r.
func NewTextureSlot(r raster.Rasterizer) *TextureSlot {
	return &TextureSlot{rast: r}
}

// Replace uploads buf, deleting the current texture first. If the upload
// fails the slot is left empty.
func (s *TextureSlot) Replace(buf *texture.Buffer) error {
	s.Release()
	h, err := s.rast.CreateTexture(buf)
	if err != nil {
		return err
	}
	s.handle = h
	return nil
}

// Handle returns the owned texture, or 0 when empty.
func (s *TextureSlot) Handle() raster.Handle {
	return s.handle
}

// Loaded reports whether the slot holds a texture.
func (s *TextureSlot) Loaded() bool {
	return s.handle != 0
}

// Release deletes the owned texture. Calling it on an empty slot does nothing.
func (s *TextureSlot) Release() {
	if s.handle == 0 {
		return
	}
	s.rast.DeleteTexture(s.handle)
	s.handle = 0
}
