// Package texture synthesizes and decodes the RGB8 texel buffers mapped onto
// the solids.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrInvalidSize is returned for non-positive buffer dimensions.
	ErrInvalidSize = errors.New("texture size must be positive")
	// ErrUnknownPattern is returned for a pattern outside the known set.
	ErrUnknownPattern = errors.New("unknown texture pattern")
)

// Wrap is the texture-coordinate addressing mode.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

// RGB is one texel.
type RGB [3]uint8

// Buffer is a width x height RGB8 texel buffer. Row 0 is the bottom row,
// matching the texture-coordinate origin.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
	Wrap   Wrap
}

// NewBuffer allocates a zeroed buffer with repeat addressing.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
		Wrap:   WrapRepeat,
	}, nil
}

func (b *Buffer) offset(col, row int) int {
	return (row*b.Width + col) * 3
}

// At returns the texel at (col, row).
func (b *Buffer) At(col, row int) RGB {
	i := b.offset(col, row)
	return RGB{b.Pix[i], b.Pix[i+1], b.Pix[i+2]}
}

// Set writes the texel at (col, row).
func (b *Buffer) Set(col, row int, c RGB) {
	i := b.offset(col, row)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c[0], c[1], c[2]
}

// Equal reports whether both buffers have the same size and texels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.Width != other.Width || b.Height != other.Height || len(b.Pix) != len(other.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// Image converts to an image with the usual top-left origin, flipping rows.
func (b *Buffer) Image() *image.RGBA {
	return b.toRGBA(true)
}

// RowImage converts to an image keeping storage order: buffer row 0 becomes
// the first image row. Used when a pattern is defined in image space.
func (b *Buffer) RowImage() *image.RGBA {
	return b.toRGBA(false)
}

func (b *Buffer) toRGBA(flip bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for row := 0; row < b.Height; row++ {
		y := row
		if flip {
			y = b.Height - 1 - row
		}
		for col := 0; col < b.Width; col++ {
			c := b.At(col, row)
			img.SetRGBA(col, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: 255})
		}
	}
	return img
}

// FromImage copies an image of exactly width x height into a new buffer,
// dropping alpha. With flip set, the image's top row becomes buffer row
// height-1, which converts a decoded top-left image to texture orientation.
func FromImage(img image.Image, flip bool) (*Buffer, error) {
	bounds := img.Bounds()
	buf, err := NewBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := y - bounds.Min.Y
		if flip {
			row = buf.Height - 1 - row
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buf.Set(x-bounds.Min.X, row, RGB{c.R, c.G, c.B})
		}
	}
	return buf, nil
}
