package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types handled by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
	tgaHeaderSize   = 18
)

var errTGATruncated = errors.New("tga: pixel data truncated")

type tgaHeader struct {
	idLength    int
	colorMap    byte
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("tga: header needs %d bytes, got %d", tgaHeaderSize, len(data))
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		colorMap:    data[1],
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}
	switch {
	case h.colorMap != 0:
		return h, fmt.Errorf("tga: color-mapped images are not supported")
	case h.imageType != tgaTrueColor && h.imageType != tgaTrueColorRLE:
		return h, fmt.Errorf("tga: unsupported image type %d", h.imageType)
	case h.bpp != 24 && h.bpp != 32:
		return h, fmt.Errorf("tga: unsupported bit depth %d", h.bpp)
	case h.width == 0 || h.height == 0:
		return h, fmt.Errorf("tga: empty image %dx%d", h.width, h.height)
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed or RLE true-color TGA into an NRGBA
// image with top-left origin.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	start := tgaHeaderSize + h.idLength
	if start > len(data) {
		return nil, errTGATruncated
	}
	src := data[start:]
	bpp := h.bpp / 8

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	put := func(i int, px []byte) {
		x, y := i%h.width, i/h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		c := color.NRGBA{R: px[2], G: px[1], B: px[0], A: 255}
		if bpp == 4 {
			c.A = px[3]
		}
		img.SetNRGBA(x, y, c)
	}

	total := h.width * h.height
	if h.imageType == tgaTrueColor {
		if len(src) < total*bpp {
			return nil, errTGATruncated
		}
		for i := 0; i < total; i++ {
			put(i, src[i*bpp:])
		}
		return img, nil
	}

	// RLE packets: high bit set repeats one pixel, clear copies raw pixels.
	pos, i := 0, 0
	for i < total {
		if pos >= len(src) {
			return nil, errTGATruncated
		}
		packet := src[pos]
		pos++
		count := int(packet&0x7F) + 1
		repeat := packet&0x80 != 0

		for k := 0; k < count && i < total; k++ {
			if pos+bpp > len(src) {
				return nil, errTGATruncated
			}
			put(i, src[pos:])
			i++
			if !repeat {
				pos += bpp
			}
		}
		if repeat {
			pos += bpp
		}
	}
	return img, nil
}
