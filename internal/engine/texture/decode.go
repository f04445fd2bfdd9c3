package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Decoder turns an image file into a texture buffer of exactly the requested size.
type Decoder interface {
	Decode(path string, width, height int) (*Buffer, error)
}

// FileDecoder reads BMP, PNG, JPEG and TGA files from disk.
type FileDecoder struct{}

// Decode loads path, resizes it to width x height, drops alpha and flips it
// so the image's bottom row becomes texture row 0.
func (FileDecoder) Decode(path string, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	img, err := DecodeImage(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		img = transform.Resize(img, width, height, transform.Linear)
	}
	return FromImage(transform.FlipV(img), false)
}

// DecodeImage decodes raw file bytes. TGA has no magic number, so it is
// selected by extension; everything else is sniffed by image.Decode.
func DecodeImage(data []byte, ext string) (image.Image, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
