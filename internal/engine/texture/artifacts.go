package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-fonts/latin-modern/lmsans10bold"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Artifact file names written by WriteArtifacts.
const (
	GridFile      = "texture.bmp"
	LightWoodFile = "1.bmp"
	DarkWoodFile  = "2.bmp"
	WoodBoardFile = "2x2.bmp"
	SpiralFile    = "pattern.bmp"
)

const (
	gridSize   = 512
	swatchSize = 256
	labelSize  = 25
)

// gridQuadrants are the colors of the labeled grid, top-left, top-right,
// bottom-left, bottom-right.
var gridQuadrants = [4]color.RGBA{
	{R: 255, G: 220, B: 180, A: 255},
	{R: 180, G: 50, B: 50, A: 255},
	{R: 200, G: 100, B: 100, A: 255},
	{R: 255, G: 240, B: 200, A: 255},
}

// gridLabels places the numbers 1..16 near the corners of every quadrant
// (x, y of the text's top-left corner).
var gridLabels = [16]image.Point{
	{10, 10}, {220, 10}, {270, 10}, {470, 10},
	{10, 210}, {220, 210}, {270, 210}, {470, 210},
	{10, 270}, {215, 270}, {265, 270}, {465, 270},
	{10, 470}, {215, 470}, {265, 470}, {465, 470},
}

// labelFace loads the bundled sans font, falling back to the fixed 7x13 face.
func labelFace() font.Face {
	f, err := opentype.Parse(lmsans10bold.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    labelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// QuadrantGrid draws the 512x512 reference grid: four colored quadrants with
// a shadowed number near each quadrant corner, so orientation and wrapping
// can be checked on the mapped solid.
func QuadrantGrid() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, gridSize, gridSize))
	half := gridSize / 2
	rects := [4]image.Rectangle{
		image.Rect(0, 0, half, half),
		image.Rect(half, 0, gridSize, half),
		image.Rect(0, half, half, gridSize),
		image.Rect(half, half, gridSize, gridSize),
	}
	for i, r := range rects {
		draw.Draw(img, r, image.NewUniform(gridQuadrants[i]), image.Point{}, draw.Src)
	}

	face := labelFace()
	ascent := face.Metrics().Ascent
	d := &font.Drawer{Dst: img, Face: face}
	for i, at := range gridLabels {
		text := strconv.Itoa(i + 1)

		d.Src = image.NewUniform(color.Black)
		d.Dot = fixed.P(at.X+2, at.Y+2).Add(fixed.Point26_6{Y: ascent})
		d.DrawString(text)

		d.Src = image.NewUniform(color.White)
		d.Dot = fixed.P(at.X, at.Y).Add(fixed.Point26_6{Y: ascent})
		d.DrawString(text)
	}
	return img
}

// WoodBoard composes a 2x2 board from two swatches: dark at top-left and
// bottom-right, light elsewhere. Both swatches must be the same size.
func WoodBoard(light, dark image.Image) *image.RGBA {
	w, h := light.Bounds().Dx(), light.Bounds().Dy()
	img := image.NewRGBA(image.Rect(0, 0, 2*w, 2*h))
	tiles := []struct {
		src image.Image
		at  image.Point
	}{
		{dark, image.Pt(0, 0)},
		{light, image.Pt(w, 0)},
		{light, image.Pt(0, h)},
		{dark, image.Pt(w, h)},
	}
	for _, t := range tiles {
		r := image.Rectangle{Min: t.at, Max: t.at.Add(image.Pt(w, h))}
		draw.Draw(img, r, t.src, t.src.Bounds().Min, draw.Src)
	}
	return img
}

// solidSwatch is the stand-in used when a wood swatch cannot be read back.
func solidSwatch(c RGB) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, swatchSize, swatchSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}), image.Point{}, draw.Src)
	return img
}

// WriteArtifacts writes the five reference images into dir, creating it if
// needed, and returns the written paths in order. Patterns are rendered in
// image space: texel row 0 is the first (top) image row.
func WriteArtifacts(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var written []string
	save := func(name string, img image.Image) error {
		path := filepath.Join(dir, name)
		if err := SaveBMP(path, img); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if err := save(GridFile, QuadrantGrid()); err != nil {
		return written, err
	}

	for _, s := range []struct {
		name  string
		texel Texel
	}{
		{LightWoodFile, LightWoodTexel},
		{DarkWoodFile, DarkWoodTexel},
	} {
		buf, err := Render(s.texel, swatchSize, swatchSize)
		if err != nil {
			return written, err
		}
		if err := save(s.name, buf.RowImage()); err != nil {
			return written, err
		}
	}

	light, err := loadBMP(filepath.Join(dir, LightWoodFile))
	if err != nil {
		light = solidSwatch(CheckerLight)
	}
	dark, err := loadBMP(filepath.Join(dir, DarkWoodFile))
	if err != nil {
		dark = solidSwatch(CheckerDark)
	}
	if err := save(WoodBoardFile, WoodBoard(light, dark)); err != nil {
		return written, err
	}

	spiral, err := Render(Spiral, gridSize, gridSize)
	if err != nil {
		return written, err
	}
	if err := save(SpiralFile, spiral.RowImage()); err != nil {
		return written, err
	}
	return written, nil
}

// SaveBMP encodes img as a BMP file at path.
func SaveBMP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("encoding BMP %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func loadBMP(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return bmp.Decode(f)
}
