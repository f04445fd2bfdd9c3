package texture

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pattern selects a procedural texture.
type Pattern int

const (
	Checkerboard Pattern = iota
	RadialSpiral
	LightWood
	DarkWood
)

var patternNames = [...]string{
	Checkerboard: "checkerboard",
	RadialSpiral: "spiral",
	LightWood:    "light-wood",
	DarkWood:     "dark-wood",
}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
	return patternNames[p]
}

// ParsePattern maps a config or CLI name to a Pattern.
func ParsePattern(s string) (Pattern, error) {
	for p, name := range patternNames {
		if name == s {
			return Pattern(p), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}

// Texel computes one texel of a width x height texture.
// It must be a pure function of its arguments.
type Texel func(col, row, width, height int) RGB

// Fixed pattern colors.
var (
	CheckerLight = RGB{210, 180, 140}
	CheckerDark  = RGB{101, 67, 33}
	SpiralYellow = RGB{255, 255, 0}
	SpiralBlue   = RGB{0, 0, 255}
)

// Checker is a 2x2 block pattern: the lower-left and upper-right quadrants
// (in storage order) are dark, the other two light.
func Checker(col, row, width, height int) RGB {
	hw, hh := width/2, height/2
	if (col < hw && row < hh) || (col >= hw && row >= hh) {
		return CheckerDark
	}
	return CheckerLight
}

// Spiral maps the texel to a centered coordinate scaled to [-4,4) and bands
// it by |cos(8·angle − radius)|. The x == 0 column uses angle π/2, and
// values whose fraction is below 0.75 are yellow.
func Spiral(col, row, width, height int) RGB {
	x := float64(col-width/2) / float64(width) * 8
	y := float64(row-height/2) / float64(height) * 8
	radius := math.Sqrt(x*x + y*y)

	angle := math.Pi / 2
	if x != 0 {
		angle = math.Atan(y / x)
	}

	value := math.Abs(math.Cos(8*angle - radius))
	if math.Mod(value, 1.0) < 0.75 {
		return SpiralYellow
	}
	return SpiralBlue
}

// woodTexel returns a vertical-grain wood texel; base tone varies with the column.
func woodTexel(base, amplitude float64, dg, db float64) Texel {
	return func(col, _, _, _ int) RGB {
		tone := base - math.Sin(float64(col)*0.05)*amplitude
		return RGB{clampByte(tone), clampByte(tone - dg), clampByte(tone - db)}
	}
}

// clampByte truncates toward zero and clamps to [0,255].
func clampByte(v float64) uint8 {
	i := int(v)
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return uint8(i)
}

// Wood tones of the two swatches.
var (
	LightWoodTexel = woodTexel(210, 15, 30, 70)
	DarkWoodTexel  = woodTexel(101, 10, 34, 68)
)

// TexelFunc returns the texel function for a pattern.
func (p Pattern) TexelFunc() (Texel, error) {
	switch p {
	case Checkerboard:
		return Checker, nil
	case RadialSpiral:
		return Spiral, nil
	case LightWood:
		return LightWoodTexel, nil
	case DarkWood:
		return DarkWoodTexel, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, p)
	}
}

// Synthesize builds a full width x height buffer for the pattern.
func Synthesize(p Pattern, width, height int) (*Buffer, error) {
	fn, err := p.TexelFunc()
	if err != nil {
		return nil, err
	}
	return Render(fn, width, height)
}

// Render evaluates fn for every texel. Rows are split into bands computed
// concurrently; the buffer is returned only after every band has finished.
func Render(fn Texel, width, height int) (*Buffer, error) {
	buf, err := NewBuffer(width, height)
	if err != nil {
		return nil, err
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	band := (height + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < height; start += band {
		start, end := start, min(start+band, height)
		g.Go(func() error {
			for row := start; row < end; row++ {
				for col := 0; col < width; col++ {
					buf.Set(col, row, fn(col, row, width, height))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buf, nil
}
