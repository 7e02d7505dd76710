// Package palette builds the evenly spaced hue table used to color frames.
package palette

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultCount      = 16
	DefaultSaturation = 0.75
	DefaultValue      = 1.0
)

// Rand is the random stream the palette draws its starting hue from.
type Rand interface {
	IntN(n int) int
}

// Color is an immutable HSV color together with its 8-bit RGB form.
type Color struct {
	Hue        float64
	Saturation float64
	Value      float64
	RGB        [3]uint8
}

// NewColor converts an HSV triple (hue in degrees, s and v in [0,1]).
// Channels are truncated, not rounded.
func NewColor(h, s, v float64) Color {
	c := colorful.Hsv(h, s, v).Clamped()
	return Color{
		Hue:        h,
		Saturation: s,
		Value:      v,
		RGB:        [3]uint8{channel(c.R), channel(c.G), channel(c.B)},
	}
}

func channel(x float64) uint8 {
	return uint8(math.Min(255, math.Max(0, x*255)))
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.RGB[0], G: c.RGB[1], B: c.RGB[2], A: 0xff}
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.RGB[0], c.RGB[1], c.RGB[2])
}

// Palette is indexed directly by cell color.
type Palette []Color

// Build draws one starting hue in [0, 360) from r and then steps count
// times by 360/count degrees, wrapping at 360.
func Build(r Rand, count int, saturation, value float64) (Palette, error) {
	if count <= 0 {
		return nil, fmt.Errorf("palette: count must be positive, got %d", count)
	}
	step := 360.0 / float64(count)
	hue := float64(r.IntN(360))
	p := make(Palette, 0, count)
	for i := 0; i < count; i++ {
		hue = math.Mod(hue+step, 360)
		p = append(p, NewColor(hue, saturation, value))
	}
	return p, nil
}

// BuildDefault builds a 16 entry palette at saturation 0.75 and value 1.0.
func BuildDefault(r Rand) Palette {
	p, _ := Build(r, DefaultCount, DefaultSaturation, DefaultValue)
	return p
}

// At returns the color for index i, clamping indices past the end.
func (p Palette) At(i uint32) Color {
	if int(i) >= len(p) {
		return p[len(p)-1]
	}
	return p[i]
}

// ColorPalette converts p for use with image.Paletted.
func (p Palette) ColorPalette() color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = c.NRGBA()
	}
	return out
}
