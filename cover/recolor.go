package cover

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

// Palette is the two-color scheme a cover is remapped onto.
type Palette struct {
	Background color.RGBA
	Foreground color.RGBA
}

// DefaultPalette matches the patched fimfic2epub cover: black background,
// white text.
var DefaultPalette = Palette{
	Background: color.RGBA{R: 0, G: 0, B: 0, A: 255},
	Foreground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
}

// Inverted swaps background and foreground.
func (p Palette) Inverted() Palette {
	return Palette{Background: p.Foreground, Foreground: p.Background}
}

// Recolor maps every pixel of src onto the palette keyed by luminance: dark
// pixels land on the background color, light pixels on the foreground, and
// everything in between is interpolated so antialiased edges survive the
// remap. Alpha is preserved. The input image is not modified.
func Recolor(src image.Image, p Palette) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := src.At(x, y).RGBA()
			// Rec. 601 luma on the 16-bit channels, scaled to [0, 1].
			lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 0xffff
			dst.SetRGBA(x, y, color.RGBA{
				R: lerp(p.Background.R, p.Foreground.R, lum),
				G: lerp(p.Background.G, p.Foreground.G, lum),
				B: lerp(p.Background.B, p.Foreground.B, lum),
				A: uint8(a >> 8),
			})
		}
	}

	return dst
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// ParseHex parses a "#RRGGBB" or "RRGGBB" color string.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q, expected RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
