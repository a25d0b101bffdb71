package cover

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecolorInvertsDarkOnLight(t *testing.T) {
	// White background with a black "glyph" pixel, like the stock cover.
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	src.SetRGBA(1, 0, color.RGBA{0, 0, 0, 255})

	out := Recolor(src, DefaultPalette)

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(0, 0), "light pixel should become foreground")
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, out.RGBAAt(1, 0), "dark pixel should become background")
}

func TestRecolorInterpolatesMidtones(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{128, 128, 128, 255})

	out := Recolor(src, DefaultPalette)
	px := out.RGBAAt(0, 0)

	assert.Equal(t, px.R, px.G)
	assert.Equal(t, px.G, px.B)
	assert.InDelta(t, 128, int(px.R), 2, "mid gray should stay mid gray")
}

func TestRecolorPreservesAlpha(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{0, 0, 0, 128})

	out := Recolor(src, DefaultPalette)
	assert.Equal(t, uint8(128), out.RGBAAt(0, 0).A)
}

func TestRecolorIdempotentOnTwoTone(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	src.SetRGBA(1, 0, color.RGBA{255, 255, 255, 255})
	src.SetRGBA(0, 1, color.RGBA{255, 255, 255, 255})
	src.SetRGBA(1, 1, color.RGBA{0, 0, 0, 255})

	once := Recolor(src, DefaultPalette)
	twice := Recolor(once, DefaultPalette)

	assert.Equal(t, once.Pix, twice.Pix)
}

func TestPaletteInverted(t *testing.T) {
	inv := DefaultPalette.Inverted()
	assert.Equal(t, DefaultPalette.Foreground, inv.Background)
	assert.Equal(t, DefaultPalette.Background, inv.Foreground)
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#000000", want: color.RGBA{0, 0, 0, 255}},
		{in: "FFFFFF", want: color.RGBA{255, 255, 255, 255}},
		{in: "#1a2B3c", want: color.RGBA{0x1a, 0x2b, 0x3c, 255}},
		{in: "#fff", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
