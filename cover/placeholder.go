package cover

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Canvas layout for generated covers. Fimfiction's own covers are 1080x1440,
// so fimfic2epub gets an image with the dimensions it expects.
const (
	Width  = 1080
	Height = 1440

	// SidePadding is the horizontal margin text blocks are centered within.
	SidePadding = 108

	// TitleTop and AuthorTop are the y offsets of the two text blocks.
	TitleTop  = 150
	AuthorTop = 1200

	// LineSpacing is the vertical advance multiplier between wrapped lines.
	LineSpacing = 1.2

	borderStroke = 2
)

// Two concentric border rectangles, inset from the canvas edge.
var borderInsets = []int{12, 20}

// PlaceholderOptions describe a generated stand-in cover. A nil face skips
// its text block.
type PlaceholderOptions struct {
	Title      string
	Author     string
	TitleFace  font.Face
	AuthorFace font.Face
	Palette    Palette
}

// Placeholder renders a stand-in cover for a story without one: solid
// background, a double border, and the title and author word-wrapped and
// centered in their blocks.
func Placeholder(opts PlaceholderOptions) *image.RGBA {
	pal := opts.Palette
	if pal == (Palette{}) {
		pal = DefaultPalette
	}

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(pal.Background), image.Point{}, draw.Src)

	for _, inset := range borderInsets {
		strokeRect(img, image.Rect(inset, inset, Width-inset, Height-inset), borderStroke, pal.Foreground)
	}

	maxWidth := Width - 2*SidePadding
	drawBlock(img, opts.Title, opts.TitleFace, TitleTop, maxWidth, pal.Foreground)
	drawBlock(img, opts.Author, opts.AuthorFace, AuthorTop, maxWidth, pal.Foreground)

	return img
}

// strokeRect draws the outline of r with the given stroke width.
func strokeRect(img *image.RGBA, r image.Rectangle, stroke int, c color.Color) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+stroke),
		image.Rect(r.Min.X, r.Max.Y-stroke, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+stroke, r.Max.Y),
		image.Rect(r.Max.X-stroke, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, edge := range edges {
		draw.Draw(img, edge, src, image.Point{}, draw.Src)
	}
}

// drawBlock renders text wrapped and centered, with the top of the first
// line at the given y offset.
func drawBlock(img *image.RGBA, text string, face font.Face, top, maxWidth int, c color.Color) {
	if text == "" || face == nil {
		return
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}

	metrics := face.Metrics()
	advance := int(float64(metrics.Height.Ceil()) * LineSpacing)
	y := top + metrics.Ascent.Ceil()

	for _, line := range Wrap(face, text, maxWidth) {
		w := font.MeasureString(face, line).Ceil()
		d.Dot = fixed.P(SidePadding+(maxWidth-w)/2, y)
		d.DrawString(line)
		y += advance
	}
}

// Wrap greedily splits text into lines that measure at most maxWidth with
// the given face. A single word wider than maxWidth is emitted on its own
// line rather than dropped.
func Wrap(face font.Face, text string, maxWidth int) []string {
	var lines []string
	var line []string

	for _, word := range strings.Fields(text) {
		candidate := word
		if len(line) > 0 {
			candidate = strings.Join(line, " ") + " " + word
		}
		if len(line) == 0 || font.MeasureString(face, candidate).Ceil() <= maxWidth {
			line = append(line, word)
			continue
		}
		lines = append(lines, strings.Join(line, " "))
		line = []string{word}
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}

	return lines
}
