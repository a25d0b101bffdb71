package altcover

import (
	"context"
	"fmt"
	"image"

	"github.com/flanksource/commons/logger"

	"github.com/ZodiacalComet/f2e-alt-cover/cover"
)

// RecolorOptions configure a cover recolor run.
type RecolorOptions struct {
	// Source is a local path or URL; empty means recolor Target in place.
	Source string

	// Target is the asset path to overwrite, typically fimfic2epub's
	// default cover.
	Target string

	// Background and Foreground are hex colors; empty keeps the defaults
	// (black background, white foreground).
	Background string
	Foreground string

	// Invert swaps background and foreground.
	Invert bool

	// Width and Height scale the result before writing when both are set.
	Width  int
	Height int
}

// Recolor loads the source cover, remaps it onto the palette and overwrites
// the target asset.
func Recolor(ctx context.Context, opts RecolorOptions) error {
	if opts.Target == "" {
		return fmt.Errorf("no target path given")
	}
	source := opts.Source
	if source == "" {
		source = opts.Target
	}

	img, err := cover.Load(ctx, source)
	if err != nil {
		return err
	}

	pal := cover.DefaultPalette
	if opts.Background != "" {
		if pal.Background, err = cover.ParseHex(opts.Background); err != nil {
			return err
		}
	}
	if opts.Foreground != "" {
		if pal.Foreground, err = cover.ParseHex(opts.Foreground); err != nil {
			return err
		}
	}
	if opts.Invert {
		pal = pal.Inverted()
	}

	var out image.Image = cover.Recolor(img, pal)
	if opts.Width > 0 && opts.Height > 0 {
		out = cover.Scale(out, opts.Width, opts.Height)
	}

	if err := cover.Write(out, opts.Target); err != nil {
		return err
	}

	logger.Infof("Wrote recolored cover to %s", opts.Target)
	return nil
}
