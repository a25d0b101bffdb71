package main

import (
	"github.com/spf13/cobra"

	altcover "github.com/ZodiacalComet/f2e-alt-cover"
)

func newRecolorCommand() *cobra.Command {
	var opts altcover.RecolorOptions

	cmd := &cobra.Command{
		Use:   "recolor [flags] <target>",
		Short: "Overwrite a cover asset with a recolored version",
		Long: `Load a cover image, remap it onto a two-color palette (black background,
white foreground by default) and overwrite the target asset with the result.

The source defaults to the target itself; pass --source to recolor a
different file or a remote image fetched over HTTP.`,
		Example: `  f2e-alt-cover recolor node_modules/fimfic2epub/build/default-cover.jpg
  f2e-alt-cover recolor --source https://example.com/cover.png --invert cover.jpg
  f2e-alt-cover recolor --background '#101010' --foreground '#e0e0e0' cover.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Target = args[0]
			return altcover.Recolor(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Source, "source", "", "Source image path or URL (default: the target itself)")
	cmd.Flags().StringVar(&opts.Background, "background", "", "Background hex color (default #000000)")
	cmd.Flags().StringVar(&opts.Foreground, "foreground", "", "Foreground hex color (default #FFFFFF)")
	cmd.Flags().BoolVar(&opts.Invert, "invert", false, "Swap background and foreground")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "Scale the result to this width (requires --height)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "Scale the result to this height (requires --width)")

	return cmd
}
