package main

import (
	"os"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"

	altcover "github.com/ZodiacalComet/f2e-alt-cover"
)

func newDownloadCommand() *cobra.Command {
	var opts altcover.DownloadOptions
	var flagCfg altcover.Config

	cmd := &cobra.Command{
		Use:   "download [flags] <story>",
		Short: "Run fimfic2epub, generating a placeholder cover if needed",
		Long: `Download a Fimfiction story with fimfic2epub, working around its canvas
error on stories without a cover image.

When the story has no cover, a placeholder (title and author on a black
background) is generated in the image directory, served over a local HTTP
server and handed to fimfic2epub with -C. Stories with a cover are passed
through untouched. The story can be given as a numeric ID or a story URL.`,
		Example: `  f2e-alt-cover download --title-font Montserrat-Bold.ttf --author-font Montserrat-Regular.ttf 12345
  f2e-alt-cover download --f2e-dir ~/books --f2e-extra-flags '-H -j' 12345`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := altcover.LoadConfig(altcover.Flags.ConfigFile)
			if err != nil {
				return err
			}
			opts.Config = mergeConfig(cmd, cfg, flagCfg)

			code, err := altcover.Download(cmd.Context(), args[0], opts)
			if err != nil && code > 1 {
				// Propagate fimfic2epub's own exit code instead of a flat 1.
				logger.Errorf("%v", err)
				os.Exit(code)
			}
			return err
		},
	}

	defaults := altcover.DefaultConfig()

	cmd.Flags().StringVar(&flagCfg.ImageDir, "image-dir", "",
		"Directory to store and serve the cover image (default: current directory)")
	cmd.Flags().StringVar(&flagCfg.TitleFont, "title-font", "",
		"Title font for the placeholder cover, e.g. Montserrat-Bold.ttf")
	cmd.Flags().Float64Var(&flagCfg.TitleFontSize, "title-font-size", defaults.TitleFontSize,
		"Title font size for the placeholder cover")
	cmd.Flags().StringVar(&flagCfg.AuthorFont, "author-font", "",
		"Author font for the placeholder cover, e.g. Montserrat-Regular.ttf")
	cmd.Flags().Float64Var(&flagCfg.AuthorFontSize, "author-font-size", defaults.AuthorFontSize,
		"Author font size for the placeholder cover")
	cmd.Flags().IntVar(&flagCfg.WaitSeconds, "wait", defaults.WaitSeconds,
		"Seconds to wait for the cover server to become ready")
	cmd.Flags().StringVar(&flagCfg.ServerAddr, "server-addr", defaults.ServerAddr,
		"Address the cover server listens on")
	cmd.Flags().StringVar(&flagCfg.Executable, "f2e-executable", defaults.Executable,
		"Location of the fimfic2epub executable")
	cmd.Flags().StringVar(&opts.OutputDir, "f2e-dir", "",
		"Forwarded into fimfic2epub as '--dir DIR'")
	cmd.Flags().StringVar(&opts.ExtraFlags, "f2e-extra-flags", "",
		"Flags to forward into fimfic2epub ('-C <url>' is added automatically)")
	cmd.Flags().StringVar(&opts.OutputFile, "f2e-filename", "",
		"Filename of the epub that will be created, forwarded into fimfic2epub")

	return cmd
}

// mergeConfig layers explicitly set flags over the loaded config file.
func mergeConfig(cmd *cobra.Command, cfg, flagCfg altcover.Config) altcover.Config {
	set := map[string]func(){
		"image-dir":        func() { cfg.ImageDir = flagCfg.ImageDir },
		"title-font":       func() { cfg.TitleFont = flagCfg.TitleFont },
		"title-font-size":  func() { cfg.TitleFontSize = flagCfg.TitleFontSize },
		"author-font":      func() { cfg.AuthorFont = flagCfg.AuthorFont },
		"author-font-size": func() { cfg.AuthorFontSize = flagCfg.AuthorFontSize },
		"wait":             func() { cfg.WaitSeconds = flagCfg.WaitSeconds },
		"server-addr":      func() { cfg.ServerAddr = flagCfg.ServerAddr },
		"f2e-executable":   func() { cfg.Executable = flagCfg.Executable },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	return cfg
}
