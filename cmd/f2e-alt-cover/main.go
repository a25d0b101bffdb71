package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	altcover "github.com/ZodiacalComet/f2e-alt-cover"
	"github.com/ZodiacalComet/f2e-alt-cover/shutdown"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	go shutdown.WaitForSignal()

	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "f2e-alt-cover",
		Short: "Cover patches for fimfic2epub",
		Long: `f2e-alt-cover patches the cover handling of fimfic2epub.

The 'recolor' command replaces a cover asset with a recolored version (black
background, white foreground). The 'download' command wraps fimfic2epub's CLI
so that stories without a cover image no longer crash it: a placeholder cover
is generated, served locally and passed to fimfic2epub with -C.`,
		Example: `  f2e-alt-cover recolor default-cover.jpg
  f2e-alt-cover download --title-font Montserrat-Bold.ttf --author-font Montserrat-Regular.ttf 12345
  f2e-alt-cover download https://www.fimfiction.net/story/12345/some-story`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			altcover.Flags.UseFlags()
		},
	}

	altcover.BindAllFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newRecolorCommand())
	rootCmd.AddCommand(newDownloadCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getVersionInfo())
		},
	}
}

func getVersionInfo() string {
	return fmt.Sprintf("f2e-alt-cover %s (commit: %s, built: %s, go: %s)",
		version, commit, date, runtime.Version())
}
