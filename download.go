package altcover

import (
	"context"
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
	"path/filepath"
	"time"

	"github.com/flanksource/commons/logger"

	"github.com/ZodiacalComet/f2e-alt-cover/cover"
	"github.com/ZodiacalComet/f2e-alt-cover/exec"
	"github.com/ZodiacalComet/f2e-alt-cover/fimfiction"
	"github.com/ZodiacalComet/f2e-alt-cover/serve"
	"github.com/ZodiacalComet/f2e-alt-cover/shutdown"
)

// DownloadOptions configure a wrapped fimfic2epub invocation.
type DownloadOptions struct {
	Config

	// ExtraFlags are forwarded to fimfic2epub verbatim after shell-style
	// splitting. -C is added automatically when the story has no cover.
	ExtraFlags string

	// OutputDir is forwarded as "--dir DIR".
	OutputDir string

	// OutputFile is the epub filename, forwarded as a positional argument.
	OutputFile string

	// APIBaseURL overrides the Fimfiction endpoint, mainly for tests.
	APIBaseURL string
}

// Argv builds the fimfic2epub argument list. coverURL may be empty when the
// story already has a cover.
func (o DownloadOptions) Argv(storyID, coverURL string) []string {
	var args []string
	if o.ExtraFlags != "" {
		args = append(args, SplitFlags(o.ExtraFlags)...)
	}
	if o.OutputDir != "" {
		args = append(args, "--dir", o.OutputDir)
	}
	if coverURL != "" {
		args = append(args, "-C", coverURL)
	}
	args = append(args, storyID)
	if o.OutputFile != "" {
		args = append(args, o.OutputFile)
	}
	return args
}

// Download runs fimfic2epub for the given story, generating and serving a
// placeholder cover first when the story doesn't have one. It returns the
// exit code the wrapper should finish with.
func Download(ctx context.Context, storyArg string, opts DownloadOptions) (int, error) {
	id, err := fimfiction.ParseStoryArg(storyArg)
	if err != nil {
		return 1, err
	}

	if opts.Executable != exec.DefaultExecutable() {
		if err := exec.LookupExecutable(opts.Executable); err != nil {
			return 1, err
		}
	}

	imageDir := opts.ImageDir
	if imageDir == "" {
		if imageDir, err = os.Getwd(); err != nil {
			return 1, err
		}
	}

	steps := NewSteps()

	coverName := id + ".jpeg"
	coverPath := filepath.Join(imageDir, coverName)
	coverOnDisk := false
	if info, err := os.Stat(coverPath); err == nil && !info.IsDir() {
		coverOnDisk = true
	}

	// Only hit the API when there is no previously generated cover to reuse.
	var story *fimfiction.Story
	hasCover := false
	if !coverOnDisk {
		step := steps.Start("Fetching story metadata")
		client := fimfiction.NewClient()
		if opts.APIBaseURL != "" {
			client.BaseURL = opts.APIBaseURL
		}
		if story, err = client.FetchStory(ctx, id); err != nil {
			step.Failed(err)
			return 1, err
		}
		step.Success()
		hasCover = story.HasCover()
	}

	coverURL := ""
	if !hasCover {
		logger.Infof("Story %s doesn't have a cover, fimfic2epub needs one", id)

		if coverOnDisk {
			logger.Infof("Reusing existing cover at %s", coverPath)
		} else {
			step := steps.Start("Generating placeholder cover")
			if err := generateCover(story, coverPath, opts.Config); err != nil {
				step.Failed(err)
				return 1, err
			}
			step.Success()
		}

		step := steps.Start("Starting cover server")
		srv := serve.New(imageDir, opts.ServerAddr)
		if err := srv.Start(); err != nil {
			step.Failed(err)
			return 1, err
		}
		stop := func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Stop(stopCtx)
		}
		shutdown.AddHookWithPriority("Stopping cover server", shutdown.PriorityServer, stop)
		defer stop()

		waitCtx, cancel := context.WithTimeout(ctx, time.Duration(opts.WaitSeconds)*time.Second)
		err = srv.WaitReady(waitCtx, coverName)
		cancel()
		if err != nil {
			step.Failed(err)
			return 1, err
		}
		step.Success()

		coverURL = srv.URL(coverName)
	}

	proc := &exec.Process{
		Cmd:          opts.Executable,
		Args:         opts.Argv(id, coverURL),
		InheritStdio: true,
	}

	step := steps.Start("Running fimfic2epub")
	if err := proc.Run(); err != nil {
		step.Failed(err)
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			return proc.ExitCode(), fmt.Errorf("fimfic2epub exited with code %d", proc.ExitCode())
		}
		return 1, err
	}
	step.Success()

	return 0, nil
}

func generateCover(story *fimfiction.Story, path string, cfg Config) error {
	if cfg.TitleFont == "" || cfg.AuthorFont == "" {
		return fmt.Errorf("placeholder cover needed but no fonts configured, set --title-font and --author-font")
	}

	titleFace, err := cover.LoadFace(cfg.TitleFont, cfg.TitleFontSize)
	if err != nil {
		return err
	}
	authorFace, err := cover.LoadFace(cfg.AuthorFont, cfg.AuthorFontSize)
	if err != nil {
		return err
	}

	img := cover.Placeholder(cover.PlaceholderOptions{
		Title:      story.Title,
		Author:     story.Author.Name,
		TitleFace:  titleFace,
		AuthorFace: authorFace,
	})

	logger.Debugf("Writing placeholder cover for %q to %s", story.Title, path)
	return cover.Write(img, path)
}

// SplitFlags splits a flag string the way a POSIX shell would, honoring
// single and double quotes.
func SplitFlags(s string) []string {
	var args []string
	var current []rune
	inArg := false
	var quote rune

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current = append(current, r)
			}
		case r == '\'' || r == '"':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, string(current))
				current = current[:0]
				inArg = false
			}
		default:
			current = append(current, r)
			inArg = true
		}
	}
	if inArg {
		args = append(args, string(current))
	}

	return args
}
