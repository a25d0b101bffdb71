package altcover

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFlags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "-H -j", want: []string{"-H", "-j"}},
		{in: "  -H   -j  ", want: []string{"-H", "-j"}},
		{in: `-C "http://host/a b.jpeg"`, want: []string{"-C", "http://host/a b.jpeg"}},
		{in: `'a b' c`, want: []string{"a b", "c"}},
		{in: `--title="Some Story"`, want: []string{"--title=Some Story"}},
		{in: `""`, want: []string{""}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitFlags(tt.in), tt.in)
	}
}

func TestArgv(t *testing.T) {
	opts := DownloadOptions{
		ExtraFlags: "-H -j",
		OutputDir:  "/books",
		OutputFile: "story.epub",
	}

	got := opts.Argv("12345", "http://127.0.0.1:8000/12345.jpeg")
	assert.Equal(t, []string{
		"-H", "-j",
		"--dir", "/books",
		"-C", "http://127.0.0.1:8000/12345.jpeg",
		"12345",
		"story.epub",
	}, got)
}

func TestArgvMinimal(t *testing.T) {
	assert.Equal(t, []string{"12345"}, DownloadOptions{}.Argv("12345", ""))
}

// fakeTool writes a shell script that records its arguments and exits with
// the given code, standing in for fimfic2epub.
func fakeTool(t *testing.T, dir string, exitCode int) (exePath, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	argsFile = filepath.Join(dir, "args.txt")
	exePath = filepath.Join(dir, "fimfic2epub-fake")
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %q\nexit %d\n", argsFile, exitCode)
	require.NoError(t, os.WriteFile(exePath, []byte(script), 0755))
	return exePath, argsFile
}

func storyAPI(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
}

func TestDownloadPassthroughWithCover(t *testing.T) {
	dir := t.TempDir()
	exe, argsFile := fakeTool(t, dir, 0)

	ts := storyAPI(t, `{"story": {"id": 12345, "title": "T", "author": {"name": "A"}, "image": "https://cdn/c.jpg"}}`)
	defer ts.Close()

	opts := DownloadOptions{Config: DefaultConfig(), APIBaseURL: ts.URL}
	opts.Executable = exe
	opts.ImageDir = dir

	code, err := Download(context.Background(), "12345", opts)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "12345\n", string(args))
}

func TestDownloadServesExistingCover(t *testing.T) {
	dir := t.TempDir()
	exe, argsFile := fakeTool(t, dir, 0)

	// A previously generated cover skips the API call entirely.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "12345.jpeg"), []byte("jpeg"), 0644))

	opts := DownloadOptions{Config: DefaultConfig()}
	opts.Executable = exe
	opts.ImageDir = dir
	opts.ServerAddr = "127.0.0.1:0"

	code, err := Download(context.Background(), "12345", opts)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(args)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "-C", lines[0])
	assert.Contains(t, lines[1], "http://127.0.0.1:")
	assert.Contains(t, lines[1], "/12345.jpeg")
	assert.Equal(t, "12345", lines[2])
}

func TestDownloadPropagatesExitCode(t *testing.T) {
	dir := t.TempDir()
	exe, _ := fakeTool(t, dir, 7)

	ts := storyAPI(t, `{"story": {"id": 1, "title": "T", "author": {"name": "A"}, "image": "https://cdn/c.jpg"}}`)
	defer ts.Close()

	opts := DownloadOptions{Config: DefaultConfig(), APIBaseURL: ts.URL}
	opts.Executable = exe
	opts.ImageDir = dir

	code, err := Download(context.Background(), "1", opts)
	require.Error(t, err)
	assert.Equal(t, 7, code)
}

func TestDownloadRejectsBadStoryArg(t *testing.T) {
	code, err := Download(context.Background(), "not-a-story", DownloadOptions{Config: DefaultConfig()})
	require.Error(t, err)
	assert.Equal(t, 1, code)
}

func TestDownloadRejectsMissingExecutable(t *testing.T) {
	opts := DownloadOptions{Config: DefaultConfig()}
	opts.Executable = filepath.Join(t.TempDir(), "missing")

	code, err := Download(context.Background(), "1", opts)
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, err.Error(), "doesn't exist")
}

func TestDownloadNeedsFontsForPlaceholder(t *testing.T) {
	dir := t.TempDir()
	exe, _ := fakeTool(t, dir, 0)

	ts := storyAPI(t, `{"story": {"id": 2, "title": "Bare", "author": {"name": "A"}}}`)
	defer ts.Close()

	opts := DownloadOptions{Config: DefaultConfig(), APIBaseURL: ts.URL}
	opts.Executable = exe
	opts.ImageDir = dir

	_, err := Download(context.Background(), "2", opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fonts configured")
}
