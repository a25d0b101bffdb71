package cover

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 4, 6), 0644))

	img, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 6), img.Bounds())
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestLoadFromURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngBytes(t, 8, 8))
	}))
	defer ts.Close()

	img, err := Load(context.Background(), ts.URL+"/cover.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
}

func TestLoadFromURLNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, err := Load(context.Background(), ts.URL+"/cover.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image at all"))
	assert.Error(t, err)
}

func TestDecodeSVG(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 20">
  <rect x="0" y="0" width="10" height="20" fill="#ff0000"/>
</svg>`)

	img, err := Decode(svg)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 20), img.Bounds())
}

func TestLooksLikeSVG(t *testing.T) {
	assert.True(t, looksLikeSVG([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)))
	assert.True(t, looksLikeSVG([]byte("<?xml version=\"1.0\"?>\n<svg/>")))
	assert.False(t, looksLikeSVG(pngBytes(t, 1, 1)))
	assert.False(t, looksLikeSVG(nil))
}
