package cropicon

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/cropicon/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipeName = "-"

func TestExecute_LocalFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "icon.png")
	out := filepath.Join(dir, "cropped.png")
	writePNG(t, in, newIcon(100, 60, white, image.Rect(10, 10, 90, 50), red))

	var stderr bytes.Buffer
	p, _ := newTestProcessor()
	err := p.Execute(&Ops{Src: in, Dst: out, PipeName: pipeName, Stderr: &stderr})
	require.NoError(t, err)

	img, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 88, 88), img.Bounds())
	assert.Contains(t, stderr.String(), "The image has been saved as")
	assert.Contains(t, stderr.String(), "cropped.png")
	assert.Contains(t, stderr.String(), "Execution time")
}

func TestExecute_WithSpinner(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "icon.png")
	writePNG(t, in, newIcon(20, 20, white, image.Rect(5, 5, 15, 15), red))

	var stderr, progress bytes.Buffer
	p, _ := newTestProcessor()
	p.Spinner = utils.NewSpinner(&progress, "cropping", time.Millisecond, false)

	require.NoError(t, p.Execute(&Ops{Src: in, Dst: in, PipeName: pipeName, Stderr: &stderr}))
	assert.Contains(t, progress.String(), "the icon has been processed")

	err := p.Execute(&Ops{Src: filepath.Join(dir, "missing.png"), Dst: in, PipeName: pipeName, Stderr: &stderr})
	assert.Error(t, err)
	assert.Contains(t, progress.String(), "cropping the icon failed")
}

func TestExecute_SolidColor(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "solid.png")
	out := filepath.Join(dir, "cropped.png")
	writePNG(t, in, newIcon(50, 50, white, image.Rectangle{}, white))

	var stderr bytes.Buffer
	p, hook := newTestProcessor()
	require.NoError(t, p.Execute(&Ops{Src: in, Dst: out, PipeName: pipeName, Stderr: &stderr}))

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, stderr.String(), "Nothing to crop")
	assert.Equal(t, "Could not find bounds to crop. Image might be solid color.", hook.LastEntry().Message)
}

func TestExecute_RemoteSource(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, newIcon(40, 20, white, image.Rect(0, 5, 20, 15), red)))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "remote.png")
	var stderr bytes.Buffer
	p, _ := newTestProcessor()
	require.NoError(t, p.Execute(&Ops{Src: srv.URL + "/icon.png", Dst: out, PipeName: pipeName, Stderr: &stderr}))

	img, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 22, 22), img.Bounds())
}

func TestExecute_Errors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "icon.png")
	writePNG(t, in, newIcon(10, 10, white, image.Rect(2, 2, 4, 4), red))

	var stderr bytes.Buffer
	p, _ := newTestProcessor()

	err := p.Execute(&Ops{Src: in, Dst: filepath.Join(dir, "out.jpg"), PipeName: pipeName, Stderr: &stderr})
	var encErr *EncodeError
	assert.True(t, errors.As(err, &encErr))
	assert.Contains(t, stderr.String(), "Error cropping the image")

	stderr.Reset()
	err = p.Execute(&Ops{Src: filepath.Join(dir, "missing.png"), Dst: filepath.Join(dir, "out.png"), PipeName: pipeName, Stderr: &stderr})
	var decErr *DecodeError
	assert.True(t, errors.As(err, &decErr))
	assert.Contains(t, stderr.String(), "Reason")
}
