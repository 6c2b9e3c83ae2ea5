package sink

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/image-padder/internal/storage/file"
)

type failingStorage struct{}

func (failingStorage) Save(context.Context, string, string, io.Reader) (string, error) {
	return "", errors.New("disk full")
}

func testImage() image.Image {
	return imaging.New(8, 4, color.NRGBA{R: 255, A: 255})
}

func TestSaveNamesOutputWithPrefix(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	s := New(file.NewStorage(""), 0)

	path, err := s.Save(context.Background(), testImage(), filepath.Join("in", "photo.jpg"), "out", "n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "n_photo.jpg"), path)

	// A second save into the now existing directory must not fail.
	path, err = s.Save(context.Background(), testImage(), filepath.Join("in", "photo.jpg"), "out", "n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "n_photo.jpg"), path)

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
}

func TestSaveKeepsSourceFormat(t *testing.T) {
	dir := t.TempDir()
	s := New(file.NewStorage(""), 80)

	for _, name := range []string{"a.png", "b.jpeg", "c.gif", "d.bmp", "e.tif"} {
		path, err := s.Save(context.Background(), testImage(), name, dir, "x")
		require.NoError(t, err, name)

		want, err := imaging.FormatFromFilename(name)
		require.NoError(t, err)
		got, err := imaging.FormatFromFilename(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		_, err = imaging.Open(path)
		assert.NoError(t, err, name)
	}
}

func TestSaveUnsupportedExtension(t *testing.T) {
	_, err := New(file.NewStorage(""), 0).Save(context.Background(), testImage(), "a.webp", t.TempDir(), "n")
	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, imaging.ErrUnsupportedFormat)
}

func TestSaveStorageFailure(t *testing.T) {
	_, err := New(failingStorage{}, 0).Save(context.Background(), testImage(), "a.png", "out", "n")
	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorContains(t, err, "disk full")
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "n_photo.jpg", OutputName("photo.jpg", "n"))
	assert.Equal(t, "thumb_b.png", OutputName(filepath.Join("a", "b.png"), "thumb"))
}
