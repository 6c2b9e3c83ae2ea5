package processor

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/image-padder/internal/model"
)

// newRGB creates an opaque image filled with a single non-black color.
func newRGB(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	return img
}

func newGray(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 128
	}

	return img
}

// newTransparent creates an image whose pixels are all half transparent.
func newTransparent(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
		}
	}

	return img
}

func TestProcessPadThenResize(t *testing.T) {
	src := newRGB(60, 100)
	size, err := ParseSize("50x50")
	require.NoError(t, err)

	out, err := Process(src, model.ProcessingConfig{Square: true, Resize: &size})
	require.NoError(t, err)

	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())
	assert.Equal(t, 3, Channels(out))
}

func TestProcessAlreadySquareIsUnchanged(t *testing.T) {
	src := newRGB(64, 64)

	out, err := Process(src, model.ProcessingConfig{Square: true})
	require.NoError(t, err)

	assert.Same(t, src, out)
	assert.Equal(t, 64, out.Bounds().Dx())
	assert.Equal(t, 64, out.Bounds().Dy())
	assert.Equal(t, 3, Channels(out))
}

func TestProcessNoStages(t *testing.T) {
	src := newRGB(30, 10)

	out, err := Process(src, model.ProcessingConfig{})
	require.NoError(t, err)

	assert.Same(t, src, out)
}

func TestProcessResizeOnly(t *testing.T) {
	src := newRGB(30, 10)

	out, err := Process(src, model.ProcessingConfig{Resize: &model.Size{Width: 12, Height: 7}})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 12, 7), out.Bounds())
}

func TestProcessSquareFalseSkipsPadding(t *testing.T) {
	src := newRGB(30, 10)

	out, err := Process(src, model.ProcessingConfig{Square: false, Resize: &model.Size{Width: 30, Height: 10}})
	require.NoError(t, err)

	assert.Equal(t, 30, out.Bounds().Dx())
	assert.Equal(t, 10, out.Bounds().Dy())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(model.ProcessingConfig{Filter: "nearest"})
	assert.ErrorIs(t, err, ErrUnknownFilter)

	_, err = New(model.ProcessingConfig{Resize: &model.Size{Width: 0, Height: 10}})
	assert.ErrorIs(t, err, ErrInvalidSizeValue)
}

func TestProcessDoesNotModifySource(t *testing.T) {
	src := newRGB(20, 10)
	before := append([]uint8(nil), src.Pix...)

	_, err := Process(src, model.ProcessingConfig{Square: true, Resize: &model.Size{Width: 5, Height: 5}})
	require.NoError(t, err)

	assert.Equal(t, before, src.Pix)
}

func TestProcessEmptySource(t *testing.T) {
	out, err := Process(image.NewRGBA(image.Rect(0, 0, 0, 0)), model.ProcessingConfig{
		Square: true,
		Resize: &model.Size{Width: 4, Height: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 4, 3), out.Bounds())
}

func TestProcessorKeepsOwnCopyOfSize(t *testing.T) {
	size := model.Size{Width: 3, Height: 2}
	p, err := New(model.ProcessingConfig{Resize: &size})
	require.NoError(t, err)

	size.Width = 0

	out := p.Process(newRGB(5, 5))
	require.NotNil(t, out)
	assert.Equal(t, image.Rect(0, 0, 3, 2), out.Bounds())
}
