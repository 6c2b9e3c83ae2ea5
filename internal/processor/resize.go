package processor

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/aliskhannn/image-padder/internal/model"
)

var (
	// ErrInvalidSizeFormat is returned when a size string is not made of
	// exactly two components separated by "x".
	ErrInvalidSizeFormat = errors.New("invalid size format")

	// ErrInvalidSizeValue is returned when a width or height is not a
	// positive integer.
	ErrInvalidSizeValue = errors.New("invalid size value")

	// ErrUnknownFilter is returned for a resampling filter name that is not supported.
	ErrUnknownFilter = errors.New("unknown resampling filter")
)

// DefaultFilter is the resampling filter used when none is configured.
const DefaultFilter = "linear"

var filters = map[string]imaging.ResampleFilter{
	"linear":     imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

// ParseSize parses a "<width>x<height>" string such as "32x32".
func ParseSize(s string) (model.Size, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return model.Size{}, fmt.Errorf("%w: %q, expected <width>x<height>", ErrInvalidSizeFormat, s)
	}

	width, err := parseDimension(parts[0])
	if err != nil {
		return model.Size{}, fmt.Errorf("width in %q: %w", s, err)
	}

	height, err := parseDimension(parts[1])
	if err != nil {
		return model.Size{}, fmt.Errorf("height in %q: %w", s, err)
	}

	return model.Size{Width: width, Height: height}, nil
}

// parseDimension parses one side of a size string and checks it is positive.
func parseDimension(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSizeValue, s)
	}

	if n <= 0 {
		return 0, fmt.Errorf("%w: %d must be positive", ErrInvalidSizeValue, n)
	}

	return n, nil
}

// ParseFilter resolves a resampling filter by name. An empty name selects
// DefaultFilter.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		name = DefaultFilter
	}

	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}

	return f, nil
}

// Resize resamples img to exactly size.Width x size.Height pixels.
// An empty img yields a canvas of that size filled with padding black.
func Resize(img image.Image, size model.Size, filter imaging.ResampleFilter) (image.Image, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSizeValue, size.Width, size.Height)
	}

	if img.Bounds().Empty() {
		return conform(imaging.New(size.Width, size.Height, padColor(img)), img), nil
	}

	resized := imaging.Resize(img, size.Width, size.Height, filter)

	return conform(resized, img), nil
}
