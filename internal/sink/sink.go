package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ErrWrite is returned when a processed image cannot be encoded or stored.
var ErrWrite = errors.New("failed to write image")

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 95

// fileStorage defines the interface for file storage.
// It allows saving files to a backend (e.g., local FS, S3, MinIO).
type fileStorage interface {
	Save(ctx context.Context, subdir, filename string, src io.Reader) (string, error)
}

// Sink encodes processed images and hands them to a storage backend.
type Sink struct {
	fileStorage fileStorage
	quality     int
}

// New creates a new Sink writing through fs. A non-positive quality selects
// DefaultQuality.
func New(fs fileStorage, quality int) *Sink {
	if quality <= 0 {
		quality = DefaultQuality
	}

	return &Sink{fileStorage: fs, quality: quality}
}

// OutputName returns the file name a processed copy of originalPath is saved under.
func OutputName(originalPath, prefix string) string {
	return prefix + "_" + filepath.Base(originalPath)
}

// Save encodes img in the format of originalPath and stores it in outputDir
// as prefix_<basename>. Returns the path of the stored file.
func (s *Sink) Save(ctx context.Context, img image.Image, originalPath, outputDir, prefix string) (string, error) {
	filename := OutputName(originalPath, prefix)

	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrWrite, filename, err)
	}

	// Encode into a buffer first so a failed encode leaves no partial file behind.
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, format, imaging.JPEGQuality(s.quality)); err != nil {
		return "", fmt.Errorf("%w %s: encode: %w", ErrWrite, filename, err)
	}

	dst, err := s.fileStorage.Save(ctx, outputDir, filename, buf)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrWrite, filename, err)
	}

	return dst, nil
}
