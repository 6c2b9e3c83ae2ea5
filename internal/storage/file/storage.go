package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage provides a simple file-based storage backend.
// Relative directories passed to Save are resolved against basePath;
// an empty basePath means the current working directory.
type Storage struct {
	basePath string
}

// NewStorage creates a new Storage instance with the given basePath.
func NewStorage(basePath string) *Storage {
	return &Storage{basePath: basePath}
}

// Save writes src to subdir/filename, creating subdir if it does not exist yet.
// Returns the path of the written file.
func (s *Storage) Save(_ context.Context, subdir, filename string, src io.Reader) (string, error) {
	dir := s.resolve(subdir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	dstPath := filepath.Join(dir, filename)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", dstPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to save file %s: %w", dstPath, err)
	}

	// Close errors matter here: a full disk may only be reported on close.
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close file %s: %w", dstPath, err)
	}

	return dstPath, nil
}

// Load opens the file at path for reading.
func (s *Storage) Load(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(s.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load file: %w", err)
	}

	return f, nil
}

// resolve joins relative paths with the base path; absolute paths are kept.
func (s *Storage) resolve(path string) string {
	if s.basePath == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(s.basePath, path)
}
