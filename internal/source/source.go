package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrDirectoryNotFound is returned when the input directory does not exist
	// or is not a directory.
	ErrDirectoryNotFound = errors.New("input directory not found")

	// ErrNoInputFiles is returned by Scan when the directory holds no images.
	ErrNoInputFiles = errors.New("no input image files found")
)

// Extensions lists the raster file extensions picked up from the input
// directory. Matching is case-insensitive.
var Extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff"}

// List returns the paths of image files directly inside dir, joined with dir
// and sorted lexically. A directory without images yields an empty slice.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}

		info, statErr := os.Stat(dir)
		if statErr == nil && !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
		}

		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !IsImage(e.Name()) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		if !isRegular(path, e) {
			continue
		}

		files = append(files, path)
	}

	sort.Strings(files)

	return files, nil
}

// Scan is like List but fails with ErrNoInputFiles when nothing was found.
func Scan(dir string) ([]string, error) {
	files, err := List(dir)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputFiles, dir)
	}

	return files, nil
}

// isRegular reports whether the entry at path is a regular file. Symbolic
// links are resolved; broken links and links to directories are not.
func isRegular(path string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// IsImage reports whether name has one of the known raster extensions.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}

	return false
}
