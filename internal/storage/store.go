// Package storage persists generated image bytes onto the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageStore writes decoded image buffers under a fixed output directory.
type ImageStore struct {
	dir string
	now func() time.Time
}

// NewImageStore initializes an ImageStore rooted at dir, creating it if
// necessary.
func NewImageStore(dir string) (*ImageStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage: output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure output directory: %w", err)
	}
	return &ImageStore{dir: dir, now: time.Now}, nil
}

// Dir returns the configured output directory.
func (s *ImageStore) Dir() string {
	return s.dir
}

// SaveAll writes each image buffer to a fresh file and returns the paths in
// input order. All files from one call share the same timestamp and are
// differentiated by a zero-based index; two calls landing on the same
// millisecond may reuse paths, which is a documented limitation rather than
// something to guard against. Writes are unconditional create-or-overwrite;
// a failed write aborts the call without rolling back earlier files.
func (s *ImageStore) SaveAll(images [][]byte) ([]string, error) {
	ts := s.now().UnixMilli()

	paths := make([]string, 0, len(images))
	for i, data := range images {
		path := filepath.Join(s.dir, fmt.Sprintf("generated_image_%d_%d.png", ts, i))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("storage: write image %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
