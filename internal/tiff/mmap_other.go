//go:build !unix

package tiff

import (
	"fmt"

	"golang.org/x/exp/mmap"
)

// mapFile reads path through x/exp/mmap, which maps the file on platforms
// that support it, and copies it into memory.
func mapFile(path string) ([]byte, func() error, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	if r.Len() < HeaderSize {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNotTIFF)
	}
	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, func() error { return nil }, nil
}
