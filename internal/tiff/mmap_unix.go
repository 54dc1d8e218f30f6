//go:build unix

package tiff

import (
	"fmt"
	"os"
	"syscall"
)

// mapFile maps path read-only and returns the contents with a function that
// releases the mapping. The descriptor is closed before returning.
func mapFile(path string) ([]byte, func() error, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer fd.Close()

	fi, err := fd.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	size := fi.Size()
	if size < HeaderSize {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNotTIFF)
	}

	data, err := syscall.Mmap(int(fd.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return data, func() error { return syscall.Munmap(data) }, nil
}
