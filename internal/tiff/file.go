package tiff

import (
	"fmt"

	"github.com/feranick/gwyddion-py3-sub000/internal/log"
)

// AnyDir makes FindTag and the tag accessors search all directories in file
// order instead of a single one.
const AnyDir = -1

// File is a parsed TIFF or BigTIFF file.
//
// Parsing validates every directory up front, so the accessors and image
// readers never touch bytes outside the file. A File is safe for concurrent
// reads once loaded; image readers carry their own scratch state.
type File struct {
	data   []byte
	header Header
	dirs   [][]Entry

	allowCompressed bool
	release         func() error
}

// Load maps the file at path and parses it.
func Load(path string) (*File, error) {
	data, release, err := mapFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		release()
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.release = release
	log.Debug("%s: %v %v, %d directories", path, f.header.Version, f.header.ByteOrder, len(f.dirs))
	return f, nil
}

// Parse parses TIFF data already in memory. The File keeps a reference to
// data, which must not be modified while the File is in use.
func Parse(data []byte) (*File, error) {
	h, err := Detect(data, 0, 0)
	if err != nil {
		return nil, err
	}
	f := &File{data: data, header: h}

	visited := make(map[uint64]bool)
	for offset := h.FirstIFD; offset != 0; {
		if visited[offset] {
			return nil, formatErrorf("directory chain loops back to offset %d", offset)
		}
		visited[offset] = true

		entries, next, err := f.scanIFD(offset)
		if err != nil {
			return nil, err
		}
		f.dirs = append(f.dirs, entries)
		offset = next
	}

	for i, entries := range f.dirs {
		if err := f.validate(i, entries); err != nil {
			return nil, err
		}
	}
	for _, entries := range f.dirs {
		sortEntries(entries)
	}
	return f, nil
}

// Close releases the file mapping. The File and everything obtained from it
// must not be used afterwards.
func (f *File) Close() error {
	if f.release == nil {
		return nil
	}
	err := f.release()
	f.release = nil
	f.data = nil
	return err
}

// AllowCompressed makes ImageReader accept PackBits and LZW compressed
// striped images. It is off by default.
func (f *File) AllowCompressed(allow bool) { f.allowCompressed = allow }

// NumDirs returns the number of image file directories.
func (f *File) NumDirs() int { return len(f.dirs) }

// Header returns the decoded file header.
func (f *File) Header() Header { return f.header }

// Version returns the TIFF format version.
func (f *File) Version() Version { return f.header.Version }

// ByteOrder returns the file byte order.
func (f *File) ByteOrder() ByteOrder { return f.header.ByteOrder }

// Len returns the file size in bytes.
func (f *File) Len() int64 { return int64(len(f.data)) }

// Dir returns the entries of directory n sorted by tag, or nil when n is out
// of range. The slice belongs to the File.
func (f *File) Dir(n int) []Entry {
	if n < 0 || n >= len(f.dirs) {
		return nil
	}
	return f.dirs[n]
}

// FindTag returns the first entry for tag in directory dir, or in any
// directory when dir is AnyDir. It returns nil when there is no such entry.
func (f *File) FindTag(dir int, tag Tag) *Entry {
	if dir == AnyDir {
		for _, entries := range f.dirs {
			if e := findInDir(entries, tag); e != nil {
				return e
			}
		}
		return nil
	}
	if dir < 0 || dir >= len(f.dirs) {
		return nil
	}
	return findInDir(f.dirs[dir], tag)
}

// EntryData returns the value bytes of e, wherever they are stored. It
// returns false for entries of unknown data types. The bytes must not be
// modified.
func (f *File) EntryData(e *Entry) ([]byte, bool) {
	if e == nil || e.kind == valueUnknown {
		return nil, false
	}
	return f.entryBytes(e), true
}

// Bytes returns n bytes of the file starting at offset, or false when the
// range does not fit. The bytes must not be modified.
func (f *File) Bytes(offset, n uint64) ([]byte, bool) {
	if !f.fits(offset, 1, n) {
		return nil, false
	}
	return f.data[offset : offset+n], true
}
