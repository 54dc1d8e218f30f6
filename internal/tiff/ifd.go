package tiff

import (
	"math"
	"sort"
)

// valueKind says where an entry's value bytes live. It is decided once,
// when the file is validated.
type valueKind uint8

const (
	valueUnknown  valueKind = iota // type without a fixed size, never dereferenced
	valueInline                    // inside the entry's value field
	valueIndirect                  // at an offset inside the file
)

// span is a byte range that has been checked to lie inside the file.
type span struct {
	off uint64
	n   uint64
}

// Entry is one raw directory entry.
type Entry struct {
	Tag   Tag
	Type  DataType
	Count uint64

	raw  [8]byte // value field; only the first 4 bytes are used in classic TIFF
	kind valueKind
	ext  span // value location when kind == valueIndirect
}

// Inline reports whether the entry value is stored in the entry itself.
func (e *Entry) Inline() bool { return e.kind == valueInline }

// Offset returns the file offset of an out-of-line value.
func (e *Entry) Offset() (uint64, bool) {
	if e.kind != valueIndirect {
		return 0, false
	}
	return e.ext.off, true
}

// fits reports whether nitems items of itemSize bytes starting at offset lie
// inside the file. Both the multiplication and the addition are checked for
// overflow.
func (f *File) fits(offset, itemSize, nitems uint64) bool {
	if itemSize != 0 && nitems > math.MaxUint64/itemSize {
		return false
	}
	end := offset + nitems*itemSize
	if end < offset {
		return false
	}
	return end <= uint64(len(f.data))
}

// scanIFD reads the directory at offset and returns its entries and the
// offset of the next directory.
func (f *File) scanIFD(offset uint64) ([]Entry, uint64, error) {
	countSize, entrySize, valueSize, nextSize := f.header.Version.layout()
	dirno := len(f.dirs)

	if !f.fits(offset, countSize+nextSize, 1) {
		return nil, 0, formatErrorf("directory %d ended unexpectedly", dirno)
	}

	c := cursor{p: f.data[offset:], order: f.header.ByteOrder}
	var n uint64
	if f.header.Version == Big {
		n = c.uint64()
	} else {
		n = uint64(c.uint16())
	}

	if !f.fits(offset+countSize+nextSize, entrySize, n) {
		return nil, 0, formatErrorf("directory %d ended unexpectedly", dirno)
	}

	entries := make([]Entry, n)
	for i := range entries {
		e := &entries[i]
		e.Tag = Tag(c.uint16())
		e.Type = DataType(c.uint16())
		e.Count = c.length(f.header.Version)
		copy(e.raw[:], c.p[:valueSize])
		c.skip(int(valueSize))
	}

	return entries, c.length(f.header.Version), nil
}

// validate checks that every value the directory refers to lies inside the
// file and records where each value lives.
//
// Entries of unknown types are accepted as they are: nothing ever reads
// them, so they may point anywhere.
func (f *File) validate(dirno int, entries []Entry) error {
	_, _, valueSize, _ := f.header.Version.layout()

	for i := range entries {
		e := &entries[i]
		if f.header.Version == Classic && e.Type.bigOnly() {
			return formatErrorf("BigTIFF data type %d was found in a classic TIFF (directory %d, tag %d)",
				uint16(e.Type), dirno, uint16(e.Tag))
		}

		itemSize := e.Type.Size()
		if itemSize == 0 {
			e.kind = valueUnknown
			continue
		}
		if e.Count <= valueSize/itemSize {
			e.kind = valueInline
			continue
		}

		c := cursor{p: e.raw[:], order: f.header.ByteOrder}
		offset := c.length(f.header.Version)
		if !f.fits(offset, itemSize, e.Count) {
			return formatErrorf("invalid tag data position (directory %d, tag %d, offset %d, count %d)",
				dirno, uint16(e.Tag), offset, e.Count)
		}
		e.kind = valueIndirect
		e.ext = span{off: offset, n: itemSize * e.Count}
	}

	return nil
}

// sortEntries orders entries by tag. Duplicated tags keep their file order
// so the first one wins in lookups.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Tag < entries[j].Tag
	})
}

// findInDir binary-searches sorted entries for tag.
func findInDir(entries []Entry, tag Tag) *Entry {
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].Tag >= tag
	})
	if i < len(entries) && entries[i].Tag == tag {
		return &entries[i]
	}
	return nil
}

// entryBytes returns the value bytes of a validated entry, or nil for
// entries of unknown types.
func (f *File) entryBytes(e *Entry) []byte {
	switch e.kind {
	case valueInline:
		return e.raw[:e.Count*e.Type.Size()]
	case valueIndirect:
		return f.data[e.ext.off : e.ext.off+e.ext.n]
	}
	return nil
}
