package tiff

// Version is the TIFF format version from the header.
type Version uint16

// TIFF format versions.
const (
	Classic Version = 42
	Big     Version = 43 // BigTIFF, 64-bit offsets and counts
)

func (v Version) String() string {
	switch v {
	case Classic:
		return "TIFF"
	case Big:
		return "BigTIFF"
	}
	return "unknown"
}

// Header sizes. Real files are always larger.
const (
	HeaderSize    = 8
	HeaderSizeBig = 16
)

// Header is the decoded file header.
type Header struct {
	Version   Version
	ByteOrder ByteOrder
	FirstIFD  uint64 // offset of the first directory, 0 if there is none
	Size      int    // header length, i.e. the position right after it
}

// layout returns the per-version structure sizes.
func (v Version) layout() (countSize, entrySize, valueSize, nextSize uint64) {
	if v == Big {
		return 8, 20, 8, 8
	}
	return 2, 12, 4, 4
}

// Detect recognizes a classic TIFF or BigTIFF header at the start of buf.
//
// A non-zero version or order restricts what is accepted; zero accepts
// anything. Detect never allocates and is cheap enough for format sniffing:
// anything it does not recognize yields ErrNotTIFF.
func Detect(buf []byte, version Version, order ByteOrder) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrNotTIFF
	}

	var h Header
	switch string(buf[0:2]) {
	case "II":
		h.ByteOrder = LittleEndian
	case "MM":
		h.ByteOrder = BigEndian
	default:
		return Header{}, ErrNotTIFF
	}

	c := cursor{p: buf[2:], order: h.ByteOrder}
	h.Version = Version(c.uint16())
	if h.Version != Classic && h.Version != Big {
		return Header{}, ErrNotTIFF
	}
	if version != 0 && version != h.Version {
		return Header{}, ErrNotTIFF
	}
	if order != 0 && order != h.ByteOrder {
		return Header{}, ErrNotTIFF
	}

	if h.Version == Classic {
		h.FirstIFD = uint64(c.uint32())
		h.Size = HeaderSize
		return h, nil
	}

	if len(buf) < HeaderSizeBig {
		return Header{}, ErrNotTIFF
	}
	// BigTIFF: offset byte size, always 8, then a reserved zero field.
	if bytesize, reserved := c.uint16(), c.uint16(); bytesize != 8 || reserved != 0 {
		return Header{}, ErrNotTIFF
	}
	h.FirstIFD = c.uint64()
	h.Size = HeaderSizeBig
	return h, nil
}
