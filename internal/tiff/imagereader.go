package tiff

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/feranick/gwyddion-py3-sub000/internal/log"
)

// MaxDimension is the largest accepted image width or height.
const MaxDimension = 1 << 16

// noneUnpacked marks the strip cache as empty.
const noneUnpacked = math.MaxUint64

type unpackFunc func(packed, unpacked []byte) int

// ImageReader reads rows of one image directory.
//
// A reader caches the most recently decompressed strip, so it must not be
// used from several goroutines at once. Independent readers on the same
// File may run concurrently.
type ImageReader struct {
	file *File
	dir  int

	width, height   uint64
	bitsPerSample   int
	samplesPerPixel int
	sampleFormat    SampleFormat
	compression     Compression

	stripRows             uint64 // 0 for tiled images
	tileWidth, tileHeight uint64 // 0 for striped images
	rowstride             uint64 // bytes per row of a strip or tile

	offsets    []uint64
	byteCounts []uint64

	unpack        unpackFunc
	unpacked      []byte
	whichUnpacked uint64
	rowbuf        []float64
}

// ImageReader prepares reading the image in directory dir.
//
// maxSamples caps SamplesPerPixel. Geometry, sample layout and every strip
// or tile location are checked here; afterwards ReadRow only fails on
// arguments or on compressed data that does not decode.
func (f *File) ImageReader(dir, maxSamples int) (*ImageReader, error) {
	if dir < 0 || dir >= len(f.dirs) {
		return nil, fmt.Errorf("%w: directory %d of %d", ErrArgument, dir, len(f.dirs))
	}
	r := &ImageReader{file: f, dir: dir, whichUnpacked: noneUnpacked}

	var ok bool
	if r.width, ok = f.Size(dir, TagImageWidth); !ok {
		return nil, &RequiredTagError{Dir: dir, Tag: TagImageWidth}
	}
	if r.height, ok = f.Size(dir, TagImageLength); !ok {
		return nil, &RequiredTagError{Dir: dir, Tag: TagImageLength}
	}

	spp, ok := f.Uint(dir, TagSamplesPerPixel)
	if !ok {
		spp = 1
	}
	if spp == 0 || uint64(spp) > uint64(max(maxSamples, 0)) {
		return nil, unsupportedErrorf("SamplesPerPixel %d", spp)
	}
	r.samplesPerPixel = int(spp)

	bps := uint32(1)
	if v, ok := f.Uints(dir, TagBitsPerSample, uint64(spp)); ok {
		bps = v[0]
		for _, b := range v[1:] {
			if b != bps {
				return nil, unsupportedErrorf("non-uniform BitsPerSample %v", v)
			}
		}
	}

	r.stripRows, ok = f.Size(dir, TagRowsPerStrip)
	if !ok {
		r.stripRows = r.height
	}

	format, ok := f.Uint(dir, TagSampleFormat)
	if !ok {
		format = uint32(SampleUnsigned)
	}
	r.sampleFormat = SampleFormat(format)

	compression, ok := f.Uint(dir, TagCompression)
	if !ok {
		compression = uint32(CompressionNone)
	}
	r.compression = Compression(compression)
	if !f.allowCompressed && r.compression != CompressionNone {
		return nil, unsupportedErrorf("compression %v", r.compression)
	}

	if planar, ok := f.Uint(dir, TagPlanarConfig); ok && planar != PlanarContiguous {
		return nil, unsupportedErrorf("planar configuration %d", planar)
	}

	switch r.sampleFormat {
	case SampleUnsigned, SampleSigned:
		if bps != 8 && bps != 16 && bps != 32 && bps != 64 {
			return nil, unsupportedErrorf("%d bits per %v sample", bps, r.sampleFormat)
		}
	case SampleFloat:
		if bps != 32 && bps != 64 {
			return nil, unsupportedErrorf("%d bits per %v sample", bps, r.sampleFormat)
		}
	default:
		return nil, unsupportedErrorf("sample format %v", r.sampleFormat)
	}
	r.bitsPerSample = int(bps)

	if r.stripRows > r.height {
		log.Debug("directory %d: RowsPerStrip %d exceeds height %d, clamped", dir, r.stripRows, r.height)
		r.stripRows = r.height
	}

	if r.width < 1 || r.width > MaxDimension {
		return nil, formatErrorf("invalid field dimension %d", r.width)
	}
	if r.height < 1 || r.height > MaxDimension {
		return nil, formatErrorf("invalid field dimension %d", r.height)
	}

	tw, okw := f.Size(dir, TagTileWidth)
	th, okh := f.Size(dir, TagTileLength)
	var err error
	if okw && okh {
		r.tileWidth, r.tileHeight = tw, th
		r.stripRows = 0
		err = r.initTiled()
	} else {
		err = r.initStriped()
	}
	if err != nil {
		return nil, err
	}

	log.Debug("directory %d: %dx%d, %d x %d-bit %v samples, %v, %d segments",
		dir, r.width, r.height, r.samplesPerPixel, r.bitsPerSample, r.sampleFormat, r.compression, len(r.offsets))
	return r, nil
}

func (r *ImageReader) bytesPerPixel() uint64 {
	return uint64(r.bitsPerSample/8) * uint64(r.samplesPerPixel)
}

func (r *ImageReader) initStriped() error {
	f, dir := r.file, r.dir

	if r.stripRows == 0 {
		return invalidParam("RowsPerStrip")
	}

	switch r.compression {
	case CompressionNone:
	case CompressionPackBits:
		r.unpack = UnpackPackBits
	case CompressionLZW:
		r.unpack = UnpackLZW
	default:
		return unsupportedErrorf("compression %v", r.compression)
	}

	nstrips := (r.height + r.stripRows - 1) / r.stripRows
	var ok bool
	if r.offsets, ok = f.sizes(f.FindTag(dir, TagStripOffsets), nstrips); !ok {
		return &RequiredTagError{Dir: dir, Tag: TagStripOffsets}
	}
	if r.byteCounts, ok = f.sizes(f.FindTag(dir, TagStripByteCounts), nstrips); !ok {
		return &RequiredTagError{Dir: dir, Tag: TagStripByteCounts}
	}

	// Width and samples are bounded, so the row stride cannot overflow.
	r.rowstride = r.bytesPerPixel() * r.width

	for i := range nstrips {
		rows := r.stripRows
		if i == nstrips-1 && r.height%r.stripRows != 0 {
			rows = r.height % r.stripRows
		}
		size := rows * r.rowstride
		if r.unpack == nil && r.byteCounts[i] != size {
			return formatErrorf("strip %d in directory %d has %d bytes, expected %d",
				i, dir, r.byteCounts[i], size)
		}
		if !f.fits(r.offsets[i], 1, r.byteCounts[i]) {
			return formatErrorf("strip %d in directory %d does not fit in the file", i, dir)
		}
	}

	if r.unpack != nil {
		r.unpacked = make([]byte, r.rowstride*r.stripRows)
	}
	return nil
}

func (r *ImageReader) initTiled() error {
	f, dir := r.file, r.dir

	// Tiles may extend past the right and bottom edges of the image.
	if r.tileWidth == 0 || r.tileWidth > uint64(len(f.data)) {
		return invalidParam("TileWidth")
	}
	if r.tileHeight == 0 || r.tileHeight > uint64(len(f.data)) {
		return invalidParam("TileLength")
	}
	if r.compression != CompressionNone {
		return unsupportedErrorf("compression %v in a tiled image", r.compression)
	}

	nh := (r.width + r.tileWidth - 1) / r.tileWidth
	nv := (r.height + r.tileHeight - 1) / r.tileHeight
	ntiles := nh * nv

	var ok bool
	if r.offsets, ok = f.sizes(f.FindTag(dir, TagTileOffsets), ntiles); !ok {
		return &RequiredTagError{Dir: dir, Tag: TagTileOffsets}
	}
	if r.byteCounts, ok = f.sizes(f.FindTag(dir, TagTileByteCounts), ntiles); !ok {
		return &RequiredTagError{Dir: dir, Tag: TagTileByteCounts}
	}

	r.rowstride = r.bytesPerPixel() * r.tileWidth
	hi, size := bits.Mul64(r.rowstride, r.tileHeight)
	if hi != 0 {
		return invalidParam("TileWidth")
	}

	for i := range ntiles {
		if r.byteCounts[i] != size {
			return formatErrorf("tile %d in directory %d has %d bytes, expected %d",
				i, dir, r.byteCounts[i], size)
		}
		if !f.fits(r.offsets[i], 1, size) {
			return formatErrorf("tile %d in directory %d does not fit in the file", i, dir)
		}
	}
	return nil
}

// Dir returns the directory the reader reads from.
func (r *ImageReader) Dir() int { return r.dir }

// Width returns the image width in pixels.
func (r *ImageReader) Width() int { return int(r.width) }

// Height returns the image height in pixels.
func (r *ImageReader) Height() int { return int(r.height) }

// BitsPerSample returns the depth of every sample.
func (r *ImageReader) BitsPerSample() int { return r.bitsPerSample }

// SamplesPerPixel returns the number of channels.
func (r *ImageReader) SamplesPerPixel() int { return r.samplesPerPixel }

// SampleFormat returns how samples are encoded.
func (r *ImageReader) SampleFormat() SampleFormat { return r.sampleFormat }

// Compression returns the compression of the strips or tiles.
func (r *ImageReader) Compression() Compression { return r.compression }

// Tiled reports whether the image is stored in tiles rather than strips.
func (r *ImageReader) Tiled() bool { return r.tileWidth != 0 }

// RowsPerStrip returns the rows in each strip after clamping, or 0 for a
// tiled image.
func (r *ImageReader) RowsPerStrip() int { return int(r.stripRows) }

// TileSize returns the tile dimensions, or zeros for a striped image.
func (r *ImageReader) TileSize() (width, height int) { return int(r.tileWidth), int(r.tileHeight) }

// NumSegments returns the number of strips or tiles.
func (r *ImageReader) NumSegments() int { return len(r.offsets) }

// Segment returns the stored bytes of strip or tile i, still compressed if
// the image is. The bytes must not be modified.
func (r *ImageReader) Segment(i int) (offset uint64, data []byte) {
	offset = r.offsets[i]
	return offset, r.file.data[offset : offset+r.byteCounts[i]]
}
