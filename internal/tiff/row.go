package tiff

import (
	"fmt"

	"github.com/feranick/gwyddion-py3-sub000/internal/log"
)

// ReadRow reads one channel of image row row into dest, storing
// z0 + q*sample for each pixel. dest must hold at least Width values.
func (r *ImageReader) ReadRow(channel, row int, q, z0 float64, dest []float64) error {
	if row < 0 || uint64(row) >= r.height {
		return fmt.Errorf("%w: row %d of %d", ErrArgument, row, r.height)
	}
	if channel < 0 || channel >= r.samplesPerPixel {
		return fmt.Errorf("%w: channel %d of %d", ErrArgument, channel, r.samplesPerPixel)
	}
	if uint64(len(dest)) < r.width {
		return fmt.Errorf("%w: destination holds %d values, need %d", ErrArgument, len(dest), r.width)
	}
	if r.tileWidth != 0 {
		r.readTiledRow(channel, uint64(row), q, z0, dest)
		return nil
	}
	return r.readStripedRow(channel, uint64(row), q, z0, dest)
}

// ReadRowAveraged reads row averaging all channels of each pixel. q is
// applied to the average, not to the individual samples.
func (r *ImageReader) ReadRowAveraged(row int, q, z0 float64, dest []float64) error {
	q /= float64(r.samplesPerPixel)
	if err := r.ReadRow(0, row, q, z0, dest); err != nil {
		return err
	}
	if r.samplesPerPixel == 1 {
		return nil
	}
	if r.rowbuf == nil {
		r.rowbuf = make([]float64, r.width)
	}
	for ch := 1; ch < r.samplesPerPixel; ch++ {
		if err := r.ReadRow(ch, row, q, 0, r.rowbuf); err != nil {
			return err
		}
		for i, v := range r.rowbuf {
			dest[i] += v
		}
	}
	return nil
}

func (r *ImageReader) readStripedRow(channel int, row uint64, q, z0 float64, dest []float64) error {
	strip := row / r.stripRows
	p := r.file.data[r.offsets[strip] : r.offsets[strip]+r.byteCounts[strip]]

	if r.unpack != nil {
		if strip != r.whichUnpacked {
			rows := r.stripRows
			if nstrips := uint64(len(r.offsets)); strip == nstrips-1 && r.height%r.stripRows != 0 {
				rows = r.height % r.stripRows
			}
			r.whichUnpacked = noneUnpacked
			if r.unpack(p, r.unpacked[:rows*r.rowstride]) == 0 {
				log.Debug("directory %d: strip %d did not decompress to %d bytes", r.dir, strip, rows*r.rowstride)
				return fmt.Errorf("%w: strip %d in directory %d", ErrDecompress, strip, r.dir)
			}
			r.whichUnpacked = strip
		}
		p = r.unpacked
	}

	bytesPerSample := r.bitsPerSample / 8
	p = p[(row%r.stripRows)*r.rowstride+uint64(bytesPerSample*channel):]
	readSegment(r.file.header.ByteOrder, r.sampleFormat, r.bitsPerSample,
		p, int(r.width), bytesPerSample*r.samplesPerPixel, q, z0, dest)
	return nil
}

func (r *ImageReader) readTiledRow(channel int, row uint64, q, z0 float64, dest []float64) {
	nh := (r.width + r.tileWidth - 1) / r.tileWidth
	vt, vi := row/r.tileHeight, row%r.tileHeight
	bytesPerSample := r.bitsPerSample / 8
	step := bytesPerSample * r.samplesPerPixel

	n := int(r.tileWidth)
	for i := range nh {
		if i == nh-1 && r.width%r.tileWidth != 0 {
			n = int(r.width % r.tileWidth)
		}
		off := r.offsets[vt*nh+i] + vi*r.rowstride + uint64(bytesPerSample*channel)
		readSegment(r.file.header.ByteOrder, r.sampleFormat, r.bitsPerSample,
			r.file.data[off:], n, step, q, z0, dest[i*r.tileWidth:])
	}
}

// readSegment converts n samples spaced step bytes apart, starting at p[0].
func readSegment(o ByteOrder, format SampleFormat, bps int, p []byte, n, step int, q, z0 float64, dest []float64) {
	switch bps {
	case 8:
		if format == SampleSigned {
			for i, j := 0, 0; i < n; i, j = i+1, j+step {
				dest[i] = z0 + q*float64(int8(p[j]))
			}
		} else {
			for i, j := 0, 0; i < n; i, j = i+1, j+step {
				dest[i] = z0 + q*float64(p[j])
			}
		}
	case 16:
		if format == SampleSigned {
			for i, j := 0, 0; i < n; i, j = i+1, j+step {
				dest[i] = z0 + q*float64(o.Int16(p[j:]))
			}
		} else {
			for i, j := 0, 0; i < n; i, j = i+1, j+step {
				dest[i] = z0 + q*float64(o.Uint16(p[j:]))
			}
		}
	case 32:
		switch format {
		case SampleSigned:
			for i, j := 0, 0; i < n; i, j = i+1, j+step {
				dest[i] = z0 + q*float64(o.Int32(p[j:]))
			}
		case SampleFloat:
			for i, j := 0, 0; i < n; i, j = i+1, j+step {
				dest[i] = z0 + q*float64(o.Float32(p[j:]))
			}
		default:
			for i, j := 0, 0; i < n; i, j = i+1, j+step {
				dest[i] = z0 + q*float64(o.Uint32(p[j:]))
			}
		}
	case 64:
		switch format {
		case SampleSigned:
			for i, j := 0, 0; i < n; i, j = i+1, j+step {
				dest[i] = z0 + q*float64(o.Int64(p[j:]))
			}
		case SampleFloat:
			for i, j := 0, 0; i < n; i, j = i+1, j+step {
				dest[i] = z0 + q*o.Float64(p[j:])
			}
		default:
			for i, j := 0, 0; i < n; i, j = i+1, j+step {
				dest[i] = z0 + q*float64(o.Uint64(p[j:]))
			}
		}
	}
}
