// Package report summarises the directories of a TIFF file for the
// inspection tool. Reports are written as text by the command or as JSON
// through easyjson.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/feranick/gwyddion-py3-sub000/internal/tiff"
)

// maxPreview is the number of values shown for an array-valued tag.
const maxPreview = 8

// maxSample is the number of pixels of the first row included in a report.
const maxSample = 5

// Report describes a whole file.
type Report struct {
	Path      string
	Version   string
	ByteOrder string
	Size      int64
	Dirs      []Directory
}

// Directory describes one image file directory. Image is nil when the
// directory cannot be read as an image, and Error then says why.
type Directory struct {
	Index int
	Tags  []TagInfo
	Image *Image
	Error string
}

// TagInfo is one directory entry with a short rendering of its value.
type TagInfo struct {
	Tag    uint16
	Name   string
	Type   string
	Count  uint64
	Inline bool
	Value  string
}

// Image is the geometry of a readable directory.
type Image struct {
	Width           int
	Height          int
	BitsPerSample   int
	SamplesPerPixel int
	SampleFormat    string
	Compression     string
	Tiled           bool
	RowsPerStrip    int
	TileWidth       int
	TileHeight      int
	Segments        int
	Sample          []float64
}

// Build inspects every directory of f. Directories that cannot be read as
// images still get their tags listed.
func Build(path string, f *tiff.File, maxSamples int) *Report {
	r := &Report{
		Path:      path,
		Version:   f.Version().String(),
		ByteOrder: f.ByteOrder().String(),
		Size:      f.Len(),
		Dirs:      make([]Directory, f.NumDirs()),
	}
	for i := range r.Dirs {
		r.Dirs[i] = buildDir(f, i, maxSamples)
	}
	return r
}

func buildDir(f *tiff.File, n, maxSamples int) Directory {
	d := Directory{Index: n}
	entries := f.Dir(n)
	d.Tags = make([]TagInfo, len(entries))
	for i := range entries {
		e := &entries[i]
		d.Tags[i] = TagInfo{
			Tag:    uint16(e.Tag),
			Name:   e.Tag.String(),
			Type:   e.Type.String(),
			Count:  e.Count,
			Inline: e.Inline(),
			Value:  Value(f, e),
		}
	}

	ir, err := f.ImageReader(n, maxSamples)
	if err != nil {
		d.Error = err.Error()
		return d
	}
	img := &Image{
		Width:           ir.Width(),
		Height:          ir.Height(),
		BitsPerSample:   ir.BitsPerSample(),
		SamplesPerPixel: ir.SamplesPerPixel(),
		SampleFormat:    ir.SampleFormat().String(),
		Compression:     ir.Compression().String(),
		Tiled:           ir.Tiled(),
		Segments:        ir.NumSegments(),
	}
	if img.Tiled {
		img.TileWidth, img.TileHeight = ir.TileSize()
	} else {
		img.RowsPerStrip = ir.RowsPerStrip()
	}
	row := make([]float64, ir.Width())
	if err := ir.ReadRow(0, 0, 1, 0, row); err != nil {
		d.Error = err.Error()
	} else {
		img.Sample = row[:min(len(row), maxSample)]
	}
	d.Image = img
	return d
}

// Value renders the value of e for display. Strings are quoted, arrays are
// cut after a few elements and entries of unknown type render as "?".
func Value(f *tiff.File, e *tiff.Entry) string {
	if e.Type == tiff.TypeASCII {
		s, ok := f.StringUTF8Entry(e)
		if !ok {
			return "?"
		}
		return strconv.Quote(s)
	}
	p, ok := f.EntryData(e)
	size := int(e.Type.Size())
	if !ok || size == 0 {
		return "?"
	}
	n := len(p) / size
	var sb strings.Builder
	if n > 1 {
		sb.WriteByte('[')
	}
	for i := range min(n, maxPreview) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(element(f.ByteOrder(), e.Type, p[i*size:]))
	}
	if n > maxPreview {
		fmt.Fprintf(&sb, " ... +%d", n-maxPreview)
	}
	if n > 1 {
		sb.WriteByte(']')
	}
	return sb.String()
}

func element(o tiff.ByteOrder, t tiff.DataType, p []byte) string {
	switch t {
	case tiff.TypeByte, tiff.TypeUndefined:
		return strconv.Itoa(int(p[0]))
	case tiff.TypeSByte:
		return strconv.Itoa(int(int8(p[0])))
	case tiff.TypeShort:
		return strconv.Itoa(int(o.Uint16(p)))
	case tiff.TypeSShort:
		return strconv.Itoa(int(o.Int16(p)))
	case tiff.TypeLong:
		return strconv.FormatUint(uint64(o.Uint32(p)), 10)
	case tiff.TypeSLong:
		return strconv.Itoa(int(o.Int32(p)))
	case tiff.TypeLong8:
		return strconv.FormatUint(o.Uint64(p), 10)
	case tiff.TypeSLong8:
		return strconv.FormatInt(o.Int64(p), 10)
	case tiff.TypeRational:
		return fmt.Sprintf("%d/%d", o.Uint32(p), o.Uint32(p[4:]))
	case tiff.TypeSRational:
		return fmt.Sprintf("%d/%d", o.Int32(p), o.Int32(p[4:]))
	case tiff.TypeFloat:
		return strconv.FormatFloat(float64(o.Float32(p)), 'g', -1, 32)
	case tiff.TypeDouble:
		return strconv.FormatFloat(o.Float64(p), 'g', -1, 64)
	}
	return "?"
}
