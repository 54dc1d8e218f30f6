package field

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/feranick/gwyddion-py3-sub000/internal/log"
	"github.com/feranick/gwyddion-py3-sub000/internal/tiff"
)

// Options controls how image directories become fields.
type Options struct {
	Channel  int  // sample read from each pixel, unless Averaged
	Averaged bool // average all samples of each pixel

	// Values are stored as Offset + Scale*sample. A zero Scale means 1.
	Scale  float64
	Offset float64

	MaxSamples int // largest SamplesPerPixel accepted; 0 means 1

	// SkipInvalid makes ReadAll leave out directories whose image cannot be
	// read instead of failing.
	SkipInvalid bool

	// AllowCompressed enables PackBits and LZW data in files opened by a
	// Cache. Files passed to Read and ReadAll keep their own setting.
	AllowCompressed bool
}

func (o Options) scale() float64 {
	if o.Scale == 0 {
		return 1
	}
	return o.Scale
}

func (o Options) maxSamples() int {
	return max(o.MaxSamples, 1)
}

// Metres per resolution unit.
const (
	inch       = 0.0254
	centimetre = 0.01
)

// Read decodes the image in directory dir.
func Read(f *tiff.File, dir int, opts Options) (*Field, error) {
	r, err := f.ImageReader(dir, opts.maxSamples())
	if err != nil {
		return nil, fmt.Errorf("directory %d: %w", dir, err)
	}
	return decode(f, r, opts)
}

func decode(f *tiff.File, r *tiff.ImageReader, opts Options) (*Field, error) {
	if !opts.Averaged && (opts.Channel < 0 || opts.Channel >= r.SamplesPerPixel()) {
		return nil, fmt.Errorf("directory %d: channel %d of %d: %w",
			r.Dir(), opts.Channel, r.SamplesPerPixel(), tiff.ErrArgument)
	}

	fld := New(r.Width(), r.Height())
	q, z0 := opts.scale(), opts.Offset
	for y := range fld.YRes {
		var err error
		if opts.Averaged {
			err = r.ReadRowAveraged(y, q, z0, fld.Row(y))
		} else {
			err = r.ReadRow(opts.Channel, y, q, z0, fld.Row(y))
		}
		if err != nil {
			return nil, fmt.Errorf("directory %d, row %d: %w", r.Dir(), y, err)
		}
	}

	setDimensions(f, r.Dir(), fld)
	fld.Title = title(f, r.Dir())
	return fld, nil
}

// setDimensions derives the physical size from X/YResolution, which give
// pixels per ResolutionUnit.
func setDimensions(f *tiff.File, dir int, fld *Field) {
	xres, okx := resolution(f, dir, tiff.TagXResolution)
	yres, oky := resolution(f, dir, tiff.TagYResolution)
	if !okx || !oky {
		return
	}

	unit, ok := f.Uint(dir, tiff.TagResolutionUnit)
	if !ok {
		unit = tiff.ResolutionUnitInch
	}
	switch unit {
	case tiff.ResolutionUnitInch:
		fld.XReal = float64(fld.XRes) / xres * inch
		fld.YReal = float64(fld.YRes) / yres * inch
		fld.Unit = "m"
	case tiff.ResolutionUnitCentimeter:
		fld.XReal = float64(fld.XRes) / xres * centimetre
		fld.YReal = float64(fld.YRes) / yres * centimetre
		fld.Unit = "m"
	default:
		fld.XReal = float64(fld.XRes) / xres
		fld.YReal = float64(fld.YRes) / yres
		fld.Unit = ""
	}
}

func resolution(f *tiff.File, dir int, tag tiff.Tag) (float64, bool) {
	v, ok := f.Rational(dir, tag)
	if !ok {
		v, ok = f.Float(dir, tag)
	}
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

func title(f *tiff.File, dir int) string {
	for _, tag := range []tiff.Tag{tiff.TagPageName, tiff.TagDocumentName} {
		if s, ok := f.StringUTF8(dir, tag); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("Directory %d", dir)
}

// ReadAll decodes every directory of f, up to concurrency at a time. With
// opts.SkipInvalid, directories without a readable image yield nil entries;
// errors while reading rows are never skipped.
func ReadAll(ctx context.Context, f *tiff.File, opts Options, concurrency int) ([]*Field, error) {
	fields := make([]*Field, f.NumDirs())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for dir := range fields {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := f.ImageReader(dir, opts.maxSamples())
			if err != nil {
				if opts.SkipInvalid {
					log.Warn("skipping directory %d: %v", dir, err)
					return nil
				}
				return fmt.Errorf("directory %d: %w", dir, err)
			}
			fld, err := decode(f, r, opts)
			if err != nil {
				return err
			}
			fields[dir] = fld
			log.Debug("directory %d: %dx%d %q", dir, fld.XRes, fld.YRes, fld.Title)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fields, nil
}
