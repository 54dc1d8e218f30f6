// Package field turns TIFF image directories into two-dimensional data
// fields with physical dimensions.
package field

import "math"

// Field is a row-major raster of XRes by YRes values.
type Field struct {
	XRes, YRes   int
	XReal, YReal float64 // physical size in Unit
	Unit         string  // "m", or "px" when the file gives no resolution
	Title        string
	Data         []float64
}

// New returns a zero-filled field measuring one unit per pixel.
func New(xres, yres int) *Field {
	return &Field{
		XRes:  xres,
		YRes:  yres,
		XReal: float64(xres),
		YReal: float64(yres),
		Unit:  "px",
		Data:  make([]float64, xres*yres),
	}
}

// At returns the value at column x, row y.
func (f *Field) At(x, y int) float64 { return f.Data[y*f.XRes+x] }

// Row returns row y. The slice aliases the field data.
func (f *Field) Row(y int) []float64 { return f.Data[y*f.XRes : (y+1)*f.XRes] }

// MinMax returns the smallest and largest value, ignoring NaNs. Both are
// NaN when there are no other values.
func (f *Field) MinMax() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range f.Data {
		if math.IsNaN(v) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo > hi {
		return math.NaN(), math.NaN()
	}
	return lo, hi
}

// Mean returns the average of the non-NaN values.
func (f *Field) Mean() float64 {
	var sum float64
	n := 0
	for _, v := range f.Data {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// PixelSize returns the physical size of one pixel.
func (f *Field) PixelSize() (dx, dy float64) {
	return f.XReal / float64(f.XRes), f.YReal / float64(f.YRes)
}
