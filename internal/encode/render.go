package encode

import (
	"image"
	"image/color"
	"math"

	"github.com/feranick/gwyddion-py3-sub000/internal/field"
)

// Grayscale maps a field linearly onto 16-bit gray, minimum to black and
// maximum to white. NaN values and constant fields render black.
func Grayscale(fld *field.Field) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, fld.XRes, fld.YRes))
	lo, hi := fld.MinMax()
	span := hi - lo
	if math.IsNaN(span) || span == 0 {
		return img
	}

	k := 65535 / span
	for y := range fld.YRes {
		for x, v := range fld.Row(y) {
			if math.IsNaN(v) {
				continue
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round((v - lo) * k))})
		}
	}
	return img
}

// Terrarium renders scale*value for each pixel as a Terrarium height.
func Terrarium(fld *field.Field, scale float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fld.XRes, fld.YRes))
	for y := range fld.YRes {
		for x, v := range fld.Row(y) {
			img.SetRGBA(x, y, HeightToTerrarium(scale*v))
		}
	}
	return img
}
