package encode

import (
	"bytes"
	"image"
	"image/jpeg"
)

// JPEGEncoder writes baseline JPEG. 16-bit input is reduced to 8 bits.
type JPEGEncoder struct {
	Quality int // 1-100, default 90
}

func (e *JPEGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: qualityOrDefault(e.Quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *JPEGEncoder) Format() string        { return "jpeg" }
func (e *JPEGEncoder) FileExtension() string { return ".jpg" }
