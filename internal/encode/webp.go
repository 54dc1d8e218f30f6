package encode

import (
	"bytes"
	"image"

	"github.com/gen2brain/webp"
)

// WebPEncoder writes WebP through gen2brain/webp, which runs libwebp as
// WASM or through purego when a system library is present. Quality 100
// selects lossless mode.
type WebPEncoder struct {
	Quality int
}

func (e *WebPEncoder) Encode(img image.Image) ([]byte, error) {
	q := qualityOrDefault(e.Quality)
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, webp.Options{Quality: q, Lossless: q == 100}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *WebPEncoder) Format() string        { return "webp" }
func (e *WebPEncoder) FileExtension() string { return ".webp" }
