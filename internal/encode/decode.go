package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/gen2brain/webp"
)

// DecodeImage decodes data written by the encoder for format.
func DecodeImage(data []byte, format string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch format {
	case "png", "terrarium":
		return png.Decode(r)
	case "jpeg", "jpg":
		return jpeg.Decode(r)
	case "webp":
		return webp.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported decode format: %q", format)
	}
}
