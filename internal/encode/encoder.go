// Package encode renders data fields as preview images and writes them in
// common image formats.
package encode

import (
	"fmt"
	"image"
	"strings"
)

// Encoder writes an image in one file format.
type Encoder interface {
	// Encode encodes an image to bytes in the encoder's format.
	Encode(img image.Image) ([]byte, error)

	// Format returns the format name (e.g. "jpeg", "png", "webp").
	Format() string

	// FileExtension returns the file name extension, including the dot.
	FileExtension() string
}

// Formats lists the format names NewEncoder accepts.
var Formats = []string{"png", "jpeg", "webp", "terrarium"}

// NewEncoder creates an encoder for format. quality applies to the lossy
// formats; values <= 0 select the default.
func NewEncoder(format string, quality int) (Encoder, error) {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return &JPEGEncoder{Quality: quality}, nil
	case "png":
		return &PNGEncoder{}, nil
	case "webp":
		return &WebPEncoder{Quality: quality}, nil
	case "terrarium":
		return &TerrariumEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// defaultQuality is used by lossy encoders when none is given.
const defaultQuality = 90

func qualityOrDefault(q int) int {
	if q <= 0 {
		return defaultQuality
	}
	return min(q, 100)
}
