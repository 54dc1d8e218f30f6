package encode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
)

// TerrariumEncoder writes Terrarium height maps: PNG whose RGB channels
// hold height as R*256 + G + B/256 - 32768. Use Terrarium to render a field
// into such an image.
type TerrariumEncoder struct{}

func (e *TerrariumEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *TerrariumEncoder) Format() string        { return "terrarium" }
func (e *TerrariumEncoder) FileExtension() string { return ".png" }

// Representable Terrarium heights.
const (
	TerrariumMin = -32768.0
	TerrariumMax = 32767.0 + 255.0/256
)

// HeightToTerrarium encodes h, clamped to the representable range. NaN and
// infinities become a transparent pixel.
func HeightToTerrarium(h float64) color.RGBA {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return color.RGBA{}
	}
	// Work in 1/256 steps so every channel is an integer digit.
	v := math.Floor((min(max(h, TerrariumMin), TerrariumMax) - TerrariumMin) * 256)
	n := uint32(v)
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}
}

// TerrariumToHeight decodes a pixel written by HeightToTerrarium. A
// transparent pixel yields NaN.
func TerrariumToHeight(c color.RGBA) float64 {
	if c.A == 0 {
		return math.NaN()
	}
	return float64(c.R)*256 + float64(c.G) + float64(c.B)/256 + TerrariumMin
}
