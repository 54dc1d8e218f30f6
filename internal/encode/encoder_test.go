package encode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/feranick/gwyddion-py3-sub000/internal/field"
)

// gradient creates a size x size RGBA image with a colour gradient.
func gradient(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func TestNewEncoder(t *testing.T) {
	tests := []struct {
		format  string
		wantFmt string
		wantExt string
		wantErr bool
	}{
		{"jpeg", "jpeg", ".jpg", false},
		{"jpg", "jpeg", ".jpg", false},
		{"JPEG", "jpeg", ".jpg", false},
		{"png", "png", ".png", false},
		{"webp", "webp", ".webp", false},
		{"terrarium", "terrarium", ".png", false},
		{"bmp", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			enc, err := NewEncoder(tt.format, 85)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if enc.Format() != tt.wantFmt {
				t.Errorf("Format() = %q, want %q", enc.Format(), tt.wantFmt)
			}
			if enc.FileExtension() != tt.wantExt {
				t.Errorf("FileExtension() = %q, want %q", enc.FileExtension(), tt.wantExt)
			}
		})
	}
}

func TestQualityOrDefault(t *testing.T) {
	for _, tt := range []struct{ in, want int }{{0, 90}, {-3, 90}, {50, 50}, {100, 100}, {250, 100}} {
		if got := qualityOrDefault(tt.in); got != tt.want {
			t.Errorf("qualityOrDefault(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPNGEncoder_Gray16RoundTrip(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 64, 32))
	for y := range 32 {
		for x := range 64 {
			img.SetGray16(x, y, color.Gray16{Y: uint16(x*1024 + y)})
		}
	}

	data, err := (&PNGEncoder{}).Encode(img)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := DecodeImage(data, "png")
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	g, ok := decoded.(*image.Gray16)
	if !ok {
		t.Fatalf("decoded %T, want *image.Gray16", decoded)
	}
	if !bytes.Equal(g.Pix, img.Pix) {
		t.Error("16-bit pixels changed in PNG round trip")
	}
}

func TestLossyEncoders(t *testing.T) {
	img := gradient(128)

	for _, format := range []string{"jpeg", "webp"} {
		t.Run(format, func(t *testing.T) {
			enc, err := NewEncoder(format, 90)
			if err != nil {
				t.Fatal(err)
			}
			data, err := enc.Encode(img)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			decoded, err := DecodeImage(data, format)
			if err != nil {
				t.Fatalf("DecodeImage: %v", err)
			}
			if b := decoded.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
				t.Fatalf("decoded size = %dx%d, want 128x128", b.Dx(), b.Dy())
			}

			maxDiff := 0
			for y := range 128 {
				for x := range 128 {
					or, _, _, _ := img.At(x, y).RGBA()
					dr, _, _, _ := decoded.At(x, y).RGBA()
					maxDiff = max(maxDiff, abs(int(or>>8)-int(dr>>8)))
				}
			}
			if maxDiff > 40 {
				t.Errorf("max red difference = %d, want <= 40", maxDiff)
			}
		})
	}
}

func TestWebPLossless(t *testing.T) {
	img := gradient(32)
	data, err := (&WebPEncoder{Quality: 100}).Encode(img)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := DecodeImage(data, "webp")
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	for y := range 32 {
		for x := range 32 {
			r0, g0, b0, _ := img.At(x, y).RGBA()
			r1, g1, b1, _ := decoded.At(x, y).RGBA()
			if r0>>8 != r1>>8 || g0>>8 != g1>>8 || b0>>8 != b1>>8 {
				t.Fatalf("pixel (%d,%d) changed in lossless mode", x, y)
			}
		}
	}
}

func TestDecodeImageUnknownFormat(t *testing.T) {
	if _, err := DecodeImage([]byte{1, 2, 3}, "gif"); err == nil {
		t.Error("DecodeImage accepted an unknown format")
	}
}

func TestTerrariumRoundTrip(t *testing.T) {
	tests := []struct {
		h, want float64
	}{
		{0, 0},
		{1.5, 1.5},
		{-100.25, -100.25},
		{1234.00390625, 1234.00390625},
		{-40000, TerrariumMin},
		{40000, TerrariumMax},
	}
	for _, tt := range tests {
		c := HeightToTerrarium(tt.h)
		if got := TerrariumToHeight(c); got != tt.want {
			t.Errorf("height %g -> %v -> %g, want %g", tt.h, c, got, tt.want)
		}
	}
	for _, h := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if c := HeightToTerrarium(h); c.A != 0 {
			t.Errorf("HeightToTerrarium(%g) = %v, want transparent", h, c)
		}
	}
	if !math.IsNaN(TerrariumToHeight(color.RGBA{})) {
		t.Error("transparent pixel did not decode to NaN")
	}
}

func TestGrayscale(t *testing.T) {
	fld := field.New(3, 2)
	copy(fld.Data, []float64{-1, 0, 1, math.NaN(), 0.5, -1})

	img := Grayscale(fld)
	want := []uint16{0, 32768, 65535, 0, 49151, 0}
	for i, w := range want {
		x, y := i%3, i/3
		if got := img.Gray16At(x, y).Y; got != w {
			t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, w)
		}
	}

	flat := field.New(2, 2)
	for i := range flat.Data {
		flat.Data[i] = 7
	}
	for _, v := range Grayscale(flat).Pix {
		if v != 0 {
			t.Fatal("constant field did not render black")
		}
	}
}

func TestTerrariumField(t *testing.T) {
	fld := field.New(2, 1)
	copy(fld.Data, []float64{2e-9, math.NaN()})

	img := Terrarium(fld, 1e9)
	data, err := (&TerrariumEncoder{}).Encode(img)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	c := color.RGBAModel.Convert(decoded.At(0, 0)).(color.RGBA)
	if h := TerrariumToHeight(c); math.Abs(h-2) > 1.0/256 {
		t.Errorf("height = %g, want 2", h)
	}
	if _, _, _, a := decoded.At(1, 0).RGBA(); a != 0 {
		t.Error("NaN did not render transparent")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
