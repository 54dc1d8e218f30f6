package tiff

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"golang.org/x/image/tiff/lzw"
)

type bitWriter struct {
	out []byte
	acc uint32
	n   int
}

func (w *bitWriter) write(code, width int) {
	w.acc = w.acc<<width | uint32(code)
	w.n += width
	for w.n >= 8 {
		w.out = append(w.out, byte(w.acc>>(w.n-8)))
		w.n -= 8
	}
	w.acc &= 1<<w.n - 1
}

func (w *bitWriter) flush() []byte {
	if w.n > 0 {
		w.out = append(w.out, byte(w.acc<<(8-w.n)))
		w.n = 0
	}
	return w.out
}

// lzwEncode writes TIFF LZW: a leading clear code, early code width
// changes, a clear code whenever the table fills up, and an end code.
func lzwEncode(data []byte) []byte {
	return lzwEncodeReset(data, true)
}

// lzwEncodeReset is lzwEncode with the table reset optional. Without it
// the table grows to its last 12-bit code and then stops taking entries.
func lzwEncodeReset(data []byte, reset bool) []byte {
	var w bitWriter
	dict := make(map[string]int)
	next, width := lzwFirstCode, 9

	code := func(s string) int {
		if len(s) == 1 {
			return int(s[0])
		}
		return dict[s]
	}
	grow := func() {
		next++
		switch next {
		case 512, 1024, 2048:
			width++
		}
	}

	w.write(lzwClearCode, width)
	prefix := ""
	for _, c := range data {
		s := prefix + string(c)
		if prefix == "" {
			prefix = s
			continue
		}
		if _, ok := dict[s]; ok {
			prefix = s
			continue
		}
		w.write(code(prefix), width)
		if next < lzwTableSize {
			dict[s] = next
			grow()
		}
		if reset && next == lzwTableSize-2 {
			w.write(lzwClearCode, width)
			clear(dict)
			next, width = lzwFirstCode, 9
		}
		prefix = string(c)
	}
	if prefix != "" {
		w.write(code(prefix), width)
		grow()
	}
	w.write(lzwEOICode, width)
	return w.flush()
}

func lzwInputs() map[string][]byte {
	rng := rand.New(rand.NewSource(1))
	noise := make([]byte, 20000)
	rng.Read(noise)
	smooth := make([]byte, 50000)
	for i := range smooth {
		smooth[i] = byte(i/97) ^ byte(rng.Intn(3))
	}
	return map[string][]byte{
		"single":   {'x'},
		"kwkwk":    bytes.Repeat([]byte{'a'}, 100),
		"text":     bytes.Repeat([]byte("TOBEORNOTTOBEORTOBEORNOT"), 50),
		"noise":    noise,
		"smooth":   smooth,
		"ramp":     ramp(256, 0),
		"zeros-4k": make([]byte, 4096),
	}
}

func TestLZWEncoderMatchesReference(t *testing.T) {
	for name, in := range lzwInputs() {
		t.Run(name, func(t *testing.T) {
			r := lzw.NewReader(bytes.NewReader(lzwEncode(in)), lzw.MSB, 8)
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("reference decoder: %v", err)
			}
			if !bytes.Equal(got, in) {
				t.Fatalf("reference decoder output differs (%d vs %d bytes)", len(got), len(in))
			}
		})
	}
}

func TestUnpackLZWRoundTrip(t *testing.T) {
	for name, in := range lzwInputs() {
		t.Run(name, func(t *testing.T) {
			packed := lzwEncode(in)
			out := make([]byte, len(in))
			n := UnpackLZW(packed, out)
			if n == 0 || n > len(packed) {
				t.Fatalf("UnpackLZW = %d, packed size %d", n, len(packed))
			}
			if !bytes.Equal(out, in) {
				t.Fatal("unpacked data differs")
			}
		})
	}
}

func TestUnpackLZWPrefix(t *testing.T) {
	in := lzwInputs()["noise"]
	packed := lzwEncode(in)
	out := make([]byte, 1000)
	if n := UnpackLZW(packed, out); n == 0 {
		t.Fatal("UnpackLZW of a prefix failed")
	}
	if !bytes.Equal(out, in[:1000]) {
		t.Error("prefix differs")
	}
}

func TestUnpackLZW(t *testing.T) {
	// CLEAR 'A' 'B' END in 9-bit codes.
	ab := []byte{0x80, 0x10, 0x48, 0x50, 0x10}

	tests := []struct {
		name   string
		packed []byte
		size   int
		want   int
	}{
		{"stops when output is full", ab, 2, 3},
		{"end before output is full", ab, 3, 0},
		{"empty output", ab, 0, 0},
		{"no leading clear", []byte{0x20, 0x81, 0x08, 0x50, 0x10}, 2, 0},
		{"truncated", ab[:2], 2, 0},
		{"no data", nil, 1, 0},
		{"code past table", []byte{0x80, 0x10, 0x65, 0x80}, 3, 0},
		{"end right after clear", []byte{0x80, 0x40, 0x40}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := make([]byte, tt.size)
			if got := UnpackLZW(tt.packed, out); got != tt.want {
				t.Errorf("UnpackLZW = %d, want %d", got, tt.want)
			}
		})
	}

	out := make([]byte, 2)
	UnpackLZW(ab, out)
	if string(out) != "AB" {
		t.Errorf("unpacked = %q, want %q", out, "AB")
	}
}

func TestUnpackLZWTableOverflow(t *testing.T) {
	in := lzwInputs()["noise"]
	packed := lzwEncodeReset(in, false)
	out := make([]byte, len(in))
	if n := UnpackLZW(packed, out); n != 0 {
		t.Errorf("UnpackLZW of a stream outgrowing the table = %d, want 0", n)
	}

	// The same data with table resets decodes.
	if n := UnpackLZW(lzwEncode(in), out); n == 0 || !bytes.Equal(out, in) {
		t.Errorf("UnpackLZW with resets = %d", n)
	}
}

func TestUnpackLZWTruncatedStream(t *testing.T) {
	in := lzwInputs()["text"]
	packed := lzwEncode(in)
	out := make([]byte, len(in))
	if n := UnpackLZW(packed[:len(packed)/2], out); n != 0 {
		t.Errorf("UnpackLZW of half a stream = %d, want 0", n)
	}
}
