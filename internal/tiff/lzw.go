package tiff

// TIFF LZW decoder.
//
// TIFF LZW writes codes MSB first and widens them one code earlier than GIF
// does, so compress/lzw cannot read it. Dictionary strings are not stored
// as prefix chains: each one is a span either in a private buffer or in the
// output already written, whichever held it when it was created.

import "github.com/feranick/gwyddion-py3-sub000/internal/log"

const (
	lzwTableSize = 4096
	lzwClearCode = 0x100
	lzwEOICode   = 0x101
	lzwFirstCode = 0x102
)

type lzwString struct {
	pos      int
	length   int
	inOutput bool // pos indexes the output instead of the dictionary buffer
}

type lzwDecoder struct {
	src    []byte
	bitPos int // current bit position in src
}

// readCode reads an n-bit code, MSB first. A code spans at most three bytes.
func (d *lzwDecoder) readCode(n int) (int, bool) {
	if d.bitPos+n > 8*len(d.src) {
		return 0, false
	}
	p := d.src[d.bitPos/8:]
	bi := d.bitPos % 8
	d.bitPos += n

	x := int(p[0]&(0xff>>bi)) << (n + bi - 8)
	if n+bi <= 16 {
		return x | int(p[1])>>(16-n-bi), true
	}
	x |= int(p[1]) << (n + bi - 16)
	return x | int(p[2])>>(24-n-bi), true
}

// UnpackLZW decodes TIFF LZW data from packed until unpacked is full.
//
// It returns the number of packed bytes consumed, or 0 when the stream is
// malformed, ends early, or unpacked is empty. The stream must start with a
// clear code.
func UnpackLZW(packed, unpacked []byte) int {
	if len(unpacked) == 0 {
		return 0
	}

	d := &lzwDecoder{src: packed}
	table := make([]lzwString, lzwTableSize)
	buf := make([]byte, 0x100, 8192)
	for i := range 0x100 {
		table[i] = lzwString{pos: i, length: 1}
		buf[i] = byte(i)
	}

	str := func(s lzwString) []byte {
		if s.inOutput {
			return unpacked[s.pos : s.pos+s.length]
		}
		return buf[s.pos : s.pos+s.length]
	}

	out := 0
	// emit appends p to the output and reports whether the output is full.
	emit := func(p []byte) bool {
		out += copy(unpacked[out:], p)
		return out == len(unpacked)
	}

	next, width, prev := lzwFirstCode, 9, 0
	first := true
	for {
		code, ok := d.readCode(width)
		if !ok {
			log.Debug("lzw: ran out of data after %d of %d bytes", out, len(unpacked))
			return 0
		}
		if first && code != lzwClearCode {
			log.Debug("lzw: stream does not start with a clear code")
			return 0
		}
		first = false

		switch {
		case code == lzwEOICode:
			if out != len(unpacked) {
				log.Debug("lzw: end of information after %d of %d bytes", out, len(unpacked))
				return 0
			}
			return d.bitPos / 8

		case code == lzwClearCode:
			width = 9
			for ok && code == lzwClearCode {
				code, ok = d.readCode(width)
			}
			if !ok || code > lzwClearCode {
				log.Debug("lzw: invalid code %d after clear", code)
				return 0
			}
			if emit([]byte{byte(code)}) {
				return d.bitPos / 8
			}
			next = lzwFirstCode
			buf = buf[:0x100]

		case code < next:
			p := table[prev]
			s := lzwString{pos: len(buf), length: p.length + 1}
			buf = append(buf, str(p)...)
			c := str(table[code])
			buf = append(buf, c[0])
			table[next] = s
			if emit(c) {
				return d.bitPos / 8
			}
			next++

		case code == next:
			p := table[prev]
			table[next] = lzwString{pos: out, length: p.length + 1, inOutput: true}
			c := str(p)
			if emit(c) || emit(c[:1]) {
				return d.bitPos / 8
			}
			next++

		default:
			log.Debug("lzw: unexpected code %d, expecting at most %d", code, next)
			return 0
		}

		switch next {
		case 511, 1023, 2047:
			width++
		case lzwTableSize - 1:
			log.Debug("lzw: code table overflow")
			return 0
		}
		prev = code
	}
}
