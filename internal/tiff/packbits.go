package tiff

// UnpackPackBits decodes PackBits data from packed until unpacked is full.
//
// It returns the number of packed bytes consumed, or 0 when the input runs
// out or a run does not fit into the output. Trailing packed bytes are
// ignored.
func UnpackPackBits(packed, unpacked []byte) int {
	in, out := 0, 0
	for out < len(unpacked) {
		if in == len(packed) {
			return 0
		}
		n := int(packed[in])
		in++
		switch {
		case n <= 127:
			// Literal run of n+1 bytes.
			n++
			if n > len(packed)-in || n > len(unpacked)-out {
				return 0
			}
			copy(unpacked[out:], packed[in:in+n])
			in += n
			out += n
		case n > 128:
			// Next byte repeated 257-n times.
			n = 257 - n
			if in == len(packed) || n > len(unpacked)-out {
				return 0
			}
			b := packed[in]
			in++
			for i := out; i < out+n; i++ {
				unpacked[i] = b
			}
			out += n
		}
		// 128 is a no-op.
	}
	return in
}
