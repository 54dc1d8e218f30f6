package field

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// testImage is one 8-bit striped directory for buildTIFF.
type testImage struct {
	w, h, spp  int
	pixels     []byte
	pageName   string
	xres, yres uint32 // pixels per unit; 0 omits the resolution tags
	unit       uint16 // 0 omits ResolutionUnit
}

type testEntry struct {
	tag, typ uint16
	count    uint32
	value    []byte
}

// buildTIFF writes a little-endian classic TIFF holding images as
// consecutive directories, each with a single uncompressed strip.
func buildTIFF(images ...testImage) []byte {
	le := binary.LittleEndian
	out := []byte{'I', 'I', 42, 0, 0, 0, 0, 0}
	next := 4

	align := func() {
		if len(out)%2 != 0 {
			out = append(out, 0)
		}
	}

	for _, im := range images {
		spp := max(im.spp, 1)
		align()
		strip := len(out)
		out = append(out, im.pixels...)

		shorts := func(tag uint16, v ...uint16) testEntry {
			var p []byte
			for _, x := range v {
				p = le.AppendUint16(p, x)
			}
			return testEntry{tag, 3, uint32(len(v)), p}
		}
		long := func(tag uint16, v uint32) testEntry {
			return testEntry{tag, 4, 1, le.AppendUint32(nil, v)}
		}
		bps := make([]uint16, spp)
		for i := range bps {
			bps[i] = 8
		}

		entries := []testEntry{
			shorts(256, uint16(im.w)),
			shorts(257, uint16(im.h)),
			shorts(258, bps...),
			shorts(262, 1),
			long(273, uint32(strip)),
			shorts(277, uint16(spp)),
			long(279, uint32(len(im.pixels))),
		}
		if im.pageName != "" {
			entries = append(entries, testEntry{285, 2, uint32(len(im.pageName) + 1), append([]byte(im.pageName), 0)})
		}
		if im.xres != 0 {
			entries = append(entries,
				testEntry{282, 5, 1, le.AppendUint32(le.AppendUint32(nil, im.xres), 1)},
				testEntry{283, 5, 1, le.AppendUint32(le.AppendUint32(nil, im.yres), 1)})
		}
		if im.unit != 0 {
			entries = append(entries, shorts(296, im.unit))
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].tag < entries[j].tag })

		fields := make([][]byte, len(entries))
		for i, e := range entries {
			if len(e.value) > 4 {
				align()
				fields[i] = le.AppendUint32(nil, uint32(len(out)))
				out = append(out, e.value...)
			} else {
				fields[i] = append(append([]byte{}, e.value...), make([]byte, 4-len(e.value))...)
			}
		}

		align()
		le.PutUint32(out[next:], uint32(len(out)))
		out = le.AppendUint16(out, uint16(len(entries)))
		for i, e := range entries {
			out = le.AppendUint16(out, e.tag)
			out = le.AppendUint16(out, e.typ)
			out = le.AppendUint32(out, e.count)
			out = append(out, fields[i]...)
		}
		next = len(out)
		out = le.AppendUint32(out, 0)
	}
	return out
}

func writeTIFF(t *testing.T, images ...testImage) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "field.tif")
	if err := os.WriteFile(path, buildTIFF(images...), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func rampPixels(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i)
	}
	return p
}
