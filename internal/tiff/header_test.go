package tiff

import (
	"errors"
	"testing"
)

func TestDetect(t *testing.T) {
	classicII := []byte{'I', 'I', 42, 0, 8, 0, 0, 0}
	classicMM := []byte{'M', 'M', 0, 42, 0, 0, 0, 8}
	bigII := []byte{'I', 'I', 43, 0, 8, 0, 0, 0, 16, 0, 0, 0, 0, 0, 0, 0}
	bigMM := []byte{'M', 'M', 0, 43, 0, 8, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0}

	tests := []struct {
		name    string
		buf     []byte
		version Version
		order   ByteOrder
		want    Header
		wantErr bool
	}{
		{"classic II", classicII, 0, 0, Header{Classic, LittleEndian, 8, HeaderSize}, false},
		{"classic MM", classicMM, 0, 0, Header{Classic, BigEndian, 8, HeaderSize}, false},
		{"big II", bigII, 0, 0, Header{Big, LittleEndian, 16, HeaderSizeBig}, false},
		{"big MM", bigMM, 0, 0, Header{Big, BigEndian, 256, HeaderSizeBig}, false},
		{"version match", classicII, Classic, LittleEndian, Header{Classic, LittleEndian, 8, HeaderSize}, false},
		{"version mismatch", classicII, Big, 0, Header{}, true},
		{"order mismatch", classicII, 0, BigEndian, Header{}, true},
		{"short", classicII[:7], 0, 0, Header{}, true},
		{"empty", nil, 0, 0, Header{}, true},
		{"bad mark", []byte{'I', 'M', 42, 0, 8, 0, 0, 0}, 0, 0, Header{}, true},
		{"bad version", []byte{'I', 'I', 44, 0, 8, 0, 0, 0}, 0, 0, Header{}, true},
		{"wrong order version", []byte{'I', 'I', 0, 42, 8, 0, 0, 0}, 0, 0, Header{}, true},
		{"big too short", bigII[:12], 0, 0, Header{}, true},
		{"big bad bytesize", []byte{'I', 'I', 43, 0, 4, 0, 0, 0, 16, 0, 0, 0, 0, 0, 0, 0}, 0, 0, Header{}, true},
		{"big reserved", []byte{'I', 'I', 43, 0, 8, 0, 1, 0, 16, 0, 0, 0, 0, 0, 0, 0}, 0, 0, Header{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Detect(tt.buf, tt.version, tt.order)
			if tt.wantErr {
				if !errors.Is(err, ErrNotTIFF) {
					t.Fatalf("Detect err = %v, want ErrNotTIFF", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if h != tt.want {
				t.Errorf("Detect = %+v, want %+v", h, tt.want)
			}
		})
	}
}

func TestVersionLayout(t *testing.T) {
	tests := []struct {
		v                                         Version
		countSize, entrySize, valueSize, nextSize uint64
	}{
		{Classic, 2, 12, 4, 4},
		{Big, 8, 20, 8, 8},
	}
	for _, tt := range tests {
		c, e, v, n := tt.v.layout()
		if c != tt.countSize || e != tt.entrySize || v != tt.valueSize || n != tt.nextSize {
			t.Errorf("%v layout = %d %d %d %d, want %d %d %d %d",
				tt.v, c, e, v, n, tt.countSize, tt.entrySize, tt.valueSize, tt.nextSize)
		}
	}
}
