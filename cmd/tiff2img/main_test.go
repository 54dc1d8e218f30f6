package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	xtiff "golang.org/x/image/tiff"

	"github.com/feranick/gwyddion-py3-sub000/internal/config"
)

func TestParseArgs(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tiff2img.yaml")
	if err := os.WriteFile(cfgPath, []byte("format: webp\nquality: 70\nchannel: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := parseArgs([]string{"-config", cfgPath, "-quality", "55", "-average", "in.tif", "out"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	want := config.Default()
	want.Format = "webp"
	want.Quality = 55
	want.Channel = 2
	want.Averaged = true
	if diff := cmp.Diff(want, a.cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"in.tif", "out"}, a.paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing output", []string{"in.tif"}},
		{"bad format", []string{"-format", "bmp", "in.tif", "out"}},
		{"bad quality", []string{"-quality", "0", "in.tif", "out"}},
		{"missing config", []string{"-config", "/nonexistent/tiff2img.yaml", "in.tif", "out"}},
		{"unknown flag", []string{"-zoom", "3", "in.tif", "out"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseArgs(tt.args, io.Discard); err == nil {
				t.Errorf("parseArgs(%q) succeeded", tt.args)
			}
		})
	}

	a, err := parseArgs([]string{"-version"}, io.Discard)
	if err != nil || !a.showVersion {
		t.Errorf("-version: showVersion = %v, err = %v", a.showVersion, err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	img := image.NewGray16(image.Rect(0, 0, 5, 3))
	for y := range 3 {
		for x := range 5 {
			img.SetGray16(x, y, color.Gray16{Y: uint16(1000 * (x + y))})
		}
	}
	var buf bytes.Buffer
	if err := xtiff.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "scan.tif")
	if err := os.WriteFile(in, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Concurrency = 2
	out := filepath.Join(dir, "previews")
	written, err := run(context.Background(), cfg, in, out, io.Discard)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(out, "scan_000.png")}, written); diff != "" {
		t.Fatalf("written mismatch (-want +got):\n%s", diff)
	}

	fh, err := os.Open(written[0])
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	got, err := png.Decode(fh)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := got.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Fatalf("preview size = %dx%d, want 5x3", b.Dx(), b.Dy())
	}
	g := got.(*image.Gray16)
	if v := g.Gray16At(0, 0).Y; v != 0 {
		t.Errorf("minimum pixel = %d, want 0", v)
	}
	if v := g.Gray16At(4, 2).Y; v != 65535 {
		t.Errorf("maximum pixel = %d, want 65535", v)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()

	if _, err := run(context.Background(), cfg, filepath.Join(dir, "missing.tif"), dir, io.Discard); err == nil {
		t.Error("missing input accepted")
	}

	cfg.Format = "bmp"
	if _, err := run(context.Background(), cfg, filepath.Join(dir, "missing.tif"), dir, io.Discard); err == nil || !strings.Contains(err.Error(), "encoder") {
		t.Errorf("run = %v, want encoder error", err)
	}
}

func TestProgressLine(t *testing.T) {
	pb := &progressBar{w: io.Discard, total: 4, label: "Encoding", unit: "images", barWidth: 8}
	pb.processed.Store(2)
	got := pb.line(2 * time.Second)
	want := "\rEncoding [████░░░░]  50%  2/4 images  1/s  2s\033[K"
	if got != want {
		t.Errorf("line = %q, want %q", got, want)
	}

	pb.processed.Store(9)
	if got := pb.line(0); !strings.Contains(got, "100%") {
		t.Errorf("overfull bar = %q, want 100%%", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{1500 * time.Millisecond, "1s"},
		{45 * time.Second, "45s"},
		{83 * time.Second, "1m23s"},
		{61 * time.Minute, "61m00s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{1536, "1.5 KB"},
		{3 << 20, "3.0 MB"},
		{5 << 30, "5.0 GB"},
	}
	for _, tt := range tests {
		if got := humanSize(tt.n); got != tt.want {
			t.Errorf("humanSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
