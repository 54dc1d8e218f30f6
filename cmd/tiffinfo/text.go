package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/feranick/gwyddion-py3-sub000/internal/report"
)

var (
	heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failure = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func writeText(w io.Writer, r *report.Report) {
	fmt.Fprintln(w, heading.Render("File"))
	fmt.Fprintf(w, "  %-12s %s\n", "Path:", r.Path)
	fmt.Fprintf(w, "  %-12s %s, byte order %s\n", "Format:", r.Version, r.ByteOrder)
	fmt.Fprintf(w, "  %-12s %d bytes\n", "Size:", r.Size)
	fmt.Fprintf(w, "  %-12s %d\n", "Directories:", len(r.Dirs))

	for _, d := range r.Dirs {
		fmt.Fprintln(w)
		fmt.Fprintln(w, heading.Render(fmt.Sprintf("Directory %d", d.Index)))
		for _, t := range d.Tags {
			where := "inline"
			if !t.Inline {
				where = "offset"
			}
			fmt.Fprintf(w, "  %5d %-26s %-9s %6d %s  %s\n",
				t.Tag, t.Name, t.Type, t.Count, dim.Render(where), t.Value)
		}
		if m := d.Image; m != nil {
			fmt.Fprintf(w, "  image: %dx%d, %d x %d-bit %s, compression %s, %s\n",
				m.Width, m.Height, m.SamplesPerPixel, m.BitsPerSample, m.SampleFormat,
				m.Compression, layout(m))
			if m.Sample != nil {
				fmt.Fprintf(w, "  first row: %s\n", formatSample(m.Sample))
			}
		}
		if d.Error != "" {
			fmt.Fprintf(w, "  %s\n", failure.Render(d.Error))
		}
	}
}

func layout(m *report.Image) string {
	if m.Tiled {
		return fmt.Sprintf("%d tiles of %dx%d", m.Segments, m.TileWidth, m.TileHeight)
	}
	return fmt.Sprintf("%d strips of %d rows", m.Segments, m.RowsPerStrip)
}

func formatSample(v []float64) string {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = strconv.FormatFloat(x, 'g', 6, 64)
	}
	return strings.Join(s, " ")
}
