// Command tiffinfo prints the structure of a TIFF or BigTIFF file: its
// directories, their tags and, where the reader accepts them, the image
// geometry and a few decoded samples.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/feranick/gwyddion-py3-sub000/internal/log"
	"github.com/feranick/gwyddion-py3-sub000/internal/report"
	"github.com/feranick/gwyddion-py3-sub000/internal/tiff"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		asJSON      bool
		tagName     string
		compressed  bool
		raw         bool
		maxSamples  int
		verbose     bool
		showVersion bool
	)

	flag.BoolVar(&asJSON, "json", false, "Print the report as JSON")
	flag.StringVar(&tagName, "tag", "", "Print only this tag (name or number) from every directory")
	flag.BoolVar(&compressed, "compressed", false, "Accept PackBits and LZW compressed images")
	flag.BoolVar(&raw, "raw", false, "Dump the first bytes of the first strip or tile of each directory")
	flag.IntVar(&maxSamples, "max-samples", 4, "Largest SamplesPerPixel accepted")
	flag.BoolVar(&verbose, "verbose", false, "Debug output from the reader")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tiffinfo [flags] <file.tif>\n\n")
		fmt.Fprintf(os.Stderr, "Describe the directories of a TIFF or BigTIFF file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("tiffinfo %s (commit %s, built %s)\n", version, commit, buildDate)
		os.Exit(0)
	}
	if verbose {
		log.SetLevel(log.LevelDebug)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	opts := options{
		asJSON:     asJSON,
		tagName:    tagName,
		compressed: compressed,
		raw:        raw,
		maxSamples: maxSamples,
	}
	if err := run(os.Stdout, flag.Arg(0), opts); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

type options struct {
	asJSON     bool
	tagName    string
	compressed bool
	raw        bool
	maxSamples int
}

func run(w io.Writer, path string, opts options) error {
	f, err := tiff.Load(path)
	if err != nil {
		if errors.Is(err, tiff.ErrNotTIFF) {
			return fmt.Errorf("%s is not a TIFF file", path)
		}
		return err
	}
	defer f.Close()
	f.AllowCompressed(opts.compressed)

	if opts.tagName != "" {
		return printTag(w, f, opts.tagName)
	}

	r := report.Build(path, f, opts.maxSamples)
	if opts.asJSON {
		data, err := r.JSON()
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
	writeText(w, r)
	if opts.raw {
		dumpSegments(w, f, opts.maxSamples)
	}
	return nil
}

func printTag(w io.Writer, f *tiff.File, name string) error {
	tag, ok := report.LookupTag(name)
	if !ok {
		return fmt.Errorf("unknown tag %q", name)
	}
	if !strings.EqualFold(name, tag.String()) {
		log.Debug("tag %q resolved to %s", name, tag)
	}
	if f.FindTag(tiff.AnyDir, tag) == nil {
		return fmt.Errorf("tag %s is not present in any directory", tag)
	}
	for dir := range f.NumDirs() {
		if e := f.FindTag(dir, tag); e != nil {
			fmt.Fprintf(w, "%d\t%s\t%s[%d]\t%s\n", dir, tag, e.Type, e.Count, report.Value(f, e))
		}
	}
	return nil
}

func dumpSegments(w io.Writer, f *tiff.File, maxSamples int) {
	const n = 20
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading.Render("Raw data"))
	for dir := range f.NumDirs() {
		r, err := f.ImageReader(dir, maxSamples)
		if err != nil || r.NumSegments() == 0 {
			continue
		}
		off, data := r.Segment(0)
		fmt.Fprintf(w, "  dir %d: %d segments, first at %d (%d bytes): %x\n",
			dir, r.NumSegments(), off, len(data), data[:min(len(data), n)])
	}
}
