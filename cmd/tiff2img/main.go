// Command tiff2img decodes every image directory of a TIFF or BigTIFF file
// and writes one preview image per directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/feranick/gwyddion-py3-sub000/internal/config"
	"github.com/feranick/gwyddion-py3-sub000/internal/encode"
	"github.com/feranick/gwyddion-py3-sub000/internal/field"
	tlog "github.com/feranick/gwyddion-py3-sub000/internal/log"
	"github.com/feranick/gwyddion-py3-sub000/internal/tiff"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

type cliArgs struct {
	cfg         config.Config
	verbose     bool
	showVersion bool
	paths       []string
}

// parseArgs parses the command line. Settings come from the defaults, then
// the -config file, then flags given explicitly.
func parseArgs(args []string, stderr io.Writer) (cliArgs, error) {
	fs := flag.NewFlagSet("tiff2img", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		a          cliArgs
		configPath string
		flags      = config.Default()
	)
	fs.StringVar(&configPath, "config", "", "YAML settings file")
	fs.StringVar(&flags.Format, "format", flags.Format, "Preview encoding: "+strings.Join(encode.Formats, ", "))
	fs.IntVar(&flags.Quality, "quality", flags.Quality, "JPEG/WebP quality 1-100")
	fs.IntVar(&flags.Channel, "channel", flags.Channel, "Sample to read from each pixel")
	fs.BoolVar(&flags.Averaged, "average", flags.Averaged, "Average all samples of each pixel")
	fs.IntVar(&flags.MaxSamples, "max-samples", flags.MaxSamples, "Largest SamplesPerPixel accepted")
	fs.BoolVar(&flags.AllowCompressed, "compressed", flags.AllowCompressed, "Accept PackBits and LZW compressed images")
	fs.IntVar(&flags.Concurrency, "concurrency", flags.Concurrency, "Number of parallel workers")
	fs.Float64Var(&flags.Scale, "scale", flags.Scale, "Factor applied to every sample")
	fs.BoolVar(&flags.SkipInvalid, "skip-invalid", flags.SkipInvalid, "Skip directories without a readable image")
	fs.BoolVar(&a.verbose, "verbose", false, "Verbose progress output")
	fs.BoolVar(&a.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tiff2img [flags] <file.tif> <output-dir>\n\n")
		fmt.Fprintf(stderr, "Write a preview image for every directory of a TIFF file.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return a, err
	}

	a.cfg = config.Default()
	if configPath != "" {
		c, err := config.Load(configPath)
		if err != nil {
			return a, err
		}
		a.cfg = c
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			a.cfg.Format = flags.Format
		case "quality":
			a.cfg.Quality = flags.Quality
		case "channel":
			a.cfg.Channel = flags.Channel
		case "average":
			a.cfg.Averaged = flags.Averaged
		case "max-samples":
			a.cfg.MaxSamples = flags.MaxSamples
		case "compressed":
			a.cfg.AllowCompressed = flags.AllowCompressed
		case "concurrency":
			a.cfg.Concurrency = flags.Concurrency
		case "scale":
			a.cfg.Scale = flags.Scale
		case "skip-invalid":
			a.cfg.SkipInvalid = flags.SkipInvalid
		}
	})
	a.paths = fs.Args()

	if a.showVersion {
		return a, nil
	}
	if err := a.cfg.Validate(); err != nil {
		return a, err
	}
	if len(a.paths) != 2 {
		fs.Usage()
		return a, errors.New("expected an input file and an output directory")
	}
	return a, nil
}

func main() {
	a, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("Arguments: %v", err)
	}
	if a.showVersion {
		fmt.Printf("tiff2img %s (commit %s, built %s)\n", version, commit, buildDate)
		os.Exit(0)
	}
	if a.verbose {
		tlog.SetLevel(tlog.LevelDebug)
	}

	var progress io.Writer = io.Discard
	if term.IsTerminal(int(os.Stderr.Fd())) {
		progress = os.Stderr
	}

	cfg := a.cfg
	fmt.Printf("tiff2img %s (commit %s, built %s)\n", version, commit, buildDate)
	switch cfg.Format {
	case "jpeg", "jpg", "webp":
		fmt.Printf("  %-14s %s (quality: %d)\n", "Format:", cfg.Format, cfg.Quality)
	default:
		fmt.Printf("  %-14s %s\n", "Format:", cfg.Format)
	}
	if cfg.Averaged {
		fmt.Printf("  %-14s averaged (max %d samples)\n", "Channel:", cfg.MaxSamples)
	} else {
		fmt.Printf("  %-14s %d (max %d samples)\n", "Channel:", cfg.Channel, cfg.MaxSamples)
	}
	fmt.Printf("  %-14s %d\n", "Concurrency:", cfg.Concurrency)
	fmt.Printf("  %-14s %s\n", "Input:", a.paths[0])
	fmt.Printf("  %-14s %s\n", "Output:", a.paths[1])

	start := time.Now()
	written, err := run(context.Background(), cfg, a.paths[0], a.paths[1], progress)
	if err != nil {
		log.Fatalf("Conversion: %v", err)
	}
	var total int64
	for _, p := range written {
		if fi, err := os.Stat(p); err == nil {
			total += fi.Size()
		}
	}
	fmt.Printf("Done: %d image(s), %s, %v → %s\n",
		len(written), humanSize(total), time.Since(start).Round(time.Millisecond), a.paths[1])
}

// run converts the file at in and returns the paths it wrote, in directory
// order.
func run(ctx context.Context, cfg config.Config, in, outDir string, progress io.Writer) ([]string, error) {
	enc, err := encode.NewEncoder(cfg.Format, cfg.Quality)
	if err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}

	f, err := tiff.Load(in)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	f.AllowCompressed(cfg.AllowCompressed)

	readStart := time.Now()
	fields, err := field.ReadAll(ctx, f, cfg.FieldOptions(), cfg.Concurrency)
	if err != nil {
		return nil, err
	}
	tlog.Debug("decoded %d directories in %v", len(fields), time.Since(readStart).Round(time.Millisecond))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	paths := make([]string, len(fields))
	var n int64
	for _, fld := range fields {
		if fld != nil {
			n++
		}
	}
	pb := newProgressBar(progress, "Encoding", "images", n)
	defer pb.Finish()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))
	for dir, fld := range fields {
		if fld == nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := enc.Encode(render(enc, fld))
			if err != nil {
				return fmt.Errorf("directory %d: %w", dir, err)
			}
			p := filepath.Join(outDir, fmt.Sprintf("%s_%03d%s", base, dir, enc.FileExtension()))
			if err := os.WriteFile(p, data, 0o644); err != nil {
				return err
			}
			tlog.Debug("directory %d: %q %dx%d → %s", dir, fld.Title, fld.XRes, fld.YRes, p)
			paths[dir] = p
			pb.Increment()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	written := paths[:0]
	for _, p := range paths {
		if p != "" {
			written = append(written, p)
		}
	}
	return written, nil
}

func render(enc encode.Encoder, fld *field.Field) image.Image {
	if enc.Format() == "terrarium" {
		return encode.Terrarium(fld, 1)
	}
	return encode.Grayscale(fld)
}

func humanSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
