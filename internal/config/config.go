// Package config holds the tiff2img conversion settings and loads them from
// YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/feranick/gwyddion-py3-sub000/internal/encode"
	"github.com/feranick/gwyddion-py3-sub000/internal/field"
)

// Config is the full set of conversion settings.
type Config struct {
	Format          string  `yaml:"format"`
	Quality         int     `yaml:"quality"`
	Channel         int     `yaml:"channel"`
	Averaged        bool    `yaml:"average"`
	MaxSamples      int     `yaml:"max_samples"`
	AllowCompressed bool    `yaml:"compressed"`
	Concurrency     int     `yaml:"concurrency"`
	Scale           float64 `yaml:"scale"`
	SkipInvalid     bool    `yaml:"skip_invalid"`
}

// Default returns the settings used when neither a file nor a flag says
// otherwise.
func Default() Config {
	return Config{
		Format:      "png",
		Quality:     90,
		MaxSamples:  4,
		Concurrency: runtime.NumCPU(),
		Scale:       1,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML settings over the defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(encode.Formats, strings.ToLower(c.Format)) && !strings.EqualFold(c.Format, "jpg") {
		errs = append(errs, fmt.Errorf("format %q is not one of %s", c.Format, strings.Join(encode.Formats, ", ")))
	}
	if c.Quality < 1 || c.Quality > 100 {
		errs = append(errs, fmt.Errorf("quality %d is outside 1-100", c.Quality))
	}
	if c.Channel < 0 {
		errs = append(errs, fmt.Errorf("channel %d is negative", c.Channel))
	}
	if c.MaxSamples < 1 {
		errs = append(errs, fmt.Errorf("max_samples %d must be at least 1", c.MaxSamples))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency %d must be at least 1", c.Concurrency))
	}
	if c.Scale == 0 {
		errs = append(errs, errors.New("scale must not be zero"))
	}
	return errors.Join(errs...)
}

// FieldOptions returns the decoding options for these settings.
func (c Config) FieldOptions() field.Options {
	return field.Options{
		Channel:         c.Channel,
		Averaged:        c.Averaged,
		Scale:           c.Scale,
		MaxSamples:      c.MaxSamples,
		SkipInvalid:     c.SkipInvalid,
		AllowCompressed: c.AllowCompressed,
	}
}
