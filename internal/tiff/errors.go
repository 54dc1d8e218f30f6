package tiff

import (
	"errors"
	"fmt"
)

// ErrNotTIFF is returned when the data does not start with a classic or
// BigTIFF header. Callers probing several formats treat it as "try the next
// one".
var ErrNotTIFF = errors.New("tiff: not a TIFF file")

// ErrDecompress is returned by row reads when a compressed strip cannot be
// unpacked to its expected size.
var ErrDecompress = errors.New("tiff: corrupted compressed data")

// ErrArgument is returned when a row read is asked for a row, channel or
// destination that does not fit the image.
var ErrArgument = errors.New("tiff: invalid argument")

// A FormatError reports that the file is a TIFF but its structure is broken.
type FormatError string

func (e FormatError) Error() string { return "tiff: invalid format: " + string(e) }

// An UnsupportedError reports that the file uses a feature the reader does
// not implement.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "tiff: unsupported feature: " + string(e) }

// A RequiredTagError reports that an image directory lacks a tag without
// which the image cannot be read.
type RequiredTagError struct {
	Dir int
	Tag Tag
}

func (e *RequiredTagError) Error() string {
	return fmt.Sprintf("tiff: required tag %d (%v) was not found in directory %d", uint16(e.Tag), e.Tag, e.Dir)
}

func formatErrorf(format string, args ...any) error {
	return FormatError(fmt.Sprintf(format, args...))
}

func unsupportedErrorf(format string, args ...any) error {
	return UnsupportedError(fmt.Sprintf(format, args...))
}

// invalidParam mirrors the "missing or invalid" message used for geometry
// tags that are present but unusable.
func invalidParam(name string) error {
	return formatErrorf("parameter %s is missing or invalid", name)
}
