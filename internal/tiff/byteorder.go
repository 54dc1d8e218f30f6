package tiff

import (
	"encoding/binary"
	"math"
)

// ByteOrder is the byte order of a TIFF file, chosen once when the header is
// detected.
type ByteOrder uint8

// Byte orders. The zero value means "unknown" and matches anything in Detect.
const (
	LittleEndian ByteOrder = iota + 1
	BigEndian
)

func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "II"
	case BigEndian:
		return "MM"
	}
	return "??"
}

func (o ByteOrder) binary() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Uint16 decodes an unsigned 16-bit value from the start of p.
func (o ByteOrder) Uint16(p []byte) uint16 { return o.binary().Uint16(p) }

// Uint32 decodes an unsigned 32-bit value from the start of p.
func (o ByteOrder) Uint32(p []byte) uint32 { return o.binary().Uint32(p) }

// Uint64 decodes an unsigned 64-bit value from the start of p.
func (o ByteOrder) Uint64(p []byte) uint64 { return o.binary().Uint64(p) }

// Int16 decodes a signed 16-bit value from the start of p.
func (o ByteOrder) Int16(p []byte) int16 { return int16(o.Uint16(p)) }

// Int32 decodes a signed 32-bit value from the start of p.
func (o ByteOrder) Int32(p []byte) int32 { return int32(o.Uint32(p)) }

// Int64 decodes a signed 64-bit value from the start of p.
func (o ByteOrder) Int64(p []byte) int64 { return int64(o.Uint64(p)) }

// Float32 decodes an IEEE single from the start of p.
func (o ByteOrder) Float32(p []byte) float32 { return math.Float32frombits(o.Uint32(p)) }

// Float64 decodes an IEEE double from the start of p.
func (o ByteOrder) Float64(p []byte) float64 { return math.Float64frombits(o.Uint64(p)) }

// cursor reads consecutive values from a byte slice, advancing past each
// value it returns. Callers check that enough bytes remain beforehand.
type cursor struct {
	p     []byte
	order ByteOrder
}

func (c *cursor) skip(n int) { c.p = c.p[n:] }

func (c *cursor) uint16() uint16 {
	v := c.order.Uint16(c.p)
	c.p = c.p[2:]
	return v
}

func (c *cursor) uint32() uint32 {
	v := c.order.Uint32(c.p)
	c.p = c.p[4:]
	return v
}

func (c *cursor) uint64() uint64 {
	v := c.order.Uint64(c.p)
	c.p = c.p[8:]
	return v
}

// length reads a count or offset field: 32-bit in classic files, 64-bit in
// BigTIFF.
func (c *cursor) length(v Version) uint64 {
	if v == Big {
		return c.uint64()
	}
	return uint64(c.uint32())
}
