package tiff

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// The accessors below look a tag up with FindTag and convert its value.
// They return false when the tag is missing, has a type the accessor does
// not accept, or has the wrong count. Scalar accessors require a count of 1.

// Uint returns an unsigned scalar stored as BYTE, SHORT or LONG.
func (f *File) Uint(dir int, tag Tag) (uint32, bool) {
	return f.UintEntry(f.FindTag(dir, tag))
}

// UintEntry is Uint for an entry already looked up.
func (f *File) UintEntry(e *Entry) (uint32, bool) {
	if e == nil || e.Count != 1 {
		return 0, false
	}
	p := f.entryBytes(e)
	o := f.header.ByteOrder
	switch e.Type {
	case TypeByte:
		return uint32(p[0]), true
	case TypeShort:
		return uint32(o.Uint16(p)), true
	case TypeLong:
		return o.Uint32(p), true
	}
	return 0, false
}

// Size returns an unsigned scalar that may also be a BigTIFF LONG8.
func (f *File) Size(dir int, tag Tag) (uint64, bool) {
	return f.SizeEntry(f.FindTag(dir, tag))
}

// SizeEntry is Size for an entry already looked up.
func (f *File) SizeEntry(e *Entry) (uint64, bool) {
	if e != nil && e.Count == 1 && e.Type == TypeLong8 {
		return f.header.ByteOrder.Uint64(f.entryBytes(e)), true
	}
	v, ok := f.UintEntry(e)
	return uint64(v), ok
}

// Sint returns a signed scalar.
//
// SHORT values are read unsigned and LONG values are reinterpreted as int32,
// so LONG values above math.MaxInt32 come out negative.
func (f *File) Sint(dir int, tag Tag) (int32, bool) {
	return f.SintEntry(f.FindTag(dir, tag))
}

// SintEntry is Sint for an entry already looked up.
func (f *File) SintEntry(e *Entry) (int32, bool) {
	if e == nil || e.Count != 1 {
		return 0, false
	}
	p := f.entryBytes(e)
	o := f.header.ByteOrder
	switch e.Type {
	case TypeByte:
		return int32(p[0]), true
	case TypeSByte:
		return int32(int8(p[0])), true
	case TypeShort:
		return int32(o.Uint16(p)), true
	case TypeSShort:
		return int32(o.Int16(p)), true
	case TypeLong, TypeSLong:
		return o.Int32(p), true
	}
	return 0, false
}

// Bool returns whether a BYTE, SBYTE, SHORT or SSHORT scalar is non-zero.
func (f *File) Bool(dir int, tag Tag) (bool, bool) {
	return f.BoolEntry(f.FindTag(dir, tag))
}

// BoolEntry is Bool for an entry already looked up.
func (f *File) BoolEntry(e *Entry) (bool, bool) {
	if e == nil || e.Count != 1 {
		return false, false
	}
	p := f.entryBytes(e)
	switch e.Type {
	case TypeByte, TypeSByte:
		return p[0] != 0, true
	case TypeShort, TypeSShort:
		return f.header.ByteOrder.Int16(p) != 0, true
	}
	return false, false
}

// Float returns a FLOAT or DOUBLE scalar.
func (f *File) Float(dir int, tag Tag) (float64, bool) {
	return f.FloatEntry(f.FindTag(dir, tag))
}

// FloatEntry is Float for an entry already looked up.
func (f *File) FloatEntry(e *Entry) (float64, bool) {
	if e == nil || e.Count != 1 {
		return 0, false
	}
	p := f.entryBytes(e)
	switch e.Type {
	case TypeFloat:
		return float64(f.header.ByteOrder.Float32(p)), true
	case TypeDouble:
		return f.header.ByteOrder.Float64(p), true
	}
	return 0, false
}

// Rational returns a RATIONAL or SRATIONAL scalar as a float. A zero
// denominator makes the value unavailable.
func (f *File) Rational(dir int, tag Tag) (float64, bool) {
	return f.RationalEntry(f.FindTag(dir, tag))
}

// RationalEntry is Rational for an entry already looked up.
func (f *File) RationalEntry(e *Entry) (float64, bool) {
	if e == nil || e.Count != 1 {
		return 0, false
	}
	p := f.entryBytes(e)
	o := f.header.ByteOrder
	switch e.Type {
	case TypeRational:
		num, den := o.Uint32(p), o.Uint32(p[4:])
		if den == 0 {
			return 0, false
		}
		return float64(num) / float64(den), true
	case TypeSRational:
		num, den := o.Int32(p), o.Int32(p[4:])
		if den == 0 {
			return 0, false
		}
		return float64(num) / float64(den), true
	}
	return 0, false
}

// Uints returns an array of exactly count BYTE, SHORT or LONG values.
func (f *File) Uints(dir int, tag Tag, count uint64) ([]uint32, bool) {
	return f.UintsEntry(f.FindTag(dir, tag), count)
}

// UintsEntry is Uints for an entry already looked up.
func (f *File) UintsEntry(e *Entry, count uint64) ([]uint32, bool) {
	if e == nil || e.Count != count {
		return nil, false
	}
	p := f.entryBytes(e)
	o := f.header.ByteOrder
	v := make([]uint32, count)
	switch e.Type {
	case TypeByte:
		for i := range v {
			v[i] = uint32(p[i])
		}
	case TypeShort:
		for i := range v {
			v[i] = uint32(o.Uint16(p[2*i:]))
		}
	case TypeLong:
		for i := range v {
			v[i] = o.Uint32(p[4*i:])
		}
	default:
		return nil, false
	}
	return v, true
}

// sizes returns an array of exactly count SHORT, LONG or LONG8 values. A
// single value is read with SizeEntry, which also accepts BYTE.
func (f *File) sizes(e *Entry, count uint64) ([]uint64, bool) {
	if count == 1 {
		v, ok := f.SizeEntry(e)
		if !ok {
			return nil, false
		}
		return []uint64{v}, true
	}
	if e == nil || e.Count != count {
		return nil, false
	}
	p := f.entryBytes(e)
	o := f.header.ByteOrder
	v := make([]uint64, count)
	switch e.Type {
	case TypeShort:
		for i := range v {
			v[i] = uint64(o.Uint16(p[2*i:]))
		}
	case TypeLong:
		for i := range v {
			v[i] = uint64(o.Uint32(p[4*i:]))
		}
	case TypeLong8:
		for i := range v {
			v[i] = o.Uint64(p[8*i:])
		}
	default:
		return nil, false
	}
	return v, true
}

// String returns an ASCII value as a string. The string ends at the first
// NUL byte. An out-of-line value is assumed to carry its terminating NUL in
// the last byte, which is dropped unread.
func (f *File) String(dir int, tag Tag) (string, bool) {
	return f.StringEntry(f.FindTag(dir, tag))
}

// StringEntry is String for an entry already looked up.
func (f *File) StringEntry(e *Entry) (string, bool) {
	if e == nil || e.Type != TypeASCII {
		return "", false
	}
	p := f.entryBytes(e)
	if e.kind == valueIndirect {
		p = p[:len(p)-1]
	}
	for i, b := range p {
		if b == 0 {
			p = p[:i]
			break
		}
	}
	return string(p), true
}

// StringUTF8 is String with the result converted to valid UTF-8. Values
// that are not already UTF-8 are decoded as ISO 8859-1.
func (f *File) StringUTF8(dir int, tag Tag) (string, bool) {
	return f.StringUTF8Entry(f.FindTag(dir, tag))
}

// StringUTF8Entry is StringUTF8 for an entry already looked up.
func (f *File) StringUTF8Entry(e *Entry) (string, bool) {
	s, ok := f.StringEntry(e)
	if !ok || utf8.ValidString(s) {
		return s, ok
	}
	u, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s, true
	}
	return u, true
}
