package tiff

import "fmt"

// Tag is a TIFF tag number.
type Tag uint16

// Standard TIFF tags.
const (
	TagSubFileType      Tag = 254
	TagImageWidth       Tag = 256
	TagImageLength      Tag = 257
	TagBitsPerSample    Tag = 258
	TagCompression      Tag = 259
	TagPhotometric      Tag = 262
	TagFillOrder        Tag = 266
	TagDocumentName     Tag = 269
	TagImageDescription Tag = 270
	TagMake             Tag = 271
	TagModel            Tag = 272
	TagStripOffsets     Tag = 273
	TagOrientation      Tag = 274
	TagSamplesPerPixel  Tag = 277
	TagRowsPerStrip     Tag = 278
	TagStripByteCounts  Tag = 279
	TagXResolution      Tag = 282
	TagYResolution      Tag = 283
	TagPlanarConfig     Tag = 284
	TagPageName         Tag = 285
	TagResolutionUnit   Tag = 296
	TagSoftware         Tag = 305
	TagDateTime         Tag = 306
	TagArtist           Tag = 315
	TagPredictor        Tag = 317
	TagColorMap         Tag = 320
	TagTileWidth        Tag = 322
	TagTileLength       Tag = 323
	TagTileOffsets      Tag = 324
	TagTileByteCounts   Tag = 325
	TagSampleFormat     Tag = 339

	// EXIF tags, LEXT files keep their metadata in the EXIF directory.
	TagExifIFD                      Tag = 34665
	TagExifVersion                  Tag = 36864
	TagExifDateTimeOriginal         Tag = 36867
	TagExifDateTimeDigitized        Tag = 36868
	TagExifUserComment              Tag = 37510
	TagExifDateTimeSubsec           Tag = 37520
	TagExifDateTimeOriginalSubsec   Tag = 37521
	TagExifDateTimeDigitizedSubsec  Tag = 37522
	TagExifDeviceSettingDescription Tag = 41995
)

var tagNames = map[Tag]string{
	TagSubFileType:                  "SubFileType",
	TagImageWidth:                   "ImageWidth",
	TagImageLength:                  "ImageLength",
	TagBitsPerSample:                "BitsPerSample",
	TagCompression:                  "Compression",
	TagPhotometric:                  "Photometric",
	TagFillOrder:                    "FillOrder",
	TagDocumentName:                 "DocumentName",
	TagImageDescription:             "ImageDescription",
	TagMake:                         "Make",
	TagModel:                        "Model",
	TagStripOffsets:                 "StripOffsets",
	TagOrientation:                  "Orientation",
	TagSamplesPerPixel:              "SamplesPerPixel",
	TagRowsPerStrip:                 "RowsPerStrip",
	TagStripByteCounts:              "StripByteCounts",
	TagXResolution:                  "XResolution",
	TagYResolution:                  "YResolution",
	TagPlanarConfig:                 "PlanarConfig",
	TagPageName:                     "PageName",
	TagResolutionUnit:               "ResolutionUnit",
	TagSoftware:                     "Software",
	TagDateTime:                     "DateTime",
	TagArtist:                       "Artist",
	TagPredictor:                    "Predictor",
	TagColorMap:                     "ColorMap",
	TagTileWidth:                    "TileWidth",
	TagTileLength:                   "TileLength",
	TagTileOffsets:                  "TileOffsets",
	TagTileByteCounts:               "TileByteCounts",
	TagSampleFormat:                 "SampleFormat",
	TagExifIFD:                      "ExifIFD",
	TagExifVersion:                  "ExifVersion",
	TagExifDateTimeOriginal:         "DateTimeOriginal",
	TagExifDateTimeDigitized:        "DateTimeDigitized",
	TagExifUserComment:              "UserComment",
	TagExifDateTimeSubsec:           "SubSecTime",
	TagExifDateTimeOriginalSubsec:   "SubSecTimeOriginal",
	TagExifDateTimeDigitizedSubsec:  "SubSecTimeDigitized",
	TagExifDeviceSettingDescription: "DeviceSettingDescription",
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Tag(%d)", uint16(t))
}

// KnownTags returns the tags that have names, keyed by name.
func KnownTags() map[string]Tag {
	m := make(map[string]Tag, len(tagNames))
	for t, s := range tagNames {
		m[s] = t
	}
	return m
}

// DataType is a TIFF entry data type code.
type DataType uint16

// TIFF data types, including the BigTIFF 64-bit ones.
const (
	TypeNone      DataType = 0
	TypeByte      DataType = 1
	TypeASCII     DataType = 2
	TypeShort     DataType = 3
	TypeLong      DataType = 4
	TypeRational  DataType = 5
	TypeSByte     DataType = 6
	TypeUndefined DataType = 7
	TypeSShort    DataType = 8
	TypeSLong     DataType = 9
	TypeSRational DataType = 10
	TypeFloat     DataType = 11
	TypeDouble    DataType = 12
	TypeIFD       DataType = 13
	TypeUnicode   DataType = 14
	TypeComplex   DataType = 15
	TypeLong8     DataType = 16
	TypeSLong8    DataType = 17
	TypeIFD8      DataType = 18
)

var typeNames = [...]string{
	"NOTYPE", "BYTE", "ASCII", "SHORT", "LONG", "RATIONAL", "SBYTE", "UNDEFINED",
	"SSHORT", "SLONG", "SRATIONAL", "FLOAT", "DOUBLE", "IFD", "UNICODE", "COMPLEX",
	"LONG8", "SLONG8", "IFD8",
}

func (d DataType) String() string {
	if int(d) < len(typeNames) {
		return typeNames[d]
	}
	return fmt.Sprintf("DataType(%d)", uint16(d))
}

// Size returns the size of one element of type d, or 0 when the type has
// no known fixed size. Entries of such types are never dereferenced.
func (d DataType) Size() uint64 {
	switch d {
	case TypeByte, TypeSByte, TypeASCII:
		return 1
	case TypeShort, TypeSShort:
		return 2
	case TypeLong, TypeSLong, TypeFloat:
		return 4
	case TypeRational, TypeSRational, TypeDouble, TypeLong8, TypeSLong8:
		return 8
	default:
		return 0
	}
}

// bigOnly reports whether d may only appear in BigTIFF files.
func (d DataType) bigOnly() bool {
	return d == TypeLong8 || d == TypeSLong8 || d == TypeIFD8
}

// Compression is the value of the Compression tag.
type Compression uint32

// Compression schemes. Only None, LZW and PackBits can be decoded.
const (
	CompressionNone     Compression = 1
	CompressionHuffman  Compression = 2
	CompressionLZW      Compression = 5
	CompressionPackBits Compression = 32773
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionHuffman:
		return "huffman"
	case CompressionLZW:
		return "lzw"
	case CompressionPackBits:
		return "packbits"
	}
	return fmt.Sprintf("Compression(%d)", uint32(c))
}

// SampleFormat is the value of the SampleFormat tag.
type SampleFormat uint32

// Sample formats.
const (
	SampleUnsigned  SampleFormat = 1
	SampleSigned    SampleFormat = 2
	SampleFloat     SampleFormat = 3
	SampleUndefined SampleFormat = 4
)

func (s SampleFormat) String() string {
	switch s {
	case SampleUnsigned:
		return "uint"
	case SampleSigned:
		return "int"
	case SampleFloat:
		return "float"
	case SampleUndefined:
		return "undefined"
	}
	return fmt.Sprintf("SampleFormat(%d)", uint32(s))
}

// Planar configurations.
const (
	PlanarContiguous = 1
	PlanarSeparate   = 2
)

// Photometric interpretations.
const (
	PhotometricMinIsWhite = 0
	PhotometricMinIsBlack = 1
	PhotometricRGB        = 2
)

// Resolution units.
const (
	ResolutionUnitNone       = 1
	ResolutionUnitInch       = 2
	ResolutionUnitCentimeter = 3
)

// Orientations.
const (
	OrientationTopLeft  = 1
	OrientationTopRight = 2
	OrientationBotRight = 3
	OrientationBotLeft  = 4
	OrientationLeftTop  = 5
	OrientationRightTop = 6
	OrientationRightBot = 7
	OrientationLeftBot  = 8
)
