package pixel

import (
	"fmt"
	"strings"
)

// Format identifies a channel arrangement. Values match the OpenGL enums
// so identifiers can be passed through from GL-style callers unchanged.
type Format uint32

const (
	Red            Format = 0x1903
	Alpha          Format = 0x1906
	RGB            Format = 0x1907
	RGBA           Format = 0x1908
	Luminance      Format = 0x1909
	LuminanceAlpha Format = 0x190A
	BGR            Format = 0x80E0
	BGRA           Format = 0x80E1
	RG             Format = 0x8227
)

// Type identifies the numeric encoding of a pixel's components.
type Type uint32

const (
	UnsignedByte         Type = 0x1401
	Float                Type = 0x1406
	Double               Type = 0x140A
	UnsignedShort4444    Type = 0x8033
	UnsignedShort5551    Type = 0x8034
	UnsignedInt8888      Type = 0x8035
	UnsignedShort565     Type = 0x8363
	UnsignedShort1555Rev Type = 0x8366
	UnsignedInt8888Rev   Type = 0x8367
)

// Layout gives the component index of each logical channel within an
// encoded pixel. -1 marks a channel the format does not carry.
type Layout struct {
	Red, Green, Blue, Alpha int
}

// components returns how many scalar components the format stores.
func (l Layout) components() int {
	n := 0
	for _, i := range [4]int{l.Red, l.Green, l.Blue, l.Alpha} {
		if i+1 > n {
			n = i + 1
		}
	}
	return n
}

// layouts is read-only after package initialization.
var layouts = map[Format]Layout{
	Alpha:          {-1, -1, -1, 0},
	BGR:            {2, 1, 0, -1},
	BGRA:           {2, 1, 0, 3},
	Luminance:      {0, 0, 0, -1},
	LuminanceAlpha: {0, 0, 0, 1},
	Red:            {0, -1, -1, -1},
	RG:             {0, 1, -1, -1},
	RGB:            {0, 1, 2, -1},
	RGBA:           {0, 1, 2, 3},
}

// LayoutOf returns the channel layout of f.
func LayoutOf(f Format) (Layout, error) {
	l, ok := layouts[f]
	if !ok {
		return Layout{}, fmt.Errorf("pixel: layout %s: %w", f, ErrUnsupportedFormat)
	}
	return l, nil
}

var formatNames = map[Format]string{
	Red:            "RED",
	Alpha:          "ALPHA",
	RGB:            "RGB",
	RGBA:           "RGBA",
	Luminance:      "LUMINANCE",
	LuminanceAlpha: "LUMINANCE_ALPHA",
	BGR:            "BGR",
	BGRA:           "BGRA",
	RG:             "RG",
}

var typeNames = map[Type]string{
	UnsignedByte:         "UNSIGNED_BYTE",
	Float:                "FLOAT",
	Double:               "DOUBLE",
	UnsignedShort4444:    "UNSIGNED_SHORT_4_4_4_4",
	UnsignedShort5551:    "UNSIGNED_SHORT_5_5_5_1",
	UnsignedInt8888:      "UNSIGNED_INT_8_8_8_8",
	UnsignedShort565:     "UNSIGNED_SHORT_5_6_5",
	UnsignedShort1555Rev: "UNSIGNED_SHORT_1_5_5_5_REV",
	UnsignedInt8888Rev:   "UNSIGNED_INT_8_8_8_8_REV",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(0x%04X)", uint32(f))
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(0x%04X)", uint32(t))
}

// ParseFormat looks up a format by name, case-insensitively. A "GL_"
// prefix is accepted.
func ParseFormat(s string) (Format, error) {
	name := strings.TrimPrefix(strings.ToUpper(s), "GL_")
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("pixel: parse format %q: %w", s, ErrUnsupportedFormat)
}

// ParseType looks up a type by name, case-insensitively. A "GL_" prefix
// is accepted.
func ParseType(s string) (Type, error) {
	name := strings.TrimPrefix(strings.ToUpper(s), "GL_")
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("pixel: parse type %q: %w", s, ErrUnsupportedType)
}

// Encoding is a format/type pair. Together they fix the byte size of a
// pixel and how its channels are packed.
type Encoding struct {
	Format Format
	Type   Type
}

// RGBA8 is the framebuffer's native encoding.
var RGBA8 = Encoding{Format: RGBA, Type: UnsignedByte}

// RGB8 is the encoding of PPM payloads.
var RGB8 = Encoding{Format: RGB, Type: UnsignedByte}

func (e Encoding) String() string {
	return e.Format.String() + "/" + e.Type.String()
}

// Size returns the number of bytes per pixel, or 0 when the pair is not
// supported.
func (e Encoding) Size() int {
	l, ok := layouts[e.Format]
	if !ok {
		return 0
	}
	c, ok := codecs[e.Type]
	if !ok {
		return 0
	}
	return c.size(l)
}
