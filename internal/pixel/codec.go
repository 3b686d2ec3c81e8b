package pixel

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Normalized is the intermediate RGBA form every conversion passes
// through. Channels are in [0, 1].
type Normalized struct {
	R, G, B, A float64
}

// field locates one component inside a packed word.
type field struct {
	shift uint
	bits  uint
}

func (f field) mask() uint32 { return 1<<f.bits - 1 }

// codec reads and writes the components of one numeric type. Scalar
// types store one value per component; packed types store all
// components in a single little-endian word described by fields.
type codec struct {
	scalar int     // bytes per component, 0 for packed types
	word   int     // bytes per packed word
	fields []field // component slots of a packed word, in component order

	get func(src []byte, i int) float64
	put func(dst []byte, i int, v float64)
}

// size returns the bytes per pixel for layout l, or 0 when l needs more
// component slots than a packed word provides.
func (c codec) size(l Layout) int {
	n := l.components()
	if c.scalar > 0 {
		return c.scalar * n
	}
	if n > len(c.fields) {
		return 0
	}
	return c.word
}

// codecs is the static dispatch table, one handler per numeric type.
var codecs = map[Type]codec{
	UnsignedByte: byteCodec,
	UnsignedInt8888Rev: {
		word:   4,
		fields: []field{{0, 8}, {8, 8}, {16, 8}, {24, 8}},
	},
	UnsignedInt8888: {
		word:   4,
		fields: []field{{24, 8}, {16, 8}, {8, 8}, {0, 8}},
	},
	Float: {
		scalar: 4,
		get: func(src []byte, i int) float64 {
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:])))
		},
		put: func(dst []byte, i int, v float64) {
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(float32(v)))
		},
	},
	Double: {
		scalar: 8,
		get: func(src []byte, i int) float64 {
			return math.Float64frombits(binary.LittleEndian.Uint64(src[i*8:]))
		},
		put: func(dst []byte, i int, v float64) {
			binary.LittleEndian.PutUint64(dst[i*8:], math.Float64bits(v))
		},
	},
	UnsignedShort4444: {
		word:   2,
		fields: []field{{12, 4}, {8, 4}, {4, 4}, {0, 4}},
	},
	UnsignedShort5551: {
		word:   2,
		fields: []field{{11, 5}, {6, 5}, {1, 5}, {0, 1}},
	},
	UnsignedShort1555Rev: {
		word:   2,
		fields: []field{{0, 5}, {5, 5}, {10, 5}, {15, 1}},
	},
	UnsignedShort565: {
		word:   2,
		fields: []field{{11, 5}, {5, 6}, {0, 5}},
	},
}

var byteCodec = codec{
	scalar: 1,
	get: func(src []byte, i int) float64 {
		return float64(src[i]) / 255
	},
	put: func(dst []byte, i int, v float64) {
		dst[i] = uint8(quantize(v, 255))
	},
}

// quantize maps v in [0, 1] onto 0..max, rounding to nearest.
func quantize(v float64, max uint32) uint32 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return max
	}
	return uint32(math.Round(v * float64(max)))
}

func (c codec) readWord(src []byte) uint32 {
	if c.word == 2 {
		return uint32(binary.LittleEndian.Uint16(src))
	}
	return binary.LittleEndian.Uint32(src)
}

func (c codec) writeWord(dst []byte, w uint32) {
	if c.word == 2 {
		binary.LittleEndian.PutUint16(dst, uint16(w))
		return
	}
	binary.LittleEndian.PutUint32(dst, w)
}

// lookup resolves the layout and codec for e and checks that they fit
// together.
func lookup(e Encoding) (Layout, codec, error) {
	l, ok := layouts[e.Format]
	if !ok {
		return Layout{}, codec{}, fmt.Errorf("pixel: %s: %w", e, ErrUnsupportedFormat)
	}
	c, ok := codecs[e.Type]
	if !ok || c.size(l) == 0 {
		return Layout{}, codec{}, fmt.Errorf("pixel: %s: %w", e, ErrUnsupportedType)
	}
	return l, c, nil
}

// Decode reads one pixel encoded as e from the start of src. Channels the
// format does not carry read as 0, except alpha which reads as 1.
func Decode(src []byte, e Encoding) (Normalized, error) {
	l, c, err := lookup(e)
	if err != nil {
		return Normalized{}, err
	}
	if len(src) < c.size(l) {
		return Normalized{}, fmt.Errorf("pixel: decode %s: %w", e, ErrShortBuffer)
	}
	return c.decode(src, l), nil
}

// Encode writes p as one pixel encoded as e at the start of dst. Only
// channels present in the format are written; everything else in dst,
// including the bits of absent channels in a packed word, is preserved.
func Encode(dst []byte, p Normalized, e Encoding) error {
	l, c, err := lookup(e)
	if err != nil {
		return err
	}
	if len(dst) < c.size(l) {
		return fmt.Errorf("pixel: encode %s: %w", e, ErrShortBuffer)
	}
	c.encode(dst, p, l)
	return nil
}

func (c codec) decode(src []byte, l Layout) Normalized {
	get := c.get
	if c.scalar == 0 {
		w := c.readWord(src)
		get = func(_ []byte, i int) float64 {
			f := c.fields[i]
			return float64(w>>f.shift&f.mask()) / float64(f.mask())
		}
	}
	read := func(i int, def float64) float64 {
		if i < 0 {
			return def
		}
		return get(src, i)
	}
	return Normalized{
		R: read(l.Red, 0),
		G: read(l.Green, 0),
		B: read(l.Blue, 0),
		A: read(l.Alpha, 1),
	}
}

func (c codec) encode(dst []byte, p Normalized, l Layout) {
	channels := [4]struct {
		i int
		v float64
	}{{l.Red, p.R}, {l.Green, p.G}, {l.Blue, p.B}, {l.Alpha, p.A}}

	if c.scalar > 0 {
		for _, ch := range channels {
			if ch.i >= 0 {
				c.put(dst, ch.i, ch.v)
			}
		}
		return
	}

	w := c.readWord(dst)
	for _, ch := range channels {
		if ch.i < 0 {
			continue
		}
		f := c.fields[ch.i]
		w &^= f.mask() << f.shift
		w |= quantize(ch.v, f.mask()) << f.shift
	}
	c.writeWord(dst, w)
}
