package pixel

import (
	"fmt"
	"math"
)

// MaxImageBytes caps the size of buffers allocated by ConvertImage and
// Scale. Larger requests fail with ErrAllocation.
var MaxImageBytes = 1 << 30

// Row is a strided view over a pixel buffer. Pixel i starts at byte
// i*Stride of Pix.
type Row struct {
	Pix      []byte
	Stride   int
	Encoding Encoding
}

// at returns the bytes of pixel i, or nil when they fall outside Pix.
func (r Row) at(i, size int) []byte {
	off := i * r.Stride
	if i < 0 || off < 0 || (r.Stride != 0 && off/r.Stride != i) || off > len(r.Pix)-size {
		return nil
	}
	return r.Pix[off : off+size : off+size]
}

// ConvertRow converts count pixels from src into dst. Each view advances
// by its own stride, so padded or sub-sampled rows can be converted
// directly.
//
// Conversion stops at the first pixel that cannot be converted. Pixels
// before it have already been written, so the contents of dst are
// undefined after an error.
func ConvertRow(dst, src Row, count int) error {
	sl, sc, err := lookup(src.Encoding)
	if err != nil {
		return err
	}
	dl, dc, err := lookup(dst.Encoding)
	if err != nil {
		return err
	}
	ssize, dsize := sc.size(sl), dc.size(dl)

	for i := 0; i < count; i++ {
		s := src.at(i, ssize)
		d := dst.at(i, dsize)
		if s == nil || d == nil {
			return fmt.Errorf("pixel: convert row pixel %d of %d: %w", i, count, ErrShortBuffer)
		}
		dc.encode(d, sc.decode(s, sl), dl)
	}
	return nil
}

// imageBytes returns width*height*size, or an error if it overflows or
// exceeds MaxImageBytes.
func imageBytes(width, height, size int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("pixel: image %dx%d: %w", width, height, ErrAllocation)
	}
	n := uint64(width) * uint64(height)
	if height != 0 && n/uint64(height) != uint64(width) {
		return 0, fmt.Errorf("pixel: image %dx%d: %w", width, height, ErrAllocation)
	}
	total := n * uint64(size)
	if size != 0 && total/uint64(size) != n || total > uint64(MaxImageBytes) {
		return 0, fmt.Errorf("pixel: image %dx%d (%d bytes/pixel): %w", width, height, size, ErrAllocation)
	}
	return int(total), nil
}

// ConvertImage converts a tightly packed width×height image from one
// encoding into a newly allocated buffer in another. Identical encodings
// are copied byte for byte.
func ConvertImage(src []byte, width, height int, from, to Encoding) ([]byte, error) {
	sl, sc, err := lookup(from)
	if err != nil {
		return nil, err
	}
	dl, dc, err := lookup(to)
	if err != nil {
		return nil, err
	}
	ssize, dsize := sc.size(sl), dc.size(dl)

	need, err := imageBytes(width, height, ssize)
	if err != nil {
		return nil, err
	}
	if len(src) < need {
		return nil, fmt.Errorf("pixel: convert image %dx%d %s: %w", width, height, from, ErrShortBuffer)
	}
	n, err := imageBytes(width, height, dsize)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("pixel: convert image %dx%d: %w", width, height, ErrAllocation)
	}

	dst := make([]byte, n)
	if from == to {
		copy(dst, src[:n])
		return dst, nil
	}
	err = ConvertRow(
		Row{Pix: dst, Stride: dsize, Encoding: to},
		Row{Pix: src, Stride: ssize, Encoding: from},
		width*height,
	)
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// Scale resizes a tightly packed image by ratio using nearest-neighbor
// sampling and returns the new buffer and its dimensions. Pixels are
// copied as raw bytes; no conversion takes place.
func Scale(src []byte, width, height int, ratio float64, e Encoding) ([]byte, int, int, error) {
	l, c, err := lookup(e)
	if err != nil {
		return nil, 0, 0, err
	}
	size := c.size(l)
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return nil, 0, 0, fmt.Errorf("pixel: scale by %v: %w", ratio, ErrInvalidScale)
	}
	need, err := imageBytes(width, height, size)
	if err != nil {
		return nil, 0, 0, err
	}
	if len(src) < need {
		return nil, 0, 0, fmt.Errorf("pixel: scale %dx%d %s: %w", width, height, e, ErrShortBuffer)
	}

	nw := int(math.Floor(float64(width) * ratio))
	nh := int(math.Floor(float64(height) * ratio))
	if nw <= 0 || nh <= 0 {
		return nil, 0, 0, fmt.Errorf("pixel: scale %dx%d by %v: %w", width, height, ratio, ErrInvalidScale)
	}
	n, err := imageBytes(nw, nh, size)
	if err != nil {
		return nil, 0, 0, err
	}

	dst := make([]byte, n)
	pos := 0
	for y := 0; y < nh; y++ {
		sy := min(int(float64(y)/ratio), height-1)
		for x := 0; x < nw; x++ {
			sx := min(int(float64(x)/ratio), width-1)
			off := (sy*width + sx) * size
			copy(dst[pos:pos+size], src[off:off+size])
			pos += size
		}
	}
	return dst, nw, nh, nil
}
