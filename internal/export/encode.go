package export

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"softgpu/internal/pixel"
)

// Kind is an output file format.
type Kind string

const (
	WebP Kind = "webp"
	BMP  Kind = "bmp"
	TIFF Kind = "tiff"
	PPM  Kind = "ppm"
)

// ParseKind accepts a kind name or file extension, with or without the dot.
func ParseKind(s string) (Kind, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "webp":
		return WebP, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "ppm":
		return PPM, nil
	}
	return "", fmt.Errorf("export: unknown output format %q", s)
}

// Encode writes img to w as kind.
func Encode(w io.Writer, img *image.NRGBA, kind Kind) error {
	var err error
	switch kind {
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case PPM:
		b := img.Bounds()
		err = WritePPM(w, packed(img), b.Dx(), b.Dy(), pixel.RGBA8)
	default:
		return fmt.Errorf("export: unknown output format %q", kind)
	}
	if err != nil {
		return fmt.Errorf("export: %s encode: %w", kind, err)
	}
	return nil
}

// Save writes img to path, choosing the format from the extension.
func Save(path string, img *image.NRGBA) error {
	kind, err := ParseKind(filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	if err := Encode(f, img, kind); err != nil {
		return err
	}
	return f.Close()
}

// packed returns the pixels of img as tightly packed rows, copying only
// when img is a sub-image or has padded rows.
func packed(img *image.NRGBA) []byte {
	b := img.Bounds()
	row := b.Dx() * 4
	if img.Stride == row && img.PixOffset(b.Min.X, b.Min.Y) == 0 {
		return img.Pix[:row*b.Dy()]
	}
	pix := make([]byte, 0, row*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		pix = append(pix, img.Pix[i:i+row]...)
	}
	return pix
}
