package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"softgpu/internal/pixel"
)

// WritePPM writes a binary PPM (P6) of a tightly packed width×height
// image. Pixels in any encoding other than RGB/UNSIGNED_BYTE are
// converted first.
func WritePPM(w io.Writer, pixels []byte, width, height int, e pixel.Encoding) error {
	rgb := pixels
	if e != pixel.RGB8 {
		var err error
		rgb, err = pixel.ConvertImage(pixels, width, height, e, pixel.RGB8)
		if err != nil {
			return fmt.Errorf("export: ppm: %w", err)
		}
	}
	n := width * height * 3
	if width <= 0 || height <= 0 || len(rgb) < n {
		return fmt.Errorf("export: ppm %dx%d: %w", width, height, pixel.ErrShortBuffer)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P6 %d %d 255\n", width, height)
	bw.Write(rgb[:n])
	return bw.Flush()
}

// ExportPPM writes pixels to dir/tex.<id>.ppm and returns the path.
func ExportPPM(dir string, pixels []byte, width, height int, e pixel.Encoding, id int) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("tex.%d.ppm", id))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	if err := WritePPM(f, pixels, width, height, e); err != nil {
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: close %s: %w", path, err)
	}
	return path, nil
}
