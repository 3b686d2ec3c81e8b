package raster

import (
	"fmt"
	"image"
	"image/color"

	"softgpu/internal/pixel"
)

// White is the fill color of solid and wireframe triangles.
var White = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}

// FrameBuffer holds the rendering target as a flat RGBA slice for cache
// locality. It has a single owner; nothing here is safe for concurrent
// writers.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates a zeroed w×h framebuffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*4),
	}
}

// Clear overwrites every pixel with c.
func (fb *FrameBuffer) Clear(c color.RGBA) {
	if len(fb.Pix) == 0 {
		return
	}
	fb.Pix[0], fb.Pix[1], fb.Pix[2], fb.Pix[3] = c.R, c.G, c.B, c.A
	for n := 4; n < len(fb.Pix); n *= 2 {
		copy(fb.Pix[n:], fb.Pix[:n])
	}
}

// PixelAt returns the 4 bytes of pixel (x, y) for in-place modification,
// or false if the point lies outside the buffer.
func (fb *FrameBuffer) PixelAt(x, y int) ([]uint8, bool) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return nil, false
	}
	i := (y*fb.Width + x) * 4
	return fb.Pix[i : i+4 : i+4], true
}

// Set stamps c at (x, y). Points outside the buffer are dropped.
func (fb *FrameBuffer) Set(x, y int, c color.RGBA) {
	p, ok := fb.PixelAt(x, y)
	if !ok {
		return
	}
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// span stamps c on row y from x0 to x1 inclusive, clamped to the buffer.
func (fb *FrameBuffer) span(y, x0, x1 int, c color.RGBA) {
	if y < 0 || y >= fb.Height {
		return
	}
	x0 = max(x0, 0)
	x1 = min(x1, fb.Width-1)
	row := y * fb.Width
	for x := x0; x <= x1; x++ {
		i := (row + x) * 4
		fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Image copies the frame into an NRGBA image for encoders.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Pix)
	return img
}

// Blit converts the frame into dst using encoding e, the hand-off point to
// a presentation layer that wants its own pixel layout.
func (fb *FrameBuffer) Blit(dst []byte, e pixel.Encoding) error {
	n := fb.Width * fb.Height
	if e == pixel.RGBA8 {
		if len(dst) < len(fb.Pix) {
			return fmt.Errorf("raster: blit %dx%d: %w", fb.Width, fb.Height, pixel.ErrShortBuffer)
		}
		copy(dst, fb.Pix)
		return nil
	}
	return pixel.ConvertRow(
		pixel.Row{Pix: dst, Stride: e.Size(), Encoding: e},
		pixel.Row{Pix: fb.Pix, Stride: 4, Encoding: pixel.RGBA8},
		n,
	)
}
