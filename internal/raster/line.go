package raster

import (
	"image/color"
	"math"

	"softgpu/internal/mathutil"
)

// DrawLine stamps the pixels approximating the segment a→b. Only x and y
// are used. Pixels outside the framebuffer are skipped.
//
// The sweep always runs along the axis with the larger extent, from the
// lower to the higher coordinate, so a→b and b→a cover the same pixels.
func DrawLine(fb *FrameBuffer, a, b mathutil.Vec3, c color.RGBA) {
	x1, y1 := a.XY()
	x2, y2 := b.XY()
	if !finite(x1, y1, x2, y2) {
		return
	}

	steep := math.Abs(y2-y1) > math.Abs(x2-x1)
	if steep {
		x1, y1 = y1, x1
		x2, y2 = y2, x2
	}
	if x1 > x2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
	}

	extent, minor := fb.Width, fb.Height
	if steep {
		extent, minor = fb.Height, fb.Width
	}
	if x1 >= float64(extent) || x2 < 0 {
		return
	}

	var slope float64
	if x2 != x1 {
		slope = (y2 - y1) / (x2 - x1)
	}

	// Clamp in float64 before converting: coordinates past the int range
	// do not convert to anything meaningful.
	start := int(math.Max(math.Floor(x1), 0))
	end := int(math.Min(math.Floor(x2), float64(extent-1)))
	for x := start; x <= end; x++ {
		y := math.Floor(slope*(float64(x)-x1) + y1)
		if y < 0 || y >= float64(minor) {
			continue
		}
		if steep {
			fb.Set(int(y), x, c)
		} else {
			fb.Set(x, int(y), c)
		}
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
