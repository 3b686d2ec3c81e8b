package raster

import (
	"math"

	"softgpu/internal/mathutil"
)

// Triangle is three screen-space positions. Only x and y take part in
// rasterization.
type Triangle [3]mathutil.Vec3

// Mode selects how DrawTriangle renders a triangle that survives culling.
type Mode int

const (
	Solid Mode = iota
	Wireframe
)

func (m Mode) String() string {
	if m == Wireframe {
		return "wireframe"
	}
	return "solid"
}

// IsBackward reports whether t faces away from the viewer: twice its
// signed area, (v2-v1)×(v3-v1), is zero or negative. Degenerate triangles
// are therefore always backward.
func IsBackward(t Triangle) bool {
	// The z component of the cross product ignores the z coordinates.
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))[2] <= 0
}

// DrawTriangle culls t and then outlines or fills it in white. It reports
// whether anything was drawn. Triangles with a non-finite x or y are
// dropped.
func DrawTriangle(fb *FrameBuffer, t Triangle, mode Mode) bool {
	for _, v := range t {
		if !finite(v.XY()) {
			return false
		}
	}
	if IsBackward(t) {
		return false
	}
	if mode == Wireframe {
		for i := range t {
			DrawLine(fb, t[i], t[(i+1)%3], White)
		}
		return true
	}
	fillTriangle(fb, t)
	return true
}

// DrawVertices draws every consecutive triple of verts as a triangle. A
// trailing partial triple is ignored. It returns how many triangles were
// not culled.
func DrawVertices(fb *FrameBuffer, verts []mathutil.Vec3, mode Mode) int {
	drawn := 0
	for i := 0; i+3 <= len(verts); i += 3 {
		if DrawTriangle(fb, Triangle{verts[i], verts[i+1], verts[i+2]}, mode) {
			drawn++
		}
	}
	return drawn
}

// fillTriangle splits t at its middle vertex and fills the upper and
// lower halves as independent trapezoids.
func fillTriangle(fb *FrameBuffer, t Triangle) {
	// Sort ascending by y.
	bot, mid, top := t[0], t[1], t[2]
	if mid[1] < bot[1] {
		bot, mid = mid, bot
	}
	if top[1] < bot[1] {
		bot, mid, top = top, bot, mid
	} else if top[1] < mid[1] {
		mid, top = top, mid
	}

	// Point on the long edge bot→top level with mid.
	rmid := top
	if top[1] != mid[1] {
		x := (mid[1]-bot[1])*(top[0]-bot[0])/(top[1]-bot[1]) + bot[0]
		rmid = mathutil.Vec3{x, mid[1], 0}
	}
	lmid := mid
	if rmid[0] < lmid[0] {
		lmid, rmid = rmid, lmid
	}

	fillTrapezoid(fb, lmid, rmid, top, top)
	fillTrapezoid(fb, bot, bot, lmid, rmid)
}

// fillTrapezoid fills the scanlines from l0/r0 up to the height of l1.
// The left and right boundaries move by (end.x-start.x)/(dy+1) per
// scanline. The +1 keeps horizontal spans from dividing by zero and gives
// the fill its established shape; it is not an exact edge function.
func fillTrapezoid(fb *FrameBuffer, l0, r0, l1, r1 mathutil.Vec3) {
	div := l1[1] - l0[1] + 1
	if div == 0 {
		return
	}
	ldx := (l1[0] - l0[0]) / div
	rdx := (r1[0] - r0[0]) / div

	first := math.Floor(l0[1])
	y := math.Max(first, 0)
	end := math.Min(l1[1], float64(fb.Height))
	maxX := float64(fb.Width - 1)
	for ; y < end; y++ {
		k := y - first
		lx := math.Max(math.Ceil(l0[0]+ldx*k), 0)
		rx := math.Min(math.Floor(r0[0]+rdx*k), maxX)
		if lx > rx {
			continue
		}
		fb.span(int(y), int(lx), int(rx), White)
	}
}
