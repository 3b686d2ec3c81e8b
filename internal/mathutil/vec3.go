package mathutil

import "math"

// Vec3 is a 3-component vector. After projection it doubles as a
// screen-space position: x and y in pixels, z carried along but unused
// by the rasterizer.
type Vec3 [3]float64

// XY returns the screen coordinates of a projected position.
func (v Vec3) XY() (x, y float64) { return v[0], v[1] }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }

// Cross returns v × o. For positions in the screen plane only the z
// component is non-zero: twice the signed area spanned by v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Normalize returns v scaled to unit length, or the zero vector when v
// is too short to have a direction.
func (v Vec3) Normalize() Vec3 {
	l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}
