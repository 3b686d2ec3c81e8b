package mathutil

import "math"

// Mat3 is a row-major 3×3 matrix, used for model rotations.
type Mat3 [9]float64

func Mat3Identity() Mat3 { return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1} }

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for i := range m {
		r, c := i/3*3, i%3
		m[i] = a[r]*b[c] + a[r+1]*b[3+c] + a[r+2]*b[6+c]
	}
	return m
}

// MulVec3 returns m × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	var out Vec3
	for r := range out {
		out[r] = m[r*3]*v[0] + m[r*3+1]*v[1] + m[r*3+2]*v[2]
	}
	return out
}

// RotAxis returns a rotation of a radians around axis (Rodrigues'
// formula). A zero axis yields the identity.
func RotAxis(a float64, axis Vec3) Mat3 {
	n := axis.Normalize()
	if n == (Vec3{}) {
		return Mat3Identity()
	}
	c, s := math.Cos(a), math.Sin(a)
	t := 1 - c
	x, y, z := n[0], n[1], n[2]
	return Mat3{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 { return d * math.Pi / 180 }
