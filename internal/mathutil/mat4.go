package mathutil

import "math"

// Mat4 is a 4×4 matrix stored row-major. Used for the model, projection
// and viewport transforms that feed screen-space positions to the
// rasterizer.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// MulPoint transforms a 3D point (w=1) by the 4×4 matrix and divides by
// the resulting w. Points on the w=0 plane are returned undivided.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	p := Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
	w := m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]
	if w == 0 || w == 1 {
		return p
	}
	return p.Scale(1 / w)
}

// FromMat3Translation builds a 4×4 affine matrix from a 3×3 rotation and translation.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	return Mat4{
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
		0, 0, 0, 1,
	}
}

// Translation returns a matrix moving points by t.
func Translation(t Vec3) Mat4 {
	return FromMat3Translation(Mat3Identity(), t)
}

// Scaling returns a matrix scaling each axis independently.
func Scaling(s Vec3) Mat4 {
	return Mat4{
		s[0], 0, 0, 0,
		0, s[1], 0, 0,
		0, 0, s[2], 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a right-handed projection with a vertical field of
// view of fovy degrees, mapping the view frustum onto the [-1, 1] cube.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(Deg2Rad(fovy)/2)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), 2 * far * near / (near - far),
		0, 0, -1, 0,
	}
}

// Viewport maps normalized device coordinates onto a w×h pixel grid with
// y pointing down.
func Viewport(w, h int) Mat4 {
	hw := (float64(w) - 0.5) / 2
	hh := (float64(h) - 0.5) / 2
	return Mat4Mul(Translation(Vec3{hw, hh, 0}), Scaling(Vec3{hw, -hh, 1}))
}
