package main

import (
	"math"

	"softgpu/internal/mathutil"
)

// cubeFaces lists each face as its outward normal and two tangents with
// u×v = n.
var cubeFaces = [6][3]mathutil.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

// cube returns the 12 triangles of an axis-aligned cube with half-size s
// centered on the origin. Triangles wind clockwise seen from outside, so
// after the viewport's y flip the faces toward the camera come out
// forward.
func cube(s float64) []mathutil.Vec3 {
	verts := make([]mathutil.Vec3, 0, 36)
	for _, f := range cubeFaces {
		n, u, v := f[0].Scale(s), f[1].Scale(s), f[2].Scale(s)
		a := n.Sub(u).Sub(v)
		b := n.Add(u).Sub(v)
		c := n.Add(u).Add(v)
		d := n.Sub(u).Add(v)
		verts = append(verts, a, c, b, a, d, c)
	}
	return verts
}

// scene holds the fixed camera for the demo.
type scene struct {
	width, height int
	distance      float64
	axis          mathutil.Vec3
}

// project rotates verts by angle around the scene axis, pushes them in
// front of the camera and maps them to pixel coordinates.
func (s scene) project(verts []mathutil.Vec3, angle float64) []mathutil.Vec3 {
	model := mathutil.FromMat3Translation(mathutil.RotAxis(angle, s.axis), mathutil.Vec3{0, 0, -s.distance})
	proj := mathutil.Perspective(60, float64(s.width)/float64(s.height), 0.1, 100)
	m := mathutil.Mat4Mul(mathutil.Viewport(s.width, s.height), mathutil.Mat4Mul(proj, model))

	out := make([]mathutil.Vec3, len(verts))
	for i, v := range verts {
		out[i] = m.MulPoint(v)
	}
	return out
}

// frameAngle spreads n frames over one full turn, starting off-axis so
// the first frame shows three faces.
func frameAngle(i, n int) float64 {
	return mathutil.Deg2Rad(35) + 2*math.Pi*float64(i)/float64(max(n, 1))
}
