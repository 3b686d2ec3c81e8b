package raster

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"softgpu/internal/mathutil"
	"softgpu/internal/pixel"

	"github.com/stretchr/testify/require"
)

var red = color.RGBA{0xFF, 0, 0, 0xFF}

// lit returns the set pixels of fb as points.
func lit(fb *FrameBuffer) map[[2]int]bool {
	set := make(map[[2]int]bool)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			p, _ := fb.PixelAt(x, y)
			if p[3] != 0 {
				set[[2]int{x, y}] = true
			}
		}
	}
	return set
}

func points(pts ...[2]int) map[[2]int]bool {
	set := make(map[[2]int]bool, len(pts))
	for _, p := range pts {
		set[p] = true
	}
	return set
}

func TestFrameBuffer(t *testing.T) {
	fb := NewFrameBuffer(3, 2)
	require.Len(t, fb.Pix, 3*2*4)

	fb.Clear(color.RGBA{1, 2, 3, 4})
	for i := 0; i < len(fb.Pix); i += 4 {
		require.Equal(t, []uint8{1, 2, 3, 4}, fb.Pix[i:i+4])
	}

	p, ok := fb.PixelAt(2, 1)
	require.True(t, ok)
	p[0] = 9
	require.Equal(t, uint8(9), fb.Pix[(1*3+2)*4])

	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}} {
		_, ok := fb.PixelAt(pt[0], pt[1])
		require.False(t, ok, "%v", pt)
		fb.Set(pt[0], pt[1], red)
	}

	img := fb.Image()
	require.Equal(t, fb.Pix, img.Pix)
	require.Equal(t, 3, img.Bounds().Dx())
}

func TestClearEmpty(t *testing.T) {
	fb := NewFrameBuffer(0, 0)
	fb.Clear(red)
	require.Empty(t, fb.Pix)
}

func TestBlit(t *testing.T) {
	fb := NewFrameBuffer(2, 1)
	fb.Set(0, 0, color.RGBA{1, 2, 3, 4})
	fb.Set(1, 0, color.RGBA{5, 6, 7, 8})

	dst := make([]byte, 8)
	require.NoError(t, fb.Blit(dst, pixel.Encoding{Format: pixel.BGRA, Type: pixel.UnsignedInt8888Rev}))
	require.Equal(t, []byte{3, 2, 1, 4, 7, 6, 5, 8}, dst)

	require.NoError(t, fb.Blit(dst, pixel.RGBA8))
	require.Equal(t, fb.Pix, dst)

	err := fb.Blit(make([]byte, 7), pixel.RGBA8)
	require.ErrorIs(t, err, pixel.ErrShortBuffer)

	err = fb.Blit(dst, pixel.Encoding{Format: pixel.RGBA, Type: pixel.UnsignedShort565})
	require.ErrorIs(t, err, pixel.ErrUnsupportedType)
}

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		a, b mathutil.Vec3
		want map[[2]int]bool
	}{
		{"horizontal", mathutil.Vec3{1, 2, 0}, mathutil.Vec3{4, 2, 0},
			points([2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2}, [2]int{4, 2})},
		{"vertical", mathutil.Vec3{3, 3, 0}, mathutil.Vec3{3, 0, 0},
			points([2]int{3, 0}, [2]int{3, 1}, [2]int{3, 2}, [2]int{3, 3})},
		{"diagonal", mathutil.Vec3{0, 0, 0}, mathutil.Vec3{3, 3, 0},
			points([2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3})},
		{"shallow", mathutil.Vec3{0, 0, 0}, mathutil.Vec3{4, 2, 0},
			points([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 1}, [2]int{3, 1}, [2]int{4, 2})},
		{"steep", mathutil.Vec3{0, 0, 0}, mathutil.Vec3{2, 4, 0},
			points([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 2}, [2]int{1, 3}, [2]int{2, 4})},
		{"point", mathutil.Vec3{5, 5, 0}, mathutil.Vec3{5, 5, 0},
			points([2]int{5, 5})},
		{"clipped", mathutil.Vec3{-3, -3, 0}, mathutil.Vec3{12, 12, 0},
			points([2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3}, [2]int{4, 4},
				[2]int{5, 5}, [2]int{6, 6}, [2]int{7, 7}, [2]int{8, 8}, [2]int{9, 9})},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fb := NewFrameBuffer(10, 10)
			DrawLine(fb, test.a, test.b, red)
			require.Equal(t, test.want, lit(fb))
		})
	}
}

func TestLineSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	coord := func() float64 { return rng.Float64()*40 - 10 }
	for i := 0; i < 500; i++ {
		a := mathutil.Vec3{coord(), coord(), 0}
		b := mathutil.Vec3{coord(), coord(), 0}
		if i%10 == 0 {
			// Integer endpoints hit the exact-tie cases.
			a = mathutil.Vec3{float64(rng.Intn(20)), float64(rng.Intn(20)), 0}
			b = mathutil.Vec3{float64(rng.Intn(20)), float64(rng.Intn(20)), 0}
		}

		ab := NewFrameBuffer(20, 20)
		ba := NewFrameBuffer(20, 20)
		DrawLine(ab, a, b, red)
		DrawLine(ba, b, a, red)
		require.Equal(t, ab.Pix, ba.Pix, "a=%v b=%v", a, b)
	}
}

func TestLineNonFinite(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	DrawLine(fb, mathutil.Vec3{0, 0, 0}, mathutil.Vec3{math.NaN(), 2, 0}, red)
	require.Empty(t, lit(fb))
}

func TestLineExtreme(t *testing.T) {
	row := func(y int) map[[2]int]bool {
		set := make(map[[2]int]bool)
		for x := 0; x < 10; x++ {
			set[[2]int{x, y}] = true
		}
		return set
	}
	col := func(x int) map[[2]int]bool {
		set := make(map[[2]int]bool)
		for y := 0; y < 10; y++ {
			set[[2]int{x, y}] = true
		}
		return set
	}

	tests := []struct {
		name string
		a, b mathutil.Vec3
		want map[[2]int]bool
	}{
		{"far end", mathutil.Vec3{0, 5, 0}, mathutil.Vec3{1e20, 5, 0}, row(5)},
		{"both ends", mathutil.Vec3{-1e20, 3, 0}, mathutil.Vec3{1e20, 3, 0}, row(3)},
		{"steep", mathutil.Vec3{4, 1e20, 0}, mathutil.Vec3{4, -1e20, 0}, col(4)},
		{"past the buffer", mathutil.Vec3{1e20, 1, 0}, mathutil.Vec3{2e20, 1, 0}, points()},
		{"before the buffer", mathutil.Vec3{-2e20, 1, 0}, mathutil.Vec3{-1e20, 1, 0}, points()},
		{"minor off buffer", mathutil.Vec3{0, 1e20, 0}, mathutil.Vec3{9e20, 1e20, 0}, points()},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fb := NewFrameBuffer(10, 10)
			DrawLine(fb, test.a, test.b, red)
			require.Equal(t, test.want, lit(fb))
		})
	}
}

func TestWireframeExtreme(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	require.True(t, DrawTriangle(fb, Triangle{{-1e20, 0, 0}, {1e20, 0, 0}, {5, 9, 0}}, Wireframe))
	got := lit(fb)
	for x := 0; x < 10; x++ {
		require.True(t, got[[2]int{x, 0}], "(%d,0)", x)
	}
}

func TestFillExtreme(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	require.True(t, DrawTriangle(fb, Triangle{{-1e20, -1e20, 0}, {1e20, -1e20, 0}, {0, 1e20, 0}}, Solid))
	require.Len(t, lit(fb), 64)
}

func TestNonFiniteTriangle(t *testing.T) {
	verts := []mathutil.Vec3{
		{0, 0, 0}, {4, 0, 0}, {math.NaN(), 4, 0},
		{0, 0, 0}, {math.Inf(1), 0, 0}, {2, 4, 0},
	}
	for _, mode := range []Mode{Solid, Wireframe} {
		fb := NewFrameBuffer(10, 10)
		require.Equal(t, 0, DrawVertices(fb, verts, mode), "%s", mode)
		require.Empty(t, lit(fb))
	}
}

func TestIsBackward(t *testing.T) {
	forward := Triangle{{0, 0, 0}, {4, 0, 0}, {2, 4, 0}}
	require.False(t, IsBackward(forward))
	require.True(t, IsBackward(Triangle{forward[0], forward[2], forward[1]}))

	// Zero area: collinear and coincident.
	require.True(t, IsBackward(Triangle{{0, 0, 0}, {1, 1, 0}, {2, 2, 0}}))
	require.True(t, IsBackward(Triangle{{3, 3, 0}, {3, 3, 0}, {3, 3, 0}}))
}

func TestCulledTrianglesDrawNothing(t *testing.T) {
	tris := []Triangle{
		{{0, 0, 0}, {2, 4, 0}, {4, 0, 0}},
		{{0, 0, 0}, {5, 5, 0}, {9, 9, 0}},
	}
	for _, tri := range tris {
		for _, mode := range []Mode{Solid, Wireframe} {
			fb := NewFrameBuffer(10, 10)
			require.False(t, DrawTriangle(fb, tri, mode))
			require.Empty(t, lit(fb), "%v %s", tri, mode)
		}
	}
}

func TestFillFlatBottom(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	require.True(t, DrawTriangle(fb, Triangle{{0, 0, 0}, {4, 0, 0}, {2, 4, 0}}, Solid))

	want := points(
		[2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0},
		[2]int{1, 1}, [2]int{2, 1}, [2]int{3, 1},
		[2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2},
		[2]int{2, 3},
	)
	require.Equal(t, want, lit(fb))

	p, _ := fb.PixelAt(2, 0)
	require.Equal(t, []uint8{0xFF, 0xFF, 0xFF, 0xFF}, p)
}

func TestFillVertexOrder(t *testing.T) {
	// Rotations of the same forward triangle fill identically.
	tri := Triangle{{1, 1, 0}, {8, 3, 0}, {3, 8, 0}}
	ref := NewFrameBuffer(10, 10)
	require.True(t, DrawTriangle(ref, tri, Solid))
	require.NotEmpty(t, lit(ref))

	for _, rot := range []Triangle{{tri[1], tri[2], tri[0]}, {tri[2], tri[0], tri[1]}} {
		fb := NewFrameBuffer(10, 10)
		require.True(t, DrawTriangle(fb, rot, Solid))
		require.Equal(t, ref.Pix, fb.Pix)
	}
}

func TestFillStaysInRange(t *testing.T) {
	fb := NewFrameBuffer(20, 20)
	require.True(t, DrawTriangle(fb, Triangle{{2, 3, 0}, {15, 9, 0}, {6, 14, 0}}, Solid))
	for p := range lit(fb) {
		require.GreaterOrEqual(t, p[1], 3)
		require.Less(t, p[1], 14)
		require.GreaterOrEqual(t, p[0], 2)
		require.LessOrEqual(t, p[0], 15)
	}
}

func TestFillClipped(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	require.True(t, DrawTriangle(fb, Triangle{{-20, -20, 0}, {40, -10, 0}, {4, 30, 0}}, Solid))
	// The triangle covers the whole buffer.
	require.Len(t, lit(fb), 64)
}

func TestWireframe(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	require.True(t, DrawTriangle(fb, Triangle{{0, 0, 0}, {4, 0, 0}, {2, 4, 0}}, Wireframe))
	got := lit(fb)
	for _, p := range [][2]int{{0, 0}, {4, 0}, {2, 4}, {0, 1}, {3, 1}} {
		require.True(t, got[p], "%v", p)
	}
	for _, p := range [][2]int{{2, 1}, {2, 2}} {
		require.False(t, got[p], "%v", p)
	}
}

func TestDrawVertices(t *testing.T) {
	verts := []mathutil.Vec3{
		{0, 0, 0}, {4, 0, 0}, {2, 4, 0}, // forward
		{0, 0, 0}, {2, 4, 0}, {4, 0, 0}, // backward
		{9, 9, 0}, // incomplete
	}
	fb := NewFrameBuffer(10, 10)
	require.Equal(t, 1, DrawVertices(fb, verts, Solid))
	require.Len(t, lit(fb), 12)
}
