package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDownsample(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{200, 100, 50, 255})
		}
	}

	out := Downsample(img, 4, 4)
	require.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := out.NRGBAAt(x, y)
			require.InDelta(t, 200, int(c.R), 1)
			require.InDelta(t, 100, int(c.G), 1)
			require.InDelta(t, 50, int(c.B), 1)
			require.Equal(t, uint8(255), c.A)
		}
	}
}

func TestDownsampleTransparentEdge(t *testing.T) {
	// A white half on a transparent background keeps its color at the edge.
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	out := Downsample(img, 4, 4)
	c := out.NRGBAAt(1, 2)
	require.Greater(t, c.A, uint8(8))
	require.GreaterOrEqual(t, c.R, uint8(250))
}

func TestDownsampleSmall(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	require.Same(t, img, Downsample(img, 4, 4))
}
