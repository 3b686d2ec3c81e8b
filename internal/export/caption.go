package export

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Caption draws text in the top-left corner of img with a fixed 7×13
// bitmap face.
func Caption(img *image.NRGBA, text string, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(img.Rect.Min.X+2, img.Rect.Min.Y+face.Ascent+2),
	}
	d.DrawString(text)
}
