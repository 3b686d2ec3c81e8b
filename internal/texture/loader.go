package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"softgpu/internal/pixel"
)

// Texture is a decoded image as tightly packed RGBA/UNSIGNED_BYTE pixels.
type Texture struct {
	Pix    []byte
	Width  int
	Height int
}

// Encoding is the layout of Texture.Pix.
func (t *Texture) Encoding() pixel.Encoding { return pixel.RGBA8 }

type decodeFunc func(io.Reader) (image.Image, error)

// Decoders are picked by extension rather than through image.Decode:
// TGA has no magic number to sniff.
var decoders = map[string]decodeFunc{
	".tga":  tga.Decode,
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
}

// Supported reports whether path has an extension Load can decode.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load reads and decodes the texture at path.
func Load(path string) (*Texture, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("texture: unknown extension: %q", ext)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return fromImage(img), nil
}

// fromImage flattens src into a zero-origin, tightly packed RGBA8 buffer.
func fromImage(src image.Image) *Texture {
	b := src.Bounds()
	tex := &Texture{
		Pix:    make([]byte, b.Dx()*b.Dy()*4),
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	stride := tex.Width * 4

	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < tex.Height; y++ {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(tex.Pix[y*stride:(y+1)*stride], n.Pix[i:i+stride])
		}
		return tex
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			tex.Pix[i], tex.Pix[i+1], tex.Pix[i+2], tex.Pix[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
	return tex
}
