package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Framebuffer receives the final pixel colors of a render. Pixel (0, 0) is
// the lower-left corner, matching the camera's (u, v) convention.
type Framebuffer interface {
	Width() int
	Height() int
	SetPixel(x, y int, color core.Vec3)
}

// Texture is an in-memory RGB framebuffer stored row by row
type Texture struct {
	width  int
	height int
	pixels []core.Vec3
}

// NewTexture creates a black texture of the given size
func NewTexture(width, height int) *Texture {
	return &Texture{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// SetPixel implements Framebuffer. Out-of-range coordinates are ignored.
func (t *Texture) SetPixel(x, y int, color core.Vec3) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	t.pixels[y*t.width+x] = color
}

// Pixel returns the color at (x, y), black when out of range
func (t *Texture) Pixel(x, y int) core.Vec3 {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return core.Vec3{}
	}
	return t.pixels[y*t.width+x]
}

// ToImage converts the texture to an 8-bit image with row 0 at the top
func (t *Texture) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			img.SetRGBA(x, t.height-1-y, vec3ToColor(t.Pixel(x, y)))
		}
	}
	return img
}

// vec3ToColor converts a color in [0,1] to RGBA, clamping out-of-range values
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.ZeroNaN().Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}
