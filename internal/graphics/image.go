package graphics

import (
	"image"
)

// RGB is a single pixel. Channel values range from 0 to the depth of the
// image that holds them, so a depth-255 image stores 8-bit channels and a
// depth-65535 image stores 16-bit channels.
type RGB struct {
	R uint16
	G uint16
	B uint16
}

// Image is a raster canvas with a row-major pixel buffer. Plotting uses the
// current foreground color; Clear repaints with the background color.
type Image struct {
	width  int
	height int
	depth  uint16

	// XWrap and YWrap make out-of-range coordinates wrap around the
	// respective axis instead of being dropped.
	XWrap bool
	YWrap bool

	FG RGB
	BG RGB

	data []RGB
}

// New creates a canvas of the given size. The background is black and the
// foreground is white (all channels at full depth).
func New(width, height int, depth uint16) *Image {
	img := &Image{
		width:  width,
		height: height,
		depth:  depth,
		FG:     RGB{R: depth, G: depth, B: depth},
		BG:     RGB{},
		data:   make([]RGB, width*height),
	}
	return img
}

func (im *Image) Width() int    { return im.width }
func (im *Image) Height() int   { return im.height }
func (im *Image) Depth() uint16 { return im.depth }

func (im *Image) index(x, y int) int {
	return y*im.width + x
}

// wrap maps v into [0, max) with a true mathematical modulus, so negative
// coordinates wrap to the far edge.
func wrap(v, max int) int {
	r := v % max
	if r < 0 {
		r += max
	}
	return r
}

// Plot sets the pixel at (x, y) to the foreground color. Coordinates outside
// the canvas are dropped unless the matching wrap toggle is set.
func (im *Image) Plot(x, y int) {
	if !im.XWrap && (x < 0 || x >= im.width) {
		return
	}
	if !im.YWrap && (y < 0 || y >= im.height) {
		return
	}
	x = wrap(x, im.width)
	y = wrap(y, im.height)
	im.data[im.index(x, y)] = im.FG
}

// At returns the pixel at (x, y). Out-of-range coordinates return the
// background color.
func (im *Image) At(x, y int) RGB {
	if x < 0 || x >= im.width || y < 0 || y >= im.height {
		return im.BG
	}
	return im.data[im.index(x, y)]
}

// Clear repaints every pixel with the background color.
func (im *Image) Clear() {
	bg := im.BG
	for i := range im.data {
		im.data[i] = bg
	}
}

// RGBA returns an 8-bit copy of the canvas, rescaling channel values from
// the canvas depth.
func (im *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, im.width, im.height))
	depth := uint32(im.depth)
	for y := 0; y < im.height; y++ {
		for x := 0; x < im.width; x++ {
			p := im.data[im.index(x, y)]
			o := out.PixOffset(x, y)
			out.Pix[o+0] = uint8(uint32(p.R) * 255 / depth)
			out.Pix[o+1] = uint8(uint32(p.G) * 255 / depth)
			out.Pix[o+2] = uint8(uint32(p.B) * 255 / depth)
			out.Pix[o+3] = 255
		}
	}
	return out
}

// Fill paints src onto the canvas starting at the origin, rescaling 8-bit
// channel values to the canvas depth. Pixels beyond the smaller of the two
// bounds are left untouched.
func (im *Image) Fill(src image.Image) {
	bounds := src.Bounds()
	w := bounds.Dx()
	if w > im.width {
		w = im.width
	}
	h := bounds.Dy()
	if h > im.height {
		h = im.height
	}
	depth := uint32(im.depth)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			im.data[im.index(x, y)] = RGB{
				R: uint16(r * depth / 0xffff),
				G: uint16(g * depth / 0xffff),
				B: uint16(b * depth / 0xffff),
			}
		}
	}
}
