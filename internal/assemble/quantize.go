package assemble

import (
	"image"
	"image/color"
	"image/color/palette"

	"github.com/han-yaeger/plotmill/internal/graphics"
)

// toPaletted converts a canvas into a paletted image suitable for GIF
// encoding. Channel values are rescaled to 8 bits. When the frame holds at
// most 256 distinct colors its exact palette is used; otherwise the frame is
// mapped through the Plan9 palette with Floyd-Steinberg error diffusion.
func toPaletted(img *graphics.Image) *image.Paletted {
	w, h := img.Width(), img.Height()
	depth := uint32(img.Depth())

	// flatten to 8-bit channels once
	flat := make([]color.RGBA, w*h)
	parallelFor(h, func(y int) {
		for x := 0; x < w; x++ {
			p := img.At(x, y)
			flat[y*w+x] = color.RGBA{
				R: uint8(uint32(p.R) * 255 / depth),
				G: uint8(uint32(p.G) * 255 / depth),
				B: uint8(uint32(p.B) * 255 / depth),
				A: 255,
			}
		}
	})

	if pal, index, ok := exactPalette(flat); ok {
		out := image.NewPaletted(image.Rect(0, 0, w, h), pal)
		parallelFor(h, func(y int) {
			for x := 0; x < w; x++ {
				out.SetColorIndex(x, y, index[flat[y*w+x]])
			}
		})
		return out
	}

	return ditherToPalette(flat, w, h, palette.Plan9)
}

// exactPalette collects the distinct colors of the frame. Returns ok=false
// once more than 256 are seen.
func exactPalette(flat []color.RGBA) (color.Palette, map[color.RGBA]uint8, bool) {
	index := make(map[color.RGBA]uint8)
	var pal color.Palette
	for _, c := range flat {
		if _, seen := index[c]; seen {
			continue
		}
		if len(pal) == 256 {
			return nil, nil, false
		}
		index[c] = uint8(len(pal))
		pal = append(pal, c)
	}
	return pal, index, true
}

// ditherToPalette maps the frame onto a fixed palette with integer
// Floyd-Steinberg error diffusion, non-serpentine. Error buffers are kept
// scaled by 16; kernel weights are right=7, down-left=3, down=5,
// down-right=1.
func ditherToPalette(flat []color.RGBA, w, h int, pal color.Palette) *image.Paletted {
	const fsScale = 16
	const wRight = 7
	const wDownLeft = 3
	const wDown = 5
	const wDownRight = 1

	out := image.NewPaletted(image.Rect(0, 0, w, h), pal)

	palR := make([]int, len(pal))
	palG := make([]int, len(pal))
	palB := make([]int, len(pal))
	for i, c := range pal {
		r, g, b, _ := c.RGBA()
		palR[i] = int(r >> 8)
		palG[i] = int(g >> 8)
		palB[i] = int(b >> 8)
	}

	errCurrR := make([]int, w)
	errCurrG := make([]int, w)
	errCurrB := make([]int, w)
	errNextR := make([]int, w)
	errNextG := make([]int, w)
	errNextB := make([]int, w)

	clamp8 := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}

	roundDiv16 := func(e int) int {
		if e >= 0 {
			return (e + fsScale/2) / fsScale
		}
		return (e - fsScale/2) / fsScale
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := flat[y*w+x]

			rAdj := clamp8(int(c.R) + roundDiv16(errCurrR[x]))
			gAdj := clamp8(int(c.G) + roundDiv16(errCurrG[x]))
			bAdj := clamp8(int(c.B) + roundDiv16(errCurrB[x]))

			// nearest palette color, Euclidean in sRGB
			bestIdx := 0
			bestDist := int(^uint(0) >> 1)
			for i := range palR {
				dr := rAdj - palR[i]
				dg := gAdj - palG[i]
				db := bAdj - palB[i]
				dist := dr*dr + dg*dg + db*db
				if dist < bestDist {
					bestDist = dist
					bestIdx = i
				}
			}

			out.SetColorIndex(x, y, uint8(bestIdx))

			er := rAdj - palR[bestIdx]
			eg := gAdj - palG[bestIdx]
			eb := bAdj - palB[bestIdx]

			if x+1 < w {
				errCurrR[x+1] += er * wRight
				errCurrG[x+1] += eg * wRight
				errCurrB[x+1] += eb * wRight
			}
			if y+1 < h {
				if x-1 >= 0 {
					errNextR[x-1] += er * wDownLeft
					errNextG[x-1] += eg * wDownLeft
					errNextB[x-1] += eb * wDownLeft
				}
				errNextR[x] += er * wDown
				errNextG[x] += eg * wDown
				errNextB[x] += eb * wDown
				if x+1 < w {
					errNextR[x+1] += er * wDownRight
					errNextG[x+1] += eg * wDownRight
					errNextB[x+1] += eb * wDownRight
				}
			}
		}

		errCurrR, errNextR = errNextR, errCurrR
		errCurrG, errNextG = errNextG, errCurrG
		errCurrB, errNextB = errNextB, errCurrB
		for i := 0; i < w; i++ {
			errNextR[i] = 0
			errNextG[i] = 0
			errNextB[i] = 0
		}
	}

	return out
}
