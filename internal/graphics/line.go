package graphics

import "math"

// DrawLine draws a line from (x0, y0) to (x1, y1) with the foreground color.
// Endpoints are rounded to the nearest pixel. The accumulator is always
// updated with the full 2A or 2B increment; halving it distorts the line.
func (im *Image) DrawLine(x0f, y0f, x1f, y1f float64) {
	// Always walk left to right.
	if x0f > x1f {
		x0f, y0f, x1f, y1f = x1f, y1f, x0f, y0f
	}

	x0 := int(math.Round(x0f))
	y0 := int(math.Round(y0f))
	x1 := int(math.Round(x1f))
	y1 := int(math.Round(y1f))

	dy := y1 - y0
	ndx := -(x1 - x0)

	if ndx == 0 {
		// vertical line
		ys, ye := y0, y1
		if ys > ye {
			ys, ye = ye, ys
		}
		for y := ys; y <= ye; y++ {
			im.Plot(x0, y)
		}
		return
	}

	if dy == 0 {
		// horizontal line, x already runs in the right direction
		for x := x0; x <= x1; x++ {
			im.Plot(x, y0)
		}
		return
	}

	if abs(y1-y0) < abs(x1-x0) {
		// octants 1 and 8
		d := 2*dy + ndx
		yInc, ady := 1, dy
		if dy < 0 {
			// octant 8: dy is negative, flip it to balance against ndx
			yInc, ady = -1, -dy
		}

		y := y0
		for x := x0; x <= x1; x++ {
			im.Plot(x, y)
			if d > 0 {
				y += yInc
				d += 2 * ndx
			}
			d += 2 * ady
		}
	} else {
		// octants 2 and 7, walking y with x and y roles swapped
		d := 2*(-ndx) - dy

		xInc, x, yStart, yEnd, ady := 1, x0, y0, y1, dy
		if dy < 0 {
			// octant 7: reflect into octant 2 by starting from the far end
			xInc, x, yStart, yEnd, ady = -1, x0-ndx, y1, y0, -dy
		}

		for y := yStart; y <= yEnd; y++ {
			im.Plot(x, y)
			if d > 0 {
				x += xInc
				d -= 2 * ady
			}
			d -= 2 * ndx
		}
	}
}

// DrawLinePolar draws a line of the given magnitude from (x0, y0) at an angle
// in degrees, counter-clockwise from the x axis. Returns the far endpoint.
func (im *Image) DrawLinePolar(x0, y0, angleDeg, mag float64) (float64, float64) {
	dx, dy := polarToXY(mag, angleDeg)
	x1, y1 := x0+dx, y0+dy
	im.DrawLine(x0, y0, x1, y1)
	return x1, y1
}

func polarToXY(mag, angleDeg float64) (float64, float64) {
	rad := angleDeg * math.Pi / 180
	return math.Cos(rad) * mag, math.Sin(rad) * mag
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
