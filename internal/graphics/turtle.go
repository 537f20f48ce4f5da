package graphics

// Turtle is a pen-based drawing cursor over a canvas. The heading is in
// degrees, counter-clockwise from the x axis; the pen starts lifted.
type Turtle struct {
	x       float64
	y       float64
	Heading float64
	PenDown bool

	img *Image
}

// NewTurtle creates a turtle at (x, y) on the canvas.
func (im *Image) NewTurtle(x, y float64) *Turtle {
	return &Turtle{x: x, y: y, img: im}
}

// Forward moves the turtle along its heading, drawing when the pen is down.
func (t *Turtle) Forward(steps float64) {
	dx, dy := polarToXY(steps, t.Heading)
	x1, y1 := t.x+dx, t.y+dy
	if t.PenDown {
		t.img.DrawLine(t.x, t.y, x1, y1)
	}
	t.x, t.y = x1, y1
}

// Turn rotates the heading by the given angle, normalized modulo 360.
func (t *Turtle) Turn(angleDeg float64) {
	t.Heading = mod360(t.Heading + angleDeg)
}

// MoveTo places the turtle at (x, y), drawing when the pen is down.
func (t *Turtle) MoveTo(x, y float64) {
	if t.PenDown {
		t.img.DrawLine(t.x, t.y, x, y)
	}
	t.x, t.y = x, y
}

// Position returns the current turtle coordinates.
func (t *Turtle) Position() (float64, float64) {
	return t.x, t.y
}

// SetColor changes the pen (canvas foreground) color.
func (t *Turtle) SetColor(c RGB) {
	t.img.FG = c
}

// Color returns the pen color.
func (t *Turtle) Color() RGB {
	return t.img.FG
}

func mod360(deg float64) float64 {
	m := deg
	for m >= 360 {
		m -= 360
	}
	for m < 0 {
		m += 360
	}
	return m
}
