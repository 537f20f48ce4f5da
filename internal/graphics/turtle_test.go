package graphics

import (
	"math"
	"testing"
)

func TestTurtleForwardPenUp(t *testing.T) {
	img := New(20, 20, 255)
	turtle := img.NewTurtle(5, 5)

	turtle.Forward(10)

	x, y := turtle.Position()
	if math.Abs(x-15) > 1e-9 || math.Abs(y-5) > 1e-9 {
		t.Errorf("Expected turtle at (15, 5), got (%v, %v)", x, y)
	}
	if got := countForeground(img); got != 0 {
		t.Errorf("Expected no drawing with pen up, got %d pixels", got)
	}
}

func TestTurtleForwardPenDown(t *testing.T) {
	img := New(20, 20, 255)
	turtle := img.NewTurtle(2, 10)
	turtle.PenDown = true

	turtle.Forward(10)

	for x := 2; x <= 12; x++ {
		if img.At(x, 10) != img.FG {
			t.Errorf("Expected pixel at (%d, 10)", x)
		}
	}
}

func TestTurtleTurnWraps(t *testing.T) {
	img := New(4, 4, 255)
	turtle := img.NewTurtle(0, 0)

	turtle.Turn(270)
	turtle.Turn(180)
	if turtle.Heading != 90 {
		t.Errorf("Expected heading 90, got %v", turtle.Heading)
	}

	turtle.Turn(-180)
	if turtle.Heading != 270 {
		t.Errorf("Expected heading 270 after negative turn, got %v", turtle.Heading)
	}
}

func TestTurtleMoveTo(t *testing.T) {
	img := New(20, 20, 255)
	turtle := img.NewTurtle(0, 0)

	turtle.MoveTo(10, 10)
	if got := countForeground(img); got != 0 {
		t.Errorf("Expected no drawing with pen up, got %d pixels", got)
	}

	turtle.PenDown = true
	turtle.MoveTo(10, 0)
	for y := 0; y <= 10; y++ {
		if img.At(10, y) != img.FG {
			t.Errorf("Expected pixel at (10, %d)", y)
		}
	}
}

func TestTurtleColor(t *testing.T) {
	img := New(4, 4, 255)
	turtle := img.NewTurtle(0, 0)

	red := RGB{R: 255}
	turtle.SetColor(red)
	if turtle.Color() != red {
		t.Errorf("Expected pen color %v, got %v", red, turtle.Color())
	}

	turtle.PenDown = true
	turtle.MoveTo(3, 0)
	if img.At(1, 0) != red {
		t.Errorf("Expected red pixel at (1, 0), got %v", img.At(1, 0))
	}
}
