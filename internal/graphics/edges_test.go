package graphics

import "testing"

func TestDrawEdges(t *testing.T) {
	img := New(20, 20, 255)

	edges := NewMatrix(0, 4, nil)
	edges.AppendPoint(0, 0, 0)
	edges.AppendPoint(10, 0, 0)
	edges.AppendPoint(5, 2, 0)
	edges.AppendPoint(5, 12, 0)

	if err := img.DrawEdges(edges); err != nil {
		t.Fatalf("DrawEdges failed: %v", err)
	}

	for x := 0; x <= 10; x++ {
		if img.At(x, 0) != img.FG {
			t.Errorf("Expected first edge pixel at (%d, 0)", x)
		}
	}
	for y := 2; y <= 12; y++ {
		if img.At(5, y) != img.FG {
			t.Errorf("Expected second edge pixel at (5, %d)", y)
		}
	}
}

func TestDrawEdgesOddPointCount(t *testing.T) {
	img := New(10, 10, 255)

	edges := NewMatrix(0, 4, nil)
	edges.AppendPoint(0, 0, 0)
	edges.AppendPoint(5, 5, 0)
	edges.AppendPoint(9, 9, 0)

	if err := img.DrawEdges(edges); err == nil {
		t.Error("Expected error for odd point count")
	}
}

func TestDrawEdgesTransformed(t *testing.T) {
	img := New(40, 40, 255)

	edges := NewMatrix(0, 4, nil)
	edges.AppendPoint(0, 0, 0)
	edges.AppendPoint(10, 0, 0)

	moved := edges.Mul(Translation(20, 20, 0))
	if err := img.DrawEdges(moved); err != nil {
		t.Fatalf("DrawEdges failed: %v", err)
	}

	for x := 20; x <= 30; x++ {
		if img.At(x, 20) != img.FG {
			t.Errorf("Expected translated edge pixel at (%d, 20)", x)
		}
	}
}
