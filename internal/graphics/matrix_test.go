package graphics

import (
	"math"
	"testing"
)

func matricesEqual(t *testing.T, got, want *Matrix) bool {
	t.Helper()
	if got.Rows() != want.Rows() || got.Cols() != want.Cols() {
		return false
	}
	for r := 0; r < got.Rows(); r++ {
		for c := 0; c < got.Cols(); c++ {
			if got.Get(r, c) != want.Get(r, c) {
				return false
			}
		}
	}
	return true
}

func matricesClose(t *testing.T, got, want *Matrix, eps float64) bool {
	t.Helper()
	if got.Rows() != want.Rows() || got.Cols() != want.Cols() {
		return false
	}
	for r := 0; r < got.Rows(); r++ {
		for c := 0; c < got.Cols(); c++ {
			if math.Abs(got.Get(r, c)-want.Get(r, c)) > eps {
				return false
			}
		}
	}
	return true
}

func TestAppendPoint(t *testing.T) {
	m := NewMatrix(0, 4, nil)
	m.AppendPoint(1, 2, 4)
	m.AppendPoint(5, 6, 7)

	want := NewMatrix(2, 4, []float64{
		1, 2, 4, 1,
		5, 6, 7, 1,
	})
	if !matricesEqual(t, m, want) {
		t.Errorf("Expected %v after appending points, got %v", want, m)
	}
}

func TestMul(t *testing.T) {
	m1 := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
	m2 := NewMatrix(3, 2, []float64{7, 8, 9, 10, 11, 12})

	got := m1.Mul(m2)
	want := NewMatrix(2, 2, []float64{58, 64, 139, 154})
	if !matricesEqual(t, got, want) {
		t.Errorf("Expected product %v, got %v", want, got)
	}
}

func TestMulRowVector(t *testing.T) {
	a := NewMatrix(1, 3, []float64{3, 4, 2})
	b := NewMatrix(3, 4, []float64{
		13, 9, 7, 15,
		8, 7, 4, 6,
		6, 4, 0, 3,
	})

	got := a.Mul(b)
	want := NewMatrix(1, 4, []float64{83, 63, 37, 75})
	if !matricesEqual(t, got, want) {
		t.Errorf("Expected product %v, got %v", want, got)
	}
}

func TestMulDimensionMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when multiplying mismatched dimensions")
		}
	}()
	m1 := NewMatrix(2, 3, make([]float64, 6))
	m2 := NewMatrix(2, 2, make([]float64, 4))
	m1.Mul(m2)
}

func TestIdentity(t *testing.T) {
	want := NewMatrix(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	if got := Identity(3); !matricesEqual(t, got, want) {
		t.Errorf("Expected 3x3 identity %v, got %v", want, got)
	}

	if got := Identity(1); !matricesEqual(t, got, NewMatrix(1, 1, []float64{1})) {
		t.Errorf("Expected 1x1 identity, got %v", got)
	}
}

func TestIdentityLeavesPointsUnchanged(t *testing.T) {
	points := NewMatrix(0, 4, nil)
	points.AppendPoint(10, 20, 0)
	points.AppendPoint(-3, 7, 1)

	got := points.Mul(Identity(4))
	if !matricesEqual(t, got, points) {
		t.Errorf("Expected identity transform to leave %v unchanged, got %v", points, got)
	}
}

func TestTranslation(t *testing.T) {
	p := NewMatrix(1, 4, []float64{1, 2, 3, 1})
	got := p.Mul(Translation(10, -5, 2))
	want := NewMatrix(1, 4, []float64{11, -3, 5, 1})
	if !matricesEqual(t, got, want) {
		t.Errorf("Expected translated point %v, got %v", want, got)
	}
}

func TestScale(t *testing.T) {
	p := NewMatrix(1, 4, []float64{2, 3, 4, 1})
	got := p.Mul(Scale(2, 3, 0.5))
	want := NewMatrix(1, 4, []float64{4, 9, 2, 1})
	if !matricesEqual(t, got, want) {
		t.Errorf("Expected scaled point %v, got %v", want, got)
	}
}

func TestRotationZ(t *testing.T) {
	p := NewMatrix(1, 4, []float64{1, 0, 0, 1})

	got := p.Mul(RotationZ(90))
	want := NewMatrix(1, 4, []float64{0, 1, 0, 1})
	if !matricesClose(t, got, want, 1e-12) {
		t.Errorf("Expected 90 degree rotation to give %v, got %v", want, got)
	}

	got = p.Mul(RotationZ(360))
	if !matricesClose(t, got, p, 1e-12) {
		t.Errorf("Expected full rotation to give %v, got %v", p, got)
	}
}

func TestAppendRowLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when appending a row of the wrong length")
		}
	}()
	m := NewMatrix(0, 4, nil)
	m.AppendRow([]float64{1, 2, 3})
}

func TestNewMatrixSizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when data length does not match dimensions")
		}
	}()
	NewMatrix(2, 2, []float64{1, 2, 3})
}
