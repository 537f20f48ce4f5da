package graphics

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is a row-major rectangular float64 matrix. When used as an edge
// matrix each row is one homogeneous point (x, y, z, 1).
type Matrix struct {
	rows int
	cols int
	data []float64
}

// NewMatrix creates a matrix over the given backing data. Panics when the
// dimensions do not match the data length; that is a programmer error.
func NewMatrix(rows, cols int, data []float64) *Matrix {
	if rows*cols != len(data) {
		panic(fmt.Sprintf("matrix %dx%d needs %d values, got %d", rows, cols, rows*cols, len(data)))
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// Identity creates an n-by-n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n, make([]float64, n*n))
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) index(row, col int) int {
	return row*m.cols + col
}

// Get returns the value at (row, col).
func (m *Matrix) Get(row, col int) float64 {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("matrix index (%d, %d) out of bounds for %dx%d", row, col, m.rows, m.cols))
	}
	return m.data[m.index(row, col)]
}

// Set stores a value at (row, col).
func (m *Matrix) Set(row, col int, v float64) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("matrix index (%d, %d) out of bounds for %dx%d", row, col, m.rows, m.cols))
	}
	m.data[m.index(row, col)] = v
}

// Row returns a view of row r.
func (m *Matrix) Row(r int) []float64 {
	start := r * m.cols
	return m.data[start : start+m.cols]
}

// AppendRow appends a full row. The length must match the column count.
func (m *Matrix) AppendRow(row []float64) {
	if len(row) != m.cols {
		panic(fmt.Sprintf("row length %d does not match column count %d", len(row), m.cols))
	}
	m.data = append(m.data, row...)
	m.rows++
}

// AppendPoint appends (x, y, z) as a homogeneous point row (x, y, z, 1).
func (m *Matrix) AppendPoint(x, y, z float64) {
	if m.cols != 4 {
		panic(fmt.Sprintf("point rows need 4 columns, matrix has %d", m.cols))
	}
	m.data = append(m.data, x, y, z, 1)
	m.rows++
}

// Mul returns the matrix product m × other.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	if m.cols != other.rows {
		panic(fmt.Sprintf("cannot multiply %dx%d by %dx%d", m.rows, m.cols, other.rows, other.cols))
	}
	out := make([]float64, m.rows*other.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < other.cols; c++ {
			sum := 0.0
			for k := 0; k < m.cols; k++ {
				sum += m.data[m.index(r, k)] * other.data[other.index(k, c)]
			}
			out[r*other.cols+c] = sum
		}
	}
	return NewMatrix(m.rows, other.cols, out)
}

// Transform constructors use the row-vector convention: a point row p is
// transformed as p' = p × M, so translations live in the bottom row.

// Translation creates a 4x4 translation matrix.
func Translation(dx, dy, dz float64) *Matrix {
	m := Identity(4)
	m.Set(3, 0, dx)
	m.Set(3, 1, dy)
	m.Set(3, 2, dz)
	return m
}

// Scale creates a 4x4 scaling matrix.
func Scale(sx, sy, sz float64) *Matrix {
	m := Identity(4)
	m.Set(0, 0, sx)
	m.Set(1, 1, sy)
	m.Set(2, 2, sz)
	return m
}

// RotationZ creates a 4x4 rotation about the z axis, counter-clockwise by
// the given angle in degrees.
func RotationZ(angleDeg float64) *Matrix {
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	m := Identity(4)
	m.Set(0, 0, cos)
	m.Set(0, 1, sin)
	m.Set(1, 0, -sin)
	m.Set(1, 1, cos)
	return m
}

// String renders the matrix for debugging.
func (m *Matrix) String() string {
	if m.rows == 0 || m.cols == 0 {
		return fmt.Sprintf("empty matrix (%d by %d)", m.rows, m.cols)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "matrix (%d by %d) {\n", m.rows, m.cols)
	for r := 0; r < m.rows; r++ {
		b.WriteString(" ")
		for c := 0; c < m.cols; c++ {
			fmt.Fprintf(&b, " %.2f", m.Get(r, c))
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
