package graphics

import "fmt"

// DrawEdges draws the edge matrix: each consecutive pair of point rows
// becomes one line. The point count must be a multiple of two.
func (im *Image) DrawEdges(m *Matrix) error {
	if m.Rows()%2 != 0 {
		return fmt.Errorf("edge matrix has %d points, need a multiple of 2", m.Rows())
	}
	if m.Cols() < 2 {
		return fmt.Errorf("edge matrix needs at least 2 columns, got %d", m.Cols())
	}
	for r := 0; r+1 < m.Rows(); r += 2 {
		p0 := m.Row(r)
		p1 := m.Row(r + 1)
		im.DrawLine(p0[0], p0[1], p1[0], p1[1])
	}
	return nil
}
