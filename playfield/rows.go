package playfield

// FromRows flattens a rectangular 2D penalty map, rows[y][x], into the
// row-major slice expected by New.
// Returns ErrEmptyGrid if rows has no rows or no columns,
// ErrNonRectangular if any row length differs from the first.
// Complexity: O(W×H).
func FromRows(rows [][]float64) (width, height int, penalties []float64, err error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, 0, nil, ErrEmptyGrid
	}
	height, width = len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != width {
			return 0, 0, nil, ErrNonRectangular
		}
	}
	penalties = make([]float64, 0, width*height)
	for _, row := range rows {
		penalties = append(penalties, row...)
	}

	return width, height, penalties, nil
}

// Rows returns a copy of the penalty map as rows[y][x].
func (pf *Playfield) Rows() [][]float64 {
	rows := make([][]float64, pf.height)
	for y := 0; y < pf.height; y++ {
		rows[y] = make([]float64, pf.width)
		for x := 0; x < pf.width; x++ {
			rows[y][x] = pf.cells[y*pf.width+x].Penalty
		}
	}
	return rows
}
