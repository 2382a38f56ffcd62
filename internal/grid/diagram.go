package grid

import (
	"fmt"
	"strings"
)

// Diagram is a validated square grid diagram.
//
// Cells are held in a single row-major slice addressed by (row, col).
// The zero value is not usable; obtain diagrams from New or FromRows.
type Diagram struct {
	n     int
	cells []Marker
}

// New constructs a diagram from a complete table of markers. rows[r][c] is
// the marker at row r, column c. The table must be square with n >= 1, and
// every row and column must hold exactly one X and one O.
//
// The input is copied; later changes to rows do not affect the diagram.
func New(rows [][]Marker) (*Diagram, error) {
	n := len(rows)
	if n < 1 {
		return nil, dimensionError(-1, "grid has no rows")
	}
	cells := make([]Marker, n*n)
	for r, row := range rows {
		if len(row) != n {
			return nil, dimensionError(r, "row has %d cells, want %d", len(row), n)
		}
		copy(cells[r*n:(r+1)*n], row)
	}
	if err := validateCells(n, cells); err != nil {
		return nil, err
	}
	return &Diagram{n: n, cells: cells}, nil
}

// FromRows constructs a diagram from row strings, one rune per cell:
// 'x'/'X', 'o'/'O', and '.' or ' ' for blank.
//
// Example (the 2x2 unknot):
//
//	d, err := grid.FromRows("xo", "ox")
func FromRows(rows ...string) (*Diagram, error) {
	table := make([][]Marker, len(rows))
	for r, s := range rows {
		line := make([]Marker, 0, len(s))
		for c, ch := range s {
			m, ok := ParseMarker(string(ch))
			if !ok {
				return nil, fmt.Errorf("row %d, col %d: unknown marker %q", r, c, ch)
			}
			line = append(line, m)
		}
		table[r] = line
	}
	return New(table)
}

// MustFromRows is like FromRows but panics on error.
// Use only in tests or with literal, known-valid layouts.
func MustFromRows(rows ...string) *Diagram {
	d, err := FromRows(rows...)
	if err != nil {
		panic(err)
	}
	return d
}

// Size returns n, the number of rows (and columns).
func (d *Diagram) Size() int {
	return d.n
}

// At returns the marker at (row, col). Out-of-range coordinates are Blank.
func (d *Diagram) At(row, col int) Marker {
	if row < 0 || col < 0 || row >= d.n || col >= d.n {
		return Blank
	}
	return d.cells[row*d.n+col]
}

// Row returns the columns of the X and the O in the given row.
func (d *Diagram) Row(row int) (xCol, oCol int) {
	xCol, oCol = -1, -1
	if row < 0 || row >= d.n {
		return xCol, oCol
	}
	for c := 0; c < d.n; c++ {
		switch d.cells[row*d.n+c] {
		case X:
			xCol = c
		case O:
			oCol = c
		}
	}
	return xCol, oCol
}

// Column returns the rows of the X and the O in the given column.
func (d *Diagram) Column(col int) (xRow, oRow int) {
	xRow, oRow = -1, -1
	if col < 0 || col >= d.n {
		return xRow, oRow
	}
	for r := 0; r < d.n; r++ {
		switch d.cells[r*d.n+col] {
		case X:
			xRow = r
		case O:
			oRow = r
		}
	}
	return xRow, oRow
}

// Cells returns a copy of the cell table.
func (d *Diagram) Cells() [][]Marker {
	out := make([][]Marker, d.n)
	for r := range out {
		out[r] = append([]Marker(nil), d.cells[r*d.n:(r+1)*d.n]...)
	}
	return out
}

// Rows encodes each row as a string over {'x', 'o', '.'}.
func (d *Diagram) Rows() []string {
	out := make([]string, d.n)
	var b strings.Builder
	for r := 0; r < d.n; r++ {
		b.Reset()
		for c := 0; c < d.n; c++ {
			b.WriteRune(d.cells[r*d.n+c].Rune())
		}
		out[r] = b.String()
	}
	return out
}

// String returns the rows joined by newlines.
func (d *Diagram) String() string {
	return strings.Join(d.Rows(), "\n")
}

// Clone returns an independent copy of the diagram.
func (d *Diagram) Clone() *Diagram {
	return &Diagram{n: d.n, cells: append([]Marker(nil), d.cells...)}
}

// Equal reports whether both diagrams have the same size and cells.
func (d *Diagram) Equal(other *Diagram) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.n != other.n {
		return false
	}
	for i := range d.cells {
		if d.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Validate re-checks the structural invariants against the current cells.
// A diagram built by New and edited only through Commit always passes.
func (d *Diagram) Validate() error {
	if d == nil {
		return dimensionError(-1, "nil diagram")
	}
	return validateCells(d.n, d.cells)
}

// validateCells checks the grid-diagram invariants on a row-major table.
// Rows are checked before columns; the first offending line is reported.
func validateCells(n int, cells []Marker) error {
	if n < 1 {
		return dimensionError(-1, "grid size %d, want at least 1", n)
	}
	if len(cells) != n*n {
		return dimensionError(-1, "grid has %d cells, want %d", len(cells), n*n)
	}

	for r := 0; r < n; r++ {
		xCount, oCount := 0, 0
		for c := 0; c < n; c++ {
			switch m := cells[r*n+c]; m {
			case X:
				xCount++
			case O:
				oCount++
			case Blank:
			default:
				return &Error{
					Code:    ErrCodeMalformedRow,
					Index:   r,
					Message: fmt.Sprintf("unknown marker %d at column %d", m, c),
				}
			}
		}
		if xCount != 1 || oCount != 1 {
			return lineError(ErrCodeMalformedRow, r, xCount, oCount)
		}
	}

	for c := 0; c < n; c++ {
		xCount, oCount := 0, 0
		for r := 0; r < n; r++ {
			switch cells[r*n+c] {
			case X:
				xCount++
			case O:
				oCount++
			}
		}
		if xCount != 1 || oCount != 1 {
			return lineError(ErrCodeMalformedColumn, c, xCount, oCount)
		}
	}

	return nil
}
