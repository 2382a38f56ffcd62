package move

import (
	"github.com/roach88/knots/internal/grid"
)

// Apply performs m on d. On success d holds the new layout; on failure d is
// unchanged and the error is a *Error.
func Apply(m Move, d *grid.Diagram) error {
	if d == nil {
		return newError(ErrCodeIndexOutOfRange, m, "no diagram")
	}
	s, err := candidate(m, d)
	if err != nil {
		return err
	}
	if err := d.Commit(s); err != nil {
		e := newError(ErrCodeInvalidResult, m, "move produced an invalid grid")
		e.Err = err
		return e
	}
	return nil
}

// Preview returns the diagram m would produce without touching d.
func Preview(m Move, d *grid.Diagram) (*grid.Diagram, error) {
	if d == nil {
		return nil, newError(ErrCodeIndexOutOfRange, m, "no diagram")
	}
	out := d.Clone()
	if err := Apply(m, out); err != nil {
		return nil, err
	}
	return out, nil
}

// candidate builds the unvalidated result layout for m.
func candidate(m Move, d *grid.Diagram) (*grid.Scratch, error) {
	switch mv := m.(type) {
	case Translation:
		return translate(mv, d)
	case *Translation:
		return translate(*mv, d)
	case Commutation:
		return commute(mv, d)
	case *Commutation:
		return commute(*mv, d)
	case Stabilization:
		return stabilize(mv, d)
	case *Stabilization:
		return stabilize(*mv, d)
	case Destabilization, *Destabilization:
		return nil, newError(ErrCodeUnsupportedMove, m, "destabilization is not implemented")
	case nil:
		return nil, newError(ErrCodeUnsupportedMove, nil, "no move")
	default:
		return nil, newError(ErrCodeUnsupportedMove, m, "unknown move %T", m)
	}
}

// translate shifts all rows or all columns cyclically by one.
func translate(m Translation, d *grid.Diagram) (*grid.Scratch, error) {
	n := d.Size()
	if n == 0 {
		return nil, newError(ErrCodeIndexOutOfRange, m, "empty grid")
	}

	// dr/dc say where each new cell is read from.
	var dr, dc int
	switch m.Direction {
	case Up:
		dr = 1
	case Down:
		dr = n - 1
	case Left:
		dc = 1
	case Right:
		dc = n - 1
	default:
		return nil, newError(ErrCodeUnsupportedMove, m, "unknown direction %d", int(m.Direction))
	}

	s := grid.NewScratch(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			s.Set(r, c, d.At((r+dr)%n, (c+dc)%n))
		}
	}
	return s, nil
}

// commute swaps two adjacent lines whose closed marker intervals are
// disjoint. Nested or touching intervals are rejected.
func commute(m Commutation, d *grid.Diagram) (*grid.Scratch, error) {
	n := d.Size()
	k := m.Index
	if k < 0 || k+1 >= n {
		return nil, newError(ErrCodeIndexOutOfRange, m, "cannot swap %s %d with %d in a %dx%d grid", m.Axis, k, k+1, n, n)
	}

	var (
		line  func(int) (int, int)
		code  ErrorCode
		swap  func(*grid.Scratch)
		label string
	)
	switch m.Axis {
	case Row:
		line, code, label = d.Row, ErrCodeInterleavedRows, "rows"
		swap = func(s *grid.Scratch) { s.SwapRows(k, k+1) }
	case Column:
		line, code, label = d.Column, ErrCodeInterleavedColumns, "columns"
		swap = func(s *grid.Scratch) { s.SwapColumns(k, k+1) }
	default:
		return nil, newError(ErrCodeUnsupportedMove, m, "unknown axis %d", int(m.Axis))
	}

	aLo, aHi := interval(line(k))
	bLo, bHi := interval(line(k + 1))
	if aLo <= bHi && bLo <= aHi {
		return nil, newError(code, m, "%s %d [%d,%d] and %d [%d,%d] are interleaved",
			label, k, aLo, aHi, k+1, bLo, bHi)
	}

	s := d.Scratch()
	swap(s)
	return s, nil
}

func interval(a, b int) (lo, hi int) {
	if a > b {
		return b, a
	}
	return a, b
}

// stabilize grows the grid by inserting a row below m.Row and a column
// right of m.Col, then lays out the 2x2 block at rows {Row, Row+1} and
// columns {Col, Col+1}:
//
//   - the m.Corner cell is left blank
//   - the diagonally opposite cell gets the new O
//   - the other two cells get an X each
//
// The O that shared the original row with the target X moves to the
// blank corner's row; the O that shared its column moves to the blank
// corner's column. Every other marker keeps its place, renumbered past the
// insertion.
func stabilize(m Stabilization, d *grid.Diagram) (*grid.Scratch, error) {
	n := d.Size()
	i, j := m.Row, m.Col
	if i < 0 || j < 0 || i >= n || j >= n {
		return nil, newError(ErrCodeIndexOutOfRange, m, "cell (%d,%d) is outside a %dx%d grid", i, j, n, n)
	}
	if d.At(i, j) != grid.X {
		return nil, newError(ErrCodeTargetNotX, m, "cell (%d,%d) holds %s, want X", i, j, d.At(i, j))
	}
	if m.Corner < NW || m.Corner > SE {
		return nil, newError(ErrCodeUnsupportedMove, m, "unknown corner %d", int(m.Corner))
	}

	_, rowO := d.Row(i)    // column of the O in row i
	_, colO := d.Column(j) // row of the O in column j

	// shift maps an old index to its index after the insertion at k+1.
	shift := func(v, k int) int {
		if v > k {
			return v + 1
		}
		return v
	}

	s := grid.NewScratch(n + 1)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			mk := d.At(r, c)
			if mk == grid.Blank {
				continue
			}
			if (r == i && c == j) || (r == i && c == rowO) || (r == colO && c == j) {
				continue
			}
			s.Set(shift(r, i), shift(c, j), mk)
		}
	}

	dr, dc := m.Corner.offsets()
	blankRow, blankCol := i+dr, j+dc
	oRow, oCol := i+1-dr, j+1-dc

	s.Set(oRow, oCol, grid.O)
	s.Set(oRow, blankCol, grid.X)
	s.Set(blankRow, oCol, grid.X)
	s.Set(blankRow, shift(rowO, j), grid.O)
	s.Set(shift(colO, i), blankCol, grid.O)
	return s, nil
}
