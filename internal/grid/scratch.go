package grid

// Scratch is an unvalidated working layout. Moves build their candidate
// result on a Scratch and hand it to Diagram.Commit, which is the only way
// a diagram changes after construction.
type Scratch struct {
	n     int
	cells []Marker
}

// NewScratch returns an all-blank n-by-n layout.
func NewScratch(n int) *Scratch {
	if n < 0 {
		n = 0
	}
	return &Scratch{n: n, cells: make([]Marker, n*n)}
}

// Scratch returns a copy of the diagram's cells as a working layout.
func (d *Diagram) Scratch() *Scratch {
	return &Scratch{n: d.n, cells: append([]Marker(nil), d.cells...)}
}

// Size returns the scratch layout's side length.
func (s *Scratch) Size() int {
	return s.n
}

// At returns the marker at (row, col). Out-of-range coordinates are Blank.
func (s *Scratch) At(row, col int) Marker {
	if row < 0 || col < 0 || row >= s.n || col >= s.n {
		return Blank
	}
	return s.cells[row*s.n+col]
}

// Set writes a marker. Out-of-range coordinates are ignored.
func (s *Scratch) Set(row, col int, m Marker) {
	if row < 0 || col < 0 || row >= s.n || col >= s.n {
		return
	}
	s.cells[row*s.n+col] = m
}

// SwapRows exchanges two whole rows.
func (s *Scratch) SwapRows(a, b int) {
	for c := 0; c < s.n; c++ {
		s.cells[a*s.n+c], s.cells[b*s.n+c] = s.cells[b*s.n+c], s.cells[a*s.n+c]
	}
}

// SwapColumns exchanges two whole columns.
func (s *Scratch) SwapColumns(a, b int) {
	for r := 0; r < s.n; r++ {
		s.cells[r*s.n+a], s.cells[r*s.n+b] = s.cells[r*s.n+b], s.cells[r*s.n+a]
	}
}

// Validate checks the scratch layout against the grid-diagram invariants.
func (s *Scratch) Validate() error {
	return validateCells(s.n, s.cells)
}

// Commit validates s and, only if it is a valid diagram, replaces d's
// cells (and size) with a copy of it. On error d is left unchanged.
func (d *Diagram) Commit(s *Scratch) error {
	if s == nil {
		return dimensionError(-1, "nil layout")
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if len(d.cells) == len(s.cells) {
		copy(d.cells, s.cells)
	} else {
		d.cells = append([]Marker(nil), s.cells...)
	}
	d.n = s.n
	return nil
}
