package grid

// Orientation tags a segment as vertical (column) or horizontal (row).
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// String returns "vertical" or "horizontal".
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// MarshalText encodes the orientation by name.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Point is a grid coordinate.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Segment is a straight connector of the knot path between two markers.
//
// Vertical segments run from a column's X to its O; horizontal segments run
// from a row's O to its X. Index is the column (vertical) or row
// (horizontal) the segment lies on.
type Segment struct {
	Orientation Orientation `json:"orientation"`
	Index       int         `json:"index"`
	From        Point       `json:"from"`
	To          Point       `json:"to"`
}

// Span returns the ordered range the segment covers along its own axis:
// rows for vertical segments, columns for horizontal ones.
func (s Segment) Span() (lo, hi int) {
	a, b := s.From.Col, s.To.Col
	if s.Orientation == Vertical {
		a, b = s.From.Row, s.To.Row
	}
	if a > b {
		a, b = b, a
	}
	return a, b
}

// Len returns the number of grid steps the segment covers.
func (s Segment) Len() int {
	lo, hi := s.Span()
	return hi - lo
}

// Crossing is an intersection of a vertical and a horizontal segment.
// In a grid diagram the vertical strand always passes over.
type Crossing struct {
	At Point `json:"at"`

	// Over is the column of the vertical (over) segment.
	Over int `json:"over"`

	// Under is the row of the horizontal (under) segment.
	Under int `json:"under"`
}

// Segments derives the knot path from the current cells: one vertical
// segment per column (ordered by column) followed by one horizontal
// segment per row (ordered by row).
func (d *Diagram) Segments() []Segment {
	idx := d.index()
	segs := make([]Segment, 0, 2*d.n)
	for c := 0; c < d.n; c++ {
		segs = append(segs, Segment{
			Orientation: Vertical,
			Index:       c,
			From:        Point{Row: idx.xRow[c], Col: c},
			To:          Point{Row: idx.oRow[c], Col: c},
		})
	}
	for r := 0; r < d.n; r++ {
		segs = append(segs, Segment{
			Orientation: Horizontal,
			Index:       r,
			From:        Point{Row: r, Col: idx.oCol[r]},
			To:          Point{Row: r, Col: idx.xCol[r]},
		})
	}
	return segs
}

// Crossings is shorthand for ComputeCrossings(d.Segments()).
func (d *Diagram) Crossings() []Crossing {
	return ComputeCrossings(d.Segments())
}

// ComputeCrossings tests every (vertical, horizontal) pair. A crossing is
// recorded when the horizontal segment's row lies strictly inside the
// vertical segment's row span and the vertical segment's column lies
// strictly inside the horizontal segment's column span. Shared endpoints
// are corners of the path, not crossings.
//
// Results are ordered by the input order of the vertical segments, then of
// the horizontal segments.
func ComputeCrossings(segments []Segment) []Crossing {
	var crossings []Crossing
	for _, v := range segments {
		if v.Orientation != Vertical {
			continue
		}
		vLo, vHi := v.Span()
		col := v.From.Col
		for _, h := range segments {
			if h.Orientation != Horizontal {
				continue
			}
			hLo, hHi := h.Span()
			row := h.From.Row
			if row > vLo && row < vHi && col > hLo && col < hHi {
				crossings = append(crossings, Crossing{
					At:    Point{Row: row, Col: col},
					Over:  v.Index,
					Under: h.Index,
				})
			}
		}
	}
	return crossings
}

// markerIndex caches marker positions for a single derivation pass.
type markerIndex struct {
	xCol, oCol []int // by row
	xRow, oRow []int // by column
}

func (d *Diagram) index() markerIndex {
	idx := markerIndex{
		xCol: make([]int, d.n),
		oCol: make([]int, d.n),
		xRow: make([]int, d.n),
		oRow: make([]int, d.n),
	}
	for r := 0; r < d.n; r++ {
		for c := 0; c < d.n; c++ {
			switch d.cells[r*d.n+c] {
			case X:
				idx.xCol[r] = c
				idx.xRow[c] = r
			case O:
				idx.oCol[r] = c
				idx.oRow[c] = r
			}
		}
	}
	return idx
}
