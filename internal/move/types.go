package move

import (
	"fmt"
	"strings"
)

// Kind names a move variant.
type Kind int

const (
	KindTranslation Kind = iota
	KindCommutation
	KindStabilization
	KindDestabilization
)

// String returns the notation verb for the kind.
func (k Kind) String() string {
	switch k {
	case KindTranslation:
		return "translate"
	case KindCommutation:
		return "commute"
	case KindStabilization:
		return "stabilize"
	case KindDestabilization:
		return "destabilize"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Move is one Cromwell move. The concrete types in this package are the
// only implementations.
type Move interface {
	Kind() Kind
	String() string
	isMove()
}

// Direction is the shift direction of a translation.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if d < Up || d > Right {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// Axis selects rows or columns for a commutation.
type Axis int

const (
	Row Axis = iota
	Column
)

func (a Axis) String() string {
	switch a {
	case Row:
		return "row"
	case Column:
		return "col"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Cardinality selects a corner of the 2x2 block created by a stabilization.
type Cardinality int

const (
	NW Cardinality = iota
	NE
	SW
	SE
)

var cardinalityNames = [...]string{"nw", "ne", "sw", "se"}

func (c Cardinality) String() string {
	if c < NW || c > SE {
		return fmt.Sprintf("cardinality(%d)", int(c))
	}
	return cardinalityNames[c]
}

// offsets returns the corner's position inside the block: 0 for the
// original row/column, 1 for the inserted one.
func (c Cardinality) offsets() (dr, dc int) {
	switch c {
	case NE:
		return 0, 1
	case SW:
		return 1, 0
	case SE:
		return 1, 1
	default:
		return 0, 0
	}
}

// Translation cyclically shifts every row (Up/Down) or every column
// (Left/Right) by one position. Up moves row 1 to row 0 and row 0 to the
// bottom; Left moves column 1 to column 0 and column 0 to the far right.
type Translation struct {
	Direction Direction
}

// Commutation swaps row (or column) Index with Index+1. It is only legal
// when the two lines' marker intervals do not overlap.
type Commutation struct {
	Axis  Axis
	Index int
}

// Stabilization replaces the X at (Row, Col) with a 2x2 block, growing
// the grid by one row and one column. Corner names the block corner that
// is left blank.
type Stabilization struct {
	Corner Cardinality
	Row    int
	Col    int
}

// Destabilization is the inverse of Stabilization. It is part of the move
// set but is not supported: applying it always fails.
type Destabilization struct {
	Corner Cardinality
	Row    int
	Col    int
}

func (Translation) Kind() Kind     { return KindTranslation }
func (Commutation) Kind() Kind     { return KindCommutation }
func (Stabilization) Kind() Kind   { return KindStabilization }
func (Destabilization) Kind() Kind { return KindDestabilization }

func (Translation) isMove()     {}
func (Commutation) isMove()     {}
func (Stabilization) isMove()   {}
func (Destabilization) isMove() {}

func (m Translation) String() string {
	return fmt.Sprintf("%s %s", KindTranslation, m.Direction)
}

func (m Commutation) String() string {
	return fmt.Sprintf("%s %s %d", KindCommutation, m.Axis, m.Index)
}

func (m Stabilization) String() string {
	return fmt.Sprintf("%s %s %d %d", KindStabilization, m.Corner, m.Row, m.Col)
}

func (m Destabilization) String() string {
	return fmt.Sprintf("%s %s %d %d", KindDestabilization, m.Corner, m.Row, m.Col)
}

// Inverse returns the move that undoes m when m succeeded. Stabilization
// has no supported inverse and reports false.
func Inverse(m Move) (Move, bool) {
	switch mv := m.(type) {
	case Translation:
		switch mv.Direction {
		case Up:
			return Translation{Direction: Down}, true
		case Down:
			return Translation{Direction: Up}, true
		case Left:
			return Translation{Direction: Right}, true
		case Right:
			return Translation{Direction: Left}, true
		}
	case Commutation:
		return mv, true
	}
	return nil, false
}

// lookup finds s among names, case-insensitively.
func lookup(names []string, s string) (int, bool) {
	s = strings.ToLower(s)
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}
