package move

import (
	"strconv"
	"strings"
)

// Parse reads one move in notation form, e.g. "commute row 2" or
// "stabilize ne 1 3". Keywords are case-insensitive; "column" is accepted
// for "col".
func Parse(s string) (Move, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, notationError(s, "empty move")
	}

	verb := strings.ToLower(fields[0])
	args := fields[1:]
	switch verb {
	case "translate":
		if len(args) != 1 {
			return nil, notationError(s, "want: translate up|down|left|right")
		}
		i, ok := lookup(directionNames[:], args[0])
		if !ok {
			return nil, notationError(s, "unknown direction %q", args[0])
		}
		return Translation{Direction: Direction(i)}, nil

	case "commute":
		if len(args) != 2 {
			return nil, notationError(s, "want: commute row|col <index>")
		}
		var axis Axis
		switch strings.ToLower(args[0]) {
		case "row":
			axis = Row
		case "col", "column":
			axis = Column
		default:
			return nil, notationError(s, "unknown axis %q", args[0])
		}
		k, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, notationError(s, "index %q is not an integer", args[1])
		}
		return Commutation{Axis: axis, Index: k}, nil

	case "stabilize", "destabilize":
		if len(args) != 3 {
			return nil, notationError(s, "want: %s nw|ne|sw|se <row> <col>", verb)
		}
		c, ok := lookup(cardinalityNames[:], args[0])
		if !ok {
			return nil, notationError(s, "unknown corner %q", args[0])
		}
		row, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, notationError(s, "row %q is not an integer", args[1])
		}
		col, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, notationError(s, "col %q is not an integer", args[2])
		}
		if verb == "destabilize" {
			return Destabilization{Corner: Cardinality(c), Row: row, Col: col}, nil
		}
		return Stabilization{Corner: Cardinality(c), Row: row, Col: col}, nil

	default:
		return nil, notationError(s, "unknown move %q", fields[0])
	}
}

// MustParse is like Parse but panics on error.
// Use only in tests or with literal notation.
func MustParse(s string) Move {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseAll parses each entry in order and stops at the first error.
func ParseAll(ss []string) ([]Move, error) {
	moves := make([]Move, 0, len(ss))
	for _, s := range ss {
		m, err := Parse(s)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

func notationError(s, format string, args ...any) *Error {
	e := newError(ErrCodeInvalidNotation, nil, format, args...)
	e.Move = strings.TrimSpace(s)
	return e
}
