package grid

import "strings"

// Marker is the content of a single grid cell.
type Marker uint8

const (
	Blank Marker = iota
	X
	O
)

// String returns "." for Blank, "X" or "O".
func (m Marker) String() string {
	switch m {
	case Blank:
		return "."
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "?"
	}
}

// Rune returns the lowercase encoding used by row strings: '.', 'x' or 'o'.
func (m Marker) Rune() rune {
	switch m {
	case X:
		return 'x'
	case O:
		return 'o'
	default:
		return '.'
	}
}

// ParseMarker parses a single cell. Accepted: "x", "o" (any case), "",
// " " and ".". Surrounding whitespace is ignored.
func ParseMarker(s string) (Marker, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Blank, true
	case ".":
		return Blank, true
	case "x":
		return X, true
	case "o":
		return O, true
	default:
		return Blank, false
	}
}
