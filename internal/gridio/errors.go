package gridio

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// UnknownMarkerError reports a cell whose text is not x, o or blank.
// Row and Col are zero-based.
type UnknownMarkerError struct {
	Path string
	Row  int
	Col  int
	Text string
}

func (e *UnknownMarkerError) Error() string {
	return fmt.Sprintf("%s: unknown marker %q at row %d, column %d", e.Path, e.Text, e.Row, e.Col)
}

// FormatError reports a file gridio cannot decode at all: an unsupported
// extension, malformed CSV or CUE, or a CUE file without usable rows.
type FormatError struct {
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *FormatError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}
