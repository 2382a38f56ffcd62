package grid

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes structural validation failures.
type ErrorCode string

const (
	// ErrCodeInvalidDimensions indicates an empty or non-square cell table.
	ErrCodeInvalidDimensions ErrorCode = "INVALID_DIMENSIONS"

	// ErrCodeMalformedRow indicates a row without exactly one X and one O.
	ErrCodeMalformedRow ErrorCode = "MALFORMED_ROW"

	// ErrCodeMalformedColumn indicates a column without exactly one X and one O.
	ErrCodeMalformedColumn ErrorCode = "MALFORMED_COLUMN"
)

// Error is a structural validation failure. It is always fatal to
// construction: no partial diagram is ever returned alongside it.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Index is the offending row or column, or -1 when the failure is not
	// tied to a single line.
	Index int

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s (index=%d)", e.Code, e.Message, e.Index)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the code of a wrapped *Error, or "" if err is not one.
func CodeOf(err error) ErrorCode {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}

func dimensionError(index int, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidDimensions, Index: index, Message: fmt.Sprintf(format, args...)}
}

func lineError(code ErrorCode, index, xCount, oCount int) *Error {
	line := "row"
	if code == ErrCodeMalformedColumn {
		line = "column"
	}
	return &Error{
		Code:    code,
		Index:   index,
		Message: fmt.Sprintf("%s has %d X and %d O, want exactly one of each", line, xCount, oCount),
	}
}
