package move

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes rejected moves.
type ErrorCode string

const (
	// ErrCodeInterleavedRows indicates a row commutation whose marker
	// intervals overlap; swapping would change the isotopy class.
	ErrCodeInterleavedRows ErrorCode = "INTERLEAVED_ROWS"

	// ErrCodeInterleavedColumns is the column analogue of ErrCodeInterleavedRows.
	ErrCodeInterleavedColumns ErrorCode = "INTERLEAVED_COLUMNS"

	// ErrCodeTargetNotX indicates a stabilization target cell without an X.
	ErrCodeTargetNotX ErrorCode = "TARGET_NOT_X"

	// ErrCodeIndexOutOfRange indicates a row, column or pair outside the grid.
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeUnsupportedMove indicates a destabilization (or unknown move).
	ErrCodeUnsupportedMove ErrorCode = "UNSUPPORTED_MOVE"

	// ErrCodeInvalidResult indicates the candidate layout failed grid
	// validation. Err holds the *grid.Error.
	ErrCodeInvalidResult ErrorCode = "INVALID_RESULT"

	// ErrCodeInvalidNotation indicates text that Parse cannot read.
	ErrCodeInvalidNotation ErrorCode = "INVALID_NOTATION"
)

// Error is a rejected move. The diagram the move targeted is unchanged.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Move is the move in notation form, if known.
	Move string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Move != "" {
		msg += fmt.Sprintf(" (move=%q)", e.Move)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the code of a wrapped *Error, or "" if err is not one.
func CodeOf(err error) ErrorCode {
	var me *Error
	if errors.As(err, &me) {
		return me.Code
	}
	return ""
}

// IsTopological returns true for rejections that protect the isotopy class
// (interleaved commutations).
func IsTopological(err error) bool {
	switch CodeOf(err) {
	case ErrCodeInterleavedRows, ErrCodeInterleavedColumns:
		return true
	}
	return false
}

// IsUnsupported returns true if the move kind is not implemented.
func IsUnsupported(err error) bool {
	return CodeOf(err) == ErrCodeUnsupportedMove
}

func newError(code ErrorCode, m Move, format string, args ...any) *Error {
	e := &Error{Code: code, Message: fmt.Sprintf(format, args...)}
	if m != nil {
		e.Move = m.String()
	}
	return e
}
