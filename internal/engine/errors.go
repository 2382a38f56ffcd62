package engine

import (
	"errors"
	"fmt"
)

// SessionErrorCode categorizes session-level failures. These are distinct
// from move rejections (*move.Error), which are ordinary step outcomes.
type SessionErrorCode string

const (
	// ErrCodeQuotaExceeded indicates the session hit its max steps.
	ErrCodeQuotaExceeded SessionErrorCode = "QUOTA_EXCEEDED"

	// ErrCodeSizeLimit indicates a stabilization would exceed MaxSize.
	ErrCodeSizeLimit SessionErrorCode = "SIZE_LIMIT_EXCEEDED"

	// ErrCodeRecordFailed indicates the Recorder could not persist a step
	// or the session header.
	ErrCodeRecordFailed SessionErrorCode = "RECORD_FAILED"
)

// SessionError is a failure of the session itself rather than of a move.
type SessionError struct {
	// Code identifies the error category.
	Code SessionErrorCode

	// Message is a human-readable description.
	Message string

	// Token identifies the affected session.
	Token string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Token != "" {
		msg += fmt.Sprintf(" (session=%s)", e.Token)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// IsQuotaError returns true if err is a QUOTA_EXCEEDED session error.
func IsQuotaError(err error) bool {
	return sessionCode(err) == ErrCodeQuotaExceeded
}

// IsSizeLimitError returns true if err is a SIZE_LIMIT_EXCEEDED session error.
func IsSizeLimitError(err error) bool {
	return sessionCode(err) == ErrCodeSizeLimit
}

// IsRecordError returns true if err is a RECORD_FAILED session error.
func IsRecordError(err error) bool {
	return sessionCode(err) == ErrCodeRecordFailed
}

func sessionCode(err error) SessionErrorCode {
	var se *SessionError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
