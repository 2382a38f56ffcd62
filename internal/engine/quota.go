package engine

import "fmt"

// QuotaEnforcer counts move attempts in a session and enforces a maximum.
//
// Rejected moves count too: a scripted run that keeps hitting
// interleaved commutations still terminates.
type QuotaEnforcer struct {
	maxSteps int
	current  int
}

// NewQuotaEnforcer creates an enforcer allowing maxSteps attempts.
// maxSteps <= 0 means unlimited.
func NewQuotaEnforcer(maxSteps int) *QuotaEnforcer {
	return &QuotaEnforcer{maxSteps: maxSteps}
}

// Check counts one attempt and returns a QUOTA_EXCEEDED *SessionError if
// it is past the limit.
func (q *QuotaEnforcer) Check(token string) error {
	q.current++
	if q.maxSteps > 0 && q.current > q.maxSteps {
		return &SessionError{
			Code:    ErrCodeQuotaExceeded,
			Token:   token,
			Message: fmt.Sprintf("session exceeded max steps quota: %d steps > %d limit", q.current, q.maxSteps),
		}
	}
	return nil
}

// Current returns the number of attempts counted so far.
func (q *QuotaEnforcer) Current() int {
	return q.current
}

// MaxSteps returns the configured limit.
func (q *QuotaEnforcer) MaxSteps() int {
	return q.maxSteps
}
