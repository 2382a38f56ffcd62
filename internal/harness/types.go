package harness

import (
	"github.com/roach88/knots/internal/grid"
	"github.com/roach88/knots/internal/ir"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every expectation, assertion and the replay check
	// held.
	Pass bool `json:"pass"`

	// Trace is the session's step log in seq order.
	Trace []ir.Step `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// InitialID is the ID of the starting diagram.
	InitialID string `json:"initial_id"`

	// Final is the diagram after the last move.
	Final *grid.Diagram `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []ir.Step{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Rejected returns the number of rejected steps.
func (r *Result) Rejected() int {
	n := 0
	for _, st := range r.Trace {
		if st.Outcome == ir.OutcomeRejected {
			n++
		}
	}
	return n
}
