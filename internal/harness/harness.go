package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/knots/internal/engine"
	"github.com/roach88/knots/internal/ir"
	"github.com/roach88/knots/internal/move"
	"github.com/roach88/knots/internal/store"
	"github.com/roach88/knots/internal/testutil"
)

// Run executes a scenario and returns its result.
//
// Execution flow:
//  1. Load the starting diagram
//  2. Open a fresh in-memory store and start a recorded session with a
//     fixed token and deterministic clock
//  3. Apply every move, checking expectations
//  4. Evaluate assertions against the final state
//  5. Replay the session from the store and report any divergence
//
// The returned error is reserved for failures to execute at all (bad grid,
// store failure); failed checks are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	d, err := scenario.Diagram()
	if err != nil {
		return nil, fmt.Errorf("failed to load grid: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	sess, err := engine.NewSession(ctx, d,
		engine.WithTokenGenerator(testutil.NewFixedTokenGenerator(scenario.Session)),
		engine.WithClock(testutil.NewDeterministicClock()),
		engine.WithRecorder(st),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	result := NewResult()
	result.InitialID = sess.Initial().ID

	for i, step := range scenario.Moves {
		m, err := move.Parse(step.Move)
		if err != nil {
			result.AddError(fmt.Sprintf("moves[%d]: %v", i, err))
			continue
		}

		rec, err := sess.Apply(ctx, m)
		var me *move.Error
		if err != nil && !errors.As(err, &me) {
			return nil, fmt.Errorf("moves[%d] %q: %w", i, step.Move, err)
		}
		if msg := checkExpect(step, rec); msg != "" {
			result.AddError(fmt.Sprintf("moves[%d] %q: %s", i, step.Move, msg))
		}
	}

	result.Trace = sess.Steps()
	result.Final = sess.Diagram()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	report, err := st.Replay(ctx, sess.Token())
	if err != nil {
		return nil, fmt.Errorf("failed to replay session: %w", err)
	}
	for _, mm := range report.Mismatches {
		result.AddError(fmt.Sprintf("replay diverged at seq %d: %s recorded %q, replayed %q",
			mm.Seq, mm.Field, mm.Recorded, mm.Replayed))
	}

	return result, nil
}

// checkExpect returns a failure message, or "" if the step matches.
func checkExpect(step MoveStep, rec ir.Step) string {
	switch {
	case step.Expect == "":
		return ""
	case step.Expect == ExpectOK && rec.Outcome != ir.OutcomeOK:
		return fmt.Sprintf("expected ok, got %s", rec.Code)
	case step.Expect != ExpectOK && rec.Outcome == ir.OutcomeOK:
		return fmt.Sprintf("expected %s, got ok", step.Expect)
	case step.Expect != ExpectOK && rec.Code != step.Expect:
		return fmt.Sprintf("expected %s, got %s", step.Expect, rec.Code)
	}
	return ""
}
