package store

import (
	"context"
	"fmt"

	"github.com/roach88/knots/internal/ir"
	"github.com/roach88/knots/internal/move"
)

// Mismatch is one difference between a recorded step and its replay.
type Mismatch struct {
	Seq      int64  `json:"seq"`
	Field    string `json:"field"` // "outcome", "code" or "diagram_id"
	Recorded string `json:"recorded"`
	Replayed string `json:"replayed"`
}

// ReplayReport is the result of re-running a recorded session.
type ReplayReport struct {
	Token      string     `json:"token"`
	InitialID  string     `json:"initial_id"`
	Steps      int        `json:"steps"`
	FinalID    string     `json:"final_id"`
	Mismatches []Mismatch `json:"mismatches"`
}

// Deterministic reports whether every replayed step matched its record.
func (r ReplayReport) Deterministic() bool {
	return len(r.Mismatches) == 0
}

// Replay reloads the initial diagram of a session, re-applies every
// recorded move in seq order and compares outcome, error code and the
// resulting diagram ID against the log.
//
// Replay never writes. Moves are re-parsed from their notation, so a
// step recorded for an unparseable move replays as INVALID_NOTATION.
func (s *Store) Replay(ctx context.Context, token string) (ReplayReport, error) {
	sess, err := s.ReadSession(ctx, token)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("replay: %w", err)
	}
	d, err := s.ReadDiagram(ctx, sess.InitialID)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("replay: %w", err)
	}
	steps, err := s.ReadSteps(ctx, token)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("replay: %w", err)
	}

	report := ReplayReport{
		Token:      token,
		InitialID:  sess.InitialID,
		Steps:      len(steps),
		FinalID:    sess.InitialID,
		Mismatches: []Mismatch{},
	}
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		var moveErr error
		m, err := move.Parse(st.Move)
		if err != nil {
			moveErr = err
		} else {
			moveErr = move.Apply(m, d)
		}

		outcome, code := ir.OutcomeOK, ""
		if moveErr != nil {
			outcome, code = ir.OutcomeRejected, string(move.CodeOf(moveErr))
		}
		id := ir.MustDiagramID(d.Size(), d.Rows())
		report.FinalID = id

		check := func(field, recorded, replayed string) {
			if recorded != replayed {
				report.Mismatches = append(report.Mismatches, Mismatch{
					Seq: st.Seq, Field: field, Recorded: recorded, Replayed: replayed,
				})
			}
		}
		check("outcome", string(st.Outcome), string(outcome))
		check("code", st.Code, code)
		check("diagram_id", st.DiagramID, id)
	}
	return report, nil
}
