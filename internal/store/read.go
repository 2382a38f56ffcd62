package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/knots/internal/grid"
	"github.com/roach88/knots/internal/ir"
)

// SessionSummary is one row of ListSessions.
type SessionSummary struct {
	ir.Session
	Steps    int    `json:"steps"`
	Rejected int    `json:"rejected"`
	LastSeq  int64  `json:"last_seq"`
	FinalID  string `json:"final_id"` // diagram after the last step, or the initial one
}

// ReadDiagram loads a stored diagram and rebuilds it through grid.New.
// A row whose cells fail validation or no longer hash to id is an error.
func (s *Store) ReadDiagram(ctx context.Context, id string) (*grid.Diagram, error) {
	var (
		size     int
		rowsJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT size, rows FROM diagrams WHERE id = ?
	`, id).Scan(&size, &rowsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("diagram %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read diagram: %w", err)
	}

	var rows []string
	if err := json.Unmarshal([]byte(rowsJSON), &rows); err != nil {
		return nil, fmt.Errorf("diagram %s: decode rows: %w", id, err)
	}
	d, err := grid.FromRows(rows...)
	if err != nil {
		return nil, fmt.Errorf("diagram %s: %w", id, err)
	}
	if d.Size() != size {
		return nil, fmt.Errorf("diagram %s: stored size %d, cells give %d", id, size, d.Size())
	}
	if got := ir.MustDiagramID(d.Size(), d.Rows()); got != id {
		return nil, fmt.Errorf("diagram %s: stored cells hash to %s", id, got)
	}
	return d, nil
}

// ReadSession loads a session header.
func (s *Store) ReadSession(ctx context.Context, token string) (ir.Session, error) {
	var sess ir.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT token, initial_id, engine_version FROM sessions WHERE token = ?
	`, token).Scan(&sess.Token, &sess.InitialID, &sess.EngineVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Session{}, fmt.Errorf("session %s: %w", token, ErrNotFound)
	}
	if err != nil {
		return ir.Session{}, fmt.Errorf("read session: %w", err)
	}
	return sess, nil
}

// LatestSession returns the most recently recorded session.
func (s *Store) LatestSession(ctx context.Context) (ir.Session, error) {
	var sess ir.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT token, initial_id, engine_version FROM sessions
		ORDER BY rowid DESC LIMIT 1
	`).Scan(&sess.Token, &sess.InitialID, &sess.EngineVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Session{}, fmt.Errorf("latest session: %w", ErrNotFound)
	}
	if err != nil {
		return ir.Session{}, fmt.Errorf("read latest session: %w", err)
	}
	return sess, nil
}

// ListSessions returns every session in recording order with step counts.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.token, s.initial_id, s.engine_version,
		       COUNT(st.seq),
		       COALESCE(SUM(CASE WHEN st.outcome = 'rejected' THEN 1 ELSE 0 END), 0),
		       COALESCE(MAX(st.seq), 0),
		       COALESCE((SELECT l.diagram_id FROM steps l
		                 WHERE l.session_token = s.token
		                 ORDER BY l.seq DESC LIMIT 1), s.initial_id)
		FROM sessions s
		LEFT JOIN steps st ON st.session_token = s.token
		GROUP BY s.token
		ORDER BY s.rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	summaries := []SessionSummary{}
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(
			&sum.Token, &sum.InitialID, &sum.EngineVersion,
			&sum.Steps, &sum.Rejected, &sum.LastSeq, &sum.FinalID,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return summaries, nil
}

// ReadSteps returns the steps of a session ordered by seq.
// Returns an empty slice (not nil) if the session has no steps.
func (s *Store) ReadSteps(ctx context.Context, token string) ([]ir.Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_token, seq, move, outcome, code, diagram_id, size
		FROM steps
		WHERE session_token = ?
		ORDER BY seq ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	return scanSteps(rows)
}

// StepsReaching returns every step, across sessions, whose resulting
// diagram is id. Ordered by session recording order, then seq.
func (s *Store) StepsReaching(ctx context.Context, id string) ([]ir.Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT st.session_token, st.seq, st.move, st.outcome, st.code, st.diagram_id, st.size
		FROM steps st
		JOIN sessions s ON s.token = st.session_token
		WHERE st.diagram_id = ? AND st.outcome = 'ok'
		ORDER BY s.rowid ASC, st.seq ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	return scanSteps(rows)
}

func scanSteps(rows *sql.Rows) ([]ir.Step, error) {
	steps := []ir.Step{}
	for rows.Next() {
		var (
			st      ir.Step
			outcome string
		)
		if err := rows.Scan(&st.SessionToken, &st.Seq, &st.Move, &outcome, &st.Code, &st.DiagramID, &st.Size); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		st.Outcome = ir.Outcome(outcome)
		steps = append(steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}
