package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/knots/internal/ir"
)

// WriteDiagram inserts a diagram snapshot. Uses ON CONFLICT(id) DO NOTHING:
// a diagram is content-addressed, so a second write of the same ID is the
// same row.
//
// Rows are stored as canonical JSON.
func (s *Store) WriteDiagram(ctx context.Context, d ir.Diagram) error {
	return writeDiagram(ctx, s.db, d)
}

// WriteSession inserts a session header. The initial diagram must already
// be stored (foreign key).
func (s *Store) WriteSession(ctx context.Context, sess ir.Session) error {
	return writeSession(ctx, s.db, sess)
}

// WriteStep inserts a step. Duplicate (session, seq) pairs are ignored.
// The session and the step's diagram must already be stored.
func (s *Store) WriteStep(ctx context.Context, st ir.Step) error {
	return writeStep(ctx, s.db, st)
}

// RecordSession stores the initial diagram and the session header in one
// transaction. Implements engine.Recorder.
func (s *Store) RecordSession(ctx context.Context, sess ir.Session, initial ir.Diagram) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := writeDiagram(ctx, tx, initial); err != nil {
			return err
		}
		return writeSession(ctx, tx, sess)
	})
}

// RecordStep stores the resulting diagram and the step in one transaction.
// Implements engine.Recorder.
func (s *Store) RecordStep(ctx context.Context, st ir.Step, after ir.Diagram) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := writeDiagram(ctx, tx, after); err != nil {
			return err
		}
		return writeStep(ctx, tx, st)
	})
}

func writeDiagram(ctx context.Context, ex execer, d ir.Diagram) error {
	rowsJSON, err := ir.MarshalCanonical(ir.Strings(d.Rows))
	if err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}

	_, err = ex.ExecContext(ctx, `
		INSERT INTO diagrams (id, size, rows)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, d.ID, d.Size, string(rowsJSON))
	if err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	return nil
}

func writeSession(ctx context.Context, ex execer, sess ir.Session) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO sessions (token, initial_id, engine_version)
		VALUES (?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`, sess.Token, sess.InitialID, sess.EngineVersion)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func writeStep(ctx context.Context, ex execer, st ir.Step) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO steps
		(session_token, seq, move, outcome, code, diagram_id, size)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		st.SessionToken,
		st.Seq,
		st.Move,
		string(st.Outcome),
		st.Code,
		st.DiagramID,
		st.Size,
	)
	if err != nil {
		return fmt.Errorf("write step: %w", err)
	}
	return nil
}
