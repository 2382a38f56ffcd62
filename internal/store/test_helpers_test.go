package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/knots/internal/engine"
	"github.com/roach88/knots/internal/grid"
	"github.com/roach88/knots/internal/move"
	"github.com/roach88/knots/internal/testutil"
)

var _ engine.Recorder = (*Store)(nil)

// createTestStore creates a new temp-dir store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// recordSession runs moves through a recorded session with a fixed token.
func recordSession(t *testing.T, s *Store, token string, d *grid.Diagram, moves ...string) *engine.Session {
	t.Helper()
	ctx := context.Background()

	sess, err := engine.NewSession(ctx, d,
		engine.WithTokenGenerator(testutil.NewFixedTokenGenerator(token)),
		engine.WithClock(testutil.NewDeterministicClock()),
		engine.WithRecorder(s),
	)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	ms, err := move.ParseAll(moves)
	if err != nil {
		t.Fatalf("ParseAll() failed: %v", err)
	}
	if _, err := sess.Run(ctx, ms, false); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return sess
}
