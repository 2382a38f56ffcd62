package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/knots/internal/ir"
	"github.com/roach88/knots/internal/store"
)

// latestSession is the --session value that selects the most recent one.
const latestSession = "latest"

// openStore opens the database at path. Read-only commands pass
// mustExist so a typo does not silently create an empty database.
func openStore(f *OutputFormatter, path string, mustExist bool) (*store.Store, error) {
	if mustExist {
		if _, err := os.Stat(path); err != nil {
			return nil, f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", path), nil)
		}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	slog.Debug("database opened", "path", path)
	return st, nil
}

// closeStore closes st, logging any error.
func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// resolveSession reads the session named by token, or the latest one.
func resolveSession(ctx context.Context, f *OutputFormatter, st *store.Store, token string) (ir.Session, error) {
	var (
		sess ir.Session
		err  error
	)
	if token == latestSession {
		sess, err = st.LatestSession(ctx)
	} else {
		sess, err = st.ReadSession(ctx, token)
	}
	if errors.Is(err, store.ErrNotFound) {
		return ir.Session{}, f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("session not found: %s", token), nil)
	}
	if err != nil {
		return ir.Session{}, f.Fail(ExitCommandError, ErrCodeStore, "failed to read session", err)
	}
	return sess, nil
}
