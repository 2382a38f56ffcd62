package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/knots/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string // optional - specific session only
}

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	Session       string           `json:"session"`
	Steps         int              `json:"steps"`
	Deterministic bool             `json:"deterministic"`
	Mismatches    []store.Mismatch `json:"mismatches,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []ReplaySessionResult `json:"sessions"`
	TotalSessions    int                   `json:"total_sessions"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay recorded sessions and verify determinism",
		Long: `Replay recorded sessions and verify determinism.

Each session is restarted from its stored initial diagram and every
recorded move is applied again. The outcome, error code and resulting
diagram ID of each step must match the record.

Exit codes:
  0 - All sessions are deterministic
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, etc.)

Examples:
  knots replay --db ./knots.db
  knots replay --db ./knots.db --session latest
  knots replay --db ./knots.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", `replay this session only ("latest" for the most recent)`)

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(formatter, opts.Database, true)
	if err != nil {
		return err
	}
	defer closeStore(st)

	var tokens []string
	if opts.Session != "" {
		sess, err := resolveSession(ctx, formatter, st, opts.Session)
		if err != nil {
			return err
		}
		tokens = []string{sess.Token}
	} else {
		sessions, err := st.ListSessions(ctx)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to list sessions", err)
		}
		for _, s := range sessions {
			tokens = append(tokens, s.Token)
		}
	}

	result := ReplayResult{
		Sessions:         make([]ReplaySessionResult, 0, len(tokens)),
		TotalSessions:    len(tokens),
		AllDeterministic: true,
	}

	for _, token := range tokens {
		formatter.VerboseLog("Replaying session %s", token)
		report, err := st.Replay(ctx, token)
		if errors.Is(err, store.ErrNotFound) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("failed to replay session %s", token), err)
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to replay session %s", token), err)
		}
		sr := ReplaySessionResult{
			Session:       token,
			Steps:         report.Steps,
			Deterministic: report.Deterministic(),
			Mismatches:    report.Mismatches,
		}
		if !sr.Deterministic {
			result.AllDeterministic = false
		}
		result.Sessions = append(result.Sessions, sr)
	}

	if formatter.IsJSON() {
		return outputReplayJSON(formatter, result)
	}
	return outputReplayText(formatter, result)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(f *OutputFormatter, result ReplayResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_NONDETERMINISTIC",
			Message: "one or more sessions replayed differently",
		}
	}
	if err := f.Encode(response); err != nil {
		return err
	}
	if !result.AllDeterministic {
		// Determinism failure = exit code 1
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(f *OutputFormatter, result ReplayResult) error {
	w := f.Writer
	if result.TotalSessions == 0 {
		fmt.Fprintln(w, "No sessions found in database.")
		return nil
	}

	st := newStyles(w)
	for _, s := range result.Sessions {
		if s.Deterministic {
			fmt.Fprintf(w, "%s %s: %s replayed, deterministic\n", st.status(true), s.Session, plural(s.Steps, "step"))
			continue
		}
		fmt.Fprintf(w, "%s %s: %s\n", st.status(false), s.Session, plural(len(s.Mismatches), "mismatch"))
		for _, m := range s.Mismatches {
			fmt.Fprintf(w, "  seq %d %s: recorded %q, replayed %q\n", m.Seq, m.Field, m.Recorded, m.Replayed)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Replay Summary: %s\n", plural(result.TotalSessions, "session"))
	if !result.AllDeterministic {
		// Determinism failure = exit code 1
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	fmt.Fprintf(w, "%s All sessions deterministic\n", st.status(true))
	return nil
}
