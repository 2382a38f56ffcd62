package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/knots/internal/ir"
	"github.com/roach88/knots/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Session  string // optional - show one session's steps
	Diagram  string // optional - show steps that reached this diagram ID
}

// SessionHistory is the JSON payload for a single session.
type SessionHistory struct {
	Session ir.Session `json:"session"`
	Steps   []ir.Step  `json:"steps"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query recorded sessions",
		Long: `Query the sessions recorded by apply --db.

Without flags, lists every session with its step counts. With --session,
shows that session's steps in order ("latest" selects the most recent
session). With --diagram, lists every accepted step that produced the
given diagram ID.

Examples:
  knots history --db ./knots.db
  knots history --db ./knots.db --session latest
  knots history --db ./knots.db --diagram 90434d1e...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", `session token to show, or "latest"`)
	cmd.Flags().StringVar(&opts.Diagram, "diagram", "", "list steps that reached this diagram ID")
	cmd.MarkFlagsMutuallyExclusive("session", "diagram")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(formatter, opts.Database, true)
	if err != nil {
		return err
	}
	defer closeStore(st)

	switch {
	case opts.Session != "":
		return showSession(ctx, formatter, st, opts.Session)
	case opts.Diagram != "":
		return showReaching(ctx, formatter, st, opts.Diagram)
	default:
		return listSessions(ctx, formatter, st)
	}
}

func listSessions(ctx context.Context, f *OutputFormatter, st *store.Store) error {
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to list sessions", err)
	}
	if f.IsJSON() {
		return f.Success(sessions)
	}

	w := f.Writer
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions found in database.")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  %s, %d rejected, final %s\n",
			s.Token, plural(s.Steps, "step"), s.Rejected, shortID(s.FinalID))
	}
	return nil
}

func showSession(ctx context.Context, f *OutputFormatter, st *store.Store, token string) error {
	sess, err := resolveSession(ctx, f, st, token)
	if err != nil {
		return err
	}
	steps, err := st.ReadSteps(ctx, sess.Token)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to read steps", err)
	}
	if f.IsJSON() {
		return f.Encode(CLIResponse{Status: "ok", Data: SessionHistory{Session: sess, Steps: steps}, Session: sess.Token})
	}

	w := f.Writer
	styles := newStyles(w)
	fmt.Fprintf(w, "session %s (engine %s)\n", sess.Token, sess.EngineVersion)
	fmt.Fprintf(w, "  start %s\n", shortID(sess.InitialID))
	for _, step := range steps {
		fmt.Fprintf(w, "%s %3d %-24s %s", styles.status(step.Outcome == ir.OutcomeOK), step.Seq, step.Move, shortID(step.DiagramID))
		if step.Code != "" {
			fmt.Fprintf(w, " (%s)", step.Code)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func showReaching(ctx context.Context, f *OutputFormatter, st *store.Store, id string) error {
	steps, err := st.StepsReaching(ctx, id)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to query steps", err)
	}
	if f.IsJSON() {
		return f.Success(steps)
	}

	w := f.Writer
	if len(steps) == 0 {
		fmt.Fprintf(w, "No steps reached %s.\n", shortID(id))
		return nil
	}
	for _, step := range steps {
		fmt.Fprintf(w, "%s #%d %s\n", step.SessionToken, step.Seq, step.Move)
	}
	return nil
}

// shortID abbreviates a diagram ID for text output.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
