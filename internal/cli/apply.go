package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/knots/internal/engine"
	"github.com/roach88/knots/internal/grid"
	"github.com/roach88/knots/internal/gridio"
	"github.com/roach88/knots/internal/ir"
	"github.com/roach88/knots/internal/move"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Moves       []string
	Database    string
	Out         string
	StopOnError bool
	MaxSteps    int
	MaxSize     int

	// Tokens allows overriding the session token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens engine.TokenGenerator
}

// ApplyResult is the JSON payload of the apply command.
type ApplyResult struct {
	Session   string    `json:"session"`
	InitialID string    `json:"initial_id"`
	Steps     []ir.Step `json:"steps"`
	Rejected  int       `json:"rejected"`
	FinalID   string    `json:"final_id"`
	Rows      []string  `json:"rows"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	return newApplyCommand(&ApplyOptions{RootOptions: rootOpts})
}

func newApplyCommand(opts *ApplyOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <grid> --move <notation>...",
		Short: "Apply Cromwell moves to a grid",
		Long: `Apply a sequence of Cromwell moves to a grid diagram.

Moves are written as:
  translate up|down|left|right
  commute row|col <k>
  stabilize nw|ne|sw|se <row> <col>

A rejected move leaves the diagram unchanged and the run continues unless
--stop-on-error is set. With --db every step is recorded for history and
replay; with --out the final diagram is written as CSV.

Exit codes:
  0 - All moves applied
  1 - One or more moves rejected, or a session limit was hit
  2 - Command error (bad notation, unreadable grid, database error)

Examples:
  knots apply trefoil.csv --move "translate up" --move "commute col 0"
  knots apply unknot.csv --move "stabilize ne 0 0" --out bigger.csv --db knots.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Moves, "move", "m", nil, "move to apply (repeatable, applied in order)")
	_ = cmd.MarkFlagRequired("move")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the session to this SQLite database")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the final diagram to this CSV file")
	cmd.Flags().BoolVar(&opts.StopOnError, "stop-on-error", false, "stop at the first rejected move")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", engine.DefaultMaxSteps, "maximum move attempts (0 = unlimited)")
	cmd.Flags().IntVar(&opts.MaxSize, "max-size", 0, "refuse stabilizations beyond this grid size (0 = unlimited)")

	return cmd
}

func runApply(opts *ApplyOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	moves, err := move.ParseAll(opts.Moves)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotation, "invalid move", err)
	}

	d, err := loadGrid(formatter, path)
	if err != nil {
		return err
	}

	sessOpts := []engine.Option{engine.WithMaxSteps(opts.MaxSteps), engine.WithMaxSize(opts.MaxSize)}
	if opts.Tokens != nil {
		sessOpts = append(sessOpts, engine.WithTokenGenerator(opts.Tokens))
	}
	if opts.Database != "" {
		st, err := openStore(formatter, opts.Database, false)
		if err != nil {
			return err
		}
		defer closeStore(st)
		sessOpts = append(sessOpts, engine.WithRecorder(st))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sess, err := engine.NewSession(ctx, d, sessOpts...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to start session", err)
	}

	steps, runErr := sess.Run(ctx, moves, opts.StopOnError)
	var me *move.Error
	if runErr != nil && !errors.As(runErr, &me) {
		switch {
		case engine.IsRecordError(runErr):
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to record step", runErr)
		case engine.IsQuotaError(runErr), engine.IsSizeLimitError(runErr):
			slog.Info("session limit reached", "session", sess.Token(), "applied", len(steps))
		default:
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, "session aborted", runErr)
		}
	}

	final := sess.Diagram()
	if opts.Out != "" {
		if err := gridio.SaveCSV(opts.Out, final); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write grid", err)
		}
		formatter.VerboseLog("Wrote final grid to %s", opts.Out)
	}

	finalRec, err := engine.Snapshot(final)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to hash grid", err)
	}
	result := ApplyResult{
		Session:   sess.Token(),
		InitialID: sess.Initial().ID,
		Steps:     steps,
		FinalID:   finalRec.ID,
		Rows:      finalRec.Rows,
	}
	if result.Steps == nil {
		result.Steps = []ir.Step{}
	}
	for _, st := range steps {
		if st.Outcome == ir.OutcomeRejected {
			result.Rejected++
		}
	}

	var failure *ExitError
	switch {
	case runErr != nil && me == nil:
		failure = WrapExitError(ExitFailure, "session limit reached", runErr)
	case result.Rejected > 0:
		failure = NewExitError(ExitFailure, fmt.Sprintf("%d move(s) rejected", result.Rejected))
	}

	if formatter.IsJSON() {
		resp := CLIResponse{Status: "ok", Data: result, Session: result.Session}
		if failure != nil {
			resp.Status = "error"
			resp.Error = &CLIError{Code: ErrCodeRejected, Message: failure.Error()}
		}
		if err := formatter.Encode(resp); err != nil {
			return err
		}
	} else {
		writeApplyText(formatter, result, final)
		if failure != nil {
			fmt.Fprintln(formatter.Writer, failure.Error())
		}
	}

	if failure != nil {
		return failure
	}
	return nil
}

func writeApplyText(f *OutputFormatter, result ApplyResult, final *grid.Diagram) {
	w := f.Writer
	st := newStyles(w)
	fmt.Fprintf(w, "session %s\n", result.Session)
	for _, step := range result.Steps {
		line := fmt.Sprintf("%s %3d %s", st.status(step.Outcome == ir.OutcomeOK), step.Seq, step.Move)
		if step.Code != "" {
			line += fmt.Sprintf(" (%s)", step.Code)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, st.grid(final))
	fmt.Fprintf(w, "%s, %d rejected, final size %d\n", plural(len(result.Steps), "move"), result.Rejected, final.Size())
}
