package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <grid>",
		Short: "Check that a grid file holds a valid diagram",
		Long: `Validate a .csv or .cue grid file.

A valid grid is square and has exactly one X and one O in every row and
every column. The first violation is reported with its row or column.

Exit codes:
  0 - Grid is valid
  1 - Grid is malformed or violates the one-X-one-O rule
  2 - Command error (file not found, unreadable)

Examples:
  knots validate trefoil.csv
  knots validate hopf.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	report, _, err := checkGrid(path)
	if errors.Is(err, fs.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("grid file not found: %s", path), nil)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to read grid", err)
	}

	if err := writeGridReport(formatter, report); err != nil {
		return err
	}
	if !report.Valid {
		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed: %s", report.Issue.Code))
	}
	return nil
}

// writeGridReport prints one report line (text) or envelope (json).
func writeGridReport(f *OutputFormatter, report GridReport) error {
	if f.IsJSON() {
		resp := CLIResponse{Status: "ok", Data: report}
		if !report.Valid {
			resp.Status = "error"
			resp.Error = &CLIError{Code: ErrCodeInvalidGrid, Message: report.Issue.Message}
		}
		return f.Encode(resp)
	}

	st := newStyles(f.Writer)
	if report.Valid {
		fmt.Fprintf(f.Writer, "%s %s: valid %dx%d grid, %s, %s\n",
			st.status(true), report.Path, report.Size, report.Size,
			plural(report.Components, "component"), plural(report.Crossings, "crossing"))
		return nil
	}

	fmt.Fprintf(f.Writer, "%s %s: %s", st.status(false), report.Path, report.Issue.Code)
	if report.Issue.Index != nil {
		fmt.Fprintf(f.Writer, " at index %d", *report.Issue.Index)
	}
	fmt.Fprintf(f.Writer, "\n  %s\n", report.Issue.Message)
	return nil
}
