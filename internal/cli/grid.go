package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/roach88/knots/internal/grid"
	"github.com/roach88/knots/internal/gridio"
)

// GridIssue describes why a grid file does not hold a valid diagram.
type GridIssue struct {
	Code    string `json:"code"`
	Index   *int   `json:"index,omitempty"`
	Message string `json:"message"`
}

// GridReport summarizes one grid file.
type GridReport struct {
	Path       string     `json:"path"`
	Valid      bool       `json:"valid"`
	Size       int        `json:"size,omitempty"`
	Components int        `json:"components,omitempty"`
	Crossings  int        `json:"crossings,omitempty"`
	Issue      *GridIssue `json:"issue,omitempty"`
}

// checkGrid loads path and reports on its contents. Content problems
// (format, unknown markers, invariant violations) land in the report; the
// returned error is reserved for files that cannot be read at all.
func checkGrid(path string) (GridReport, *grid.Diagram, error) {
	report := GridReport{Path: path}

	d, err := gridio.Load(path)
	if err != nil {
		issue := gridIssue(err)
		if issue == nil {
			return report, nil, err
		}
		report.Issue = issue
		return report, nil, nil
	}

	report.Valid = true
	report.Size = d.Size()
	report.Components = d.ComponentCount()
	report.Crossings = len(d.Crossings())
	return report, d, nil
}

func gridIssue(err error) *GridIssue {
	var (
		gErr  *grid.Error
		umErr *gridio.UnknownMarkerError
		fErr  *gridio.FormatError
	)
	switch {
	case errors.As(err, &gErr):
		issue := &GridIssue{Code: string(gErr.Code), Message: gErr.Message}
		if gErr.Index >= 0 {
			idx := gErr.Index
			issue.Index = &idx
		}
		return issue
	case errors.As(err, &umErr):
		return &GridIssue{Code: "UNKNOWN_MARKER", Message: umErr.Error()}
	case errors.As(err, &fErr):
		return &GridIssue{Code: "MALFORMED_FILE", Message: fErr.Error()}
	}
	return nil
}

// loadGrid loads a diagram for commands that need a valid one, reporting
// any failure through f.
func loadGrid(f *OutputFormatter, path string) (*grid.Diagram, error) {
	report, d, err := checkGrid(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("grid file not found: %s", path), nil)
	case err != nil:
		return nil, f.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to load grid", err)
	case report.Issue != nil:
		return nil, f.Fail(ExitFailure, ErrCodeInvalidGrid, fmt.Sprintf("invalid grid: %s: %s", report.Issue.Code, report.Issue.Message), nil)
	}
	f.VerboseLog("Loaded %dx%d grid from %s", d.Size(), d.Size(), path)
	return d, nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}
