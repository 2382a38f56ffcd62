package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/knots/internal/engine"
)

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	ID         string   `json:"id"`
	Size       int      `json:"size"`
	Rows       []string `json:"rows"`
	Components int      `json:"components"`
	Crossings  int      `json:"crossings"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <grid>",
		Short: "Render a grid diagram",
		Long: `Render a grid diagram with its content-addressed ID, component count
and crossing count.

Examples:
  knots show trefoil.csv
  knots show trefoil.csv --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runShow(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	d, err := loadGrid(formatter, path)
	if err != nil {
		return err
	}
	rec, err := engine.Snapshot(d)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to hash grid", err)
	}

	result := ShowResult{
		ID:         rec.ID,
		Size:       rec.Size,
		Rows:       rec.Rows,
		Components: d.ComponentCount(),
		Crossings:  len(d.Crossings()),
	}
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintln(w, newStyles(w).grid(d))
	fmt.Fprintf(w, "size %d, %s, %s\n", result.Size,
		plural(result.Components, "component"), plural(result.Crossings, "crossing"))
	fmt.Fprintf(w, "id %s\n", result.ID)
	return nil
}
