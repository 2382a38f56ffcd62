package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/knots/internal/grid"
)

// SegmentsResult is the JSON payload of the segments command.
type SegmentsResult struct {
	Segments  []grid.Segment  `json:"segments"`
	Crossings []grid.Crossing `json:"crossings"`
}

// NewSegmentsCommand creates the segments command.
func NewSegmentsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segments <grid>",
		Short: "List segments and crossings",
		Long: `List the vertical (X to O) and horizontal (O to X) segments of a grid
diagram, then every crossing. The vertical strand is always over.

Examples:
  knots segments trefoil.csv
  knots segments trefoil.csv --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSegments(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runSegments(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	d, err := loadGrid(formatter, path)
	if err != nil {
		return err
	}

	result := SegmentsResult{
		Segments:  d.Segments(),
		Crossings: d.Crossings(),
	}
	if result.Crossings == nil {
		result.Crossings = []grid.Crossing{}
	}
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	for _, s := range result.Segments {
		axis := "col"
		if s.Orientation == grid.Horizontal {
			axis = "row"
		}
		fmt.Fprintf(w, "%-10s %s %d: (%d,%d) -> (%d,%d)\n",
			s.Orientation, axis, s.Index, s.From.Row, s.From.Col, s.To.Row, s.To.Col)
	}
	fmt.Fprintf(w, "\n%s\n", plural(len(result.Crossings), "crossing"))
	for _, c := range result.Crossings {
		fmt.Fprintf(w, "  (%d,%d) over col %d, under row %d\n", c.At.Row, c.At.Col, c.Over, c.Under)
	}
	return nil
}
