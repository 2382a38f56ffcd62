// Command knots validates, inspects and edits knot grid diagrams.
//
// Usage:
//
//	knots validate trefoil.csv
//	knots apply trefoil.csv -m "translate up" -m "commute row 1" --db knots.db
//	knots replay --db knots.db
//	knots test ./scenarios
package main

import (
	"fmt"
	"os"

	"github.com/roach88/knots/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "knots: %v\n", err)
	}
	return cli.GetExitCode(err)
}
