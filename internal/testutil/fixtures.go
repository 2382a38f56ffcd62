package testutil

import (
	"math/rand"

	"github.com/roach88/knots/internal/grid"
)

// Row layouts for the standard fixture diagrams.
var (
	// UnknotRows is the smallest grid diagram: a single square loop.
	UnknotRows = []string{"xo", "ox"}

	// TrefoilRows encodes a trefoil with three crossings.
	TrefoilRows = []string{"x.o..", ".x.o.", "..x.o", "o..x.", ".o..x"}

	// HopfRows encodes the two-component Hopf link.
	HopfRows = []string{"x.o.", ".x.o", "o.x.", ".o.x"}

	// UnlinkRows encodes two split unknots.
	UnlinkRows = []string{"xo..", "ox..", "..xo", "..ox"}
)

// Unknot returns a fresh 2x2 unknot diagram.
func Unknot() *grid.Diagram { return grid.MustFromRows(UnknotRows...) }

// Trefoil returns a fresh 5x5 trefoil diagram.
func Trefoil() *grid.Diagram { return grid.MustFromRows(TrefoilRows...) }

// Hopf returns a fresh 4x4 Hopf link diagram.
func Hopf() *grid.Diagram { return grid.MustFromRows(HopfRows...) }

// Unlink returns a fresh 4x4 two-component unlink diagram.
func Unlink() *grid.Diagram { return grid.MustFromRows(UnlinkRows...) }

// RandomDiagram returns a valid n-by-n diagram (n >= 2) built from two random
// permutations that never place both markers in the same cell.
//
// The same rng seed always yields the same diagram.
func RandomDiagram(rng *rand.Rand, n int) *grid.Diagram {
	for {
		xs := rng.Perm(n)
		oCols := rng.Perm(n)
		clash := false
		for r := range xs {
			if xs[r] == oCols[r] {
				clash = true
				break
			}
		}
		if clash {
			continue
		}
		rows := make([][]grid.Marker, n)
		for r := range rows {
			rows[r] = make([]grid.Marker, n)
			rows[r][xs[r]] = grid.X
			rows[r][oCols[r]] = grid.O
		}
		d, err := grid.New(rows)
		if err != nil {
			panic(err)
		}
		return d
	}
}
