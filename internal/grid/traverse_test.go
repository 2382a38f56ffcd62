package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponents_Trefoil(t *testing.T) {
	d := MustFromRows(trefoilRows...)
	assert.Equal(t, [][]Point{{
		{0, 0}, {3, 0}, {3, 3}, {1, 3}, {1, 1},
		{4, 1}, {4, 4}, {2, 4}, {2, 2}, {0, 2},
	}}, d.Components())
}

func TestComponents_Links(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		comps [][]Point
	}{
		{
			name:  "hopf",
			rows:  hopfRows,
			comps: [][]Point{{{0, 0}, {2, 0}, {2, 2}, {0, 2}}, {{1, 1}, {3, 1}, {3, 3}, {1, 3}}},
		},
		{
			name:  "split unlink",
			rows:  []string{"xo..", "ox..", "..xo", "..ox"},
			comps: [][]Point{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, {{2, 2}, {3, 2}, {3, 3}, {2, 3}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MustFromRows(tt.rows...)
			assert.Equal(t, tt.comps, d.Components())
			assert.Equal(t, len(tt.comps), d.ComponentCount())
		})
	}
}

func TestComponents_CoverEveryMarkerOnce(t *testing.T) {
	d := MustFromRows(trefoilRows...)
	seen := map[Point]bool{}
	for _, comp := range d.Components() {
		for i, p := range comp {
			assert.False(t, seen[p], "corner %v visited twice", p)
			seen[p] = true
			want := X
			if i%2 == 1 {
				want = O
			}
			assert.Equal(t, want, d.At(p.Row, p.Col))
		}
	}
	assert.Len(t, seen, 2*d.Size())
}
