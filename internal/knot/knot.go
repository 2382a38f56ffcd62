// Package knot turns a grid diagram into the ordered vertex paths a
// renderer consumes.
//
// Each link component becomes a closed Strand. Crossing points are inserted
// into the vertical (over) segment that passes through them, in travel
// order, and flagged Lifted so the display side can raise them off the
// projection plane. Relaxation, meshing and drawing are the renderer's job.
package knot

import (
	"sort"

	"github.com/roach88/knots/internal/grid"
)

// Vertex is one point of a strand in grid coordinates.
type Vertex struct {
	grid.Point
	Lifted bool `json:"lifted,omitempty"`
}

// Strand is one closed link component. The last vertex connects back to
// the first; it is not repeated.
type Strand struct {
	Vertices []Vertex `json:"vertices"`
}

// Knot is the render-ready path of a diagram.
type Knot struct {
	Size      int             `json:"size"`
	Strands   []Strand        `json:"strands"`
	Crossings []grid.Crossing `json:"crossings"`
}

// FromDiagram derives the strands of d. Strand order and start points
// follow grid.Diagram.Components.
func FromDiagram(d *grid.Diagram) *Knot {
	crossings := d.Crossings()

	// Crossing rows per over-column.
	byColumn := make(map[int][]int)
	for _, c := range crossings {
		byColumn[c.Over] = append(byColumn[c.Over], c.At.Row)
	}

	k := &Knot{Size: d.Size(), Crossings: crossings}
	for _, corners := range d.Components() {
		var s Strand
		for i := 0; i+1 < len(corners); i += 2 {
			from, to := corners[i], corners[i+1]
			s.Vertices = append(s.Vertices, Vertex{Point: from})

			rows := append([]int(nil), byColumn[from.Col]...)
			if from.Row < to.Row {
				sort.Ints(rows)
			} else {
				sort.Sort(sort.Reverse(sort.IntSlice(rows)))
			}
			for _, r := range rows {
				s.Vertices = append(s.Vertices, Vertex{Point: grid.Point{Row: r, Col: from.Col}, Lifted: true})
			}

			s.Vertices = append(s.Vertices, Vertex{Point: to})
		}
		k.Strands = append(k.Strands, s)
	}
	return k
}

// LiftedCount returns the number of lifted vertices across all strands.
// Every crossing is lifted exactly once.
func (k *Knot) LiftedCount() int {
	n := 0
	for _, s := range k.Strands {
		for _, v := range s.Vertices {
			if v.Lifted {
				n++
			}
		}
	}
	return n
}
