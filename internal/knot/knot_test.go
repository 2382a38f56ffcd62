package knot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/knots/internal/grid"
	"github.com/roach88/knots/internal/testutil"
)

func v(row, col int) Vertex { return Vertex{Point: grid.Point{Row: row, Col: col}} }
func lifted(row, col int) Vertex {
	return Vertex{Point: grid.Point{Row: row, Col: col}, Lifted: true}
}

func TestFromDiagram_Unknot(t *testing.T) {
	k := FromDiagram(testutil.Unknot())
	require.Len(t, k.Strands, 1)
	assert.Equal(t, []Vertex{v(0, 0), v(1, 0), v(1, 1), v(0, 1)}, k.Strands[0].Vertices)
	assert.Empty(t, k.Crossings)
	assert.Equal(t, 0, k.LiftedCount())
}

func TestFromDiagram_Trefoil(t *testing.T) {
	k := FromDiagram(testutil.Trefoil())
	require.Len(t, k.Strands, 1)
	assert.Equal(t, []Vertex{
		v(0, 0), v(3, 0),
		v(3, 3), lifted(2, 3), v(1, 3),
		v(1, 1), lifted(3, 1), v(4, 1),
		v(4, 4), v(2, 4),
		v(2, 2), lifted(1, 2), v(0, 2),
	}, k.Strands[0].Vertices)
	assert.Equal(t, 3, k.LiftedCount())
	assert.Len(t, k.Crossings, 3)
}

func TestFromDiagram_CrossingsFollowTravelDirection(t *testing.T) {
	d := grid.MustFromRows("o.x..", "..ox.", ".o..x", "x...o", ".x.o.")
	k := FromDiagram(d)
	require.Len(t, k.Strands, 1)
	assert.Equal(t, []Vertex{
		v(3, 0), v(0, 0),
		v(0, 2), v(1, 2),
		v(1, 3), lifted(2, 3), lifted(3, 3), v(4, 3),
		v(4, 1), lifted(3, 1), v(2, 1),
		v(2, 4), v(3, 4),
	}, k.Strands[0].Vertices)
}

func TestFromDiagram_Link(t *testing.T) {
	k := FromDiagram(testutil.Hopf())
	require.Len(t, k.Strands, 2)
	assert.Equal(t, 2, k.LiftedCount())
	assert.Equal(t, 4, k.Size)
}
