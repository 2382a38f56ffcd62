package move

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/knots/internal/grid"
	"github.com/roach88/knots/internal/testutil"
)

func TestTranslation_Trefoil(t *testing.T) {
	tests := []struct {
		dir  Direction
		want []string
	}{
		{Up, []string{".x.o.", "..x.o", "o..x.", ".o..x", "x.o.."}},
		{Down, []string{".o..x", "x.o..", ".x.o.", "..x.o", "o..x."}},
		{Left, []string{".o..x", "x.o..", ".x.o.", "..x.o", "o..x."}},
		{Right, []string{".x.o.", "..x.o", "o..x.", ".o..x", "x.o.."}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			d := testutil.Trefoil()
			require.NoError(t, Apply(Translation{Direction: tt.dir}, d))
			assert.Equal(t, tt.want, d.Rows())
			assert.Len(t, d.Crossings(), 3)
			assert.Equal(t, 1, d.ComponentCount())
		})
	}
}

func TestTranslation_IsBijection(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pairs := [][2]Direction{{Up, Down}, {Down, Up}, {Left, Right}, {Right, Left}}

	for i := 0; i < 50; i++ {
		d := testutil.RandomDiagram(rng, 2+rng.Intn(7))
		before := d.Rows()
		for _, p := range pairs {
			require.NoError(t, Apply(Translation{Direction: p[0]}, d))
			require.NoError(t, Apply(Translation{Direction: p[1]}, d))
			assert.Equal(t, before, d.Rows())
		}
	}
}

func TestTranslation_FullCycleIsIdentity(t *testing.T) {
	d := testutil.Trefoil()
	for i := 0; i < d.Size(); i++ {
		require.NoError(t, Apply(Translation{Direction: Left}, d))
	}
	assert.Equal(t, testutil.TrefoilRows, d.Rows())
}

func TestTranslation_UnknownDirection(t *testing.T) {
	d := testutil.Trefoil()
	err := Apply(Translation{Direction: Direction(9)}, d)
	assert.Equal(t, ErrCodeUnsupportedMove, CodeOf(err))
	assert.Equal(t, testutil.TrefoilRows, d.Rows())
}

func TestCommutation_UnknotRowsInterleaved(t *testing.T) {
	d := testutil.Unknot()

	err := Apply(Commutation{Axis: Row, Index: 0}, d)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInterleavedRows, CodeOf(err))
	assert.True(t, IsTopological(err))
	assert.Equal(t, testutil.UnknotRows, d.Rows())

	err = Apply(Commutation{Axis: Column, Index: 0}, d)
	assert.Equal(t, ErrCodeInterleavedColumns, CodeOf(err))
	assert.Equal(t, testutil.UnknotRows, d.Rows())
}

func TestCommutation_IndexOutOfRange(t *testing.T) {
	for _, k := range []int{-1, 1, 2, 50} {
		d := testutil.Unknot()
		err := Apply(Commutation{Axis: Row, Index: k}, d)
		assert.Equal(t, ErrCodeIndexOutOfRange, CodeOf(err), "index %d", k)
		assert.Equal(t, testutil.UnknotRows, d.Rows())
	}
}

func TestCommutation_DisjointRows(t *testing.T) {
	d := testutil.Unlink()

	require.NoError(t, Apply(Commutation{Axis: Row, Index: 1}, d))
	assert.Equal(t, []string{"xo..", "..xo", "ox..", "..ox"}, d.Rows())
	assert.Equal(t, 2, d.ComponentCount())
	assert.Empty(t, d.Crossings())

	require.NoError(t, Apply(Commutation{Axis: Row, Index: 1}, d))
	assert.Equal(t, testutil.UnlinkRows, d.Rows())
}

func TestCommutation_DisjointColumns(t *testing.T) {
	d := testutil.Unlink()
	require.NoError(t, Apply(Commutation{Axis: Column, Index: 1}, d))
	assert.Equal(t, []string{"x.o.", "o.x.", ".x.o", ".o.x"}, d.Rows())
}

func TestCommutation_StabilizedTrefoil(t *testing.T) {
	d := grid.MustFromRows("x..o..", "ox....", "..x.o.", "...x.o", ".o..x.", "..o..x")

	require.NoError(t, Apply(Commutation{Axis: Row, Index: 1}, d))
	assert.Equal(t, []string{"x..o..", "..x.o.", "ox....", "...x.o", ".o..x.", "..o..x"}, d.Rows())
	assert.Len(t, d.Crossings(), 3)
	assert.Equal(t, 1, d.ComponentCount())
}

func TestCommutation_NestedIntervalsRejected(t *testing.T) {
	// Row 0 spans [0,3] and row 1 spans [1,2].
	d := grid.MustFromRows("x..o", ".xo.", "o.x.", ".o.x")
	err := Apply(Commutation{Axis: Row, Index: 0}, d)
	assert.Equal(t, ErrCodeInterleavedRows, CodeOf(err))
}

func TestCommutation_TrefoilAllInterleaved(t *testing.T) {
	d := testutil.Trefoil()
	for _, axis := range []Axis{Row, Column} {
		for k := 0; k < 4; k++ {
			err := Apply(Commutation{Axis: axis, Index: k}, d)
			assert.True(t, IsTopological(err), "%s %d", axis, k)
		}
	}
	assert.Equal(t, testutil.TrefoilRows, d.Rows())
}

func TestCommutation_Reversible(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	swaps := 0

	for i := 0; i < 300; i++ {
		d := testutil.RandomDiagram(rng, 3+rng.Intn(6))
		before := d.Rows()
		m := Commutation{Axis: Axis(rng.Intn(2)), Index: rng.Intn(d.Size() - 1)}

		if err := Apply(m, d); err != nil {
			assert.True(t, IsTopological(err))
			assert.Equal(t, before, d.Rows())
			continue
		}
		swaps++
		require.NoError(t, Apply(m, d))
		assert.Equal(t, before, d.Rows())
	}
	assert.Positive(t, swaps)
}

func TestStabilization_Unknot(t *testing.T) {
	tests := []struct {
		corner    Cardinality
		want      []string
		crossings int
	}{
		{NW, []string{".xo", "xo.", "o.x"}, 0},
		{NE, []string{"x.o", "ox.", ".ox"}, 0},
		{SW, []string{"xo.", ".xo", "o.x"}, 0},
		{SE, []string{"ox.", "x.o", ".ox"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.corner.String(), func(t *testing.T) {
			d := testutil.Unknot()
			require.NoError(t, Apply(Stabilization{Corner: tt.corner, Row: 0, Col: 0}, d))
			assert.Equal(t, 3, d.Size())
			assert.Equal(t, tt.want, d.Rows())
			assert.NoError(t, d.Validate())
			assert.Equal(t, 1, d.ComponentCount())
			assert.Len(t, d.Crossings(), tt.crossings)
		})
	}
}

func TestStabilization_BlockLayout(t *testing.T) {
	// Blank corner NE at the target (2,2): block rows {2,3}, cols {2,3}.
	d := testutil.Trefoil()
	require.NoError(t, Apply(Stabilization{Corner: NE, Row: 2, Col: 2}, d))

	assert.Equal(t, []string{"x..o..", ".x..o.", "..x..o", "..ox..", "o...x.", ".o...x"}, d.Rows())
	assert.Equal(t, grid.X, d.At(2, 2))
	assert.Equal(t, grid.Blank, d.At(2, 3))
	assert.Equal(t, grid.O, d.At(3, 2))
	assert.Equal(t, grid.X, d.At(3, 3))
}

func TestStabilization_Trefoil(t *testing.T) {
	for _, corner := range []Cardinality{NW, NE, SW, SE} {
		for _, p := range [][2]int{{0, 0}, {2, 2}, {4, 4}} {
			d := testutil.Trefoil()
			require.NoError(t, Apply(Stabilization{Corner: corner, Row: p[0], Col: p[1]}, d))
			assert.Equal(t, 6, d.Size())
			assert.Equal(t, 1, d.ComponentCount())
			n := len(d.Crossings())
			assert.True(t, n == 3 || n == 4, "%s at %v: %d crossings", corner, p, n)
		}
	}
}

func TestStabilization_GrowsByOne(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 200; i++ {
		d := testutil.RandomDiagram(rng, 2+rng.Intn(7))
		n := d.Size()
		comps := d.ComponentCount()

		r := rng.Intn(n)
		xCol, _ := d.Row(r)
		m := Stabilization{Corner: Cardinality(rng.Intn(4)), Row: r, Col: xCol}

		require.NoError(t, Apply(m, d), m.String())
		assert.Equal(t, n+1, d.Size())
		assert.NoError(t, d.Validate())
		assert.Equal(t, comps, d.ComponentCount(), m.String())
	}
}

func TestStabilization_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		m    Stabilization
		code ErrorCode
	}{
		{"target is O", Stabilization{Corner: NW, Row: 0, Col: 2}, ErrCodeTargetNotX},
		{"target blank", Stabilization{Corner: NW, Row: 0, Col: 3}, ErrCodeTargetNotX},
		{"row out of range", Stabilization{Corner: NW, Row: 5, Col: 0}, ErrCodeIndexOutOfRange},
		{"negative col", Stabilization{Corner: SE, Row: 0, Col: -1}, ErrCodeIndexOutOfRange},
		{"unknown corner", Stabilization{Corner: Cardinality(8), Row: 0, Col: 0}, ErrCodeUnsupportedMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testutil.Trefoil()
			err := Apply(tt.m, d)
			assert.Equal(t, tt.code, CodeOf(err))
			assert.Equal(t, testutil.TrefoilRows, d.Rows())
		})
	}
}

func TestDestabilization_AlwaysFails(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 50; i++ {
		d := testutil.RandomDiagram(rng, 2+rng.Intn(6))
		before := d.Rows()
		m := Destabilization{Corner: Cardinality(rng.Intn(4)), Row: rng.Intn(d.Size()), Col: rng.Intn(d.Size())}

		err := Apply(m, d)
		require.Error(t, err)
		assert.True(t, IsUnsupported(err))
		assert.Equal(t, before, d.Rows())
	}
}

func TestApply_AtomicOnFailure(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	failures := 0

	for i := 0; i < 500; i++ {
		d := testutil.RandomDiagram(rng, 2+rng.Intn(6))
		n := d.Size()
		before := d.Cells()
		m := randomMove(rng, n)

		if err := Apply(m, d); err != nil {
			failures++
			assert.Equal(t, n, d.Size())
			assert.Equal(t, before, d.Cells(), "move %s", m)
			assert.NotEmpty(t, CodeOf(err))
		} else {
			assert.NoError(t, d.Validate())
		}
	}
	assert.Positive(t, failures)
}

func TestApply_NilInputs(t *testing.T) {
	assert.Equal(t, ErrCodeIndexOutOfRange, CodeOf(Apply(Translation{Direction: Up}, nil)))

	d := testutil.Unknot()
	assert.Equal(t, ErrCodeUnsupportedMove, CodeOf(Apply(nil, d)))
	assert.Equal(t, testutil.UnknotRows, d.Rows())
}

func TestApply_PointerMoves(t *testing.T) {
	d := testutil.Unlink()
	require.NoError(t, Apply(&Commutation{Axis: Row, Index: 1}, d))
	require.NoError(t, Apply(&Translation{Direction: Up}, d))
	require.NoError(t, Apply(&Stabilization{Corner: SW, Row: 3, Col: 0}, d))
	assert.Equal(t, 5, d.Size())
	assert.True(t, IsUnsupported(Apply(&Destabilization{}, d)))
}

func TestPreview_LeavesDiagramUntouched(t *testing.T) {
	d := testutil.Unknot()

	out, err := Preview(Stabilization{Corner: SE, Row: 1, Col: 1}, d)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Size())
	assert.Equal(t, testutil.UnknotRows, d.Rows())

	_, err = Preview(Destabilization{}, d)
	assert.True(t, IsUnsupported(err))

	_, err = Preview(Translation{}, nil)
	assert.Error(t, err)
}

func TestInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for i := 0; i < 100; i++ {
		d := testutil.RandomDiagram(rng, 3+rng.Intn(5))
		before := d.Rows()
		m := randomMove(rng, d.Size())
		inv, ok := Inverse(m)
		if !ok {
			continue
		}
		if err := Apply(m, d); err != nil {
			continue
		}
		require.NoError(t, Apply(inv, d))
		assert.Equal(t, before, d.Rows(), "move %s then %s", m, inv)
	}

	_, ok := Inverse(Stabilization{})
	assert.False(t, ok)
	_, ok = Inverse(Destabilization{})
	assert.False(t, ok)
}

func randomMove(rng *rand.Rand, n int) Move {
	switch rng.Intn(4) {
	case 0:
		return Translation{Direction: Direction(rng.Intn(4))}
	case 1:
		return Commutation{Axis: Axis(rng.Intn(2)), Index: rng.Intn(n+1) - 1}
	case 2:
		return Stabilization{Corner: Cardinality(rng.Intn(4)), Row: rng.Intn(n), Col: rng.Intn(n)}
	default:
		return Destabilization{Corner: Cardinality(rng.Intn(4)), Row: rng.Intn(n), Col: rng.Intn(n)}
	}
}
