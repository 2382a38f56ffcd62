package move

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want Move
		text string
	}{
		{"translate up", Translation{Direction: Up}, "translate up"},
		{"TRANSLATE Left", Translation{Direction: Left}, "translate left"},
		{"commute row 2", Commutation{Axis: Row, Index: 2}, "commute row 2"},
		{"commute column 0", Commutation{Axis: Column, Index: 0}, "commute col 0"},
		{"  stabilize  NE 1 3 ", Stabilization{Corner: NE, Row: 1, Col: 3}, "stabilize ne 1 3"},
		{"destabilize sw 0 4", Destabilization{Corner: SW, Row: 0, Col: 4}, "destabilize sw 0 4"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
			assert.Equal(t, tt.text, m.String())

			again, err := Parse(m.String())
			require.NoError(t, err)
			assert.Equal(t, m, again)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"rotate up",
		"translate",
		"translate north",
		"commute row",
		"commute diagonal 1",
		"commute row one",
		"stabilize ne 1",
		"stabilize up 1 2",
		"stabilize ne x 2",
		"stabilize ne 1 y",
		"destabilize nw 0",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.Equal(t, ErrCodeInvalidNotation, CodeOf(err))
		})
	}
}

func TestParseAll(t *testing.T) {
	moves, err := ParseAll([]string{"translate up", "commute col 1"})
	require.NoError(t, err)
	assert.Equal(t, []Move{Translation{Direction: Up}, Commutation{Axis: Column, Index: 1}}, moves)

	_, err = ParseAll([]string{"translate up", "bogus"})
	assert.Equal(t, ErrCodeInvalidNotation, CodeOf(err))
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
	assert.Equal(t, Translation{Direction: Down}, MustParse("translate down"))
}

func TestKindAndNames(t *testing.T) {
	assert.Equal(t, KindTranslation, Translation{}.Kind())
	assert.Equal(t, KindCommutation, Commutation{}.Kind())
	assert.Equal(t, KindStabilization, Stabilization{}.Kind())
	assert.Equal(t, KindDestabilization, Destabilization{}.Kind())
	assert.Equal(t, "destabilize", KindDestabilization.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
	assert.Equal(t, "direction(7)", Direction(7).String())
	assert.Equal(t, "axis(4)", Axis(4).String())
	assert.Equal(t, "cardinality(5)", Cardinality(5).String())
}

func TestError_Format(t *testing.T) {
	err := newError(ErrCodeTargetNotX, Stabilization{Corner: NW, Row: 1, Col: 2}, "cell (%d,%d) holds O", 1, 2)
	assert.Equal(t, `TARGET_NOT_X: cell (1,2) holds O (move="stabilize nw 1 2")`, err.Error())
	assert.Equal(t, ErrorCode(""), CodeOf(assert.AnError))
	assert.False(t, IsTopological(nil))
}
