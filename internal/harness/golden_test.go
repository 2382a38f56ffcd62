package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/knots/internal/ir"
	"github.com/roach88/knots/internal/testutil"
)

func TestRunWithGolden_UnknotWalk(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "unknot_walk.yaml"))
	require.NoError(t, err)

	// Regenerate with:
	//   go test ./internal/harness -run TestRunWithGolden_UnknotWalk -update
	err = RunWithGolden(t, scenario)
	require.NoError(t, err)
}

func TestMarshalSnapshot_Shape(t *testing.T) {
	scenario := &Scenario{
		Name:        "shape",
		Description: "snapshot of an untouched unknot",
		Rows:        testutil.UnknotRows,
		Assertions:  []Assertion{{Type: AssertValid}},
	}
	result, err := Run(scenario)
	require.NoError(t, err)

	data, err := MarshalSnapshot(scenario, result)
	require.NoError(t, err)

	id := ir.MustDiagramID(2, testutil.UnknotRows)
	assert.Equal(t, `{"final":{"components":1,"crossings":[],"rows":["xo","ox"],"segments":[`+
		`{"from":[0,0],"index":0,"orientation":"vertical","to":[1,0]},`+
		`{"from":[1,1],"index":1,"orientation":"vertical","to":[0,1]},`+
		`{"from":[0,1],"index":0,"orientation":"horizontal","to":[0,0]},`+
		`{"from":[1,0],"index":1,"orientation":"horizontal","to":[1,1]}],"size":2},`+
		`"initial_id":"`+id+`","scenario":"shape","steps":[]}`, string(data))
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "walk.golden"),
		GoldenPath(filepath.Join("scenarios", "walk.yaml")))
}

func TestUpdateAndCompareGolden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden", "walk.golden")

	_, err := CompareGolden(path, []byte("{}"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, UpdateGolden(path, []byte("{}")))

	same, err := CompareGolden(path, []byte("{}"))
	require.NoError(t, err)
	assert.True(t, same)

	same, err = CompareGolden(path, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.False(t, same)
}

func TestAssertGolden_MatchesRunWithGolden(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "unknot_walk.yaml"))
	require.NoError(t, err)
	result, err := Run(scenario)
	require.NoError(t, err)

	fromRun, err := MarshalSnapshot(scenario, result)
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("testdata", "golden", "unknot_walk.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(fromRun))
}
