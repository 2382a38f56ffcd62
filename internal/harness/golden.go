package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/knots/internal/grid"
	"github.com/roach88/knots/internal/ir"
)

// Snapshot captures everything a scenario run observably produced.
// It serializes through canonical JSON so golden files are byte-stable.
type Snapshot struct {
	ScenarioName string
	Session      string
	InitialID    string
	Trace        []ir.Step
	Final        *grid.Diagram
}

// NewSnapshot builds a snapshot from a finished run.
func NewSnapshot(name, session string, result *Result) Snapshot {
	return Snapshot{
		ScenarioName: name,
		Session:      session,
		InitialID:    result.InitialID,
		Trace:        result.Trace,
		Final:        result.Final,
	}
}

// Object converts the snapshot into a canonical object.
func (s Snapshot) Object() ir.Object {
	steps := make(ir.Array, len(s.Trace))
	for i, st := range s.Trace {
		steps[i] = st.Object()
	}

	obj := ir.Object{
		"scenario":   ir.String(s.ScenarioName),
		"initial_id": ir.String(s.InitialID),
		"steps":      steps,
	}
	if s.Session != "" {
		obj["session"] = ir.String(s.Session)
	}
	if s.Final != nil {
		obj["final"] = diagramObject(s.Final)
	}
	return obj
}

func diagramObject(d *grid.Diagram) ir.Object {
	segs := d.Segments()
	segList := make(ir.Array, len(segs))
	for i, sg := range segs {
		segList[i] = ir.Object{
			"orientation": ir.String(sg.Orientation.String()),
			"index":       ir.Int(sg.Index),
			"from":        point(sg.From),
			"to":          point(sg.To),
		}
	}

	crossings := d.Crossings()
	crossList := make(ir.Array, len(crossings))
	for i, c := range crossings {
		crossList[i] = ir.Object{
			"at":    point(c.At),
			"over":  ir.Int(c.Over),
			"under": ir.Int(c.Under),
		}
	}

	return ir.Object{
		"size":       ir.Int(d.Size()),
		"rows":       ir.Strings(d.Rows()),
		"components": ir.Int(d.ComponentCount()),
		"segments":   segList,
		"crossings":  crossList,
	}
}

func point(p grid.Point) ir.Array {
	return ir.Array{ir.Int(p.Row), ir.Int(p.Col)}
}

// MarshalSnapshot serializes the snapshot of a finished scenario run.
func MarshalSnapshot(scenario *Scenario, result *Result) ([]byte, error) {
	return ir.MarshalCanonical(NewSnapshot(scenario.Name, scenario.Session, result).Object())
}

// GoldenPath returns where the golden file for a scenario file lives:
// a golden/ directory next to it, named after the scenario file.
func GoldenPath(scenarioFile string) string {
	base := strings.TrimSuffix(filepath.Base(scenarioFile), filepath.Ext(scenarioFile))
	return filepath.Join(filepath.Dir(scenarioFile), "golden", base+".golden")
}

// UpdateGolden writes data to path, creating the directory if needed.
func UpdateGolden(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create golden dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write golden: %w", err)
	}
	return nil
}

// CompareGolden reports whether data matches the golden file at path.
// A missing golden file is an error.
func CompareGolden(path string, data []byte) (bool, error) {
	want, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read golden: %w", err)
	}
	return bytes.Equal(want, data), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	data, err := MarshalSnapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := ir.MarshalCanonical(NewSnapshot(scenarioName, "", result).Object())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
