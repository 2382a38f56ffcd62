package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/knots/internal/grid"
	"github.com/roach88/knots/internal/gridio"
	"github.com/roach88/knots/internal/move"
)

// Scenario is a scripted editing session with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Grid is a .csv or .cue grid file, relative to the scenario file.
	// Exactly one of Grid and Rows must be set.
	Grid string `yaml:"grid,omitempty"`

	// Rows is an inline grid, one string per row over {x, o, .}.
	Rows []string `yaml:"rows,omitempty"`

	// Session is an optional fixed session token. Empty means the
	// testutil default, which keeps golden files stable.
	Session string `yaml:"session,omitempty"`

	// Moves are applied in order. A rejected move does not stop the run.
	Moves []MoveStep `yaml:"moves"`

	// Assertions validate the final diagram and step log.
	Assertions []Assertion `yaml:"assertions"`
}

// MoveStep is one move in notation form with an optional expectation.
type MoveStep struct {
	// Move is the move notation, e.g. "stabilize ne 1 2".
	Move string `yaml:"move"`

	// Expect is "ok", a move error code such as "INTERLEAVED_ROWS", or
	// empty for no check.
	Expect string `yaml:"expect,omitempty"`
}

// Assertion validates the end state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Value is the expected count for size, components, crossings and
	// rejected.
	Value *int `yaml:"value,omitempty"`

	// Rows is the expected final layout for rows.
	Rows []string `yaml:"rows,omitempty"`
}

// Assertion type constants.
const (
	AssertSize       = "size"
	AssertComponents = "components"
	AssertCrossings  = "crossings"
	AssertRejected   = "rejected"
	AssertValid      = "valid"
	AssertRows       = "rows"
)

// ExpectOK is the MoveStep.Expect value for an accepted move.
const ExpectOK = "ok"

// moveCodes are the error codes a MoveStep may expect.
var moveCodes = map[string]bool{
	string(move.ErrCodeInterleavedRows):    true,
	string(move.ErrCodeInterleavedColumns): true,
	string(move.ErrCodeTargetNotX):         true,
	string(move.ErrCodeIndexOutOfRange):    true,
	string(move.ErrCodeUnsupportedMove):    true,
	string(move.ErrCodeInvalidResult):      true,
}

// LoadScenario reads and parses a scenario YAML file. Grid is resolved
// against the scenario file's directory. Returns an error if the file is
// missing, malformed, contains unknown fields (typos), or fails
// validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Grid != "" && !filepath.IsAbs(scenario.Grid) {
		scenario.Grid = filepath.Join(filepath.Dir(path), scenario.Grid)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir, sorted. A
// non-empty filter is a glob matched against the file name without its
// extension.
func FindScenarios(dir, filter string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	sort.Strings(files)
	return files, err
}

// Diagram loads the scenario's starting diagram.
func (s *Scenario) Diagram() (*grid.Diagram, error) {
	if s.Grid != "" {
		return gridio.Load(s.Grid)
	}
	return grid.FromRows(s.Rows...)
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Grid == "" && len(s.Rows) == 0:
		return fmt.Errorf("one of grid or rows is required")
	case s.Grid != "" && len(s.Rows) > 0:
		return fmt.Errorf("grid and rows are mutually exclusive")
	case s.Grid != "":
		if _, err := os.Stat(s.Grid); os.IsNotExist(err) {
			return fmt.Errorf("grid file not found: %s", s.Grid)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Moves {
		if _, err := move.Parse(step.Move); err != nil {
			return fmt.Errorf("moves[%d]: %w", i, err)
		}
		if step.Expect != "" && step.Expect != ExpectOK && !moveCodes[step.Expect] {
			return fmt.Errorf("moves[%d]: unknown expect %q (want %q or a move error code)", i, step.Expect, ExpectOK)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertSize, AssertComponents, AssertCrossings, AssertRejected:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: %s requires value", index, a.Type)
		}
		if *a.Value < 0 {
			return fmt.Errorf("assertions[%d]: %s value must be non-negative", index, a.Type)
		}
	case AssertRows:
		if len(a.Rows) == 0 {
			return fmt.Errorf("assertions[%d]: rows requires rows", index)
		}
	case AssertValid:
	default:
		return fmt.Errorf("assertions[%d]: unknown type %q", index, a.Type)
	}
	return nil
}
