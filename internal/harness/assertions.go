package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError describes a failed assertion with the final layout for
// context.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Rows     []string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if len(e.Rows) > 0 {
		fmt.Fprintf(&buf, "\nFinal grid:\n")
		for _, row := range e.Rows {
			fmt.Fprintf(&buf, "  %s\n", row)
		}
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns one
// message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion) error {
	d := result.Final
	if d == nil {
		return fmt.Errorf("no final diagram")
	}
	fail := func(expected, actual string) error {
		return &AssertionError{Type: a.Type, Expected: expected, Actual: actual, Rows: d.Rows()}
	}
	count := func(got int) error {
		if a.Value == nil {
			return fmt.Errorf("%s requires value", a.Type)
		}
		if got != *a.Value {
			return fail(fmt.Sprint(*a.Value), fmt.Sprint(got))
		}
		return nil
	}

	switch a.Type {
	case AssertSize:
		return count(d.Size())
	case AssertComponents:
		return count(d.ComponentCount())
	case AssertCrossings:
		return count(len(d.Crossings()))
	case AssertRejected:
		return count(result.Rejected())
	case AssertValid:
		if err := d.Validate(); err != nil {
			return fail("valid diagram", err.Error())
		}
		return nil
	case AssertRows:
		if !slices.Equal(d.Rows(), a.Rows) {
			return fail(strings.Join(a.Rows, " "), strings.Join(d.Rows(), " "))
		}
		return nil
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}
