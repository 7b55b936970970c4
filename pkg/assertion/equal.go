package assertion

import (
	"fmt"

	"digital.vasic.seqtest/pkg/snapshot"
)

// Equal records an equality check between an actual and an
// expected value.
type Equal struct {
	actual      snapshot.Value
	expected    snapshot.Value
	comparer    string
	expectEqual bool
	passed      bool
	diff        string
}

// NewEqual compares actual with expected using c and records the
// outcome. The assertion passes when the comparison result equals
// expectEqual. Operands are snapshotted shallowly when the
// assertion passes and with m's recursion budget when it fails.
func NewEqual(
	m *snapshot.Marshaler,
	c Comparer,
	actual, expected any,
	expectEqual bool,
) *Equal {
	c = orDefault(c)
	passed := c.Equal(actual, expected) == expectEqual

	e := &Equal{
		actual:      m.Snapshot(actual, passed),
		expected:    m.Snapshot(expected, passed),
		comparer:    c.Name(),
		expectEqual: expectEqual,
		passed:      passed,
	}
	if !passed && expectEqual {
		if d, ok := c.(Differ); ok {
			e.diff = d.Diff(expected, actual)
		}
	}
	return e
}

func (*Equal) assertion() {}

// IsPassed implements Assertion.
func (e *Equal) IsPassed() bool { return e.passed }

// Kind implements Assertion.
func (e *Equal) Kind() Kind { return KindEqual }

// Actual returns the snapshot of the actual value.
func (e *Equal) Actual() snapshot.Value { return e.actual }

// Expected returns the snapshot of the expected value.
func (e *Equal) Expected() snapshot.Value { return e.expected }

// Comparer returns the name of the comparer that decided the
// outcome.
func (e *Equal) Comparer() string { return e.comparer }

// ExpectEqual reports whether the values were expected to be equal.
func (e *Equal) ExpectEqual() bool { return e.expectEqual }

// Diff returns the comparer's explanation of a failed equality, if
// it produced one.
func (e *Equal) Diff() string { return e.diff }

// Message implements Assertion.
func (e *Equal) Message() string {
	if e.passed {
		return ""
	}
	if e.expectEqual {
		return fmt.Sprintf(
			"expected %s, actual %s",
			e.expected.Display, e.actual.Display,
		)
	}
	return fmt.Sprintf(
		"expected a value other than %s, actual %s",
		e.expected.Display, e.actual.Display,
	)
}
