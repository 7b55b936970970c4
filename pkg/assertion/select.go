package assertion

import (
	"fmt"

	"digital.vasic.seqtest/pkg/snapshot"
)

// Select records a check of the form "fn(source) compared to
// target". Only the textual form of fn is kept.
type Select struct {
	source   snapshot.Value
	target   snapshot.Value
	actual   snapshot.Value
	funcText string
	comparer string
	expected bool
	passed   bool
}

// NewSelect records the outcome of comparing actual, the already
// computed fn(source), with target. The assertion passes when the
// comparison result equals expected.
func NewSelect(
	m *snapshot.Marshaler,
	c Comparer,
	source any,
	funcText string,
	actual, target any,
	expected bool,
) *Select {
	c = orDefault(c)
	passed := c.Equal(actual, target) == expected

	return &Select{
		source:   m.Snapshot(source, passed),
		target:   m.Snapshot(target, passed),
		actual:   m.Snapshot(actual, passed),
		funcText: funcText,
		comparer: c.Name(),
		expected: expected,
		passed:   passed,
	}
}

func (*Select) assertion() {}

// IsPassed implements Assertion.
func (s *Select) IsPassed() bool { return s.passed }

// Kind implements Assertion.
func (s *Select) Kind() Kind { return KindSelect }

// Source returns the snapshot of the value fn was applied to.
func (s *Select) Source() snapshot.Value { return s.source }

// Target returns the snapshot of the value fn's result was
// compared with.
func (s *Select) Target() snapshot.Value { return s.target }

// Actual returns the snapshot of fn's result.
func (s *Select) Actual() snapshot.Value { return s.actual }

// FuncText returns the textual form of fn.
func (s *Select) FuncText() string { return s.funcText }

// Comparer returns the comparer name.
func (s *Select) Comparer() string { return s.comparer }

// Expected reports whether fn's result was expected to equal
// the target.
func (s *Select) Expected() bool { return s.expected }

// Message implements Assertion.
func (s *Select) Message() string {
	if s.passed {
		return ""
	}
	op := "=="
	if !s.expected {
		op = "!="
	}
	return fmt.Sprintf(
		"%s on %s returned %s, expected %s %s",
		s.funcText, s.source.Display, s.actual.Display,
		op, s.target.Display,
	)
}
