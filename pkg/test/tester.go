package test

import (
	"iter"

	"digital.vasic.seqtest/pkg/assertion"
	"digital.vasic.seqtest/pkg/snapshot"
)

// Tester builds assertions with a fixed marshaler, comparer and
// check engine. It is immutable and safe for concurrent use.
type Tester struct {
	marshaler *snapshot.Marshaler
	comparer  assertion.Comparer
	engine    assertion.Engine
}

// TesterOption configures a Tester.
type TesterOption func(*Tester)

// WithMarshaler sets the marshaler used for every snapshot.
func WithMarshaler(m *snapshot.Marshaler) TesterOption {
	return func(t *Tester) {
		t.marshaler = m
	}
}

// WithComparer sets the default equality comparer.
func WithComparer(c assertion.Comparer) TesterOption {
	return func(t *Tester) {
		t.comparer = c
	}
}

// WithEngine sets the engine that resolves named checks.
func WithEngine(e assertion.Engine) TesterOption {
	return func(t *Tester) {
		t.engine = e
	}
}

// NewTester creates a Tester. Without options it takes shallow
// snapshots and compares with assertion.Default.
func NewTester(opts ...TesterOption) *Tester {
	t := &Tester{}
	for _, opt := range opts {
		opt(t)
	}
	if t.marshaler == nil {
		t.marshaler = snapshot.New()
	}
	if t.comparer == nil {
		t.comparer = assertion.Default
	}
	if t.engine == nil {
		t.engine = assertion.NewEngine()
	}
	return t
}

var std = NewTester()

// Default returns the Tester behind the package-level factories.
func Default() *Tester { return std }

// Marshaler returns the tester's marshaler.
func (tr *Tester) Marshaler() *snapshot.Marshaler { return tr.marshaler }

// Comparer returns the tester's default comparer.
func (tr *Tester) Comparer() assertion.Comparer { return tr.comparer }

// Equal checks that actual equals expected.
func (tr *Tester) Equal(expected, actual any) Test {
	return ToLeaf("Equal", assertion.NewEqual(
		tr.marshaler, tr.comparer, actual, expected, true,
	))
}

// Is checks that actual equals expected. It is Equal with the
// operands in reading order.
func (tr *Tester) Is(actual, expected any) Test {
	return ToLeaf("Is", assertion.NewEqual(
		tr.marshaler, tr.comparer, actual, expected, true,
	))
}

// NotEqual checks that actual differs from unexpected.
func (tr *Tester) NotEqual(unexpected, actual any) Test {
	return ToLeaf("NotEqual", assertion.NewEqual(
		tr.marshaler, tr.comparer, actual, unexpected, false,
	))
}

// EqualWith checks equality with the given comparer.
func (tr *Tester) EqualWith(
	c assertion.Comparer,
	expected, actual any,
) Test {
	return ToLeaf("Equal", assertion.NewEqual(
		tr.marshaler, c, actual, expected, true,
	))
}

// Pass returns a passing custom assertion.
func (tr *Tester) Pass() Test {
	return ToLeaf("Pass", assertion.NewCustom(tr.marshaler, true, ""))
}

// Violate returns a failing custom assertion carrying message and
// data.
func (tr *Tester) Violate(message string, data ...snapshot.Pair) Test {
	return ToLeaf("Violate", assertion.NewCustom(
		tr.marshaler, false, message, data...,
	))
}

// FromResult wraps a verdict computed elsewhere.
func (tr *Tester) FromResult(
	name string,
	passed bool,
	message string,
	data ...snapshot.Pair,
) Test {
	return ToLeaf(name, assertion.NewCustom(
		tr.marshaler, passed, message, data...,
	))
}

// Check runs a named check expression such as "min_length:3"
// against value. An unknown check yields a failing assertion.
func (tr *Tester) Check(expr string, value any) Test {
	passed, message, err := tr.engine.Evaluate(expr, value)
	if err != nil {
		message = err.Error()
	}
	return ToLeaf(expr, assertion.NewCustom(
		tr.marshaler, passed, message, snapshot.P("Value", value),
	))
}

// Group consumes seq into a group, snapshotting data with the
// tester's marshaler.
func (tr *Tester) Group(
	name string,
	seq iter.Seq[Test],
	opts ...GroupOption,
) *Group {
	opts = append([]GroupOption{WithDataMarshaler(tr.marshaler)}, opts...)
	return ToGroup(name, seq, opts...)
}

// Equal checks that actual equals expected with the default
// Tester.
func Equal(expected, actual any) Test { return std.Equal(expected, actual) }

// Is checks that actual equals expected with the default Tester.
func Is(actual, expected any) Test { return std.Is(actual, expected) }

// NotEqual checks that actual differs from unexpected with the
// default Tester.
func NotEqual(unexpected, actual any) Test {
	return std.NotEqual(unexpected, actual)
}

// EqualWith checks equality with the given comparer.
func EqualWith(c assertion.Comparer, expected, actual any) Test {
	return std.EqualWith(c, expected, actual)
}

// Pass returns a passing custom assertion.
func Pass() Test { return std.Pass() }

// Violate returns a failing custom assertion.
func Violate(message string, data ...snapshot.Pair) Test {
	return std.Violate(message, data...)
}

// FromResult wraps a verdict computed elsewhere.
func FromResult(
	name string,
	passed bool,
	message string,
	data ...snapshot.Pair,
) Test {
	return std.FromResult(name, passed, message, data...)
}

// Check runs a named check expression with the default Tester.
func Check(expr string, value any) Test { return std.Check(expr, value) }
