// Package test models test results as an immutable tree. A Leaf
// wraps one evaluated assertion; a Group holds the tests produced
// by a lazy sequence plus the fault, if any, that stopped the
// sequence. Groups are built by consuming the whole sequence at
// once, so a faulty test body fails exactly its own group and
// never escapes to the caller.
package test

import (
	"slices"

	"digital.vasic.seqtest/pkg/assertion"
	"digital.vasic.seqtest/pkg/snapshot"
)

// Test is a node of a result tree: *Leaf or *Group. The set of
// implementations is closed.
type Test interface {
	// Name returns the node's name.
	Name() string

	// IsPassed reports whether the node and everything below it
	// passed.
	IsPassed() bool

	// Assertions returns every leaf assertion below the node in
	// depth-first document order.
	Assertions() []assertion.Assertion

	test()
}

// Leaf is a test node holding a single assertion.
type Leaf struct {
	name      string
	assertion assertion.Assertion
}

// ToLeaf wraps an assertion in a named leaf. A nil assertion is
// replaced by a failing custom assertion.
func ToLeaf(name string, a assertion.Assertion) *Leaf {
	if a == nil {
		a = assertion.NewCustom(nil, false, "nil assertion")
	}
	return &Leaf{name: name, assertion: a}
}

func (*Leaf) test() {}

// Name implements Test.
func (l *Leaf) Name() string { return l.name }

// IsPassed implements Test.
func (l *Leaf) IsPassed() bool { return l.assertion.IsPassed() }

// Assertion returns the wrapped assertion.
func (l *Leaf) Assertion() assertion.Assertion { return l.assertion }

// Assertions implements Test.
func (l *Leaf) Assertions() []assertion.Assertion {
	return []assertion.Assertion{l.assertion}
}

// Group is a test node holding the tests produced by a sequence.
// Err is non-nil when producing the sequence failed; such a group
// never passes, whatever its children report.
type Group struct {
	name   string
	tests  []Test
	err    error
	data   []snapshot.Property
	passed bool
}

func newGroup(
	name string,
	tests []Test,
	err error,
	data []snapshot.Property,
) *Group {
	passed := err == nil
	for _, t := range tests {
		if !t.IsPassed() {
			passed = false
			break
		}
	}
	return &Group{
		name:   name,
		tests:  tests,
		err:    err,
		data:   data,
		passed: passed,
	}
}

// Faulted returns a group with no children that failed with err.
func Faulted(name string, err error) *Group {
	return newGroup(name, nil, err, nil)
}

func (*Group) test() {}

// Name implements Test.
func (g *Group) Name() string { return g.name }

// IsPassed implements Test.
func (g *Group) IsPassed() bool { return g.passed }

// Err returns the fault that stopped the group's sequence, or nil.
func (g *Group) Err() error { return g.err }

// Tests returns the group's children.
func (g *Group) Tests() []Test { return slices.Clone(g.tests) }

// Len returns the number of children.
func (g *Group) Len() int { return len(g.tests) }

// Data returns the group's snapshotted data.
func (g *Group) Data() []snapshot.Property { return slices.Clone(g.data) }

// Assertions implements Test.
func (g *Group) Assertions() []assertion.Assertion {
	return Flatten(g)
}
