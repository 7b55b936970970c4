package test

import (
	"iter"

	"digital.vasic.seqtest/pkg/snapshot"
)

// CaseGroupName is the name of each group produced by Cases.Run.
const CaseGroupName = "Case"

// Cases is an ordered list of parameters for a parameterized test.
type Cases[P any] struct {
	params []P
	tester *Tester
}

// Case starts a parameter list.
func Case[P any](params ...P) Cases[P] {
	return Cases[P]{params: params, tester: std}
}

// Case returns a copy of c with p appended.
func (c Cases[P]) Case(p P) Cases[P] {
	params := make([]P, 0, len(c.params)+1)
	params = append(params, c.params...)
	return Cases[P]{params: append(params, p), tester: c.tester}
}

// With returns a copy of c whose groups snapshot their parameter
// with tr's marshaler.
func (c Cases[P]) With(tr *Tester) Cases[P] {
	return Cases[P]{params: c.params, tester: tr}
}

// Run yields one group per parameter, in order. Each group is
// named CaseGroupName, carries the parameter as "Parameter" data
// and holds the tests body produces for it. A fault in one case
// fails that case's group only.
func (c Cases[P]) Run(body func(P) iter.Seq[Test]) iter.Seq[Test] {
	tr := c.tester
	if tr == nil {
		tr = std
	}
	return func(yield func(Test) bool) {
		for _, p := range c.params {
			g := tr.Group(CaseGroupName, func(y func(Test) bool) {
				body(p)(y)
			}, WithData(snapshot.P("Parameter", p)))
			if !yield(g) {
				return
			}
		}
	}
}
