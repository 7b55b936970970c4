package test

import (
	"iter"
	"slices"

	"digital.vasic.seqtest/pkg/assertion"
)

// Flatten returns every leaf assertion in t, depth-first in
// document order. Group faults are not assertions and are not
// included; they are visible through Group.Err and IsPassed.
func Flatten(t Test) []assertion.Assertion {
	var out []assertion.Assertion
	for _, node := range All(t) {
		if leaf, ok := node.(*Leaf); ok {
			out = append(out, leaf.assertion)
		}
	}
	return out
}

// All yields every node of t in depth-first pre-order, each with
// the names of the groups above it. The path slice must not be
// retained past the yield.
func All(t Test) iter.Seq2[[]string, Test] {
	return func(yield func([]string, Test) bool) {
		if isNilTest(t) {
			return
		}
		walk(nil, t, yield)
	}
}

func walk(
	path []string,
	t Test,
	yield func([]string, Test) bool,
) bool {
	if !yield(path, t) {
		return false
	}
	g, ok := t.(*Group)
	if !ok {
		return true
	}
	child := append(slices.Clip(path), g.name)
	for _, c := range g.tests {
		if !walk(child, c, yield) {
			return false
		}
	}
	return true
}

// Stats counts the nodes of a tree.
type Stats struct {
	Groups int `json:"groups" yaml:"groups"`
	Leaves int `json:"leaves" yaml:"leaves"`
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
	Faults int `json:"faults" yaml:"faults"`
}

// Add returns the sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Groups: s.Groups + o.Groups,
		Leaves: s.Leaves + o.Leaves,
		Passed: s.Passed + o.Passed,
		Failed: s.Failed + o.Failed,
		Faults: s.Faults + o.Faults,
	}
}

// Count returns the statistics of t. Passed and Failed count
// leaves; Faults counts groups whose sequence failed.
func Count(t Test) Stats {
	var s Stats
	for _, node := range All(t) {
		switch n := node.(type) {
		case *Leaf:
			s.Leaves++
			if n.IsPassed() {
				s.Passed++
			} else {
				s.Failed++
			}
		case *Group:
			s.Groups++
			if n.err != nil {
				s.Faults++
			}
		}
	}
	return s
}

// Faults yields each group in t whose sequence failed, with its
// path.
func Faults(t Test) iter.Seq2[[]string, *Group] {
	return func(yield func([]string, *Group) bool) {
		for path, node := range All(t) {
			g, ok := node.(*Group)
			if !ok || g.err == nil {
				continue
			}
			if !yield(path, g) {
				return
			}
		}
	}
}
