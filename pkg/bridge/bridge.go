// Package bridge converts test trees and suite results into plain,
// serializable structures for reporters and external tools. The
// output holds no interfaces and no cycles.
package bridge

import (
	"errors"
	"time"

	"digital.vasic.seqtest/pkg/assertion"
	"digital.vasic.seqtest/pkg/runner"
	"digital.vasic.seqtest/pkg/snapshot"
	"digital.vasic.seqtest/pkg/test"
)

// Node kinds.
const (
	KindGroup = "group"
	KindLeaf  = "leaf"
)

// Node is one test node.
type Node struct {
	Name      string     `json:"name" yaml:"name"`
	Kind      string     `json:"kind" yaml:"kind"`
	Passed    bool       `json:"passed" yaml:"passed"`
	Error     *Failure   `json:"error,omitempty" yaml:"error,omitempty"`
	Assertion *Assertion `json:"assertion,omitempty" yaml:"assertion,omitempty"`
	Data      []Property `json:"data,omitempty" yaml:"data,omitempty"`
	Children  []*Node    `json:"children,omitempty" yaml:"children,omitempty"`
}

// Assertion is one assertion with its snapshots.
type Assertion struct {
	Kind     string          `json:"kind" yaml:"kind"`
	Passed   bool            `json:"passed" yaml:"passed"`
	Message  string          `json:"message,omitempty" yaml:"message,omitempty"`
	Comparer string          `json:"comparer,omitempty" yaml:"comparer,omitempty"`
	Function string          `json:"function,omitempty" yaml:"function,omitempty"`
	Diff     string          `json:"diff,omitempty" yaml:"diff,omitempty"`
	Values   []NamedSnapshot `json:"values,omitempty" yaml:"values,omitempty"`
	Data     []Property      `json:"data,omitempty" yaml:"data,omitempty"`
}

// NamedSnapshot is a snapshot with the role it plays in an
// assertion, such as "actual" or "expected".
type NamedSnapshot struct {
	Name  string    `json:"name" yaml:"name"`
	Value *Snapshot `json:"value" yaml:"value"`
}

// Snapshot mirrors snapshot.Value.
type Snapshot struct {
	TypeName   string     `json:"type_name" yaml:"type_name"`
	Display    string     `json:"display" yaml:"display"`
	Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Property is a named child snapshot. Exactly one of Value and
// Failure is set.
type Property struct {
	Name    string    `json:"name" yaml:"name"`
	Value   *Snapshot `json:"value,omitempty" yaml:"value,omitempty"`
	Failure *Failure  `json:"failure,omitempty" yaml:"failure,omitempty"`
}

// Failure describes a fault or a failed read.
type Failure struct {
	Type    string `json:"type" yaml:"type"`
	Message string `json:"message" yaml:"message"`
	Stack   string `json:"stack,omitempty" yaml:"stack,omitempty"`
}

// Suite is a converted runner.SuiteResult.
type Suite struct {
	RunID    string                `json:"run_id" yaml:"run_id"`
	Name     string                `json:"name" yaml:"name"`
	Status   string                `json:"status" yaml:"status"`
	Start    time.Time             `json:"start" yaml:"start"`
	End      time.Time             `json:"end" yaml:"end"`
	Duration time.Duration         `json:"duration" yaml:"duration"`
	Stats    test.Stats            `json:"stats" yaml:"stats"`
	Methods  []runner.MethodResult `json:"methods" yaml:"methods"`
	Tree     *Node                 `json:"tree" yaml:"tree"`
}

// FromSuite converts a suite result.
func FromSuite(r *runner.SuiteResult) *Suite {
	s := &Suite{
		RunID:    r.RunID,
		Name:     r.Suite,
		Status:   r.Status,
		Start:    r.Start,
		End:      r.End,
		Duration: r.Duration,
		Methods:  r.Methods,
	}
	if r.Tree != nil {
		s.Stats = test.Count(r.Tree)
		s.Tree = FromTest(r.Tree)
	}
	return s
}

// FromSuites converts suite results in order.
func FromSuites(results []*runner.SuiteResult) []*Suite {
	out := make([]*Suite, 0, len(results))
	for _, r := range results {
		out = append(out, FromSuite(r))
	}
	return out
}

// FromTest converts a test tree. A nil test converts to nil.
func FromTest(t test.Test) *Node {
	switch t := t.(type) {
	case *test.Leaf:
		return &Node{
			Name:      t.Name(),
			Kind:      KindLeaf,
			Passed:    t.IsPassed(),
			Assertion: FromAssertion(t.Assertion()),
		}
	case *test.Group:
		n := &Node{
			Name:   t.Name(),
			Kind:   KindGroup,
			Passed: t.IsPassed(),
			Data:   fromProperties(t.Data()),
		}
		if err := t.Err(); err != nil {
			n.Error = FromError(err)
		}
		for _, child := range t.Tests() {
			n.Children = append(n.Children, FromTest(child))
		}
		return n
	default:
		return nil
	}
}

// FromAssertion converts one assertion.
func FromAssertion(a assertion.Assertion) *Assertion {
	if a == nil {
		return nil
	}
	out := assertion.Match[*Assertion](a, assertion.Funcs[*Assertion]{
		Equal: func(e *assertion.Equal) *Assertion {
			return &Assertion{
				Comparer: e.Comparer(),
				Diff:     e.Diff(),
				Values: []NamedSnapshot{
					named("actual", e.Actual()),
					named("expected", e.Expected()),
				},
			}
		},
		Select: func(s *assertion.Select) *Assertion {
			return &Assertion{
				Comparer: s.Comparer(),
				Function: s.FuncText(),
				Values: []NamedSnapshot{
					named("source", s.Source()),
					named("actual", s.Actual()),
					named("target", s.Target()),
				},
			}
		},
		Catch: func(c *assertion.Catch) *Assertion {
			out := &Assertion{Function: c.TypeName()}
			if v := c.Caught(); v != nil {
				out.Values = []NamedSnapshot{named("caught", *v)}
			}
			return out
		},
		Custom: func(c *assertion.Custom) *Assertion {
			return &Assertion{Data: fromProperties(c.Data())}
		},
		Default: &Assertion{},
	})
	out.Kind = string(a.Kind())
	out.Passed = a.IsPassed()
	out.Message = a.Message()
	return out
}

// FromValue converts a snapshot.
func FromValue(v snapshot.Value) *Snapshot {
	return &Snapshot{
		TypeName:   v.TypeName,
		Display:    v.Display,
		Properties: fromProperties(v.Properties),
	}
}

// FromError describes a group fault. Recovered panics keep their
// stack.
func FromError(err error) *Failure {
	if err == nil {
		return nil
	}
	f := &Failure{Message: err.Error()}
	var pe *test.PanicError
	if errors.As(err, &pe) {
		f.Type = pe.Failure().Type
		f.Stack = string(pe.Stack)
		return f
	}
	f.Type = snapshot.FailureOf(err).Type
	return f
}

func named(name string, v snapshot.Value) NamedSnapshot {
	return NamedSnapshot{Name: name, Value: FromValue(v)}
}

func fromProperties(props []snapshot.Property) []Property {
	if len(props) == 0 {
		return nil
	}
	out := make([]Property, 0, len(props))
	for _, p := range props {
		prop := Property{Name: p.Name}
		snapshot.MatchResult(p.Result,
			func(v snapshot.Value) struct{} {
				prop.Value = FromValue(v)
				return struct{}{}
			},
			func(f snapshot.Failure) struct{} {
				prop.Failure = &Failure{Type: f.Type, Message: f.Message}
				return struct{}{}
			},
		)
		out = append(out, prop)
	}
	return out
}
