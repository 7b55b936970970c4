package registry

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"digital.vasic.seqtest/pkg/test"
)

// Suite is a named set of test methods sharing optional setup
// and teardown.
type Suite struct {
	// Name uniquely identifies the suite.
	Name string `json:"name" yaml:"name"`

	// Description is a human-readable summary.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Category groups related suites.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Dependencies names suites that must run first.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// Methods are run in order.
	Methods []Method `json:"methods" yaml:"methods"`

	// Setup runs before the first method. A failing setup
	// skips every method and faults the suite.
	Setup func(ctx context.Context) error `json:"-" yaml:"-"`

	// Teardown runs after the last method, even when setup or
	// a method failed. A failing teardown faults the suite.
	Teardown func(ctx context.Context) error `json:"-" yaml:"-"`
}

// Method is one test method: a function producing a lazy
// sequence of tests.
type Method struct {
	Name string                       `json:"name" yaml:"name"`
	Run  func() iter.Seq[test.Test] `json:"-" yaml:"-"`
}

// M is shorthand for constructing a Method.
func M(name string, run func() iter.Seq[test.Test]) Method {
	return Method{Name: name, Run: run}
}

// Method returns the method with the given name.
func (s *Suite) Method(name string) (Method, bool) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// Validate checks that the suite is named and its methods are
// named, unique and runnable.
func (s *Suite) Validate() error {
	if s.Name == "" {
		return errors.New("suite name is required")
	}

	seen := make(map[string]bool, len(s.Methods))
	for i, m := range s.Methods {
		if m.Name == "" {
			return fmt.Errorf(
				"suite %s: method %d has no name", s.Name, i,
			)
		}
		if seen[m.Name] {
			return fmt.Errorf(
				"suite %s: duplicate method %s", s.Name, m.Name,
			)
		}
		if m.Run == nil {
			return fmt.Errorf(
				"suite %s: method %s has no body", s.Name, m.Name,
			)
		}
		seen[m.Name] = true
	}
	return nil
}
