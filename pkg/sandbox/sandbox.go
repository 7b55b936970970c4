// Package sandbox holds demonstration suites exercising every
// assertion kind and every way a test method can fail.
package sandbox

import (
	"context"
	"errors"
	"iter"
	"runtime"
	"time"

	"digital.vasic.seqtest/pkg/registry"
	"digital.vasic.seqtest/pkg/snapshot"
	"digital.vasic.seqtest/pkg/test"
)

// Suite names.
const (
	SampleSuite = "Sample"
	CustomSuite = "Custom"
)

// Register adds the sandbox suites to reg. Assertions are built
// with tr.
func Register(reg registry.Registry, tr *test.Tester) error {
	for _, s := range Suites(tr) {
		if err := reg.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// Suites returns fresh sandbox suites.
func Suites(tr *test.Tester) []*registry.Suite {
	return []*registry.Suite{sample(tr), custom(tr)}
}

func sample(tr *test.Tester) *registry.Suite {
	var disposeErr error

	return &registry.Suite{
		Name:        SampleSuite,
		Description: "passing, failing and throwing methods",
		Category:    "sandbox",
		Methods: []registry.Method{
			registry.M("TestIncrement", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					count := 0
					if !yield(tr.Equal(0, count)) {
						return
					}
					count++
					yield(tr.Equal(1, count))
				}
			}),
			registry.M("TestCatch", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					var list []int
					yield(test.CatchWith[runtime.Error](tr, func() { _ = list[0] }))
				}
			}),
			registry.M("FailingIncrement", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					count := 0
					if !yield(tr.Equal(0, count)) {
						return
					}
					for range 10 {
						count++
						if !yield(tr.Equal(-1, count)) {
							return
						}
					}
				}
			}),
			registry.M("FailingCatchNotThrown", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					yield(test.CatchWith[error](tr, func() {}))
				}
			}),
			registry.M("FailingCatch", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					// The panic is not a *ArgumentError, so it escapes
					// Catch and faults the method.
					yield(test.CatchWith[*ArgumentError](tr, func() {
						panic(errors.New("plain error"))
					}))
				}
			}),
			registry.M("ThrowingIncrement", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					count := 0
					if !yield(tr.Equal(0, count)) {
						return
					}
					panic(errors.New("custom error message"))
				}
			}),
			registry.M("ThrowingInTeardown", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					disposeErr = errors.New("disposing error")
					yield(tr.Equal(1, 1))
				}
			}),
			registry.M("FailingGroup", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					if !yield(tr.Group("empty case", allZero(tr, nil))) {
						return
					}
					yield(tr.Group("array case", allZero(tr, []int{0, 0, 1})))
				}
			}),
			registry.M("TestStructuralEquality", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					if !yield(tr.Equal([]int{0, 1, 2}, []int{0, 1, 2})) {
						return
					}
					yield(tr.Equal(
						struct{ Items []int }{[]int{0}},
						struct{ Items []int }{[]int{0}},
					))
				}
			}),
			registry.M("NewTest", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					yield(tr.Equal(1, 0))
				}
			}),
			registry.M("Never", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					yield(tr.Equal(0, 0))
				}
			}),
			registry.M("TestComplexValue", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					yield(tr.Equal(
						any(&ArgumentError{Param: "value"}),
						any(&ThrowingValue{}),
					))
				}
			}),
		},
		Teardown: func(context.Context) error {
			err := disposeErr
			disposeErr = nil
			return err
		},
	}
}

func custom(tr *test.Tester) *registry.Suite {
	return &registry.Suite{
		Name:        CustomSuite,
		Description: "custom assertions, predicates, checks and cases",
		Category:    "sandbox",
		Methods: []registry.Method{
			registry.M("TestIsNot", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					if !yield(IsNot(tr, 1, 2)) {
						return
					}
					yield(IsNot(tr, "a", "b"))
				}
			}),
			registry.M("FailingIsNot", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					yield(IsNot(tr, 3, 3))
				}
			}),
			registry.M("TestSelect", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					list := []int{0, 1, 2}
					if !yield(test.SelectWith(tr, list, "len", func(l []int) int { return len(l) }, 3)) {
						return
					}
					yield(test.SatisfyWith(tr, list, "non-empty", func(l []int) bool { return len(l) > 0 }))
				}
			}),
			registry.M("TestChecks", func() iter.Seq[test.Test] {
				return func(yield func(test.Test) bool) {
					if !yield(tr.Check("min_length:3", "abcd")) {
						return
					}
					if !yield(tr.Check("contains:seq", "seqtest")) {
						return
					}
					yield(tr.Check("max_duration:1s", 10*time.Millisecond))
				}
			}),
			registry.M("TestCases", func() iter.Seq[test.Test] {
				return test.Case(0, 0, 0).With(tr).Run(func(x int) iter.Seq[test.Test] {
					return func(yield func(test.Test) bool) {
						yield(tr.Equal(0, x))
					}
				})
			}),
		},
	}
}

func allZero(tr *test.Tester, list []int) iter.Seq[test.Test] {
	return func(yield func(test.Test) bool) {
		for _, x := range list {
			if !yield(tr.Equal(0, x)) {
				return
			}
		}
	}
}

// IsNot passes when actual differs from unexpected. A failure
// carries the offending value.
func IsNot[T comparable](tr *test.Tester, actual, unexpected T) test.Test {
	if actual == unexpected {
		return tr.FromResult("IsNot", false, "Unexpected value.",
			snapshot.P("Value", actual),
		)
	}
	return tr.FromResult("IsNot", true, "")
}

// ArgumentError reports a bad argument.
type ArgumentError struct {
	Param string
}

func (e *ArgumentError) Error() string {
	return "argument out of range: " + e.Param
}

// ThrowingValue has a property that always panics, to show how
// snapshots isolate failing reads.
type ThrowingValue struct{}

// X always panics.
func (*ThrowingValue) X() int {
	panic(errors.New("X always throws"))
}

// Now returns the current time.
func (*ThrowingValue) Now() time.Time {
	return time.Now()
}

// DescribeFields implements snapshot.Describer.
func (v *ThrowingValue) DescribeFields() []snapshot.Field {
	return []snapshot.Field{
		{Name: "X", Get: func() any { return v.X() }},
		{Name: "Now", Get: func() any { return v.Now() }},
	}
}
