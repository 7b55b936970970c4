package test

import (
	"errors"
	"fmt"
	"reflect"

	"digital.vasic.seqtest/pkg/assertion"
	"digital.vasic.seqtest/pkg/snapshot"
)

// ErrUnexpected wraps an error returned to CatchError that does
// not match the expected type.
var ErrUnexpected = errors.New("unexpected error")

// Select applies fn to source and checks that the result equals
// target. funcText is what reports show in place of fn. A panic
// in fn propagates to the enclosing group.
func Select[S, R any](
	source S,
	funcText string,
	fn func(S) R,
	target R,
) Test {
	return SelectWith(std, source, funcText, fn, target)
}

// SelectWith is Select with an explicit Tester.
func SelectWith[S, R any](
	tr *Tester,
	source S,
	funcText string,
	fn func(S) R,
	target R,
) Test {
	actual := fn(source)
	return ToLeaf("Select", assertion.NewSelect(
		tr.marshaler, tr.comparer,
		source, funcText, actual, target, true,
	))
}

// SelectNot applies fn to source and checks that the result
// differs from target.
func SelectNot[S, R any](
	source S,
	funcText string,
	fn func(S) R,
	target R,
) Test {
	return SelectNotWith(std, source, funcText, fn, target)
}

// SelectNotWith is SelectNot with an explicit Tester.
func SelectNotWith[S, R any](
	tr *Tester,
	source S,
	funcText string,
	fn func(S) R,
	target R,
) Test {
	actual := fn(source)
	return ToLeaf("SelectNot", assertion.NewSelect(
		tr.marshaler, tr.comparer,
		source, funcText, actual, target, false,
	))
}

// Satisfy checks that pred holds for value.
func Satisfy[T any](value T, predText string, pred func(T) bool) Test {
	return SatisfyWith(std, value, predText, pred)
}

// SatisfyWith is Satisfy with an explicit Tester.
func SatisfyWith[T any](
	tr *Tester,
	value T,
	predText string,
	pred func(T) bool,
) Test {
	actual := pred(value)
	return ToLeaf("Satisfy", assertion.NewSelect(
		tr.marshaler, tr.comparer,
		value, predText, actual, true, true,
	))
}

// Catch runs f and passes if it panics with an error matching E
// (errors.As). A panic with any other value is re-raised: Catch
// cannot decide for the caller whether an unexpected fault is a
// failed check or a broken test, so the enclosing group records it.
func Catch[E error](f func()) Test {
	return CatchWith[E](std, f)
}

// CatchWith is Catch with an explicit Tester.
func CatchWith[E error](tr *Tester, f func()) Test {
	caught := catch[E](func() error {
		f()
		return nil
	})
	return toCatchLeaf[E](tr, caught)
}

// CatchError runs f and passes if it returns, or panics with, an
// error matching E. A non-matching returned error is raised as a
// panic wrapping ErrUnexpected; non-matching panics are re-raised.
func CatchError[E error](f func() error) Test {
	return CatchErrorWith[E](std, f)
}

// CatchErrorWith is CatchError with an explicit Tester.
func CatchErrorWith[E error](tr *Tester, f func() error) Test {
	return toCatchLeaf[E](tr, catch[E](f))
}

func toCatchLeaf[E error](tr *Tester, caught any) Test {
	typeName := snapshot.TypeName(reflect.TypeFor[E]())
	return ToLeaf("Catch", assertion.NewCatch(
		tr.marshaler, typeName, caught,
	))
}

func catch[E error](f func() error) any {
	var target E
	err := recoverAs(&target, f)
	if err == nil {
		return nil
	}
	if errors.As(err, &target) {
		return target
	}
	panic(fmt.Errorf("%w: %w", ErrUnexpected, err))
}

// recoverAs runs f. A panic whose value is an error matching
// target is returned as that error; other panics are re-raised.
func recoverAs[E error](target *E, f func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if perr, ok := r.(error); ok && errors.As(perr, target) {
			err = perr
			return
		}
		panic(r)
	}()
	return f()
}
