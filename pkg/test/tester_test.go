package test

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.seqtest/pkg/assertion"
	"digital.vasic.seqtest/pkg/snapshot"
)

func assertionOf(t *testing.T, test Test) assertion.Assertion {
	t.Helper()
	leaf, ok := test.(*Leaf)
	require.True(t, ok)
	return leaf.Assertion()
}

func TestEqual_Determinism(t *testing.T) {
	assert.True(t, Equal(5, 5).IsPassed())

	failing := Equal(5, 6)
	assert.False(t, failing.IsPassed())

	eq, ok := assertionOf(t, failing).(*assertion.Equal)
	require.True(t, ok)
	assert.Equal(t, "6", eq.Actual().Display)
	assert.Equal(t, "5", eq.Expected().Display)
	assert.Equal(t, "int", eq.Actual().TypeName)
}

func TestIsAndNotEqual(t *testing.T) {
	assert.True(t, Is("a", "a").IsPassed())
	assert.False(t, Is("a", "b").IsPassed())
	assert.True(t, NotEqual(1, 2).IsPassed())
	assert.False(t, NotEqual(1, 1).IsPassed())
}

func TestEqualWith(t *testing.T) {
	fold := assertion.Func("fold", func(a, b any) bool {
		return strings.EqualFold(a.(string), b.(string))
	})

	test := EqualWith(fold, "ABC", "abc")
	assert.True(t, test.IsPassed())
	assert.Equal(t, "fold", assertionOf(t, test).(*assertion.Equal).Comparer())
}

func TestTester_Recursion(t *testing.T) {
	tr := NewTester(WithMarshaler(snapshot.New(snapshot.WithRecursion(2))))

	eq := assertionOf(t, tr.Equal([]int{1, 2}, []int{1, 3})).(*assertion.Equal)
	assert.Len(t, eq.Actual().Properties, 2)
	assert.Equal(t, "{1, 3}", eq.Actual().Display)

	std := assertionOf(t, Equal([]int{1, 2}, []int{1, 3})).(*assertion.Equal)
	assert.Empty(t, std.Actual().Properties)
}

func TestCustomFactories(t *testing.T) {
	assert.True(t, Pass().IsPassed())

	v := Violate("nope", snapshot.P("x", 1))
	assert.False(t, v.IsPassed())
	c := assertionOf(t, v).(*assertion.Custom)
	assert.Equal(t, "nope", c.Message())
	assert.Len(t, c.Data(), 1)

	r := FromResult("external", true, "ok")
	assert.Equal(t, "external", r.Name())
	assert.True(t, r.IsPassed())
}

func TestCheck(t *testing.T) {
	assert.True(t, Check("min_length:3", "hello").IsPassed())
	assert.False(t, Check("min_length:10", "hello").IsPassed())

	unknown := Check("bogus", 1)
	assert.False(t, unknown.IsPassed())
	assert.Contains(t, assertionOf(t, unknown).Message(), "bogus")
}

func TestSelect(t *testing.T) {
	s := Select("hello", "len", func(s string) int { return len(s) }, 5)
	assert.True(t, s.IsPassed())

	sel := assertionOf(t, s).(*assertion.Select)
	assert.Equal(t, "len", sel.FuncText())
	assert.Equal(t, "5", sel.Actual().Display)

	assert.False(t, Select("hi", "len", func(s string) int { return len(s) }, 5).IsPassed())
	assert.True(t, SelectNot("hi", "len", func(s string) int { return len(s) }, 5).IsPassed())
}

func TestSatisfy(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.True(t, Satisfy(4, "even", even).IsPassed())
	assert.False(t, Satisfy(3, "even", even).IsPassed())
}

func TestSelect_PanicCapturedByGroup(t *testing.T) {
	g := ToGroup("g", func(yield func(Test) bool) {
		yield(Select(0, "div", func(n int) int { return 10 / n }, 1))
	})

	assert.Equal(t, 0, g.Len())
	assert.ErrorIs(t, g.Err(), ErrPanic)
}

func TestCatch(t *testing.T) {
	passed := Catch[*fs.PathError](func() {
		_, err := os.Open("/definitely/missing/file")
		panic(err)
	})
	assert.True(t, passed.IsPassed())

	c := assertionOf(t, passed).(*assertion.Catch)
	assert.Equal(t, "*io/fs.PathError", c.TypeName())
	require.NotNil(t, c.Caught())

	nothing := Catch[*fs.PathError](func() {})
	assert.False(t, nothing.IsPassed())
}

func TestCatch_WrappedError(t *testing.T) {
	test := Catch[*fs.PathError](func() {
		panic(errors.Join(errors.New("outer"), &fs.PathError{Op: "open"}))
	})
	assert.True(t, test.IsPassed())
}

func TestCatch_UnexpectedPanicPropagates(t *testing.T) {
	assert.PanicsWithValue(t, "not an error", func() {
		Catch[*fs.PathError](func() { panic("not an error") })
	})

	other := errors.New("other")
	assert.PanicsWithError(t, "other", func() {
		Catch[*fs.PathError](func() { panic(other) })
	})
}

func TestCatch_UnexpectedPanicBecomesGroupFault(t *testing.T) {
	g := ToGroup("g", func(yield func(Test) bool) {
		if !yield(Pass()) {
			return
		}
		yield(Catch[*fs.PathError](func() { panic("wrong") }))
	})

	assert.Equal(t, 1, g.Len())
	assert.ErrorIs(t, g.Err(), ErrPanic)
	assert.False(t, g.IsPassed())
}

func TestCatchError(t *testing.T) {
	ok := CatchError[*fs.PathError](func() error {
		_, err := os.Open("/definitely/missing/file")
		return err
	})
	assert.True(t, ok.IsPassed())

	none := CatchError[*fs.PathError](func() error { return nil })
	assert.False(t, none.IsPassed())

	assert.Panics(t, func() {
		CatchError[*fs.PathError](func() error { return errors.New("x") })
	})

	g := ToGroup("g", func(yield func(Test) bool) {
		yield(CatchError[*fs.PathError](func() error { return errors.New("x") }))
	})
	assert.ErrorIs(t, g.Err(), ErrUnexpected)
}

func TestCases(t *testing.T) {
	seq := Case(1, 2).Case(3).Run(func(n int) iter.Seq[Test] {
		return func(yield func(Test) bool) {
			if n == 2 {
				panic("two")
			}
			yield(Satisfy(n, "positive", func(n int) bool { return n > 0 }))
		}
	})

	g := ToGroup("cases", seq)
	require.NoError(t, g.Err())
	require.Equal(t, 3, g.Len())

	for i, c := range g.Tests() {
		cg := c.(*Group)
		assert.Equal(t, CaseGroupName, cg.Name())
		p, ok := snapshot.Value{Properties: cg.Data()}.Lookup("Parameter")
		require.True(t, ok)
		v := p.Result.(*snapshot.ValueResult)
		assert.Equal(t, []string{"1", "2", "3"}[i], v.Value.Display)
	}

	assert.True(t, g.Tests()[0].IsPassed())
	assert.False(t, g.Tests()[1].IsPassed())
	assert.True(t, g.Tests()[2].IsPassed())
}

func TestCases_NilBody(t *testing.T) {
	g := ToGroup("cases", Case("a").Run(func(string) iter.Seq[Test] {
		return nil
	}))

	require.Equal(t, 1, g.Len())
	inner := g.Tests()[0].(*Group)
	assert.ErrorIs(t, inner.Err(), ErrPanic)
}
