package test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.seqtest/pkg/assertion"
)

func TestFlatten_DocumentOrder(t *testing.T) {
	a := ToLeaf("A", assertion.NewCustom(nil, true, "a"))
	b := ToLeaf("B", assertion.NewCustom(nil, true, "b"))

	tree := ToGroup("g", func(yield func(Test) bool) {
		if !yield(a) {
			return
		}
		yield(ToGroup("h", func(yield func(Test) bool) {
			yield(b)
		}))
	})

	got := Flatten(tree)
	require.Len(t, got, 2)
	assert.Same(t, a.Assertion(), got[0])
	assert.Same(t, b.Assertion(), got[1])
	assert.Equal(t, got, tree.Assertions())
}

func TestFlatten_Leaf(t *testing.T) {
	l := ToLeaf("x", assertion.NewCustom(nil, false, ""))
	assert.Len(t, Flatten(l), 1)
	assert.Empty(t, Flatten(nil))
}

func TestAll_Paths(t *testing.T) {
	tree := ToGroup("root", func(yield func(Test) bool) {
		if !yield(Pass()) {
			return
		}
		yield(ToGroup("inner", func(yield func(Test) bool) {
			yield(Pass())
		}))
	})

	var paths [][]string
	var names []string
	for path, node := range All(tree) {
		paths = append(paths, append([]string(nil), path...))
		names = append(names, node.Name())
	}

	assert.Equal(t, []string{"root", "Pass", "inner", "Pass"}, names)
	assert.Equal(t, [][]string{
		nil,
		{"root"},
		{"root"},
		{"root", "inner"},
	}, paths)
}

func TestAll_EarlyBreak(t *testing.T) {
	tree := ToGroup("root", func(yield func(Test) bool) {
		_ = yield(Pass()) && yield(Pass()) && yield(Pass())
	})

	n := 0
	for range All(tree) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestCount(t *testing.T) {
	tree := ToGroup("root", func(yield func(Test) bool) {
		if !yield(Equal(1, 1)) || !yield(Equal(1, 2)) {
			return
		}
		yield(ToGroup("faulty", passThenPanic(1, "x")))
	})

	s := Count(tree)
	assert.Equal(t, Stats{
		Groups: 2,
		Leaves: 3,
		Passed: 2,
		Failed: 1,
		Faults: 1,
	}, s)

	assert.Equal(t, Stats{Groups: 4, Leaves: 6, Passed: 4, Failed: 2, Faults: 2}, s.Add(s))
}

func TestFaults(t *testing.T) {
	tree := ToGroup("root", func(yield func(Test) bool) {
		if !yield(ToGroup("ok", func(func(Test) bool) {})) {
			return
		}
		yield(ToGroup("bad", passThenPanic(0, "x")))
	})

	var names []string
	for path, g := range Faults(tree) {
		assert.Equal(t, []string{"root"}, path)
		names = append(names, g.Name())
	}
	assert.Equal(t, []string{"bad"}, names)
}
