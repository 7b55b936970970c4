package assertion

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Comparer decides whether two values are equal. Implementations
// may panic on values they cannot compare; the panic propagates to
// the code building the assertion.
type Comparer interface {
	Equal(a, b any) bool
	Name() string
}

// Differ is implemented by comparers that can explain a mismatch.
type Differ interface {
	Diff(expected, actual any) string
}

// DeepComparer compares values structurally with go-cmp. Unexported
// struct fields take part in the comparison.
type DeepComparer struct {
	opts []cmp.Option
}

// NewDeepComparer creates a DeepComparer. Extra options are applied
// after the exporter that admits unexported fields.
func NewDeepComparer(opts ...cmp.Option) *DeepComparer {
	all := make([]cmp.Option, 0, len(opts)+1)
	all = append(all, cmp.Exporter(func(reflect.Type) bool {
		return true
	}))
	all = append(all, opts...)
	return &DeepComparer{opts: all}
}

// Equal implements Comparer.
func (c *DeepComparer) Equal(a, b any) bool {
	return cmp.Equal(a, b, c.opts...)
}

// Diff implements Differ. The result uses go-cmp's "-expected
// +actual" notation.
func (c *DeepComparer) Diff(expected, actual any) string {
	return cmp.Diff(expected, actual, c.opts...)
}

// Name implements Comparer.
func (c *DeepComparer) Name() string { return "deep" }

// ReflectComparer compares with reflect.DeepEqual.
type ReflectComparer struct{}

// Equal implements Comparer.
func (ReflectComparer) Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// Name implements Comparer.
func (ReflectComparer) Name() string { return "reflect" }

// IdentityComparer compares with ==. Two values of different
// dynamic types are never equal; comparing values of the same
// non-comparable type panics.
type IdentityComparer struct{}

// Equal implements Comparer.
func (IdentityComparer) Equal(a, b any) bool {
	return a == b
}

// Name implements Comparer.
func (IdentityComparer) Name() string { return "identity" }

// Func adapts an equality function to a Comparer.
func Func(name string, eq func(a, b any) bool) Comparer {
	return funcComparer{name: name, eq: eq}
}

type funcComparer struct {
	name string
	eq   func(a, b any) bool
}

func (f funcComparer) Equal(a, b any) bool { return f.eq(a, b) }

func (f funcComparer) Name() string { return f.name }

// Default is the comparer used when none is given.
var Default Comparer = NewDeepComparer()

func orDefault(c Comparer) Comparer {
	if c == nil {
		return Default
	}
	return c
}
