// Package assertion holds the immutable outcome records produced
// by evaluating a single check: equality, selection through a
// predicate, catching a fault, or a custom verdict supplied by the
// caller. Every variant decides IsPassed once, at construction,
// and carries snapshots of the values it needs to explain itself.
package assertion

// Kind names an assertion variant.
type Kind string

// Assertion kinds.
const (
	KindEqual  Kind = "equal"
	KindSelect Kind = "select"
	KindCatch  Kind = "catch"
	KindCustom Kind = "custom"
)

// Assertion is one evaluated check. The set of implementations is
// closed: *Equal, *Select, *Catch and *Custom. Use Match to
// dispatch on the concrete variant.
type Assertion interface {
	// IsPassed reports the verdict decided at construction.
	IsPassed() bool

	// Kind names the variant.
	Kind() Kind

	// Message describes the outcome for humans. Passing
	// assertions may return an empty string.
	Message() string

	assertion()
}

// Visitor handles each assertion variant.
type Visitor[T any] interface {
	VisitEqual(*Equal) T
	VisitSelect(*Select) T
	VisitCatch(*Catch) T
	VisitCustom(*Custom) T
}

// Match dispatches a to the visitor method for its variant. A nil
// assertion yields the zero value of T.
func Match[T any](a Assertion, v Visitor[T]) T {
	switch a := a.(type) {
	case *Equal:
		return v.VisitEqual(a)
	case *Select:
		return v.VisitSelect(a)
	case *Catch:
		return v.VisitCatch(a)
	case *Custom:
		return v.VisitCustom(a)
	default:
		var zero T
		return zero
	}
}

// Funcs adapts plain functions to a Visitor. Variants whose
// function is nil yield Default.
type Funcs[T any] struct {
	Equal   func(*Equal) T
	Select  func(*Select) T
	Catch   func(*Catch) T
	Custom  func(*Custom) T
	Default T
}

// VisitEqual implements Visitor.
func (f Funcs[T]) VisitEqual(a *Equal) T {
	if f.Equal == nil {
		return f.Default
	}
	return f.Equal(a)
}

// VisitSelect implements Visitor.
func (f Funcs[T]) VisitSelect(a *Select) T {
	if f.Select == nil {
		return f.Default
	}
	return f.Select(a)
}

// VisitCatch implements Visitor.
func (f Funcs[T]) VisitCatch(a *Catch) T {
	if f.Catch == nil {
		return f.Default
	}
	return f.Catch(a)
}

// VisitCustom implements Visitor.
func (f Funcs[T]) VisitCustom(a *Custom) T {
	if f.Custom == nil {
		return f.Default
	}
	return f.Custom(a)
}
