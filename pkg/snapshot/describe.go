package snapshot

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrAlreadyRegistered is returned when a describer is registered
// twice for the same type.
var ErrAlreadyRegistered = errors.New("describer already registered")

// Field is a named, lazily read child of a described value. Get
// may panic; the panic is confined to this field's snapshot.
type Field struct {
	Name string
	Get  func() any
}

// Describer is implemented by values that choose which named
// children a snapshot shows. It takes precedence over reflection
// on struct fields.
type Describer interface {
	DescribeFields() []Field
}

// Enumerable is implemented by values that should be snapshotted
// as an indexed sequence. Each may panic part way through; the
// elements yielded before the panic are kept.
type Enumerable interface {
	Each(yield func(any) bool)
}

// DescribeFunc lists the fields of a value of a registered type.
type DescribeFunc func(v any) []Field

// Registry maps types to describers, for types whose definition
// cannot be changed to implement Describer. It is safe for
// concurrent use; a nil *Registry is empty.
type Registry struct {
	mu    sync.RWMutex
	funcs map[reflect.Type]DescribeFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[reflect.Type]DescribeFunc)}
}

// Register adds a describer for t.
func (r *Registry) Register(t reflect.Type, fn DescribeFunc) error {
	if t == nil || fn == nil {
		return errors.New("describer requires a type and a function")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[t]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, TypeName(t))
	}
	r.funcs[t] = fn
	return nil
}

// Lookup returns the describer registered for t.
func (r *Registry) Lookup(t reflect.Type) (DescribeFunc, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[t]
	return fn, ok
}

// RegisterType registers a typed describer for T.
func RegisterType[T any](r *Registry, fn func(T) []Field) error {
	if fn == nil {
		return errors.New("describer requires a function")
	}
	return r.Register(reflect.TypeFor[T](), func(v any) []Field {
		return fn(v.(T))
	})
}
