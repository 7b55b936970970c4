package snapshot

import (
	"reflect"
	"sort"
	"strconv"
)

// Config controls how deep snapshots go.
type Config struct {
	// Recursion is the number of nested levels a non-shallow
	// snapshot introspects. Zero records only the top-level
	// type name and display string.
	Recursion int `json:"recursion" yaml:"recursion" env:"RECURSION"`

	// MaxItems caps how many elements are read from a sequence.
	// Zero means no cap.
	MaxItems int `json:"max_items" yaml:"max_items" env:"MAX_ITEMS"`
}

// Marshaler takes snapshots according to a Config. It holds no
// mutable state of its own and is safe for concurrent use. The
// zero value, and a nil *Marshaler, take shallow snapshots only.
type Marshaler struct {
	config   Config
	registry *Registry
}

// Option configures a Marshaler.
type Option func(*Marshaler)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(m *Marshaler) {
		m.config = cfg
	}
}

// WithRecursion sets the recursion budget.
func WithRecursion(n int) Option {
	return func(m *Marshaler) {
		m.config.Recursion = n
	}
}

// WithMaxItems caps the number of elements read per sequence.
func WithMaxItems(n int) Option {
	return func(m *Marshaler) {
		m.config.MaxItems = n
	}
}

// WithRegistry sets the describer registry.
func WithRegistry(r *Registry) Option {
	return func(m *Marshaler) {
		m.registry = r
	}
}

// New creates a Marshaler. Negative budgets are clamped to zero.
func New(opts ...Option) *Marshaler {
	m := &Marshaler{}
	for _, opt := range opts {
		opt(m)
	}
	if m.config.Recursion < 0 {
		m.config.Recursion = 0
	}
	if m.config.MaxItems < 0 {
		m.config.MaxItems = 0
	}
	return m
}

// Config returns the marshaler's configuration.
func (m *Marshaler) Config() Config {
	if m == nil {
		return Config{}
	}
	return m.config
}

// Snapshot converts obj into a Value. When shallow is true only
// the top level is recorded; otherwise the configured recursion
// budget applies. Snapshot never panics.
func (m *Marshaler) Snapshot(obj any, shallow bool) Value {
	level := 0
	if !shallow {
		level = m.Config().Recursion
	}
	return m.fromObject(obj, level)
}

// Properties snapshots each pair independently. A panic while
// snapshotting one pair becomes a failure for that pair only.
func (m *Marshaler) Properties(pairs []Pair, shallow bool) []Property {
	if len(pairs) == 0 {
		return nil
	}

	level := 0
	if !shallow {
		level = m.Config().Recursion
	}

	props := make([]Property, 0, len(pairs))
	for _, p := range pairs {
		value := p.Value
		props = append(props, Property{
			Name: p.Key,
			Result: m.capture(func() Value {
				return m.fromObject(value, level)
			}),
		})
	}
	return props
}

func (m *Marshaler) fromObject(obj any, level int) Value {
	if isNil(obj) {
		return Null
	}

	typeName := TypeName(reflect.TypeOf(obj))
	if level <= 0 {
		return Value{TypeName: typeName, Display: Display(obj)}
	}

	if each, ok := sequenceOf(obj); ok {
		props, truncated := m.fromSequence(each, level-1)
		return Value{
			TypeName:   typeName,
			Display:    joinDisplays(props, truncated),
			Properties: props,
		}
	}

	return Value{
		TypeName:   typeName,
		Display:    Display(obj),
		Properties: m.fromFields(obj, level-1),
	}
}

// fromSequence reads elements until the sequence ends, panics or
// reaches MaxItems. A panic in the sequence itself ends the read
// without adding an entry.
func (m *Marshaler) fromSequence(
	each func(yield func(any) bool),
	level int,
) (props []Property, truncated bool) {
	limit := m.Config().MaxItems

	defer func() {
		_ = recover()
	}()

	each(func(item any) bool {
		if limit > 0 && len(props) >= limit {
			truncated = true
			return false
		}
		props = append(props, Property{
			Name: "[" + strconv.Itoa(len(props)) + "]",
			Result: m.capture(func() Value {
				return m.fromObject(item, level)
			}),
		})
		return true
	})
	return props, truncated
}

func (m *Marshaler) fromFields(obj any, level int) []Property {
	fields, failure := m.fieldsOf(obj)
	if failure != nil {
		return []Property{{
			Name:   "(fields)",
			Result: &FailureResult{Failure: *failure},
		}}
	}

	if len(fields) == 0 {
		return nil
	}

	props := make([]Property, 0, len(fields))
	for _, f := range fields {
		get := f.Get
		props = append(props, Property{
			Name: f.Name,
			Result: m.capture(func() Value {
				if get == nil {
					return Null
				}
				return m.fromObject(get(), level)
			}),
		})
	}
	return props
}

// fieldsOf lists the children of obj: registered describers
// first, then Describer, then exported struct fields or map
// entries. A describer that panics yields a failure.
func (m *Marshaler) fieldsOf(obj any) (fields []Field, failure *Failure) {
	defer func() {
		if r := recover(); r != nil {
			f := FailureOf(r)
			fields, failure = nil, &f
		}
	}()

	if fn, ok := m.registryOrNil().Lookup(reflect.TypeOf(obj)); ok {
		return fn(obj), nil
	}
	if d, ok := obj.(Describer); ok {
		return d.DescribeFields(), nil
	}
	return reflectFields(reflect.ValueOf(obj)), nil
}

func (m *Marshaler) registryOrNil() *Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// capture runs read and turns a panic into a FailureResult.
func (m *Marshaler) capture(read func() Value) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = &FailureResult{Failure: FailureOf(r)}
		}
	}()
	return &ValueResult{Value: read()}
}

func reflectFields(v reflect.Value) []Field {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return structFields(v)
	case reflect.Map:
		return mapFields(v)
	default:
		return nil
	}
}

func structFields(v reflect.Value) []Field {
	t := v.Type()
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		if !fv.CanInterface() {
			continue
		}
		fields = append(fields, Field{
			Name: sf.Name,
			Get:  fv.Interface,
		})
	}
	return fields
}

func mapFields(v reflect.Value) []Field {
	type entry struct {
		name  string
		value reflect.Value
	}

	it := v.MapRange()
	entries := make([]entry, 0, v.Len())
	for it.Next() {
		k, val := it.Key(), it.Value()
		if !k.CanInterface() || !val.CanInterface() {
			continue
		}
		entries = append(entries, entry{
			name:  "[" + Display(k.Interface()) + "]",
			value: val,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].name < entries[j].name
	})

	fields := make([]Field, 0, len(entries))
	for _, e := range entries {
		fields = append(fields, Field{Name: e.name, Get: e.value.Interface})
	}
	return fields
}

// sequenceOf reports whether obj is snapshotted as a sequence and
// returns a function that yields its elements. Strings are never
// sequences.
func sequenceOf(obj any) (func(yield func(any) bool), bool) {
	if e, ok := obj.(Enumerable); ok {
		return e.Each, true
	}

	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return func(yield func(any) bool) {
			for i := 0; i < v.Len(); i++ {
				ev := v.Index(i)
				if !ev.CanInterface() {
					return
				}
				if !yield(ev.Interface()) {
					return
				}
			}
		}, true
	case reflect.Func:
		if !isSeqFunc(v.Type()) {
			return nil, false
		}
		return func(yield func(any) bool) {
			y := reflect.MakeFunc(v.Type().In(0), func(args []reflect.Value) []reflect.Value {
				return []reflect.Value{reflect.ValueOf(yield(args[0].Interface()))}
			})
			v.Call([]reflect.Value{y})
		}, true
	default:
		return nil, false
	}
}

// isSeqFunc matches the shape of iter.Seq[V]: func(func(V) bool).
func isSeqFunc(t reflect.Type) bool {
	if t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return false
	}
	y := t.In(0)
	return y.Kind() == reflect.Func &&
		y.NumIn() == 1 &&
		y.NumOut() == 1 &&
		y.Out(0).Kind() == reflect.Bool
}

// isNil reports whether obj is nil or a nil pointer, interface,
// func or channel.
func isNil(obj any) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}
