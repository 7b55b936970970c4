// Package snapshot converts arbitrary Go values into finite,
// panic-isolated trees of plain data. A snapshot records what can
// be known about a value at the moment it was taken: its type, its
// display string and, up to a configurable recursion budget, the
// snapshots of its fields or elements.
package snapshot

import "strings"

// NullTypeName is the type name of the canonical null snapshot.
const NullTypeName = "null"

// Value is an immutable rendering of one inspected value.
type Value struct {
	// TypeName is the fully qualified name of the value's
	// dynamic type.
	TypeName string `json:"type_name" yaml:"type_name"`

	// Display is the value's own string conversion, or the
	// bracketed join of its elements for sequences.
	Display string `json:"display" yaml:"display"`

	// Properties holds the named child snapshots. It is empty
	// when the recursion budget was exhausted.
	Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Null is the canonical snapshot of nil.
var Null = Value{TypeName: NullTypeName, Display: "null"}

// IsNull reports whether v is the canonical null snapshot.
func (v Value) IsNull() bool {
	return v.TypeName == NullTypeName && len(v.Properties) == 0
}

// String returns the display string.
func (v Value) String() string {
	return v.Display
}

// Depth returns the number of nested value levels in v, counting
// v itself as one. Failed properties do not add depth.
func (v Value) Depth() int {
	deepest := 0
	for _, p := range v.Properties {
		child, ok := p.Result.(*ValueResult)
		if !ok {
			continue
		}
		if d := child.Value.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Lookup returns the property with the given name.
func (v Value) Lookup(name string) (Property, bool) {
	for _, p := range v.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Property is a named child of a snapshot. Reading the underlying
// field or element either produced a Value or failed.
type Property struct {
	Name   string `json:"name" yaml:"name"`
	Result Result `json:"result" yaml:"result"`
}

// Pair is an unsnapshotted key/value entry, used to attach
// arbitrary data to tests and custom assertions.
type Pair struct {
	Key   string
	Value any
}

// P is shorthand for constructing a Pair.
func P(key string, value any) Pair {
	return Pair{Key: key, Value: value}
}

// joinDisplays renders element results the way sequences are
// displayed: "{a, b, !}" where "!" marks an element that failed.
func joinDisplays(props []Property, truncated bool) string {
	parts := make([]string, 0, len(props)+1)
	for _, p := range props {
		parts = append(parts, MatchResult(
			p.Result,
			func(v Value) string { return v.Display },
			func(Failure) string { return FailureMarker },
		))
	}
	if truncated {
		parts = append(parts, "...")
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
