package snapshot

import (
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// Unprintable replaces a display string whose computation
// panicked.
const Unprintable = "<unprintable>"

// display renders values without a String or Error method. spew
// detects pointer cycles and stops at MaxDepth, so rendering
// terminates on self-referential graphs.
var display = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                4,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Display returns obj's own string conversion: Error for errors,
// String for fmt.Stringer and a depth-limited %v rendering
// otherwise. It never panics; a panicking conversion yields
// Unprintable.
func Display(obj any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = Unprintable
		}
	}()

	switch v := obj.(type) {
	case nil:
		return "null"
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return display.Sprint(obj)
	}
}

// TypeName returns the fully qualified name of t: the import path
// and name for named types, the Go syntax form otherwise.
func TypeName(t reflect.Type) string {
	if t == nil {
		return NullTypeName
	}
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		return "*" + TypeName(t.Elem())
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
