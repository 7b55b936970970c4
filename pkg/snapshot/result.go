package snapshot

import (
	"fmt"
	"reflect"
)

// FailureMarker stands in for a failed element in a sequence's
// display string.
const FailureMarker = "!"

// Result is either a *ValueResult or a *FailureResult. The set of
// implementations is closed.
type Result interface {
	result()
}

// ValueResult holds a successfully read child value.
type ValueResult struct {
	Value Value `json:"value" yaml:"value"`
}

// FailureResult holds the description of a panic raised while
// reading a child value.
type FailureResult struct {
	Failure Failure `json:"failure" yaml:"failure"`
}

func (*ValueResult) result()   {}
func (*FailureResult) result() {}

// Failure describes a captured panic or error.
type Failure struct {
	// Type is the dynamic type of the panic value.
	Type string `json:"type" yaml:"type"`

	// Message is the panic value's string form.
	Message string `json:"message" yaml:"message"`
}

// Error implements error.
func (f Failure) Error() string {
	if f.Type == "" {
		return f.Message
	}
	return f.Type + ": " + f.Message
}

// MatchResult dispatches on the concrete result type. A nil
// result is treated as a value result holding Null.
func MatchResult[T any](
	r Result,
	onValue func(Value) T,
	onFailure func(Failure) T,
) T {
	switch r := r.(type) {
	case *FailureResult:
		return onFailure(r.Failure)
	case *ValueResult:
		return onValue(r.Value)
	default:
		return onValue(Null)
	}
}

// FailureOf describes a recovered panic value. It never panics,
// even when the value's Error method does.
func FailureOf(recovered any) Failure {
	f := Failure{Type: "<nil>"}
	if recovered != nil {
		f.Type = TypeName(reflect.TypeOf(recovered))
	}
	f.Message = describePanic(recovered)
	return f
}

func describePanic(recovered any) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = Unprintable
		}
	}()

	switch v := recovered.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return display.Sprint(v)
	}
}
