package test

import (
	"errors"
	"fmt"
	"runtime/debug"

	"digital.vasic.seqtest/pkg/snapshot"
)

// ErrPanic matches every *PanicError with errors.Is.
var ErrPanic = errors.New("panic")

// ErrNilSequence is recorded on a group built from a nil
// sequence.
var ErrNilSequence = errors.New("nil test sequence")

// PanicError is a recovered panic converted to an error.
type PanicError struct {
	// Value is the value passed to panic.
	Value any

	// Stack is the goroutine stack at the point of recovery.
	Stack []byte
}

// NewPanicError wraps a recovered value, capturing the current
// stack. It must be called from the deferred function that
// recovered.
func NewPanicError(recovered any) *PanicError {
	return &PanicError{Value: recovered, Stack: debug.Stack()}
}

// Error implements error.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %s", snapshot.FailureOf(e.Value).Message)
}

// Unwrap exposes ErrPanic and, when the panic value was an error,
// that error too.
func (e *PanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrPanic, err}
	}
	return []error{ErrPanic}
}

// Failure describes the panic value.
func (e *PanicError) Failure() snapshot.Failure {
	return snapshot.FailureOf(e.Value)
}

// Protect runs fn and converts a panic into a *PanicError.
func Protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(r)
		}
	}()
	return fn()
}
