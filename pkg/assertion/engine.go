package assertion

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknown is returned when a comparer or check name is not
// registered.
var ErrUnknown = errors.New("unknown name")

// ErrDuplicate is returned when a name is registered twice.
var ErrDuplicate = errors.New("already registered")

// Check evaluates a named check against a value. arg is the text
// after the colon of a check expression such as "min_length:3";
// it is empty when the expression has no argument. Check returns
// the verdict and a human-readable explanation.
type Check func(value any, arg string) (bool, string)

// Engine holds named comparers and checks, so suites and
// configuration can refer to them by name.
type Engine interface {
	// RegisterComparer adds a comparer under its Name.
	RegisterComparer(c Comparer) error

	// Comparer returns the comparer registered under name.
	Comparer(name string) (Comparer, error)

	// RegisterCheck adds a named check.
	RegisterCheck(name string, check Check) error

	// Evaluate parses expr and runs the named check against
	// value. An unknown check is an error, not a failed verdict.
	Evaluate(expr string, value any) (bool, string, error)
}

// DefaultEngine is the standard Engine implementation. It is
// safe for concurrent use.
type DefaultEngine struct {
	mu        sync.RWMutex
	comparers map[string]Comparer
	checks    map[string]Check
}

// NewEngine creates a DefaultEngine with the deep, reflect and
// identity comparers and the built-in checks registered.
func NewEngine() *DefaultEngine {
	e := &DefaultEngine{
		comparers: make(map[string]Comparer),
		checks:    make(map[string]Check),
	}
	e.registerDefaults()
	return e
}

func (e *DefaultEngine) registerDefaults() {
	for _, c := range []Comparer{
		NewDeepComparer(), ReflectComparer{}, IdentityComparer{},
	} {
		e.comparers[c.Name()] = c
	}

	e.checks["not_empty"] = checkNotEmpty
	e.checks["contains"] = checkContains
	e.checks["contains_any"] = checkContainsAny
	e.checks["matches"] = checkMatches
	e.checks["min_length"] = checkMinLength
	e.checks["min_count"] = checkMinCount
	e.checks["exact_count"] = checkExactCount
	e.checks["min"] = checkMin
	e.checks["max_duration"] = checkMaxDuration
	e.checks["all_valid"] = checkAllValid
	e.checks["no_duplicates"] = checkNoDuplicates
}

// RegisterComparer adds c under c.Name(). Returns an error if the
// name is already taken.
func (e *DefaultEngine) RegisterComparer(c Comparer) error {
	if c == nil {
		return errors.New("comparer is nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.comparers[c.Name()]; exists {
		return fmt.Errorf(
			"comparer %s: %w", c.Name(), ErrDuplicate,
		)
	}
	e.comparers[c.Name()] = c
	return nil
}

// Comparer returns the comparer registered under name.
func (e *DefaultEngine) Comparer(name string) (Comparer, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, exists := e.comparers[name]
	if !exists {
		return nil, fmt.Errorf("comparer %s: %w", name, ErrUnknown)
	}
	return c, nil
}

// RegisterCheck adds a named check. Returns an error if the name
// is already taken.
func (e *DefaultEngine) RegisterCheck(
	name string,
	check Check,
) error {
	if name == "" || check == nil {
		return errors.New("check requires a name and a function")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.checks[name]; exists {
		return fmt.Errorf("check %s: %w", name, ErrDuplicate)
	}
	e.checks[name] = check
	return nil
}

// Evaluate parses expr with ParseCheck and runs the named check.
func (e *DefaultEngine) Evaluate(
	expr string,
	value any,
) (bool, string, error) {
	name, arg := ParseCheck(expr)

	e.mu.RLock()
	check, exists := e.checks[name]
	e.mu.RUnlock()

	if !exists {
		return false, "", fmt.Errorf("check %s: %w", name, ErrUnknown)
	}

	passed, message := check(value, arg)
	return passed, message, nil
}

// HasCheck returns true if a check is registered under name.
func (e *DefaultEngine) HasCheck(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.checks[name]
	return exists
}

// Checks returns the registered check names, sorted.
func (e *DefaultEngine) Checks() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.checks))
	for name := range e.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
