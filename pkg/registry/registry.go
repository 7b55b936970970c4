// Package registry provides explicit suite registration, lookup
// and dependency-ordered retrieval. Suites are only known once
// registered; nothing is discovered by naming convention.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned when a suite is not registered.
var ErrNotFound = errors.New("suite not found")

// ErrDuplicate is returned when a suite name is registered twice.
var ErrDuplicate = errors.New("suite already registered")

// Registry defines the interface for managing suites.
type Registry interface {
	// Register validates and adds a suite.
	Register(s *Suite) error

	// Get retrieves a suite by name.
	Get(name string) (*Suite, error)

	// List returns all registered suites sorted by name.
	List() []*Suite

	// ListByCategory returns suites in the given category.
	ListByCategory(category string) []*Suite

	// GetDependencyOrder returns suites in topological
	// (dependency) order.
	GetDependencyOrder() ([]*Suite, error)

	// ValidateDependencies checks that every dependency
	// referenced by a suite is also registered.
	ValidateDependencies() error

	// Clear removes all suites.
	Clear()

	// Count returns the number of registered suites.
	Count() int
}

// DefaultRegistry is the standard Registry implementation.
// It is safe for concurrent use.
type DefaultRegistry struct {
	mu     sync.RWMutex
	suites map[string]*Suite
}

// NewRegistry creates a new, empty DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		suites: make(map[string]*Suite),
	}
}

// Default is the package-level default registry instance.
var Default = NewRegistry()

// Register adds a suite to the registry. Returns an error if the
// suite is invalid or its name is already registered.
func (r *DefaultRegistry) Register(s *Suite) error {
	if s == nil {
		return errors.New("suite is nil")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.suites[s.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, s.Name)
	}

	r.suites[s.Name] = s
	return nil
}

// MustRegister is Register for package initialisation; it panics
// on error.
func (r *DefaultRegistry) MustRegister(s *Suite) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Get retrieves a suite by name.
func (r *DefaultRegistry) Get(name string) (*Suite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.suites[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s, nil
}

// List returns all registered suites sorted by name.
func (r *DefaultRegistry) List() []*Suite {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Suite, 0, len(r.suites))
	for _, s := range r.suites {
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// ListByCategory returns suites in the given category, sorted by
// name.
func (r *DefaultRegistry) ListByCategory(category string) []*Suite {
	var out []*Suite
	for _, s := range r.List() {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// GetDependencyOrder returns suites in topological order using
// Kahn's algorithm. Returns an error if a dependency cycle is
// detected.
func (r *DefaultRegistry) GetDependencyOrder() ([]*Suite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return topologicalSort(r.suites)
}

// ValidateDependencies checks that every dependency referenced
// by a registered suite is also registered. Returns the first
// missing dependency found, in name order.
func (r *DefaultRegistry) ValidateDependencies() error {
	for _, s := range r.List() {
		for _, dep := range s.Dependencies {
			if _, err := r.Get(dep); err != nil {
				return fmt.Errorf(
					"suite %s has unregistered "+
						"dependency: %s",
					s.Name, dep,
				)
			}
		}
	}
	return nil
}

// Clear removes all suites.
func (r *DefaultRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.suites = make(map[string]*Suite)
}

// Count returns the number of registered suites.
func (r *DefaultRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.suites)
}
