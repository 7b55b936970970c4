package registry

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// topologicalSort orders suites using Kahn's algorithm, breaking
// ties by name. It returns an error if a cycle is detected.
// Dependencies on unregistered suites are ignored here; see
// ValidateDependencies.
func topologicalSort(suites map[string]*Suite) ([]*Suite, error) {
	inDegree := make(map[string]int, len(suites))
	dependents := make(map[string][]string, len(suites))

	for name, s := range suites {
		if _, exists := inDegree[name]; !exists {
			inDegree[name] = 0
		}
		for _, dep := range s.Dependencies {
			if _, registered := suites[dep]; !registered {
				continue
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	ordered := make([]*Suite, 0, len(suites))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		ordered = append(ordered, suites[name])

		var ready []string
		for _, dep := range dependents[name] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
		sort.Strings(ready)
		queue = append(queue, ready...)
	}

	if len(ordered) != len(suites) {
		return nil, fmt.Errorf(
			"circular dependency detected: %s",
			detectCycle(suites),
		)
	}

	return ordered, nil
}

// detectCycle returns a human-readable description of a
// dependency cycle. It uses iterative DFS with three colouring
// states.
func detectCycle(suites map[string]*Suite) string {
	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // finished
	)

	colour := make(map[string]int, len(suites))

	names := make([]string, 0, len(suites))
	for name := range suites {
		names = append(names, name)
	}
	sort.Strings(names)

	type frame struct {
		name  string
		deps  []string
		index int
	}

	for _, start := range names {
		if colour[start] != white {
			continue
		}

		stack := []frame{{name: start, deps: depsOf(suites, start)}}
		colour[start] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.index >= len(top.deps) {
				colour[top.name] = black
				stack = stack[:len(stack)-1]
				continue
			}

			dep := top.deps[top.index]
			top.index++

			switch colour[dep] {
			case gray:
				path := []string{dep}
				for i := len(stack) - 1; i >= 0; i-- {
					path = append(path, stack[i].name)
					if stack[i].name == dep {
						break
					}
				}
				slices.Reverse(path)
				return strings.Join(path, " -> ")
			case white:
				colour[dep] = gray
				stack = append(stack, frame{
					name: dep,
					deps: depsOf(suites, dep),
				})
			}
		}
	}

	return "unknown cycle"
}

// depsOf returns the sorted, registered dependencies of a suite.
func depsOf(suites map[string]*Suite, name string) []string {
	s, ok := suites[name]
	if !ok {
		return nil
	}
	var deps []string
	for _, d := range s.Dependencies {
		if _, registered := suites[d]; registered {
			deps = append(deps, d)
		}
	}
	sort.Strings(deps)
	return deps
}
