package registry

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan selects which registered suites and methods to run. It is
// usually read from a YAML file:
//
//	suites:
//	  - name: Increment
//	  - name: Catch
//	    methods: [CatchWrongType]
type Plan struct {
	Suites []PlanEntry `json:"suites" yaml:"suites"`
}

// PlanEntry selects one suite. An empty Methods list selects
// every method of the suite.
type PlanEntry struct {
	Name    string   `json:"name" yaml:"name"`
	Methods []string `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// Selection is a resolved plan entry.
type Selection struct {
	Suite   *Suite
	Methods []Method
}

// LoadPlanFromFile reads a YAML or JSON plan file.
func LoadPlanFromFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read plan file %s: %w", path, err,
		)
	}

	return parsePlan(data, path)
}

// parsePlan decodes a plan. JSON is valid YAML, so one decoder
// serves both formats. Unknown fields are rejected.
func parsePlan(data []byte, source string) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var plan Plan
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf(
			"failed to parse plan from %s: %w", source, err,
		)
	}
	return &plan, nil
}

// Resolve looks every entry up in reg and returns the selected
// methods in plan order. It fails on the first unknown suite or
// method.
func (p *Plan) Resolve(reg Registry) ([]Selection, error) {
	out := make([]Selection, 0, len(p.Suites))
	for _, entry := range p.Suites {
		s, err := reg.Get(entry.Name)
		if err != nil {
			return nil, err
		}

		sel := Selection{Suite: s, Methods: s.Methods}
		if len(entry.Methods) > 0 {
			sel.Methods = make([]Method, 0, len(entry.Methods))
			for _, name := range entry.Methods {
				m, ok := s.Method(name)
				if !ok {
					return nil, fmt.Errorf(
						"suite %s has no method %s",
						s.Name, name,
					)
				}
				sel.Methods = append(sel.Methods, m)
			}
		}
		out = append(out, sel)
	}
	return out, nil
}
