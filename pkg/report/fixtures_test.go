package report

import (
	"errors"
	"time"

	"digital.vasic.seqtest/pkg/bridge"
	"digital.vasic.seqtest/pkg/runner"
	"digital.vasic.seqtest/pkg/snapshot"
	"digital.vasic.seqtest/pkg/test"
)

var fixedStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func passingSuite() *bridge.Suite {
	method := test.ToGroup("Add", func(yield func(test.Test) bool) {
		if !yield(test.Equal(2, 1+1)) {
			return
		}
		yield(test.Pass())
	})
	tree := test.ToGroup("Increment", func(yield func(test.Test) bool) {
		yield(method)
	})
	return bridge.FromSuite(&runner.SuiteResult{
		RunID:    "run-1",
		Suite:    "Increment",
		Tree:     tree,
		Status:   runner.StatusPassed,
		Start:    fixedStart,
		End:      fixedStart.Add(time.Second),
		Duration: time.Second,
		Methods: []runner.MethodResult{
			{Name: "Add", Status: runner.StatusPassed, Stats: test.Count(method)},
		},
	})
}

func failingSuite() *bridge.Suite {
	wrong := test.ToGroup("Wrong", func(yield func(test.Test) bool) {
		yield(test.Equal(5, 6))
	})
	throwing := test.ToGroup("Throwing", func(yield func(test.Test) bool) {
		if !yield(test.Violate("<too small>", snapshot.P("limit", 3))) {
			return
		}
		panic(errors.New("boom"))
	}, test.WithData(snapshot.P("Parameter", 7)))
	tree := test.ToGroup("Faulty", func(yield func(test.Test) bool) {
		if !yield(wrong) {
			return
		}
		yield(throwing)
	})
	return bridge.FromSuite(&runner.SuiteResult{
		RunID:    "run-1",
		Suite:    "Faulty / Suite",
		Tree:     tree,
		Status:   runner.StatusFailed,
		Start:    fixedStart,
		End:      fixedStart.Add(2 * time.Second),
		Duration: 2 * time.Second,
		Methods: []runner.MethodResult{
			{Name: "Wrong", Status: runner.StatusFailed, Stats: test.Count(wrong)},
			{Name: "Throwing", Status: runner.StatusFaulted, Stats: test.Count(throwing)},
		},
	})
}

func allSuites() []*bridge.Suite {
	return []*bridge.Suite{passingSuite(), failingSuite()}
}
