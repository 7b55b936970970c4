package runner

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.seqtest/pkg/metrics"
	"digital.vasic.seqtest/pkg/monitor"
	"digital.vasic.seqtest/pkg/registry"
	"digital.vasic.seqtest/pkg/test"
)

func passing() iter.Seq[test.Test] {
	return func(yield func(test.Test) bool) {
		if !yield(test.Equal(1, 1)) {
			return
		}
		yield(test.Pass())
	}
}

func failing() iter.Seq[test.Test] {
	return func(yield func(test.Test) bool) {
		if !yield(test.Equal(5, 6)) {
			return
		}
		yield(test.Pass())
	}
}

func throwing() iter.Seq[test.Test] {
	return func(yield func(test.Test) bool) {
		if !yield(test.Pass()) {
			return
		}
		panic(errors.New("boom"))
	}
}

func suite(name string, deps []string, methods ...registry.Method) *registry.Suite {
	return &registry.Suite{
		Name:         name,
		Dependencies: deps,
		Methods:      methods,
	}
}

func newTestRunner(t *testing.T, suites ...*registry.Suite) (*DefaultRunner, registry.Registry) {
	t.Helper()
	reg := registry.NewRegistry()
	for _, s := range suites {
		require.NoError(t, reg.Register(s))
	}
	ids := 0
	r := NewRunner(
		WithRegistry(reg),
		WithTimeout(time.Second),
		WithRunIDs(func() string {
			ids++
			return "run-" + string(rune('0'+ids))
		}),
	)
	return r, reg
}

func TestRunner_Run_Passed(t *testing.T) {
	r, _ := newTestRunner(t, suite("a", nil,
		registry.M("One", passing),
		registry.M("Two", passing),
	))

	res, err := r.Run(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, StatusPassed, res.Status)
	assert.True(t, res.Passed())
	require.Equal(t, 2, res.Tree.Len())
	assert.Equal(t, "a", res.Tree.Name())
	assert.Len(t, test.Flatten(res.Tree), 4)

	require.Len(t, res.Methods, 2)
	assert.Equal(t, "One", res.Methods[0].Name)
	assert.Equal(t, 2, res.Methods[0].Stats.Leaves)
	assert.False(t, res.End.Before(res.Start))
}

func TestRunner_Run_NotFound(t *testing.T) {
	r, _ := newTestRunner(t)
	_, err := r.Run(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestRunner_MethodStatuses(t *testing.T) {
	r, _ := newTestRunner(t, suite("a", nil,
		registry.M("Pass", passing),
		registry.M("Fail", failing),
		registry.M("Throw", throwing),
	))

	res, err := r.Run(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.NoError(t, res.Tree.Err())

	got := make([]string, 0, len(res.Methods))
	for _, m := range res.Methods {
		got = append(got, m.Status)
	}
	assert.Equal(t, []string{StatusPassed, StatusFailed, StatusFaulted}, got)

	// The throwing method keeps the test produced before the panic.
	throw := res.Tree.Tests()[2].(*test.Group)
	assert.Equal(t, 1, throw.Len())
	assert.ErrorIs(t, throw.Err(), test.ErrPanic)
}

func TestRunner_MethodBuildPanic(t *testing.T) {
	r, _ := newTestRunner(t, suite("a", nil,
		registry.M("Build", func() iter.Seq[test.Test] { panic("no sequence") }),
		registry.M("Nil", func() iter.Seq[test.Test] { return nil }),
		registry.M("After", passing),
	))

	res, err := r.Run(context.Background(), "a")
	require.NoError(t, err)
	groups := res.Tree.Tests()
	require.Len(t, groups, 3)
	assert.ErrorIs(t, groups[0].(*test.Group).Err(), test.ErrPanic)
	assert.ErrorIs(t, groups[1].(*test.Group).Err(), test.ErrNilSequence)
	assert.True(t, groups[2].IsPassed())
}

func TestRunner_Timeout_Interrupted(t *testing.T) {
	endless := func() iter.Seq[test.Test] {
		return func(yield func(test.Test) bool) {
			for {
				time.Sleep(5 * time.Millisecond)
				if !yield(test.Pass()) {
					return
				}
			}
		}
	}
	r, _ := newTestRunner(t, suite("a", nil, registry.M("Endless", endless)))
	r.timeout = 50 * time.Millisecond

	res, err := r.Run(context.Background(), "a")
	require.NoError(t, err)

	g := res.Tree.Tests()[0].(*test.Group)
	assert.ErrorIs(t, g.Err(), ErrTimeout)
	assert.Positive(t, g.Len())
	assert.Equal(t, StatusTimedOut, res.Methods[0].Status)
}

func TestRunner_Timeout_Abandoned(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	stuck := func() iter.Seq[test.Test] {
		return func(yield func(test.Test) bool) {
			<-block
		}
	}
	r, _ := newTestRunner(t, suite("a", nil,
		registry.M("Stuck", stuck),
		registry.M("Next", passing),
	))
	r.timeout = 20 * time.Millisecond
	r.grace = 10 * time.Millisecond

	res, err := r.Run(context.Background(), "a")
	require.NoError(t, err)

	g := res.Tree.Tests()[0].(*test.Group)
	assert.ErrorIs(t, g.Err(), ErrTimeout)
	assert.Contains(t, g.Err().Error(), "abandoned")
	assert.Equal(t, 0, g.Len())
	assert.True(t, res.Tree.Tests()[1].IsPassed())
}

func TestRunner_SetupFailure(t *testing.T) {
	s := suite("a", nil, registry.M("One", passing))
	tornDown := false
	s.Setup = func(context.Context) error { return errors.New("no db") }
	s.Teardown = func(context.Context) error { tornDown = true; return nil }
	r, _ := newTestRunner(t, s)

	res, err := r.Run(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, StatusFaulted, res.Status)
	assert.Equal(t, 0, res.Tree.Len())
	assert.Contains(t, res.Tree.Err().Error(), "setup: no db")
	assert.Empty(t, res.Methods)
	assert.True(t, tornDown)
}

func TestRunner_TeardownPanic(t *testing.T) {
	s := suite("a", nil, registry.M("One", passing))
	s.Teardown = func(context.Context) error { panic("dispose") }
	r, _ := newTestRunner(t, s)

	res, err := r.Run(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, StatusFaulted, res.Status)
	assert.Equal(t, 1, res.Tree.Len())
	assert.True(t, res.Tree.Tests()[0].IsPassed())
	assert.ErrorIs(t, res.Tree.Err(), test.ErrPanic)
	assert.Contains(t, res.Tree.Err().Error(), "teardown")
}

func TestRunner_Hooks(t *testing.T) {
	var order []string
	r, _ := newTestRunner(t, suite("a", nil,
		registry.M("One", passing),
		registry.M("Two", passing),
	))
	WithPreHook(func(_ context.Context, s *registry.Suite, m registry.Method) error {
		order = append(order, "pre:"+m.Name)
		if m.Name == "Two" {
			return errors.New("denied")
		}
		return nil
	})(r)
	WithPostHook(func(_ context.Context, _ *registry.Suite, m registry.Method) error {
		order = append(order, "post:"+m.Name)
		return errors.New("ignored")
	})(r)

	res, err := r.Run(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"pre:One", "post:One", "pre:Two"}, order)
	assert.Equal(t, StatusPassed, res.Methods[0].Status)
	assert.Equal(t, StatusFaulted, res.Methods[1].Status)
	two := res.Tree.Tests()[1].(*test.Group)
	assert.Contains(t, two.Err().Error(), "pre-hook: denied")
}

func TestRunner_RunAll_DependencyOrder(t *testing.T) {
	r, _ := newTestRunner(t,
		suite("c", []string{"b"}, registry.M("M", passing)),
		suite("b", []string{"a"}, registry.M("M", failing)),
		suite("a", nil, registry.M("M", passing)),
	)

	results, err := r.RunAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Suite)
	assert.Equal(t, "b", results[1].Suite)
	assert.Equal(t, "c", results[2].Suite)
	assert.Equal(t, StatusFailed, results[1].Status)
	for _, res := range results {
		assert.Equal(t, "run-1", res.RunID)
	}
}

func TestRunner_RunAll_Cycle(t *testing.T) {
	r, _ := newTestRunner(t,
		suite("a", []string{"b"}, registry.M("M", passing)),
		suite("b", []string{"a"}, registry.M("M", passing)),
	)
	_, err := r.RunAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency order")
}

func TestRunner_RunSequence(t *testing.T) {
	r, _ := newTestRunner(t,
		suite("a", nil, registry.M("M", passing)),
		suite("b", []string{"a"}, registry.M("M", passing)),
		suite("f", nil, registry.M("M", failing)),
		suite("g", []string{"f"}, registry.M("M", passing)),
	)

	results, err := r.RunSequence(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = r.RunSequence(context.Background(), []string{"b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmet dependency: a")
	assert.Empty(t, results)

	results, err = r.RunSequence(context.Background(), []string{"f", "g"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suite g has unmet dependency: f")
	assert.Len(t, results, 1)

	_, err = r.RunSequence(context.Background(), []string{"zzz"})
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestRunner_RunPlan(t *testing.T) {
	r, _ := newTestRunner(t, suite("a", nil,
		registry.M("One", passing),
		registry.M("Two", failing),
	))

	results, err := r.RunPlan(context.Background(), &registry.Plan{
		Suites: []registry.PlanEntry{{Name: "a", Methods: []string{"One"}}},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, StatusPassed, results[0].Status)
	assert.Equal(t, 1, results[0].Tree.Len())

	_, err = r.RunPlan(context.Background(), &registry.Plan{
		Suites: []registry.PlanEntry{{Name: "nope"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve plan")
}

func TestRunner_MetricsAndEvents(t *testing.T) {
	rec := metrics.NewMemoryRecorder()
	col := monitor.NewEventCollector()
	r, _ := newTestRunner(t, suite("a", nil,
		registry.M("Pass", passing),
		registry.M("Fail", failing),
		registry.M("Throw", throwing),
	))
	WithRecorder(rec)(r)
	WithCollector(col)(r)

	_, err := r.Run(context.Background(), "a")
	require.NoError(t, err)

	assert.Equal(t, 1, rec.RunTotal())
	assert.Equal(t, 0, rec.ActiveSuites())
	assert.Equal(t, 1, rec.MethodCount("a", StatusPassed))
	assert.Equal(t, 1, rec.MethodCount("a", StatusFailed))
	assert.Equal(t, 1, rec.MethodCount("a", StatusFaulted))
	assert.Equal(t, 1, rec.AssertionCount("a", "equal", true))
	assert.Equal(t, 1, rec.AssertionCount("a", "equal", false))
	assert.Equal(t, 3, rec.AssertionCount("a", "custom", true))
	assert.Len(t, rec.Durations("a", "Pass"), 1)

	var types []monitor.EventType
	for _, e := range col.Events() {
		types = append(types, e.Type)
	}
	assert.Equal(t, []monitor.EventType{
		monitor.EventRunStarted,
		monitor.EventSuiteStarted,
		monitor.EventMethodStarted, monitor.EventMethodPassed,
		monitor.EventMethodStarted, monitor.EventMethodFailed,
		monitor.EventMethodStarted, monitor.EventMethodFaulted,
		monitor.EventSuiteFinished,
		monitor.EventRunFinished,
	}, types)

	stats := col.Stats()
	assert.Equal(t, 3, stats.Methods)
	last := col.Events()[len(col.Events())-1]
	assert.Equal(t, StatusFailed, last.Status)
}

func TestRunner_NoTimeout(t *testing.T) {
	r, _ := newTestRunner(t, suite("a", nil, registry.M("One", passing)))
	WithTimeout(0)(r)

	res, err := r.Run(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, res.Passed())
}

func TestRunner_CancelledContext(t *testing.T) {
	r, _ := newTestRunner(t, suite("a", nil, registry.M("One", passing)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Run(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, StatusFaulted, res.Methods[0].Status)
	g := res.Tree.Tests()[0].(*test.Group)
	assert.ErrorIs(t, g.Err(), context.Canceled)
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(WithLogger(nil), WithRecorder(nil), WithRunIDs(nil))
	assert.Equal(t, registry.Default, r.registry)
	assert.Equal(t, time.Minute, r.timeout)
	assert.NotNil(t, r.logger)
	assert.NotNil(t, r.recorder)
	assert.Len(t, r.newID(), 36)
}
