// Package runner executes registered suites. Each method's
// sequence is materialized into a group under a timeout, each
// suite becomes a group of its method groups, and the outcome is
// reported to the logger, the metrics recorder and the event
// collector.
package runner

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"digital.vasic.seqtest/pkg/logging"
	"digital.vasic.seqtest/pkg/metrics"
	"digital.vasic.seqtest/pkg/monitor"
	"digital.vasic.seqtest/pkg/registry"
	"digital.vasic.seqtest/pkg/test"
)

// ErrTimeout is the fault of a method whose sequence did not
// finish within the runner's timeout.
var ErrTimeout = errors.New("method timed out")

// Method and suite statuses.
const (
	StatusPassed   = "passed"
	StatusFailed   = "failed"
	StatusFaulted  = "faulted"
	StatusTimedOut = "timed_out"
)

// Runner defines the interface for suite execution.
type Runner interface {
	// Run executes a single suite by name.
	Run(ctx context.Context, name string) (*SuiteResult, error)

	// RunAll executes every registered suite in dependency
	// order.
	RunAll(ctx context.Context) ([]*SuiteResult, error)

	// RunSequence executes the named suites in the given
	// order, checking that each suite's dependencies already
	// passed earlier in the sequence.
	RunSequence(
		ctx context.Context,
		names []string,
	) ([]*SuiteResult, error)

	// RunPlan executes the suites and methods a plan selects.
	RunPlan(
		ctx context.Context,
		plan *registry.Plan,
	) ([]*SuiteResult, error)
}

// Hook is invoked around each method. A failing pre-hook faults
// the method without running it; a failing post-hook is logged.
type Hook func(
	ctx context.Context,
	s *registry.Suite,
	m registry.Method,
) error

// MethodResult is the outcome of one method.
type MethodResult struct {
	Name     string        `json:"name" yaml:"name"`
	Status   string        `json:"status" yaml:"status"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Stats    test.Stats    `json:"stats" yaml:"stats"`
}

// SuiteResult is the outcome of one suite. Tree holds one group
// per method; its fault, if any, came from Setup or Teardown.
type SuiteResult struct {
	RunID    string         `json:"run_id" yaml:"run_id"`
	Suite    string         `json:"suite" yaml:"suite"`
	Tree     *test.Group    `json:"-" yaml:"-"`
	Status   string         `json:"status" yaml:"status"`
	Methods  []MethodResult `json:"methods" yaml:"methods"`
	Start    time.Time      `json:"start" yaml:"start"`
	End      time.Time      `json:"end" yaml:"end"`
	Duration time.Duration  `json:"duration" yaml:"duration"`
}

// Passed reports whether the suite passed.
func (r *SuiteResult) Passed() bool {
	return r.Status == StatusPassed
}

// DefaultRunner is the standard Runner implementation. It runs
// one suite and one method at a time.
type DefaultRunner struct {
	registry  registry.Registry
	logger    logging.Logger
	recorder  metrics.Recorder
	collector *monitor.EventCollector
	timeout   time.Duration
	grace     time.Duration
	preHooks  []Hook
	postHooks []Hook
	newID     func() string
}

// NewRunner creates a DefaultRunner with the supplied options.
func NewRunner(opts ...RunnerOption) *DefaultRunner {
	r := &DefaultRunner{
		registry: registry.Default,
		logger:   logging.NullLogger{},
		recorder: metrics.NoopRecorder{},
		timeout:  time.Minute,
		grace:    100 * time.Millisecond,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a single suite by name.
func (r *DefaultRunner) Run(
	ctx context.Context,
	name string,
) (*SuiteResult, error) {
	s, err := r.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get suite: %w", err)
	}

	results := r.run(ctx, []registry.Selection{
		{Suite: s, Methods: s.Methods},
	})
	return results[0], nil
}

// RunAll executes all suites in dependency order.
func (r *DefaultRunner) RunAll(
	ctx context.Context,
) ([]*SuiteResult, error) {
	ordered, err := r.registry.GetDependencyOrder()
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get dependency order: %w", err,
		)
	}

	sels := make([]registry.Selection, 0, len(ordered))
	for _, s := range ordered {
		sels = append(sels, registry.Selection{
			Suite: s, Methods: s.Methods,
		})
	}
	return r.run(ctx, sels), nil
}

// RunSequence executes suites in the given order. Every
// dependency of a suite must appear, and pass, earlier in the
// sequence; the first unmet dependency stops the run.
func (r *DefaultRunner) RunSequence(
	ctx context.Context,
	names []string,
) ([]*SuiteResult, error) {
	sels := make([]registry.Selection, 0, len(names))
	for _, name := range names {
		s, err := r.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to get suite %s: %w", name, err,
			)
		}
		sels = append(sels, registry.Selection{
			Suite: s, Methods: s.Methods,
		})
	}
	return r.runChecked(ctx, sels)
}

// RunPlan executes the selections of a plan in plan order, with
// the same dependency check as RunSequence.
func (r *DefaultRunner) RunPlan(
	ctx context.Context,
	plan *registry.Plan,
) ([]*SuiteResult, error) {
	sels, err := plan.Resolve(r.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan: %w", err)
	}
	return r.runChecked(ctx, sels)
}

func (r *DefaultRunner) runChecked(
	ctx context.Context,
	sels []registry.Selection,
) ([]*SuiteResult, error) {
	runID := r.startRun(len(sels))

	var results []*SuiteResult
	passed := make(map[string]bool, len(sels))
	for _, sel := range sels {
		for _, dep := range sel.Suite.Dependencies {
			if !passed[dep] {
				r.finishRun(runID, results)
				return results, fmt.Errorf(
					"suite %s has unmet dependency: %s",
					sel.Suite.Name, dep,
				)
			}
		}

		res := r.executeSuite(ctx, runID, sel)
		results = append(results, res)
		if res.Passed() {
			passed[res.Suite] = true
		}
	}

	r.finishRun(runID, results)
	return results, nil
}

func (r *DefaultRunner) run(
	ctx context.Context,
	sels []registry.Selection,
) []*SuiteResult {
	runID := r.startRun(len(sels))
	results := make([]*SuiteResult, 0, len(sels))
	for _, sel := range sels {
		results = append(results, r.executeSuite(ctx, runID, sel))
	}
	r.finishRun(runID, results)
	return results
}

func (r *DefaultRunner) startRun(suites int) string {
	runID := r.newID()
	r.recorder.IncrementRunTotal()
	r.logger.Info("run started",
		logging.RunField(runID),
		logging.IntField("suites", suites),
	)
	r.emit(monitor.Event{Type: monitor.EventRunStarted, RunID: runID})
	return runID
}

func (r *DefaultRunner) finishRun(runID string, results []*SuiteResult) {
	status := StatusPassed
	for _, res := range results {
		if !res.Passed() {
			status = StatusFailed
			break
		}
	}
	r.logger.Info("run finished",
		logging.RunField(runID),
		logging.StringField("status", status),
	)
	r.emit(monitor.Event{
		Type:   monitor.EventRunFinished,
		RunID:  runID,
		Status: status,
	})
}

// executeSuite runs setup, the selected methods and teardown.
// The suite's tree is itself built from a sequence: one group per
// method, then the teardown outcome.
func (r *DefaultRunner) executeSuite(
	ctx context.Context,
	runID string,
	sel registry.Selection,
) *SuiteResult {
	s := sel.Suite
	res := &SuiteResult{
		RunID: runID,
		Suite: s.Name,
		Start: time.Now(),
	}
	log := r.logger.WithFields(
		logging.RunField(runID),
		logging.SuiteField(s.Name),
	)

	r.recorder.SetActiveSuites(1)
	defer r.recorder.SetActiveSuites(0)
	r.emit(monitor.Event{
		Type:  monitor.EventSuiteStarted,
		RunID: runID,
		Suite: s.Name,
	})
	log.Info("suite started", logging.IntField("methods", len(sel.Methods)))

	teardown := func() error {
		if s.Teardown == nil {
			return nil
		}
		err := test.Protect(func() error { return s.Teardown(ctx) })
		if err != nil {
			log.Error("teardown failed", logging.ErrorField(err))
			return fmt.Errorf("teardown: %w", err)
		}
		return nil
	}

	seq := func(yield func(test.Test, error) bool) {
		if s.Setup != nil {
			err := test.Protect(func() error { return s.Setup(ctx) })
			if err != nil {
				log.Error("setup failed", logging.ErrorField(err))
				yield(nil, errors.Join(fmt.Errorf("setup: %w", err), teardown()))
				return
			}
		}

		for _, m := range sel.Methods {
			g, mr := r.executeMethod(ctx, runID, s, m, log)
			res.Methods = append(res.Methods, mr)
			if !yield(g, nil) {
				_ = teardown()
				return
			}
		}

		if err := teardown(); err != nil {
			yield(nil, err)
		}
	}
	res.Tree = test.ToGroupErr(s.Name, seq)

	res.End = time.Now()
	res.Duration = res.End.Sub(res.Start)
	res.Status = suiteStatus(res.Tree)

	log.Info("suite finished",
		logging.StringField("status", res.Status),
		logging.DurationField("duration", res.Duration),
	)
	stats := test.Count(res.Tree)
	r.emit(monitor.Event{
		Type:     monitor.EventSuiteFinished,
		RunID:    runID,
		Suite:    s.Name,
		Status:   res.Status,
		Duration: res.Duration,
		Stats:    &stats,
	})
	return res
}

// executeMethod materializes one method. A sequence that outlives
// the timeout is interrupted between pulls; one that blocks inside
// a pull is abandoned after a short grace period and replaced by a
// childless faulted group.
func (r *DefaultRunner) executeMethod(
	ctx context.Context,
	runID string,
	s *registry.Suite,
	m registry.Method,
	log logging.Logger,
) (*test.Group, MethodResult) {
	log = log.WithFields(logging.MethodField(m.Name))
	start := time.Now()
	r.emit(monitor.Event{
		Type:   monitor.EventMethodStarted,
		RunID:  runID,
		Suite:  s.Name,
		Method: m.Name,
		Status: "running",
	})

	var g *test.Group
	if err := r.runHooks(ctx, r.preHooks, s, m); err != nil {
		g = test.Faulted(m.Name, fmt.Errorf("pre-hook: %w", err))
	} else {
		g = r.materialize(ctx, m)
		if err := r.runHooks(ctx, r.postHooks, s, m); err != nil {
			log.Warn("post-hook failed", logging.ErrorField(err))
		}
	}

	mr := MethodResult{
		Name:     m.Name,
		Status:   methodStatus(g),
		Duration: time.Since(start),
		Stats:    test.Count(g),
	}

	r.recorder.RecordMethod(s.Name, m.Name, mr.Status, mr.Duration)
	for _, a := range test.Flatten(g) {
		r.recorder.RecordAssertion(s.Name, string(a.Kind()), a.IsPassed())
	}

	event := monitor.Event{
		RunID:    runID,
		Suite:    s.Name,
		Method:   m.Name,
		Status:   mr.Status,
		Duration: mr.Duration,
		Stats:    &mr.Stats,
	}
	switch mr.Status {
	case StatusPassed:
		event.Type = monitor.EventMethodPassed
		log.Info("method passed", logging.IntField("leaves", mr.Stats.Leaves))
	case StatusFailed:
		event.Type = monitor.EventMethodFailed
		event.Message = fmt.Sprintf(
			"%d of %d assertions failed",
			mr.Stats.Failed, mr.Stats.Leaves,
		)
		log.Warn("method failed", logging.StringField("detail", event.Message))
	case StatusTimedOut:
		event.Type = monitor.EventMethodTimeout
		event.Message = g.Err().Error()
		log.Error("method timed out", logging.DurationField("timeout", r.timeout))
	default:
		event.Type = monitor.EventMethodFaulted
		event.Message = g.Err().Error()
		log.Error("method faulted", logging.ErrorField(g.Err()))
	}
	r.emit(event)

	return g, mr
}

func (r *DefaultRunner) materialize(
	ctx context.Context,
	m registry.Method,
) *test.Group {
	if r.timeout <= 0 {
		return test.ToGroup(m.Name, body(m), test.WithContext(ctx))
	}

	mctx, cancel := context.WithTimeoutCause(ctx, r.timeout, ErrTimeout)
	defer cancel()

	done := make(chan *test.Group, 1)
	go func() {
		done <- test.ToGroup(m.Name, body(m), test.WithContext(mctx))
	}()

	select {
	case g := <-done:
		return g
	case <-mctx.Done():
	}

	select {
	case g := <-done:
		return g
	case <-time.After(r.grace):
		return test.Faulted(m.Name, fmt.Errorf(
			"method %s abandoned: %w", m.Name, context.Cause(mctx),
		))
	}
}

// body defers calling the method's Run into the sequence, so a
// panic while building the sequence is a fault of its group.
func body(m registry.Method) iter.Seq[test.Test] {
	return func(yield func(test.Test) bool) {
		seq := m.Run()
		if seq == nil {
			panic(test.ErrNilSequence)
		}
		seq(yield)
	}
}

func (r *DefaultRunner) runHooks(
	ctx context.Context,
	hooks []Hook,
	s *registry.Suite,
	m registry.Method,
) error {
	for _, h := range hooks {
		if err := test.Protect(func() error { return h(ctx, s, m) }); err != nil {
			return err
		}
	}
	return nil
}

func (r *DefaultRunner) emit(e monitor.Event) {
	if r.collector != nil {
		r.collector.Emit(e)
	}
}

func methodStatus(g *test.Group) string {
	switch {
	case errors.Is(g.Err(), ErrTimeout):
		return StatusTimedOut
	case g.Err() != nil:
		return StatusFaulted
	case !g.IsPassed():
		return StatusFailed
	default:
		return StatusPassed
	}
}

func suiteStatus(g *test.Group) string {
	if g.Err() != nil {
		return StatusFaulted
	}
	if g.IsPassed() {
		return StatusPassed
	}
	return StatusFailed
}
