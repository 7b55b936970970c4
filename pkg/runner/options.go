package runner

import (
	"time"

	"digital.vasic.seqtest/pkg/logging"
	"digital.vasic.seqtest/pkg/metrics"
	"digital.vasic.seqtest/pkg/monitor"
	"digital.vasic.seqtest/pkg/registry"
)

// RunnerOption configures a DefaultRunner.
type RunnerOption func(*DefaultRunner)

// WithRegistry sets the suite registry used by the runner.
func WithRegistry(reg registry.Registry) RunnerOption {
	return func(r *DefaultRunner) {
		r.registry = reg
	}
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *DefaultRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) RunnerOption {
	return func(r *DefaultRunner) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithCollector makes the runner emit lifecycle events to c.
func WithCollector(c *monitor.EventCollector) RunnerOption {
	return func(r *DefaultRunner) {
		r.collector = c
	}
}

// WithTimeout sets the per-method timeout. Zero or less disables
// it.
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *DefaultRunner) {
		r.timeout = timeout
	}
}

// WithGracePeriod sets how long a timed-out method may take to
// notice the timeout before it is abandoned.
func WithGracePeriod(d time.Duration) RunnerOption {
	return func(r *DefaultRunner) {
		r.grace = d
	}
}

// WithPreHook adds a hook run before each method.
func WithPreHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a hook run after each method.
func WithPostHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.postHooks = append(r.postHooks, h)
	}
}

// WithRunIDs replaces the run ID generator.
func WithRunIDs(gen func() string) RunnerOption {
	return func(r *DefaultRunner) {
		if gen != nil {
			r.newID = gen
		}
	}
}
