// Package metrics records counters and timings of test runs.
package metrics

import "time"

// Recorder defines the interface for recording run metrics.
type Recorder interface {
	// RecordMethod records one executed test method and the
	// status of its group.
	RecordMethod(suite, method, status string, duration time.Duration)
	// RecordAssertion records one evaluated assertion by kind.
	RecordAssertion(suite, kind string, passed bool)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
	// SetActiveSuites sets the gauge of suites being run.
	SetActiveSuites(count int)
}

// NoopRecorder is a no-op implementation of Recorder useful for
// testing or when metrics collection is disabled.
type NoopRecorder struct{}

func (NoopRecorder) RecordMethod(_, _, _ string, _ time.Duration) {}
func (NoopRecorder) RecordAssertion(_, _ string, _ bool)          {}
func (NoopRecorder) IncrementRunTotal()                           {}
func (NoopRecorder) SetActiveSuites(_ int)                        {}
