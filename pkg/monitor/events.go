// Package monitor collects run events and serves them live over
// WebSocket and Server-Sent Events, alongside a JSON dashboard.
package monitor

import (
	"time"

	"digital.vasic.seqtest/pkg/test"
)

// EventType represents the type of run event.
type EventType string

const (
	EventRunStarted    EventType = "run_started"
	EventRunFinished   EventType = "run_finished"
	EventSuiteStarted  EventType = "suite_started"
	EventSuiteFinished EventType = "suite_finished"
	EventMethodStarted EventType = "method_started"
	EventMethodPassed  EventType = "method_passed"
	EventMethodFailed  EventType = "method_failed"
	EventMethodFaulted EventType = "method_faulted"
	EventMethodTimeout EventType = "method_timed_out"
	EventLog           EventType = "log"
)

// Event represents a lifecycle event during a run.
type Event struct {
	Type      EventType     `json:"type"`
	RunID     string        `json:"run_id,omitempty"`
	Suite     string        `json:"suite,omitempty"`
	Method    string        `json:"method,omitempty"`
	Status    string        `json:"status,omitempty"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Stats     *test.Stats   `json:"stats,omitempty"`
}

// Key identifies the method an event refers to.
func (e Event) Key() string {
	return e.Suite + "." + e.Method
}
