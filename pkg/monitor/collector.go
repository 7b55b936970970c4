package monitor

import (
	"sync"
	"time"
)

// EventCollector captures run events and timing data.
type EventCollector struct {
	mu       sync.RWMutex
	events   []Event
	handlers []func(Event)
	stats    CollectorStats
}

// CollectorStats holds aggregate method statistics.
type CollectorStats struct {
	Methods   int           `json:"methods"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Faulted   int           `json:"faulted"`
	TimedOut  int           `json:"timed_out"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]Event, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers, outside the
// collector's lock.
func (c *EventCollector) Emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	switch event.Type {
	case EventMethodPassed:
		c.stats.Methods++
		c.stats.Passed++
	case EventMethodFailed:
		c.stats.Methods++
		c.stats.Failed++
	case EventMethodFaulted:
		c.stats.Methods++
		c.stats.Faulted++
	case EventMethodTimeout:
		c.stats.Methods++
		c.stats.TimedOut++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(Event), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// EmitMethodStarted emits a method started event.
func (c *EventCollector) EmitMethodStarted(runID, suite, method string) {
	c.Emit(Event{
		Type:   EventMethodStarted,
		RunID:  runID,
		Suite:  suite,
		Method: method,
		Status: "running",
	})
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Event, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics. Handlers stay
// registered.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}
