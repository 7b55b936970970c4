package metrics

import (
	"sort"
	"sync"
	"time"
)

// MemoryRecorder implements Recorder with in-memory counters. It
// is safe for concurrent use; hosts that export to a metrics
// backend read it through Snapshot.
type MemoryRecorder struct {
	mu         sync.RWMutex
	methods    map[string]int
	assertions map[string]int
	durations  map[string][]time.Duration
	runTotal   int
	active     int
}

// NewMemoryRecorder creates an empty MemoryRecorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		methods:    make(map[string]int),
		assertions: make(map[string]int),
		durations:  make(map[string][]time.Duration),
	}
}

func (m *MemoryRecorder) RecordMethod(suite, method, status string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.methods[suite+":"+status]++
	key := suite + "." + method
	m.durations[key] = append(m.durations[key], duration)
}

func (m *MemoryRecorder) RecordAssertion(suite, kind string, passed bool) {
	status := "failed"
	if passed {
		status = "passed"
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.assertions[suite+":"+kind+":"+status]++
}

func (m *MemoryRecorder) IncrementRunTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runTotal++
}

func (m *MemoryRecorder) SetActiveSuites(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = count
}

// MethodCount returns the number of methods of a suite recorded
// with the given status.
func (m *MemoryRecorder) MethodCount(suite, status string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.methods[suite+":"+status]
}

// AssertionCount returns the number of assertions of a kind
// recorded for a suite with the given outcome.
func (m *MemoryRecorder) AssertionCount(suite, kind string, passed bool) int {
	status := "failed"
	if passed {
		status = "passed"
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assertions[suite+":"+kind+":"+status]
}

// Durations returns the recorded durations of a method.
func (m *MemoryRecorder) Durations(suite, method string) []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]time.Duration(nil), m.durations[suite+"."+method]...)
}

// RunTotal returns the total number of runs.
func (m *MemoryRecorder) RunTotal() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runTotal
}

// ActiveSuites returns the current active suites gauge.
func (m *MemoryRecorder) ActiveSuites() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Counter is one named counter value.
type Counter struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// Snapshot returns every method and assertion counter sorted by
// name, prefixed with "method:" or "assertion:".
func (m *MemoryRecorder) Snapshot() []Counter {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Counter, 0, len(m.methods)+len(m.assertions))
	for k, v := range m.methods {
		out = append(out, Counter{Name: "method:" + k, Value: v})
	}
	for k, v := range m.assertions {
		out = append(out, Counter{Name: "assertion:" + k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
