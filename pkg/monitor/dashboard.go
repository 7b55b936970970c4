package monitor

import (
	"sync"
	"time"
)

// DashboardData provides a real-time snapshot of run state.
type DashboardData struct {
	mu        sync.RWMutex
	RunID     string                 `json:"run_id"`
	StartTime time.Time              `json:"start_time"`
	Status    string                 `json:"status"` // running, passed, failed
	Methods   map[string]MethodState `json:"methods"`
	Summary   DashboardSummary       `json:"summary"`
}

// MethodState represents the current state of a test method in
// the dashboard.
type MethodState struct {
	Suite     string        `json:"suite"`
	Method    string        `json:"method"`
	Status    string        `json:"status"`
	StartTime *time.Time    `json:"start_time,omitempty"`
	EndTime   *time.Time    `json:"end_time,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Message   string        `json:"message,omitempty"`
	Leaves    int           `json:"leaves"`
	Failed    int           `json:"failed"`
}

// DashboardSummary holds aggregate stats for the dashboard.
type DashboardSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Faulted  int     `json:"faulted"`
	Running  int     `json:"running"`
	PassRate float64 `json:"pass_rate"`
	Elapsed  string  `json:"elapsed"`
}

// NewDashboardData creates a new dashboard data instance.
func NewDashboardData(runID string) *DashboardData {
	return &DashboardData{
		RunID:     runID,
		StartTime: time.Now(),
		Status:    "running",
		Methods:   make(map[string]MethodState),
	}
}

// UpdateFromEvent updates dashboard state from a run event.
// Events that do not concern a method only affect the run status.
func (d *DashboardData) UpdateFromEvent(event Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch event.Type {
	case EventRunStarted:
		d.RunID = event.RunID
		d.Status = "running"
		return
	case EventRunFinished:
		d.Status = event.Status
		return
	case EventMethodStarted, EventMethodPassed, EventMethodFailed,
		EventMethodFaulted, EventMethodTimeout:
	default:
		return
	}

	now := time.Now()
	key := event.Key()
	state, exists := d.Methods[key]
	if !exists {
		state = MethodState{Suite: event.Suite, Method: event.Method}
	}

	switch event.Type {
	case EventMethodStarted:
		state.Status = "running"
		state.StartTime = &now
	case EventMethodPassed:
		state.Status = "passed"
	case EventMethodFailed:
		state.Status = "failed"
	case EventMethodFaulted:
		state.Status = "faulted"
	case EventMethodTimeout:
		state.Status = "timed_out"
	}
	if event.Type != EventMethodStarted {
		state.EndTime = &now
		state.Duration = event.Duration
		state.Message = event.Message
		if event.Stats != nil {
			state.Leaves = event.Stats.Leaves
			state.Failed = event.Stats.Failed
		}
	}

	d.Methods[key] = state
	d.recalcSummary()
}

func (d *DashboardData) recalcSummary() {
	s := DashboardSummary{}
	for _, m := range d.Methods {
		s.Total++
		switch m.Status {
		case "passed":
			s.Passed++
		case "failed":
			s.Failed++
		case "faulted", "timed_out":
			s.Faulted++
		case "running":
			s.Running++
		}
	}
	if completed := s.Passed + s.Failed + s.Faulted; completed > 0 {
		s.PassRate = float64(s.Passed) / float64(completed) * 100
	}
	s.Elapsed = time.Since(d.StartTime).Round(time.Millisecond).String()
	d.Summary = s
}

// Snapshot returns a copy of the current dashboard state.
func (d *DashboardData) Snapshot() *DashboardData {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := &DashboardData{
		RunID:     d.RunID,
		StartTime: d.StartTime,
		Status:    d.Status,
		Summary:   d.Summary,
		Methods:   make(map[string]MethodState, len(d.Methods)),
	}
	for k, v := range d.Methods {
		snap.Methods[k] = v
	}
	return snap
}

// SetStatus sets the overall run status.
func (d *DashboardData) SetStatus(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Status = status
}

// BuildDashboardData creates a DashboardData from an
// EventCollector by replaying all collected events.
func BuildDashboardData(collector *EventCollector) *DashboardData {
	data := NewDashboardData("snapshot")
	for _, event := range collector.Events() {
		data.UpdateFromEvent(event)
	}
	return data
}
