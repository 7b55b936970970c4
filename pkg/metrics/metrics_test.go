package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorders_ImplementInterface(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = NewMemoryRecorder()
}

func TestMemoryRecorder_RecordMethod(t *testing.T) {
	m := NewMemoryRecorder()
	m.RecordMethod("Increment", "Add", "passed", 2*time.Millisecond)
	m.RecordMethod("Increment", "Sub", "passed", 3*time.Millisecond)
	m.RecordMethod("Throwing", "Setup", "faulted", time.Millisecond)

	assert.Equal(t, 2, m.MethodCount("Increment", "passed"))
	assert.Equal(t, 1, m.MethodCount("Throwing", "faulted"))
	assert.Equal(t, 0, m.MethodCount("Other", "passed"))
	assert.Equal(t, []time.Duration{2 * time.Millisecond}, m.Durations("Increment", "Add"))
}

func TestMemoryRecorder_RecordAssertion(t *testing.T) {
	m := NewMemoryRecorder()
	m.RecordAssertion("s", "equal", true)
	m.RecordAssertion("s", "equal", false)
	m.RecordAssertion("s", "equal", false)

	assert.Equal(t, 1, m.AssertionCount("s", "equal", true))
	assert.Equal(t, 2, m.AssertionCount("s", "equal", false))
}

func TestMemoryRecorder_Gauges(t *testing.T) {
	m := NewMemoryRecorder()
	m.IncrementRunTotal()
	m.IncrementRunTotal()
	m.SetActiveSuites(5)

	assert.Equal(t, 2, m.RunTotal())
	assert.Equal(t, 5, m.ActiveSuites())
}

func TestMemoryRecorder_Snapshot(t *testing.T) {
	m := NewMemoryRecorder()
	m.RecordMethod("s", "a", "passed", 0)
	m.RecordAssertion("s", "catch", true)

	assert.Equal(t, []Counter{
		{Name: "assertion:s:catch:passed", Value: 1},
		{Name: "method:s:passed", Value: 1},
	}, m.Snapshot())
}

func TestMemoryRecorder_Concurrent(t *testing.T) {
	m := NewMemoryRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordAssertion("s", "equal", true)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, m.AssertionCount("s", "equal", true))
}

func TestNoopRecorder(t *testing.T) {
	m := NoopRecorder{}
	assert.NotPanics(t, func() {
		m.RecordMethod("s", "m", "passed", time.Second)
		m.RecordAssertion("s", "equal", true)
		m.IncrementRunTotal()
		m.SetActiveSuites(0)
	})
}
