package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMasterSummary(t *testing.T) {
	s := BuildMasterSummary(allSuites())

	assert.Len(t, s.ID, 36)
	assert.Equal(t, "run-1", s.RunID)
	require.Len(t, s.Suites, 2)

	tot := s.Totals
	assert.Equal(t, 2, tot.Suites)
	assert.Equal(t, 1, tot.SuitesPassed)
	assert.Equal(t, 1, tot.SuitesFailed)
	assert.Equal(t, 3, tot.Methods)
	assert.Equal(t, 1, tot.MethodsPassed)
	assert.Equal(t, 2, tot.MethodsFailed)
	assert.Equal(t, 2, tot.AssertionsPassed)
	assert.Equal(t, 2, tot.AssertionsFailed)
	assert.Equal(t, 1, tot.Faults)
	assert.InDelta(t, 1.0/3.0, s.PassRate, 1e-9)

	faulty := s.Suites[1]
	assert.Equal(t, 0, faulty.MethodsPassed)
	assert.Equal(t, 1, faulty.Faults)
}

func TestBuildMasterSummary_Empty(t *testing.T) {
	s := BuildMasterSummary(nil)
	assert.Empty(t, s.Suites)
	assert.Zero(t, s.PassRate)
	assert.Empty(t, s.RunID)
}

func TestSaveMasterSummary(t *testing.T) {
	dir := t.TempDir()
	s := BuildMasterSummary(allSuites())
	require.NoError(t, SaveMasterSummary(s, dir))

	data, err := os.ReadFile(filepath.Join(dir, "latest_summary.json"))
	require.NoError(t, err)
	var back MasterSummary
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s.ID, back.ID)

	md, err := os.ReadFile(filepath.Join(dir, "latest_summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "| Faults | 1 |")
	assert.Contains(t, string(md), "| Increment | PASSED |")

	// Saving again replaces the links.
	require.NoError(t, SaveMasterSummary(s, dir))
}

func TestSaveMasterSummary_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	err := SaveMasterSummary(BuildMasterSummary(nil), filepath.Join(file, "sub"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory")
}

func TestAppendToHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	require.NoError(t, AppendToHistory(path, passingSuite()))
	require.NoError(t, AppendToHistory(path, failingSuite()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry HistoricalEntry
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "Faulty / Suite", entry.Suite)
	assert.Equal(t, 1, entry.Faults)
	assert.Equal(t, "2s", entry.Duration)
}

func TestAppendToHistory_MarshalError(t *testing.T) {
	original := jsonMarshal
	t.Cleanup(func() { jsonMarshal = original })
	jsonMarshal = func(any) ([]byte, error) { return nil, assert.AnError }

	err := AppendToHistory(filepath.Join(t.TempDir(), "h.jsonl"), passingSuite())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal history entry")
}

func TestAppendToHistory_OpenError(t *testing.T) {
	err := AppendToHistory("/nonexistent/dir/h.jsonl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open history file")
}
