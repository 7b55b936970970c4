package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"digital.vasic.seqtest/pkg/bridge"
)

// jsonMarshal is a variable for dependency injection in tests.
var jsonMarshal = json.Marshal

// HistoricalEntry is one suite run in the history log.
type HistoricalEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	RunID            string    `json:"run_id"`
	Suite            string    `json:"suite"`
	Status           string    `json:"status"`
	Duration         string    `json:"duration"`
	AssertionsPassed int       `json:"assertions_passed"`
	AssertionsTotal  int       `json:"assertions_total"`
	Faults           int       `json:"faults"`
}

// AppendToHistory appends one JSON line per suite to the log at
// historyPath.
func AppendToHistory(historyPath string, suites ...*bridge.Suite) error {
	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	for _, s := range suites {
		data, err := jsonMarshal(HistoricalEntry{
			Timestamp:        s.End,
			RunID:            s.RunID,
			Suite:            s.Name,
			Status:           s.Status,
			Duration:         s.Duration.String(),
			AssertionsPassed: s.Stats.Passed,
			AssertionsTotal:  s.Stats.Leaves,
			Faults:           s.Stats.Faults,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal history entry: %w", err)
		}
		if _, err := fmt.Fprintln(file, string(data)); err != nil {
			return fmt.Errorf("failed to write history entry: %w", err)
		}
	}
	return nil
}
