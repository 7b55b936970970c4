package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"digital.vasic.seqtest/pkg/bridge"
	"digital.vasic.seqtest/pkg/runner"
)

// MasterSummary aggregates the suites of a run.
type MasterSummary struct {
	ID            string         `json:"id" yaml:"id"`
	RunID         string         `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	GeneratedAt   time.Time      `json:"generated_at" yaml:"generated_at"`
	Suites        []SuiteSummary `json:"suites" yaml:"suites"`
	Totals        Totals         `json:"totals" yaml:"totals"`
	TotalDuration time.Duration  `json:"total_duration" yaml:"total_duration"`
	PassRate      float64        `json:"pass_rate" yaml:"pass_rate"`
}

// Totals counts suites, methods and assertions by outcome.
type Totals struct {
	Suites           int `json:"suites" yaml:"suites"`
	SuitesPassed     int `json:"suites_passed" yaml:"suites_passed"`
	SuitesFailed     int `json:"suites_failed" yaml:"suites_failed"`
	Methods          int `json:"methods" yaml:"methods"`
	MethodsPassed    int `json:"methods_passed" yaml:"methods_passed"`
	MethodsFailed    int `json:"methods_failed" yaml:"methods_failed"`
	AssertionsPassed int `json:"assertions_passed" yaml:"assertions_passed"`
	AssertionsFailed int `json:"assertions_failed" yaml:"assertions_failed"`
	Faults           int `json:"faults" yaml:"faults"`
}

// SuiteSummary is one line of the summary.
type SuiteSummary struct {
	Name             string        `json:"name" yaml:"name"`
	Status           string        `json:"status" yaml:"status"`
	Duration         time.Duration `json:"duration" yaml:"duration"`
	Methods          int           `json:"methods" yaml:"methods"`
	MethodsPassed    int           `json:"methods_passed" yaml:"methods_passed"`
	AssertionsPassed int           `json:"assertions_passed" yaml:"assertions_passed"`
	AssertionsTotal  int           `json:"assertions_total" yaml:"assertions_total"`
	Faults           int           `json:"faults" yaml:"faults"`
}

// BuildMasterSummary creates a summary of suites. PassRate is the
// share of passed methods.
func BuildMasterSummary(suites []*bridge.Suite) *MasterSummary {
	summary := &MasterSummary{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now(),
		Suites:      make([]SuiteSummary, 0, len(suites)),
	}

	t := &summary.Totals
	for _, s := range suites {
		if summary.RunID == "" {
			summary.RunID = s.RunID
		}

		ss := SuiteSummary{
			Name:             s.Name,
			Status:           s.Status,
			Duration:         s.Duration,
			Methods:          len(s.Methods),
			AssertionsPassed: s.Stats.Passed,
			AssertionsTotal:  s.Stats.Leaves,
			Faults:           s.Stats.Faults,
		}
		for _, m := range s.Methods {
			if m.Status == runner.StatusPassed {
				ss.MethodsPassed++
			}
		}
		summary.Suites = append(summary.Suites, ss)

		t.Suites++
		if s.Status == runner.StatusPassed {
			t.SuitesPassed++
		} else {
			t.SuitesFailed++
		}
		t.Methods += ss.Methods
		t.MethodsPassed += ss.MethodsPassed
		t.MethodsFailed += ss.Methods - ss.MethodsPassed
		t.AssertionsPassed += s.Stats.Passed
		t.AssertionsFailed += s.Stats.Failed
		t.Faults += s.Stats.Faults
		summary.TotalDuration += s.Duration
	}

	if t.Methods > 0 {
		summary.PassRate = float64(t.MethodsPassed) / float64(t.Methods)
	}
	return summary
}

// SaveMasterSummary saves the summary as JSON and Markdown in
// outputDir and points latest_summary.* at them.
func SaveMasterSummary(summary *MasterSummary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf(
			"failed to create output directory: %w", err,
		)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(
		outputDir, fmt.Sprintf("master_summary_%s.json", ts),
	)
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON summary: %w", err)
	}

	mdPath := filepath.Join(
		outputDir, fmt.Sprintf("master_summary_%s.md", ts),
	)
	md := summaryMarkdown(summary)
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("failed to write Markdown summary: %w", err)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")
	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

func summaryMarkdown(summary *MasterSummary) string {
	var sb strings.Builder

	sb.WriteString("# Test Run Summary\n\n")
	fmt.Fprintf(&sb, "**Summary ID:** %s\n\n", summary.ID)
	if summary.RunID != "" {
		fmt.Fprintf(&sb, "**Run ID:** %s\n\n", summary.RunID)
	}
	fmt.Fprintf(&sb, "**Generated:** %s\n\n",
		summary.GeneratedAt.Format(time.RFC3339))

	sb.WriteString("## Suites\n\n")
	sb.WriteString("| Suite | Status | Duration | Methods | Assertions | Faults |\n")
	sb.WriteString("|-------|--------|----------|---------|------------|--------|\n")
	for _, s := range summary.Suites {
		fmt.Fprintf(&sb, "| %s | %s | %v | %d/%d | %d/%d | %d |\n",
			s.Name, strings.ToUpper(s.Status), s.Duration,
			s.MethodsPassed, s.Methods,
			s.AssertionsPassed, s.AssertionsTotal,
			s.Faults,
		)
	}

	t := summary.Totals
	sb.WriteString("\n## Totals\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Suites | %d passed, %d failed |\n", t.SuitesPassed, t.SuitesFailed)
	fmt.Fprintf(&sb, "| Methods | %d passed, %d failed |\n", t.MethodsPassed, t.MethodsFailed)
	fmt.Fprintf(&sb, "| Assertions | %d passed, %d failed |\n", t.AssertionsPassed, t.AssertionsFailed)
	fmt.Fprintf(&sb, "| Faults | %d |\n", t.Faults)
	fmt.Fprintf(&sb, "| Pass Rate | %.0f%% |\n", summary.PassRate*100)
	fmt.Fprintf(&sb, "| Total Duration | %v |\n", summary.TotalDuration)

	return sb.String()
}
