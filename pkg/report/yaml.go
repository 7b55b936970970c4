package report

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"digital.vasic.seqtest/pkg/bridge"
)

// YAMLReporter generates YAML reports.
type YAMLReporter struct {
	indent int
}

// NewYAMLReporter creates a YAML reporter. An indent below 2 is
// raised to 2.
func NewYAMLReporter(indent int) *YAMLReporter {
	if indent < 2 {
		indent = 2
	}
	return &YAMLReporter{indent: indent}
}

// Format implements Reporter.
func (r *YAMLReporter) Format() string { return "yaml" }

func (r *YAMLReporter) marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(r.indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateReport implements Reporter.
func (r *YAMLReporter) GenerateReport(suite *bridge.Suite) ([]byte, error) {
	return r.marshal(suite)
}

// GenerateMasterSummary renders the summary only; suite trees go
// in their own reports.
func (r *YAMLReporter) GenerateMasterSummary(
	suites []*bridge.Suite,
) ([]byte, error) {
	return r.marshal(BuildMasterSummary(suites))
}

// WriteReport implements Reporter.
func (r *YAMLReporter) WriteReport(w io.Writer, suite *bridge.Suite) error {
	return writeGenerated(w, r.GenerateReport, suite)
}
