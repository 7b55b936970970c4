package report

import (
	"encoding/json"
	"io"

	"digital.vasic.seqtest/pkg/bridge"
)

// JSONReporter generates JSON reports.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// Format implements Reporter.
func (r *JSONReporter) Format() string { return "json" }

func (r *JSONReporter) marshal(v any) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// GenerateReport implements Reporter.
func (r *JSONReporter) GenerateReport(suite *bridge.Suite) ([]byte, error) {
	return r.marshal(suite)
}

// GenerateMasterSummary renders the summary followed by every
// suite in full.
func (r *JSONReporter) GenerateMasterSummary(
	suites []*bridge.Suite,
) ([]byte, error) {
	return r.marshal(struct {
		*MasterSummary
		Results []*bridge.Suite `json:"results"`
	}{BuildMasterSummary(suites), suites})
}

// WriteReport implements Reporter.
func (r *JSONReporter) WriteReport(w io.Writer, suite *bridge.Suite) error {
	return writeGenerated(w, r.GenerateReport, suite)
}
