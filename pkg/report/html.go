package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"digital.vasic.seqtest/pkg/bridge"
)

// HTMLReporter renders suites as standalone HTML pages with the
// test tree as nested lists.
type HTMLReporter struct {
	tmpl *template.Template
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter() *HTMLReporter {
	return &HTMLReporter{tmpl: template.Must(
		template.New("page").Funcs(template.FuncMap{
			"upper":    strings.ToUpper,
			"marker":   marker,
			"display":  propertyDisplay,
			"rfc3339":  func(t time.Time) string { return t.Format(time.RFC3339) },
			"percent":  func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
			"cssClass": statusClass,
		}).Parse(htmlTemplate),
	)}
}

// Format implements Reporter.
func (r *HTMLReporter) Format() string { return "html" }

type htmlPage struct {
	Title   string
	Summary *MasterSummary
	Suites  []*bridge.Suite
}

// GenerateReport implements Reporter.
func (r *HTMLReporter) GenerateReport(suite *bridge.Suite) ([]byte, error) {
	return r.render(htmlPage{
		Title:  "Suite Report: " + suite.Name,
		Suites: []*bridge.Suite{suite},
	})
}

// GenerateMasterSummary renders the summary and every suite on one
// page.
func (r *HTMLReporter) GenerateMasterSummary(
	suites []*bridge.Suite,
) ([]byte, error) {
	return r.render(htmlPage{
		Title:   "Test Run Summary",
		Summary: BuildMasterSummary(suites),
		Suites:  suites,
	})
}

// WriteReport implements Reporter.
func (r *HTMLReporter) WriteReport(w io.Writer, suite *bridge.Suite) error {
	return writeGenerated(w, r.GenerateReport, suite)
}

func (r *HTMLReporter) render(page htmlPage) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}
	return buf.Bytes(), nil
}

func statusClass(passed bool) string {
	if passed {
		return "status-passed"
	}
	return "status-failed"
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body {
  font-family: -apple-system, BlinkMacSystemFont,
    "Segoe UI", Roboto, sans-serif;
  max-width: 960px;
  margin: 0 auto;
  padding: 20px;
  color: #333;
  background: #f9f9f9;
}
h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
h2 { color: #2c3e50; margin-top: 30px; }
table { border-collapse: collapse; width: 100%; margin: 10px 0; background: #fff; }
th, td { border: 1px solid #ddd; padding: 8px 12px; text-align: left; }
th { background: #3498db; color: #fff; }
tr:nth-child(even) { background: #f2f2f2; }
ul.tree { list-style: none; padding-left: 18px; }
.status-passed { color: #27ae60; font-weight: bold; }
.status-failed { color: #e74c3c; font-weight: bold; }
.fault { color: #8e44ad; }
pre { background: #ecf0f1; padding: 8px; overflow-x: auto; }
code { background: #ecf0f1; padding: 2px 6px; border-radius: 3px; font-size: 0.9em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{with .Summary}}
<p><strong>Summary ID:</strong> {{.ID}}</p>
<p><strong>Generated:</strong> {{rfc3339 .GeneratedAt}}</p>
<table>
<tr><th>Suite</th><th>Status</th><th>Duration</th><th>Methods</th><th>Assertions</th><th>Faults</th></tr>
{{range .Suites}}<tr><td>{{.Name}}</td><td>{{upper .Status}}</td><td>{{.Duration}}</td><td>{{.MethodsPassed}}/{{.Methods}}</td><td>{{.AssertionsPassed}}/{{.AssertionsTotal}}</td><td>{{.Faults}}</td></tr>
{{end}}</table>
<p><strong>Pass rate:</strong> {{percent .PassRate}}</p>
{{end}}
{{range .Suites}}
<h2>Suite: {{.Name}}</h2>
<p><strong>Run ID:</strong> <code>{{.RunID}}</code> &middot; <strong>Status:</strong> {{upper .Status}} &middot; <strong>Duration:</strong> {{.Duration}}</p>
{{if .Methods}}<table>
<tr><th>Method</th><th>Status</th><th>Duration</th><th>Assertions</th></tr>
{{range .Methods}}<tr><td>{{.Name}}</td><td>{{upper .Status}}</td><td>{{.Duration}}</td><td>{{.Stats.Passed}}/{{.Stats.Leaves}}</td></tr>
{{end}}</table>{{end}}
{{with .Tree}}<ul class="tree">{{template "node" .}}</ul>{{end}}
{{end}}
</body>
</html>
{{define "node"}}<li><span class="{{cssClass .Passed}}">{{marker .}}</span> {{.Name}}
{{range .Data}}<div><em>{{.Name}}</em>: <code>{{display .}}</code></div>{{end}}
{{with .Error}}<div class="fault">fault: <code>{{.Type}}: {{.Message}}</code></div>{{end}}
{{with .Assertion}}{{if not .Passed}}{{with .Message}}<div>{{.}}</div>{{end}}{{with .Diff}}<pre>{{.}}</pre>{{end}}{{end}}{{end}}
{{if .Children}}<ul class="tree">{{range .Children}}{{template "node" .}}{{end}}</ul>{{end}}
</li>{{end}}`
