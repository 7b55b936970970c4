package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"digital.vasic.seqtest/pkg/bridge"
)

// MarkdownReporter renders suites as Markdown with the test tree
// as a nested list.
type MarkdownReporter struct {
	// ShowPassed lists passing leaves too. Groups are always
	// listed.
	ShowPassed bool
}

// NewMarkdownReporter creates a Markdown reporter.
func NewMarkdownReporter(showPassed bool) *MarkdownReporter {
	return &MarkdownReporter{ShowPassed: showPassed}
}

// Format implements Reporter.
func (r *MarkdownReporter) Format() string { return "md" }

// GenerateReport implements Reporter.
func (r *MarkdownReporter) GenerateReport(suite *bridge.Suite) ([]byte, error) {
	var sb strings.Builder
	r.writeSuite(&sb, suite, "#")
	return []byte(sb.String()), nil
}

// GenerateMasterSummary renders the summary tables followed by
// every suite.
func (r *MarkdownReporter) GenerateMasterSummary(
	suites []*bridge.Suite,
) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(summaryMarkdown(BuildMasterSummary(suites)))
	for _, s := range suites {
		sb.WriteString("\n---\n\n")
		r.writeSuite(&sb, s, "##")
	}
	return []byte(sb.String()), nil
}

// WriteReport implements Reporter.
func (r *MarkdownReporter) WriteReport(w io.Writer, suite *bridge.Suite) error {
	return writeGenerated(w, r.GenerateReport, suite)
}

func (r *MarkdownReporter) writeSuite(sb *strings.Builder, s *bridge.Suite, h string) {
	fmt.Fprintf(sb, "%s Suite: %s\n\n", h, s.Name)
	fmt.Fprintf(sb, "**Run ID:** %s\n\n", s.RunID)
	fmt.Fprintf(sb, "**Status:** %s\n\n", strings.ToUpper(s.Status))
	fmt.Fprintf(sb, "**Started:** %s\n\n", s.Start.Format(time.RFC3339))
	fmt.Fprintf(sb, "**Duration:** %v\n\n", s.Duration)

	if len(s.Methods) > 0 {
		sb.WriteString("| Method | Status | Duration | Assertions |\n")
		sb.WriteString("|--------|--------|----------|------------|\n")
		for _, m := range s.Methods {
			fmt.Fprintf(sb, "| %s | %s | %v | %d/%d |\n",
				m.Name, strings.ToUpper(m.Status), m.Duration,
				m.Stats.Passed, m.Stats.Leaves,
			)
		}
		sb.WriteString("\n")
	}

	if s.Tree != nil {
		sb.WriteString("**Tests:**\n\n")
		r.writeNode(sb, s.Tree, 0)
		sb.WriteString("\n")
	}
}

func (r *MarkdownReporter) writeNode(sb *strings.Builder, n *bridge.Node, depth int) {
	if n == nil {
		return
	}
	if n.Kind == bridge.KindLeaf && n.Passed && !r.ShowPassed {
		return
	}

	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s- %s %s\n", indent, marker(n), n.Name)

	inner := indent + "  "
	for _, d := range n.Data {
		fmt.Fprintf(sb, "%s- _%s_: `%s`\n", inner, d.Name, propertyDisplay(d))
	}
	if n.Error != nil {
		fmt.Fprintf(sb, "%s- fault: `%s: %s`\n", inner, n.Error.Type, n.Error.Message)
	}
	if a := n.Assertion; a != nil && !a.Passed {
		if a.Message != "" {
			fmt.Fprintf(sb, "%s- %s\n", inner, a.Message)
		}
		if a.Diff != "" {
			fmt.Fprintf(sb, "\n%s```diff\n", inner)
			for _, line := range strings.Split(strings.TrimRight(a.Diff, "\n"), "\n") {
				fmt.Fprintf(sb, "%s%s\n", inner, line)
			}
			fmt.Fprintf(sb, "%s```\n\n", inner)
		}
	}

	for _, c := range n.Children {
		r.writeNode(sb, c, depth+1)
	}
}

func marker(n *bridge.Node) string {
	switch {
	case n.Error != nil:
		return "[FAULT]"
	case n.Passed:
		return "[PASS]"
	default:
		return "[FAIL]"
	}
}

func propertyDisplay(p bridge.Property) string {
	if p.Failure != nil {
		return "!" + p.Failure.Message
	}
	if p.Value == nil {
		return "null"
	}
	return p.Value.Display
}
