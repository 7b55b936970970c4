// Package report renders suite results as JSON, YAML, Markdown and
// HTML, and keeps run summaries and history.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"digital.vasic.seqtest/pkg/bridge"
)

// Reporter defines the interface for generating suite reports.
type Reporter interface {
	// Format names the output and doubles as the file
	// extension.
	Format() string

	// GenerateReport renders a single suite.
	GenerateReport(suite *bridge.Suite) ([]byte, error)

	// GenerateMasterSummary renders all suites of a run.
	GenerateMasterSummary(suites []*bridge.Suite) ([]byte, error)

	// WriteReport writes a single suite report to w.
	WriteReport(w io.Writer, suite *bridge.Suite) error
}

// New returns the reporter for a format name as listed by
// Format: "json", "yaml", "md" or "html".
func New(format string) (Reporter, error) {
	switch format {
	case "json":
		return NewJSONReporter(true), nil
	case "yaml":
		return NewYAMLReporter(2), nil
	case "md":
		return NewMarkdownReporter(false), nil
	case "html":
		return NewHTMLReporter(), nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}

// writeGenerated adapts GenerateReport to WriteReport.
func writeGenerated(
	w io.Writer,
	generate func(*bridge.Suite) ([]byte, error),
	suite *bridge.Suite,
) error {
	data, err := generate(suite)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteAll writes one report per suite and reporter into dir,
// plus one master summary per reporter, and returns the written
// paths.
func WriteAll(
	dir string,
	suites []*bridge.Suite,
	reporters ...Reporter,
) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf(
			"failed to create report directory: %w", err,
		)
	}

	var paths []string
	write := func(name string, data []byte) error {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0644); err != nil {
			return fmt.Errorf("failed to write report %s: %w", p, err)
		}
		paths = append(paths, p)
		return nil
	}

	for _, r := range reporters {
		for _, s := range suites {
			data, err := r.GenerateReport(s)
			if err != nil {
				return paths, fmt.Errorf(
					"failed to render %s report for %s: %w",
					r.Format(), s.Name, err,
				)
			}
			if err := write(fileName(s.Name)+"."+r.Format(), data); err != nil {
				return paths, err
			}
		}

		data, err := r.GenerateMasterSummary(suites)
		if err != nil {
			return paths, fmt.Errorf(
				"failed to render %s summary: %w", r.Format(), err,
			)
		}
		if err := write("summary."+r.Format(), data); err != nil {
			return paths, err
		}
	}
	return paths, nil
}

// fileName makes a suite name safe to use as a file name.
func fileName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
	if clean == "" || strings.Trim(clean, ".") == "" {
		return "suite"
	}
	return clean
}
