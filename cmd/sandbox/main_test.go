package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_List(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), []string{"-list"}, &out)

	assert.Equal(t, exitPassed, code)
	assert.Contains(t, out.String(), "Sample\t12 methods")
	assert.Contains(t, out.String(), "Custom\t5 methods")
}

func TestRun_PassingPlan(t *testing.T) {
	dir := t.TempDir()
	plan := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte(`
suites:
  - name: Sample
    methods: [TestIncrement, TestCatch, Never]
  - name: Custom
    methods: [TestIsNot, TestCases]
`), 0644))
	results := filepath.Join(dir, "results")

	var out bytes.Buffer
	code := run(context.Background(), []string{
		"-plan", plan, "-results", results,
	}, &out)

	require.Equal(t, exitPassed, code, out.String())
	for _, name := range []string{
		"Sample.json", "Sample.md", "Custom.json", "Custom.md",
		"summary.json", "summary.md", "latest_summary.json",
	} {
		assert.FileExists(t, filepath.Join(results, name))
	}
}

func TestRun_FailingSuites(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
reports: [yaml, html]
history: `+filepath.Join(dir, "history.jsonl")+`
snapshot:
  recursion: 2
`), 0644))

	var out bytes.Buffer
	code := run(context.Background(), []string{
		"-config", cfg, "-results", dir,
	}, &out)

	assert.Equal(t, exitFailed, code)
	assert.FileExists(t, filepath.Join(dir, "Sample.yaml"))
	assert.FileExists(t, filepath.Join(dir, "summary.html"))
	assert.FileExists(t, filepath.Join(dir, "history.jsonl"))
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("reports: [pdf]\n"), 0644))

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"missing config", []string{"-config", filepath.Join(dir, "none.yaml")}},
		{"invalid config", []string{"-config", bad}},
		{"missing plan", []string{
			"-plan", filepath.Join(dir, "none.yaml"), "-results", dir,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, exitError, run(context.Background(), tt.args, &out))
		})
	}
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, exitPassed, run(context.Background(), []string{"-h"}, &out))
	assert.Contains(t, out.String(), "-plan")
}
