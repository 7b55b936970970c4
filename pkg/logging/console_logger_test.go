package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(&buf, false)

	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error msg")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "info msg")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "ERROR")
	assert.NotContains(t, out, "hidden")
}

func TestConsoleLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(&buf, true)
	l.Debug("visible")
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "visible")
}

func TestConsoleLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(&buf, false)

	child := l.WithFields(SuiteField("Inc"))
	child.Info("done", MethodField("Add"))

	assert.Contains(t, buf.String(), "{suite=Inc, method=Add}")

	buf.Reset()
	l.Info("parent")
	assert.NotContains(t, buf.String(), "suite=Inc")
}

func TestConsoleLogger_Status(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLoggerTo(&buf, false)

	l.Status(true, "Inc.Add")
	assert.Contains(t, buf.String(), "PASS Inc.Add")

	buf.Reset()
	l.Status(false, "Inc.Sub")
	assert.Contains(t, buf.String(), "FAIL Inc.Sub")
	assert.Contains(t, buf.String(), "ERROR")
}

func TestConsoleLogger_Close(t *testing.T) {
	assert.NoError(t, NewConsoleLogger(false).Close())
}
