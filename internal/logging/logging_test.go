package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetup_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Warn("copy failed", "entry", "agents")

	output := buf.String()
	if !strings.Contains(output, "copy failed") {
		t.Errorf("Expected 'copy failed' in output, got: %s", output)
	}
	if !strings.Contains(output, "agents") {
		t.Errorf("Expected attribute value in output, got: %s", output)
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Warn("copy failed", "entry", "agents")

	output := buf.String()
	// JSON output should contain braces
	if !strings.Contains(output, "{") {
		t.Errorf("Expected JSON output, got: %s", output)
	}
	if !strings.Contains(output, "copy failed") {
		t.Errorf("Expected 'copy failed' in output, got: %s", output)
	}
}

func TestSetup_VerboseShowsDebug(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	Debug("debug message")

	if !strings.Contains(buf.String(), "debug message") {
		t.Errorf("Debug message should appear in verbose mode, got: %s", buf.String())
	}
}

func TestSetup_DefaultHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Debug("debug message")

	if strings.Contains(buf.String(), "debug message") {
		t.Errorf("Debug message should NOT appear in non-verbose mode, got: %s", buf.String())
	}
}

func TestWarnVisibleAtDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Warn("warn test", "key", "value")

	if !strings.Contains(buf.String(), "warn test") {
		t.Errorf("Expected 'warn test' in output, got: %s", buf.String())
	}
}

func TestSetup_NilWriter(t *testing.T) {
	// Should not panic with nil writer
	Setup(false, false, nil)

	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}
