package testutil

import (
	"strings"
	"testing"

	"github.com/loadstone/loadout/internal/hookio"
)

func TestSamplePreToolUse(t *testing.T) {
	data, err := SamplePreToolUse()
	if err != nil {
		t.Fatalf("SamplePreToolUse() error: %v", err)
	}

	input := hookio.Read(strings.NewReader(string(data)))
	if input.ToolName != "Bash" {
		t.Errorf("ToolName = %q, want %q", input.ToolName, "Bash")
	}
	if input.ToolInput.Command != "git status" {
		t.Errorf("Command = %q, want %q", input.ToolInput.Command, "git status")
	}
}

func TestSamplePostToolUse(t *testing.T) {
	data, err := SamplePostToolUse()
	if err != nil {
		t.Fatalf("SamplePostToolUse() error: %v", err)
	}

	input := hookio.Read(strings.NewReader(string(data)))
	if input.ToolInput.FilePath != "/home/dev/src/demo/main.py" {
		t.Errorf("FilePath = %q, want %q", input.ToolInput.FilePath, "/home/dev/src/demo/main.py")
	}
}

func TestCommandPayload(t *testing.T) {
	// Quoting survives the round trip.
	command := `echo "rm -rf /" is dangerous`
	input := hookio.Read(strings.NewReader(CommandPayload(command)))

	if input.ToolInput.Command != command {
		t.Errorf("Command = %q, want %q", input.ToolInput.Command, command)
	}
}

func TestFilePayload(t *testing.T) {
	input := hookio.Read(strings.NewReader(FilePayload("/tmp/x.go")))

	if input.ToolInput.FilePath != "/tmp/x.go" {
		t.Errorf("FilePath = %q, want %q", input.ToolInput.FilePath, "/tmp/x.go")
	}
}

func TestLoadFixture_NotFound(t *testing.T) {
	_, err := LoadFixture("nonexistent.json")
	if err == nil {
		t.Error("LoadFixture should error for nonexistent file")
	}
}
