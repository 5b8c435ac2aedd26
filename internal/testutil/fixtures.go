package testutil

import (
	"embed"
	"encoding/json"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// LoadFixture loads a JSON fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// SamplePreToolUse returns a captured PreToolUse hook payload as the host
// delivers it on stdin.
func SamplePreToolUse() ([]byte, error) {
	return LoadFixture("pre_tool_use.json")
}

// SamplePostToolUse returns a captured PostToolUse hook payload.
func SamplePostToolUse() ([]byte, error) {
	return LoadFixture("post_tool_use.json")
}

// CommandPayload builds a PreToolUse payload around one shell command.
// Marshaling handles quoting, so commands may contain arbitrary text.
func CommandPayload(command string) string {
	data, _ := json.Marshal(map[string]any{
		"hook_event_name": "PreToolUse",
		"tool_name":       "Bash",
		"tool_input":      map[string]any{"command": command},
	})
	return string(data)
}

// FilePayload builds a PostToolUse payload around one written file.
func FilePayload(path string) string {
	data, _ := json.Marshal(map[string]any{
		"hook_event_name": "PostToolUse",
		"tool_name":       "Write",
		"tool_input":      map[string]any{"file_path": path},
	})
	return string(data)
}
