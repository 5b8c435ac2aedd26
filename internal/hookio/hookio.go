// Package hookio decodes the JSON payload the host process writes to a
// hook's stdin. Decoding is deliberately forgiving: hooks run inside an
// interactive session and a malformed payload must degrade to "no
// input", never to a failure that blocks the session.
package hookio

import (
	"encoding/json"
	"io"

	"github.com/loadstone/loadout/internal/logging"
)

// MaxInputBytes caps how much of stdin is read. Hook payloads are tiny;
// the cap keeps a runaway writer from wedging the hook.
const MaxInputBytes = 1 << 20

// ToolInput carries the fields loadout consumes from the tool invocation
// being hooked. Shell commands arrive in Command, file writes in FilePath.
type ToolInput struct {
	Command  string `json:"command"`
	FilePath string `json:"file_path"`
}

// Input is the hook payload. Unknown fields are ignored.
type Input struct {
	SessionID     string    `json:"session_id"`
	HookEventName string    `json:"hook_event_name"`
	ToolName      string    `json:"tool_name"`
	ToolInput     ToolInput `json:"tool_input"`
	CWD           string    `json:"cwd"`
}

// Read decodes a hook payload from r. Empty, truncated, or garbled input
// yields the zero Input; callers treat that as "nothing to inspect".
func Read(r io.Reader) Input {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes))
	if err != nil {
		logging.Debug("hook stdin read failed", "error", err)
		return Input{}
	}
	if len(data) == 0 {
		return Input{}
	}

	var input Input
	if err := json.Unmarshal(data, &input); err != nil {
		logging.Debug("hook stdin unmarshal failed", "error", err, "bytes", len(data))
		return Input{}
	}
	return input
}
