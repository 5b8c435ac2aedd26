// Package audit provides structured event logging for lifecycle
// operations and guard decisions. Events are stored as JSON Lines
// (JSONL) in a single append-only file.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// EventType classifies an audit event.
type EventType string

const (
	EventInstall   EventType = "install"
	EventUpdate    EventType = "update"
	EventUninstall EventType = "uninstall"
	EventBlock     EventType = "block"
)

// Event represents a single audit log entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
	Type      EventType `json:"type"`
	Target    string    `json:"target,omitempty"`
	Backup    string    `json:"backup,omitempty"`
	Details   string    `json:"details,omitempty"`
	Failed    int       `json:"failed,omitempty"`
}

// Logger appends events to a JSONL file. Each Logger carries a run ID
// so every event from one invocation can be correlated.
type Logger struct {
	path  string
	runID string
}

// NewLogger creates an audit logger writing to path.
func NewLogger(path string) *Logger {
	return &Logger{path: path, runID: uuid.NewString()}
}

// RunID returns the identifier stamped on this logger's events.
func (l *Logger) RunID() string {
	return l.runID
}

// Log appends an event. A zero timestamp and empty run ID are filled in.
// A nil Logger discards events.
func (l *Logger) Log(event Event) error {
	if l == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RunID == "" {
		event.RunID = l.runID
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogOperation is a convenience method for lifecycle events.
func (l *Logger) LogOperation(eventType EventType, target, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Target:    target,
		Details:   details,
	})
}

// Events reads all events in chronological order. Malformed lines are
// skipped; a missing log file yields no events and no error.
func (l *Logger) Events() ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}

// Last returns the most recent event of the given types, or false when
// none is recorded. With no types, any event matches.
func (l *Logger) Last(types ...EventType) (Event, bool) {
	events, err := l.Events()
	if err != nil || len(events) == 0 {
		return Event{}, false
	}

	for i := len(events) - 1; i >= 0; i-- {
		if len(types) == 0 {
			return events[i], true
		}
		for _, t := range types {
			if events[i].Type == t {
				return events[i], true
			}
		}
	}
	return Event{}, false
}
