// Package lifecycle orchestrates install, update, and uninstall of the
// managed asset tree under the target root.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/loadstone/loadout/internal/assets"
	"github.com/loadstone/loadout/internal/audit"
	"github.com/loadstone/loadout/internal/system"
)

// Manager runs lifecycle operations against one target root.
type Manager struct {
	fs     system.FileSystem
	source *assets.Source
	target string
	audit  *audit.Logger
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithAudit attaches an audit logger; without it events are discarded.
func WithAudit(logger *audit.Logger) Option {
	return func(m *Manager) { m.audit = logger }
}

// WithClock overrides the clock used for snapshot names.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager provisioning from source into target.
// Target must be an absolute path; callers resolve it via config.
func NewManager(source *assets.Source, target string, opts ...Option) *Manager {
	m := &Manager{
		fs:     system.DefaultFS(),
		source: source,
		target: target,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Target returns the target root this manager operates on.
func (m *Manager) Target() string {
	return m.target
}

// Source returns the asset source this manager provisions from.
func (m *Manager) Source() *assets.Source {
	return m.source
}

// SettingsMode controls what install does with an existing settings file.
type SettingsMode string

const (
	// SettingsAsk defers to the ConfirmSettings callback.
	SettingsAsk SettingsMode = "ask"
	// SettingsKeep leaves an existing settings file untouched.
	SettingsKeep SettingsMode = "keep"
	// SettingsOverwrite replaces an existing settings file.
	SettingsOverwrite SettingsMode = "overwrite"
)

// ParseSettingsMode validates a flag value.
func ParseSettingsMode(s string) (SettingsMode, error) {
	switch SettingsMode(s) {
	case SettingsAsk, SettingsKeep, SettingsOverwrite:
		return SettingsMode(s), nil
	}
	return "", fmt.Errorf("invalid settings mode %q (expected ask, keep, or overwrite)", s)
}

// InstallOptions configures a provisioning run.
type InstallOptions struct {
	// Settings selects the policy for an existing settings file.
	// The zero value is SettingsAsk.
	Settings SettingsMode

	// ConfirmSettings is consulted when Settings is SettingsAsk and a
	// settings file already exists. Nil means keep.
	ConfirmSettings func() bool

	// Operation overrides the audit event type. Update passes its own
	// so a re-provisioning run is attributed correctly; the zero value
	// records an install.
	Operation audit.EventType
}

// ItemAction describes what happened to one managed entry.
type ItemAction string

const (
	ActionCopied   ItemAction = "copied"
	ActionSkipped  ItemAction = "skipped"  // absent in source
	ActionFailed   ItemAction = "failed"
	ActionKept     ItemAction = "kept"     // settings left untouched
	ActionRemoved  ItemAction = "removed"  // uninstall
	ActionRetained ItemAction = "retained" // settings survive uninstall
)

// ItemResult records the outcome for one managed entry.
type ItemResult struct {
	Name   string
	Action ItemAction
	Err    error
}

// Result summarizes one lifecycle operation.
type Result struct {
	Operation audit.EventType
	Target    string

	// Snapshot is the backup directory name, or "" when nothing needed
	// backing up.
	Snapshot string

	Items []ItemResult
}

// Failed counts items that could not be processed.
func (r *Result) Failed() int {
	n := 0
	for _, item := range r.Items {
		if item.Action == ActionFailed {
			n++
		}
	}
	return n
}

// FailedItems returns the items that could not be processed.
func (r *Result) FailedItems() []ItemResult {
	var failed []ItemResult
	for _, item := range r.Items {
		if item.Action == ActionFailed {
			failed = append(failed, item)
		}
	}
	return failed
}

func (r *Result) add(name string, action ItemAction, err error) {
	r.Items = append(r.Items, ItemResult{Name: name, Action: action, Err: err})
}

// Summary renders a short human-readable outcome line.
func (r *Result) Summary() string {
	copied, failed, other := 0, 0, 0
	for _, item := range r.Items {
		switch item.Action {
		case ActionCopied, ActionRemoved:
			copied++
		case ActionFailed:
			failed++
		default:
			other++
		}
	}
	verb := "processed"
	switch r.Operation {
	case audit.EventUninstall:
		verb = "removed"
	case audit.EventInstall, audit.EventUpdate:
		verb = "installed"
	}
	s := fmt.Sprintf("%d %s", copied, verb)
	if failed > 0 {
		s += fmt.Sprintf(", %d failed", failed)
	}
	if other > 0 {
		s += fmt.Sprintf(", %d unchanged", other)
	}
	return s
}

// existingEntries returns the managed names currently present under the
// target root, in canonical order.
func (m *Manager) existingEntries() []string {
	var present []string
	for _, name := range assets.AllEntries() {
		if m.fs.Exists(m.entryPath(name)) {
			present = append(present, name)
		}
	}
	return present
}
