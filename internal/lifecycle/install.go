package lifecycle

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/loadstone/loadout/internal/assets"
	"github.com/loadstone/loadout/internal/audit"
	"github.com/loadstone/loadout/internal/errors"
	"github.com/loadstone/loadout/internal/logging"
)

// Install provisions the managed asset tree into the target root.
//
// The order is fixed: ensure the target root, snapshot whatever managed
// state already exists, then overwrite. A snapshot failure aborts before
// anything is touched; per-entry copy failures are collected and the run
// continues. The returned error is non-nil only for fatal preconditions.
func (m *Manager) Install(opts InstallOptions) (*Result, error) {
	if err := m.checkSourceOverlap(); err != nil {
		return nil, err
	}

	op := opts.Operation
	if op == "" {
		op = audit.EventInstall
	}
	result := &Result{Operation: op, Target: m.target}

	logging.Debug("provisioning target root",
		"target", m.target, "source", m.source.Description(), "operation", string(op))

	if err := m.fs.MkdirAll(m.target, 0755); err != nil {
		return nil, errors.TargetRootFailed(m.target, err)
	}

	if existing := m.existingEntries(); len(existing) > 0 {
		name, err := m.snapshot(op, existing)
		if err != nil {
			return nil, errors.BackupFailed(err)
		}
		result.Snapshot = name
	}

	for _, dir := range assets.Directories() {
		if err := m.copyFromSource(dir); err != nil {
			if isNotExist(err) {
				result.add(dir, ActionSkipped, nil)
				continue
			}
			logging.Warn("failed to copy entry", "entry", dir, "error", err)
			result.add(dir, ActionFailed, err)
			continue
		}
		if dir == assets.HooksDir {
			if err := m.makeHooksExecutable(); err != nil {
				logging.Warn("failed to mark hooks executable", "error", err)
				result.add(dir, ActionFailed, err)
				continue
			}
		}
		result.add(dir, ActionCopied, nil)
	}

	for _, name := range assets.ManagedRootFiles() {
		if err := m.copyFromSource(name); err != nil {
			if isNotExist(err) {
				result.add(name, ActionSkipped, nil)
				continue
			}
			logging.Warn("failed to copy entry", "entry", name, "error", err)
			result.add(name, ActionFailed, err)
			continue
		}
		result.add(name, ActionCopied, nil)
	}

	m.installSettings(opts, result)

	m.logResult(result)
	return result, nil
}

// checkSourceOverlap refuses a disk source that is the target root
// itself. The copy phase clears each destination directory before
// copying it back in, so a target doubling as its own source would be
// destroyed. A provisioned target looks like an asset checkout, so
// running install from inside it resolves the target as the source.
func (m *Manager) checkSourceOverlap() error {
	dir := m.source.Dir()
	if dir == "" {
		return nil
	}
	if canonicalPath(dir) == canonicalPath(m.target) {
		return errors.SourceInvalid(dir, "source directory is the target root")
	}
	return nil
}

// canonicalPath resolves symlinks where possible so two spellings of
// one directory compare equal.
func canonicalPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

// installSettings applies the settings policy: copy when absent, and
// otherwise only replace on an explicit opt-in.
func (m *Manager) installSettings(opts InstallOptions, result *Result) {
	name := assets.SettingsFile

	if !m.fs.Exists(m.entryPath(name)) {
		if err := m.copyFromSource(name); err != nil {
			if isNotExist(err) {
				result.add(name, ActionSkipped, nil)
				return
			}
			logging.Warn("failed to copy entry", "entry", name, "error", err)
			result.add(name, ActionFailed, err)
			return
		}
		result.add(name, ActionCopied, nil)
		return
	}

	overwrite := false
	switch opts.Settings {
	case SettingsOverwrite:
		overwrite = true
	case SettingsKeep:
	default: // SettingsAsk
		if opts.ConfirmSettings != nil {
			overwrite = opts.ConfirmSettings()
		}
	}

	if !overwrite {
		result.add(name, ActionKept, nil)
		return
	}
	if err := m.copyFromSource(name); err != nil {
		logging.Warn("failed to copy entry", "entry", name, "error", err)
		result.add(name, ActionFailed, err)
		return
	}
	result.add(name, ActionCopied, nil)
}

// logResult records the operation in the audit log, best-effort.
func (m *Manager) logResult(result *Result) {
	err := m.audit.Log(audit.Event{
		Type:    result.Operation,
		Target:  result.Target,
		Backup:  result.Snapshot,
		Details: result.Summary(),
		Failed:  result.Failed(),
	})
	if err != nil {
		logging.Warn("failed to append audit event", "error", err)
	}
}

// PlannedChange is one step a dry run would perform.
type PlannedChange struct {
	Name string
	Verb string
}

// Plan previews an install without mutating anything.
func (m *Manager) Plan() []PlannedChange {
	var plan []PlannedChange

	if !m.fs.Exists(m.target) {
		plan = append(plan, PlannedChange{Name: m.target, Verb: "create"})
	}
	if existing := m.existingEntries(); len(existing) > 0 {
		plan = append(plan, PlannedChange{
			Name: fmt.Sprintf("%d existing entries", len(existing)),
			Verb: "snapshot",
		})
	}

	entries := append(assets.Directories(), assets.ManagedRootFiles()...)
	for _, name := range entries {
		verb := "copy"
		if m.fs.Exists(m.entryPath(name)) {
			verb = "overwrite"
		}
		plan = append(plan, PlannedChange{Name: name, Verb: verb})
	}

	settingsVerb := "copy"
	if m.fs.Exists(m.entryPath(assets.SettingsFile)) {
		settingsVerb = "prompt"
	}
	plan = append(plan, PlannedChange{Name: assets.SettingsFile, Verb: settingsVerb})

	return plan
}

// SyncState compares one live entry against the source.
type SyncState string

const (
	StateInSync  SyncState = "in sync"
	StateDiffers SyncState = "differs"
	StateMissing SyncState = "missing"
)

// EntryStatus describes one managed entry at the target root.
type EntryStatus struct {
	Name    string
	Present bool
	Files   int

	// State is populated only when Status is asked to compare.
	State SyncState
}

// Status reports every managed entry. With compare set, each entry is
// also diffed file-by-file against the source.
func (m *Manager) Status(compare bool) []EntryStatus {
	var statuses []EntryStatus
	for _, name := range assets.AllEntries() {
		status := EntryStatus{Name: name, Present: m.fs.Exists(m.entryPath(name))}
		if status.Present {
			status.Files = m.countFiles(name)
		}
		if compare {
			status.State = m.compareEntry(name, status.Present)
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func (m *Manager) countFiles(name string) int {
	n := 0
	_ = m.walkTarget(name, func(path string, isDir bool) error {
		if !isDir {
			n++
		}
		return nil
	})
	return n
}

// compareEntry walks the source entry and checks each file's bytes at
// the destination. Extra files at the destination do not count against
// sync; only divergence from the source does.
func (m *Manager) compareEntry(name string, present bool) SyncState {
	if !present {
		return StateMissing
	}

	info, err := fs.Stat(m.source.FS(), name)
	if err != nil {
		// Nothing in the source to compare against.
		return StateInSync
	}

	inSync := true
	check := func(path string) {
		srcData, err := fs.ReadFile(m.source.FS(), path)
		if err != nil {
			inSync = false
			return
		}
		dstData, err := m.fs.ReadFile(filepath.Join(m.target, path))
		if err != nil || !bytes.Equal(srcData, dstData) {
			inSync = false
		}
	}

	if !info.IsDir() {
		check(name)
	} else {
		_ = fs.WalkDir(m.source.FS(), name, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			check(path)
			return nil
		})
	}

	if !inSync {
		return StateDiffers
	}
	return StateInSync
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
