package lifecycle

import (
	"github.com/loadstone/loadout/internal/assets"
	"github.com/loadstone/loadout/internal/audit"
	"github.com/loadstone/loadout/internal/errors"
	"github.com/loadstone/loadout/internal/logging"
)

// Uninstall removes the managed asset tree from the target root.
//
// Confirmation is the caller's concern; by the time this runs the user
// has said yes. A snapshot of everything managed, settings included, is
// taken first and its failure aborts before any deletion. The settings
// file itself is never deleted: user customizations outlive the managed
// assets. The target root and its snapshots also remain.
func (m *Manager) Uninstall() (*Result, error) {
	result := &Result{Operation: audit.EventUninstall, Target: m.target}

	existing := m.existingEntries()
	if len(existing) == 0 {
		logging.Debug("nothing to uninstall", "target", m.target)
		return result, nil
	}

	name, err := m.snapshot(audit.EventUninstall, existing)
	if err != nil {
		return nil, errors.BackupFailed(err)
	}
	result.Snapshot = name

	for _, entry := range existing {
		if entry == assets.SettingsFile {
			result.add(entry, ActionRetained, nil)
			continue
		}
		if err := m.fs.RemoveAll(m.entryPath(entry)); err != nil {
			logging.Warn("failed to remove entry", "entry", entry, "error", err)
			result.add(entry, ActionFailed, err)
			continue
		}
		result.add(entry, ActionRemoved, nil)
	}

	m.logResult(result)
	return result, nil
}
