package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/loadstone/loadout/internal/logging"
	"github.com/loadstone/loadout/internal/system"
)

// SyncSource pulls the asset source's upstream when the source is a git
// checkout. Callers treat any returned error as a warning: a stale but
// present source still provisions, so update proceeds regardless.
func (m *Manager) SyncSource(ctx context.Context) error {
	gitDir := m.source.GitDir()
	if gitDir == "" {
		logging.Debug("source is not a git checkout, skipping sync",
			"source", m.source.Description())
		return nil
	}

	executor := system.DefaultExecutor()
	if _, err := executor.LookPath("git"); err != nil {
		return fmt.Errorf("git not available: %w", err)
	}

	logging.Debug("syncing asset source", "dir", m.source.Dir())
	output, err := executor.Execute(ctx, "git", "-C", m.source.Dir(), "pull", "--ff-only")
	if err != nil {
		return fmt.Errorf("git pull failed: %w (%s)", err, strings.TrimSpace(string(output)))
	}

	logging.Debug("source synced", "output", strings.TrimSpace(string(output)))
	return nil
}
