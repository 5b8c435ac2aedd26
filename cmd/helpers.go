package cmd

import (
	"path/filepath"

	"github.com/loadstone/loadout/internal/app"
	"github.com/loadstone/loadout/internal/assets"
	"github.com/loadstone/loadout/internal/config"
	"github.com/loadstone/loadout/internal/errors"
	"github.com/loadstone/loadout/internal/lifecycle"
)

// paths returns the default paths configuration.
// This is a helper to reduce repetition in commands.
func paths() *config.Paths {
	return app.Default.Paths
}

// newManager resolves configuration, source, and target, and builds the
// lifecycle manager one command invocation operates through. The attached
// audit logger mints the run ID all of this invocation's events share.
func newManager(flagSource, flagTarget string) (*lifecycle.Manager, error) {
	settings, err := app.Default.LoadSettings()
	if err != nil {
		return nil, err
	}

	target, err := config.ResolveTarget(flagTarget, settings, paths())
	if err != nil {
		return nil, errors.ConfigError("target unusable", err)
	}

	source, err := assets.Resolve(config.ResolveSource(flagSource, settings))
	if err != nil {
		return nil, err
	}

	return lifecycle.NewManager(source, target,
		lifecycle.WithAudit(app.Default.AuditLogger())), nil
}

// reportResult prints the snapshot notice, per-item problems, and the
// summary line for one lifecycle operation.
func reportResult(result *lifecycle.Result) {
	if result.Snapshot != "" {
		logInfo("Backed up existing assets to %s", filepath.Join(result.Target, result.Snapshot))
	}

	for _, item := range result.Items {
		switch item.Action {
		case lifecycle.ActionFailed:
			logWarning("%s: %v", item.Name, item.Err)
		case lifecycle.ActionKept:
			logInfo("%s kept (not overwritten)", item.Name)
		}
	}

	if result.Failed() > 0 {
		logWarning("Completed with failures: %s", result.Summary())
		return
	}
	logSuccess("%s", result.Summary())
}
