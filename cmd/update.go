package cmd

import (
	"context"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/loadstone/loadout/internal/audit"
	"github.com/loadstone/loadout/internal/lifecycle"
	"github.com/loadstone/loadout/internal/tui"
)

// syncTimeout bounds the git pull; a wedged remote must not hang update.
const syncTimeout = 60 * time.Second

var (
	updateSource   string
	updateTarget   string
	updateSettings string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the asset source and reinstall",
	Long: `Updates the managed assets. When the resolved source is a git checkout it
is synced with a fast-forward pull first; the install procedure then runs
exactly as "loadout install" would (snapshot, then overwrite).

A sync failure is reported and the update proceeds with the assets already
on disk; it never fails the command.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateSource, "source", "", "Asset source directory (default: auto-detect, then embedded payload)")
	updateCmd.Flags().StringVar(&updateTarget, "target", "", "Target directory (default: ~/.claude)")
	updateCmd.Flags().StringVar(&updateSettings, "settings", "ask", "Existing settings.json handling: ask, keep, or overwrite")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	mode, err := lifecycle.ParseSettingsMode(updateSettings)
	if err != nil {
		return err
	}

	mgr, err := newManager(updateSource, updateTarget)
	if err != nil {
		return err
	}

	syncSource(mgr)

	logInfo("Updating assets from %s to %s", mgr.Source().Description(), mgr.Target())

	result, err := mgr.Install(lifecycle.InstallOptions{
		Settings:        mode,
		ConfirmSettings: settingsPrompt(cmd),
		Operation:       audit.EventUpdate,
	})
	if err != nil {
		return err
	}

	reportResult(result)
	return nil
}

// syncSource pulls the source checkout, with a spinner when the terminal
// can show one. Failures are reported and swallowed.
func syncSource(mgr *lifecycle.Manager) {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	var s *spinner.Spinner
	if tui.IsInteractive() {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Syncing asset source..."
		s.Start()
	}

	err := mgr.SyncSource(ctx)

	if s != nil {
		s.Stop()
	}
	if err != nil {
		logWarning("Source sync failed, continuing with current assets: %v", err)
	}
}
