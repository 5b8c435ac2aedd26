package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loadstone/loadout/internal/lifecycle"
	"github.com/loadstone/loadout/internal/tui"
)

var (
	installYes      bool
	installDryRun   bool
	installSource   string
	installTarget   string
	installSettings string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install managed assets into the target directory",
	Long: `Installs the managed asset tree into the target directory (~/.claude by
default): the agents, skills, commands, and hooks directories plus the
CLAUDE.md, USAGE.md, and settings.json root files.

Existing managed entries are snapshotted into a timestamped backup
directory before anything is overwritten, and hook scripts are made
executable after the copy. settings.json is never overwritten without an
explicit opt-in; declining keeps the current file and still counts as
success.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Skip the confirmation prompt")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Show planned changes without applying them")
	installCmd.Flags().StringVar(&installSource, "source", "", "Asset source directory (default: auto-detect, then embedded payload)")
	installCmd.Flags().StringVar(&installTarget, "target", "", "Target directory (default: ~/.claude)")
	installCmd.Flags().StringVar(&installSettings, "settings", "ask", "Existing settings.json handling: ask, keep, or overwrite")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	mode, err := lifecycle.ParseSettingsMode(installSettings)
	if err != nil {
		return err
	}

	mgr, err := newManager(installSource, installTarget)
	if err != nil {
		return err
	}

	if installDryRun {
		printPlan(cmd, mgr)
		return nil
	}

	logInfo("Installing assets from %s to %s", mgr.Source().Description(), mgr.Target())

	if !installYes && tui.IsInteractive() {
		if !tui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Proceed?", true) {
			logInfo("Installation cancelled")
			return nil
		}
	}

	result, err := mgr.Install(lifecycle.InstallOptions{
		Settings:        mode,
		ConfirmSettings: settingsPrompt(cmd),
	})
	if err != nil {
		return err
	}

	reportResult(result)
	return nil
}

// settingsPrompt is consulted in ask mode when settings.json already
// exists. Non-interactive runs keep the file and say so.
func settingsPrompt(cmd *cobra.Command) func() bool {
	return func() bool {
		if !tui.IsInteractive() {
			logInfo("settings.json already exists; keeping it")
			return false
		}
		return tui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			"settings.json already exists. Overwrite it?", false)
	}
}

// printPlan renders the dry-run view of an install.
func printPlan(cmd *cobra.Command, mgr *lifecycle.Manager) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Planned changes for %s (dry run, nothing written):\n\n", mgr.Target())
	for _, change := range mgr.Plan() {
		fmt.Fprintf(out, "  %-9s  %s\n", change.Verb, change.Name)
	}
	fmt.Fprintf(out, "\nSource: %s\n", mgr.Source().Description())
}
