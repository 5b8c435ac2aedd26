package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loadstone/loadout/internal/tui"
)

var (
	uninstallYes    bool
	uninstallTarget string
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove managed assets from the target directory",
	Long: `Removes every managed asset directory and root file from the target
directory, after snapshotting all of them into a backup directory.

settings.json is included in the snapshot but left in place; other tools
read it and deleting it is not loadout's call. Unmanaged files under the
target directory are never touched.`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "Skip the confirmation prompt")
	uninstallCmd.Flags().StringVar(&uninstallTarget, "target", "", "Target directory (default: ~/.claude)")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	mgr, err := newManager("", uninstallTarget)
	if err != nil {
		return err
	}

	if !uninstallYes {
		prompt := fmt.Sprintf("Remove managed assets from %s?", mgr.Target())
		if !tui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt, false) {
			logInfo("Uninstall cancelled")
			return nil
		}
	}

	result, err := mgr.Uninstall()
	if err != nil {
		return err
	}

	if len(result.Items) == 0 {
		logInfo("Nothing to uninstall under %s", mgr.Target())
		return nil
	}

	reportResult(result)
	if result.Snapshot != "" {
		logInfo("Restore from %s if needed", filepath.Join(mgr.Target(), result.Snapshot))
	}
	return nil
}
