package cmd

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/loadstone/loadout/internal/lifecycle"
	"github.com/loadstone/loadout/internal/tui"
)

var backupsTarget string

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List backup snapshots",
	Long: `Lists the backup snapshots under the target directory, newest first.
Snapshots are created automatically whenever install, update, or uninstall
would overwrite or delete existing managed entries.`,
	Args: cobra.NoArgs,
	RunE: runBackups,
}

var backupsShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show the contents of a snapshot",
	Long: `Shows every file a snapshot holds. Without a name, an interactive picker
opens when the terminal allows it; otherwise the snapshots are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupsShow,
}

func init() {
	backupsCmd.PersistentFlags().StringVar(&backupsTarget, "target", "", "Target directory (default: ~/.claude)")
	backupsCmd.AddCommand(backupsShowCmd)
	rootCmd.AddCommand(backupsCmd)
}

func runBackups(cmd *cobra.Command, args []string) error {
	mgr, err := newManager("", backupsTarget)
	if err != nil {
		return err
	}

	snapshots, err := mgr.ListSnapshots()
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		logInfo("No snapshots under %s", mgr.Target())
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"NAME", "AGE", "ITEMS"})

	now := time.Now()
	for _, snap := range snapshots {
		t.AppendRow(table.Row{snap.Name, snap.Age(now), snap.Describe()})
	}

	t.Render()
	return nil
}

func runBackupsShow(cmd *cobra.Command, args []string) error {
	mgr, err := newManager("", backupsTarget)
	if err != nil {
		return err
	}

	var snap lifecycle.Snapshot
	if len(args) == 1 {
		snap, err = mgr.FindSnapshot(args[0])
		if err != nil {
			return err
		}
	} else {
		snapshots, err := mgr.ListSnapshots()
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			logInfo("No snapshots under %s", mgr.Target())
			return nil
		}

		if !tui.IsInteractive() {
			fmt.Fprint(cmd.OutOrStdout(), tui.SimpleSnapshotList(snapshots))
			return nil
		}

		result, err := tui.RunPicker(snapshots)
		if err != nil {
			return fmt.Errorf("picker error: %w", err)
		}
		if result.Action != tui.ActionShow {
			return nil
		}
		snap = result.Snapshot
	}

	files, err := mgr.SnapshotFiles(snap)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Snapshot %s (%s)\n", snap.Name, snap.Time.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Contains: %s\n\n", snap.Describe())
	for _, file := range files {
		fmt.Fprintf(out, "  %s\n", file)
	}
	fmt.Fprintf(out, "\n%d files. Restore by copying entries back into %s.\n", len(files), mgr.Target())
	return nil
}
