package cmd

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/loadstone/loadout/internal/app"
	"github.com/loadstone/loadout/internal/lifecycle"
)

var (
	statusCheck  bool
	statusSource string
	statusTarget string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the managed asset tree",
	Long: `Shows every managed entry under the target directory: whether it is
present and how many files it holds, plus the resolved source and the
number of backup snapshots.

With --check each entry is also compared file-by-file against the source
(in sync, differs, or missing). Extra files you added under a managed
directory do not count as divergence.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusCheck, "check", false, "Compare installed files against the source")
	statusCmd.Flags().StringVar(&statusSource, "source", "", "Asset source directory (default: auto-detect, then embedded payload)")
	statusCmd.Flags().StringVar(&statusTarget, "target", "", "Target directory (default: ~/.claude)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	mgr, err := newManager(statusSource, statusTarget)
	if err != nil {
		return err
	}

	snapshots, err := mgr.ListSnapshots()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Target: %s\n", mgr.Target())
	fmt.Fprintf(out, "Source: %s\n", mgr.Source().Description())
	fmt.Fprintf(out, "Snapshots: %d\n", len(snapshots))
	if last, ok := app.Default.AuditLogger().Last(); ok {
		fmt.Fprintf(out, "Last operation: %s (%s)\n", last.Type, last.Timestamp.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(out)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)

	header := table.Row{"ENTRY", "PRESENT", "FILES"}
	if statusCheck {
		header = append(header, "STATE")
	}
	t.AppendHeader(header)

	for _, entry := range mgr.Status(statusCheck) {
		files := "-"
		if entry.Present {
			files = strconv.Itoa(entry.Files)
		}
		row := table.Row{entry.Name, presence(entry.Present), files}
		if statusCheck {
			row = append(row, colorState(entry.State))
		}
		t.AppendRow(row)
	}

	t.Render()
	return nil
}

func presence(present bool) string {
	if present {
		return text.FgGreen.Sprint("yes")
	}
	return text.FgRed.Sprint("no")
}

func colorState(state lifecycle.SyncState) string {
	switch state {
	case lifecycle.StateInSync:
		return text.FgGreen.Sprint(string(state))
	case lifecycle.StateDiffers:
		return text.FgYellow.Sprint(string(state))
	default:
		return text.FgRed.Sprint(string(state))
	}
}
