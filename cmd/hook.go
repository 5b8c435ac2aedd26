package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loadstone/loadout/internal/app"
	"github.com/loadstone/loadout/internal/audit"
	"github.com/loadstone/loadout/internal/errors"
	"github.com/loadstone/loadout/internal/format"
	"github.com/loadstone/loadout/internal/guard"
	"github.com/loadstone/loadout/internal/hookio"
	"github.com/loadstone/loadout/internal/logging"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Hook dispatchers invoked by the installed shims",
	Long: `The hook subcommands implement the contract behind the installed hook
scripts. Each takes its subject as a positional argument or, as the host
delivers it, as a JSON payload on stdin.

pre-exec vetoes dangerous shell commands: exit 2 means blocked, exit 0
means allowed. post-write runs a formatter matching the written file's
suffix and always exits 0; a missing formatter or a formatting failure is
never the host's problem.`,
}

var hookPreExecCmd = &cobra.Command{
	Use:   "pre-exec [command]",
	Short: "Veto dangerous shell commands",
	Args:  cobra.MaximumNArgs(1),
	// The host consumes the exit code; keep usage and cobra's error
	// echo out of the hook's stderr.
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runHookPreExec,
}

var hookPostWriteCmd = &cobra.Command{
	Use:           "post-write [file]",
	Short:         "Format a file that was just written",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runHookPostWrite,
}

func init() {
	hookCmd.AddCommand(hookPreExecCmd)
	hookCmd.AddCommand(hookPostWriteCmd)
	rootCmd.AddCommand(hookCmd)
}

func runHookPreExec(cmd *cobra.Command, args []string) error {
	command := ""
	if len(args) == 1 {
		command = args[0]
	} else {
		command = hookio.Read(cmd.InOrStdin()).ToolInput.Command
	}
	if command == "" {
		// Nothing to check is an allow, not an error.
		return nil
	}

	pattern, blocked := guard.Check(command)
	if !blocked {
		logging.Debug("command allowed", "command", command)
		return nil
	}

	// Best-effort audit trail; the veto must not depend on it.
	if err := app.Default.AuditLogger().Log(audit.Event{
		Type:    audit.EventBlock,
		Details: fmt.Sprintf("pattern %q in command %q", pattern, command),
	}); err != nil {
		logging.Debug("audit write failed", "error", err)
	}

	logError("Blocked: command contains denied pattern %q", pattern)
	return errors.GuardBlock(pattern)
}

func runHookPostWrite(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		path = hookio.Read(cmd.InOrStdin()).ToolInput.FilePath
	}
	if path == "" {
		return nil
	}

	format.Apply(cmd.Context(), path)
	return nil
}
