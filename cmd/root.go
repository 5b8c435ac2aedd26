package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/loadstone/loadout/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "loadout",
	Short: "Provision and guard a Claude-style agent configuration directory",
	Long: `loadout installs and maintains a managed set of agent assets under
~/.claude: agent definitions, skills, slash commands, hook scripts, and
settings.

Anything that overwrites or deletes existing state snapshots it into a
timestamped backup directory first. The same binary doubles as the hook
dispatcher the installed settings register:

  loadout hook pre-exec    - veto dangerous shell commands (exit 2)
  loadout hook post-write  - format freshly written files, best effort`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
	// Runtime failures should not dump usage text over the real error.
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
