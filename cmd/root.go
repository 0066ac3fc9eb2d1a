package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/logging"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=..."
var Version = "dev"

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "claude-sandbox",
	Short: "Run Claude Code in a disposable container",
	Long: `claude-sandbox runs an interactive Claude Code session inside an isolated
container built with Apple's container CLI.

The current directory is mounted read-write at /home/claude/code; nothing
else on the host is visible. The assistant may edit files and run commands
freely inside the container, which is removed when the session ends.

Typical use:
  claude-sandbox init     # write .claude-sandbox/ into the project
  claude-sandbox build    # build the image
  claude-sandbox run      # start a session`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

// Execute runs the root command. Errors are returned for main to report.
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
)
