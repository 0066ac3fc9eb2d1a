package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/sandbox"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/tui"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the sandbox image from .claude-sandbox/Containerfile",
	Long: `Build the sandbox image with 'container build', using .claude-sandbox/ as
the build context. The build is not retried; on failure the build tool's
output is printed as is.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}
	o, a, err := orchestrator()
	if err != nil {
		return err
	}

	// Debug and JSON logs share stderr with the spinner.
	progress := !verbose && !jsonOutput && tui.IsTerminal(a.Stderr)

	result, err := o.Build(cmd.Context(), dir, sandbox.BuildOptions{Progress: progress})
	if err != nil {
		return err
	}

	logSuccess("Built image %s", result.Image)
	logInfo("Next: claude-sandbox run")
	return nil
}
