package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/sandbox"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the .claude-sandbox configuration in the current directory",
	Long: `Create .claude-sandbox/ in the current directory with a Containerfile,
the assistant's settings.json and a CLAUDE.md orientation document.

The files are yours to edit; run 'claude-sandbox build' afterwards. Existing
configuration is only replaced with --force, which restores the defaults and
removes any other files in the directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}
	o, _, err := orchestrator()
	if err != nil {
		return err
	}

	result, err := o.Init(cmd.Context(), dir, sandbox.InitOptions{Force: initForce})
	if err != nil {
		return err
	}

	if result.Replaced {
		logWarning("Replaced existing configuration in %s", result.ConfigDir)
	}
	for _, name := range result.Artifacts {
		logInfo("  %s", filepath.Join(filepath.Base(result.ConfigDir), name))
	}
	logSuccess("Initialized %s", result.ConfigDir)
	logInfo("Next: claude-sandbox build")
	return nil
}
