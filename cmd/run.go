package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/sandbox"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive Claude Code session in the sandbox",
	Long: fmt.Sprintf(`Start the sandbox image with the current directory mounted at %s
and attach to the assistant.

The OAuth token is read from the host credential store and passed to the
container through its environment. The container is removed when the
session ends, including on interrupt. The exit status is the container's.

--cpus and --memory (in GB) must each be between %d and %d.`,
		config.ContainerWorkdir, config.MinResource, config.MaxResource),
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	runCPUs   int
	runMemory int
)

func init() {
	runCmd.Flags().IntVar(&runCPUs, "cpus", config.DefaultCPUs, "Number of CPUs for the container")
	runCmd.Flags().IntVar(&runMemory, "memory", config.DefaultMemoryGB, "Memory for the container in GB")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}
	o, a, err := orchestrator()
	if err != nil {
		return err
	}

	// Flags override config.toml defaults.
	settings := a.Config.Defaults.RunSettings()
	if cmd.Flags().Changed("cpus") {
		settings.CPUs = runCPUs
	}
	if cmd.Flags().Changed("memory") {
		settings.MemoryGB = runMemory
	}
	logging.Debug("run settings", "cpus", settings.CPUs, "memory_gb", settings.MemoryGB)

	return o.Run(cmd.Context(), dir, sandbox.RunOptions{
		Settings: settings,
		TTY:      tui.IsTerminal(a.Stdin),
	})
}
