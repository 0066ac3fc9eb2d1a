package cmd

import (
	"os"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/sandbox"
)

// workDir returns the project root. Tests replace it.
var workDir = os.Getwd

// projectDir returns the directory the command operates on.
func projectDir() (string, error) {
	dir, err := workDir()
	if err != nil {
		return "", errors.Wrap(errors.ExitGeneralError, "failed to determine current directory", err)
	}
	return dir, nil
}

// orchestrator returns an Orchestrator for the default app.
func orchestrator() (*sandbox.Orchestrator, *app.App, error) {
	a, err := app.Get()
	if err != nil {
		return nil, nil, err
	}
	return sandbox.New(a), a, nil
}
