package main

import (
	"os"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/cmd"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.IsSilent(err) {
			logging.UserError("%v", err)
			if hint := errors.GetHint(err); hint != "" {
				logging.UserHint(hint)
			}
		}
		os.Exit(errors.GetExitCode(err))
	}
}
