package sandbox

import (
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
)

// InitOptions holds options for initializing a project.
type InitOptions struct {
	// Force replaces an existing configuration directory
	Force bool
}

// InitResult holds the result of a successful init.
type InitResult struct {
	// ConfigDir is the configuration directory that was written
	ConfigDir string

	// Artifacts lists the files written, in order
	Artifacts []string

	// Replaced is true if a previous configuration was overwritten
	Replaced bool
}

// BuildOptions holds options for building the image.
type BuildOptions struct {
	// Progress shows a spinner while the build runs
	Progress bool
}

// BuildResult holds the result of a successful build.
type BuildResult struct {
	// Image is the tag that was built
	Image string
}

// RunOptions holds options for a run.
type RunOptions struct {
	// Settings are the resource bounds, validated before anything runs
	Settings config.RunSettings

	// TTY allocates a terminal in the container
	TTY bool
}
