package runtime

import (
	"context"
	"io"
	"os"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
)

// BuildOptions holds options for building an image.
type BuildOptions struct {
	Tag           string // Image tag to produce
	Containerfile string // Path to the image definition
	ContextDir    string // Build context directory
}

// RunOptions holds options for running an interactive container.
type RunOptions struct {
	Image      string
	ProjectDir string // Host directory bind-mounted at Workdir
	Workdir    string // Mount point and working directory in the container

	// Resources must already be validated.
	Resources config.RunSettings

	// SecretEnv is exported into the container by name only.
	SecretEnv map[string]string

	// TTY allocates a pseudo-terminal in the container.
	TTY bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Signals are forwarded to the container CLI. When nil, Run subscribes
	// to SIGINT, SIGTERM and SIGHUP for the duration of the call.
	Signals <-chan os.Signal
}

// Runtime is the interface the sandbox orchestrator drives.
type Runtime interface {
	// Name returns the runtime identifier
	Name() string

	// Preflight reports ToolUnavailable if the runtime cannot be used
	Preflight(ctx context.Context) error

	// Build builds an image, returning BuildFailed with the tool's output
	// if the build exits non-zero
	Build(ctx context.Context, opts BuildOptions) error

	// ImageExists reports whether an image with the given tag is present
	ImageExists(ctx context.Context, image string) (bool, error)

	// NewSession reserves a unique container name for a run in projectDir
	NewSession(projectDir string) *Session

	// Run runs an attached container to completion and returns its exit
	// status. The container is released on every return path.
	Run(ctx context.Context, session *Session, opts RunOptions) (int, error)
}
