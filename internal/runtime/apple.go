package runtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/system"
)

const installHint = "Install Apple container from https://github.com/apple/container/releases"

// AppleRuntime implements Runtime using Apple's container CLI.
type AppleRuntime struct {
	// Binary is the container CLI name or path
	Binary string

	executor system.CommandExecutor
}

// NewAppleRuntime creates a runtime driving binary through executor.
func NewAppleRuntime(binary string, executor system.CommandExecutor) *AppleRuntime {
	if binary == "" {
		binary = "container"
	}
	return &AppleRuntime{Binary: binary, executor: executor}
}

// Name returns the runtime identifier
func (r *AppleRuntime) Name() string {
	return "apple"
}

// run executes a non-interactive container command and captures its output.
func (r *AppleRuntime) run(ctx context.Context, args ...string) (*system.Result, error) {
	logging.Debug("executing", "command", shellquote.Join(append([]string{r.Binary}, args...)...))

	result, err := r.executor.Execute(ctx, r.Binary, args...)
	if err != nil {
		return nil, r.startError(err)
	}
	return result, nil
}

// startError classifies a failure to launch the CLI.
func (r *AppleRuntime) startError(err error) error {
	if stderrors.Is(err, exec.ErrNotFound) {
		return errors.ToolUnavailable(fmt.Sprintf("%s CLI not found", r.Binary), err).WithHint(installHint)
	}
	return errors.ToolUnavailable(fmt.Sprintf("failed to run %s", r.Binary), err)
}

// Preflight checks that the CLI is installed and its system service is running.
func (r *AppleRuntime) Preflight(ctx context.Context) error {
	if _, err := r.executor.LookPath(r.Binary); err != nil {
		return r.startError(err)
	}

	result, err := r.run(ctx, "--version")
	if err != nil {
		return err
	}
	if !result.Success() {
		return errors.ToolUnavailable(
			fmt.Sprintf("%s --version exited with status %d: %s", r.Binary, result.ExitCode, trimOutput(result.Output)), nil).
			WithHint(installHint)
	}
	logging.Debug("container runtime", "version", trimOutput(result.Output))

	result, err = r.run(ctx, "system", "status")
	if err != nil {
		return err
	}
	if !result.Success() {
		return errors.ToolUnavailable(
			fmt.Sprintf("%s system service is not running: %s", r.Binary, trimOutput(result.Output)), nil).
			WithHint(fmt.Sprintf("Start it with '%s system start'.", r.Binary))
	}
	return nil
}

// Build builds the image. The tool's output is returned verbatim on failure.
func (r *AppleRuntime) Build(ctx context.Context, opts BuildOptions) error {
	logging.Debug("building image", "tag", opts.Tag, "containerfile", opts.Containerfile)

	result, err := r.run(ctx, "build", "-t", opts.Tag, "-f", opts.Containerfile, opts.ContextDir)
	if err != nil {
		return err
	}
	if !result.Success() {
		return errors.BuildFailed(string(result.Output), fmt.Errorf("exit status %d", result.ExitCode))
	}
	logging.Debug("build output", "output", string(result.Output))
	return nil
}

// ImageExists reports whether image is present in the local image store.
func (r *AppleRuntime) ImageExists(ctx context.Context, image string) (bool, error) {
	result, err := r.run(ctx, "image", "inspect", image)
	if err != nil {
		return false, err
	}
	if !result.Success() {
		logging.Debug("image inspect failed", "image", image, "status", result.ExitCode, "output", trimOutput(result.Output))
		return false, nil
	}
	return true, nil
}

// NewSession reserves a container name for a run in projectDir.
func (r *AppleRuntime) NewSession(projectDir string) *Session {
	return newSession(projectDir, r.destroy)
}

// destroy stops and removes a container, ignoring one that no longer exists.
func (r *AppleRuntime) destroy(ctx context.Context, name string) error {
	// Stop first (ignore errors if already stopped)
	if result, err := r.run(ctx, "stop", name); err == nil && !result.Success() {
		logging.Debug("container stop", "container", name, "output", trimOutput(result.Output))
	}

	result, err := r.run(ctx, "rm", "-f", name)
	if err != nil {
		return err
	}
	if result.Success() || isNotFound(result.Output) {
		return nil
	}
	return fmt.Errorf("%s rm %s exited with status %d: %s", r.Binary, name, result.ExitCode, trimOutput(result.Output))
}

// RunArgs returns the CLI arguments for running session with opts.
func (r *AppleRuntime) RunArgs(session *Session, opts RunOptions) []string {
	args := []string{"run", "--rm", "--name", session.Name, "-i"}
	if opts.TTY {
		args = append(args, "-t")
	}
	for _, name := range sortedKeys(opts.SecretEnv) {
		args = append(args, "-e", name)
	}
	args = append(args,
		"-c", strconv.Itoa(opts.Resources.CPUs),
		"-m", opts.Resources.MemoryFlag(),
		"-v", opts.ProjectDir+":"+opts.Workdir,
		"-w", opts.Workdir,
		opts.Image,
	)
	return args
}

// Run runs the container attached to the given streams and returns its exit
// status. Signals are forwarded to the CLI rather than terminating the caller.
func (r *AppleRuntime) Run(ctx context.Context, session *Session, opts RunOptions) (int, error) {
	signals := opts.Signals
	if signals == nil {
		ch := make(chan os.Signal, 1)
		notifySignals(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer stopSignals(ch)
		signals = ch
	}
	// Registered after the subscription so teardown runs while signals are
	// still caught.
	defer func() { _ = session.Release(ctx) }()

	args := r.RunArgs(session, opts)
	env := make([]string, 0, len(opts.SecretEnv))
	redacted := make([]string, 0, len(opts.SecretEnv))
	for _, name := range sortedKeys(opts.SecretEnv) {
		env = append(env, name+"="+opts.SecretEnv[name])
		redacted = append(redacted, name+"=<redacted>")
	}

	logging.Debug("starting container",
		"container", session.Name,
		"command", shellquote.Join(append([]string{r.Binary}, args...)...),
		"env", strings.Join(redacted, " "))

	code, err := r.executor.ExecuteInteractive(ctx, system.InteractiveOptions{
		Env:     env,
		Stdin:   opts.Stdin,
		Stdout:  opts.Stdout,
		Stderr:  opts.Stderr,
		Signals: signals,
	}, r.Binary, args...)
	if err != nil {
		return -1, r.startError(err)
	}

	logging.Debug("container exited", "container", session.Name, "status", code)
	return code, nil
}

// Swapped in tests.
var (
	notifySignals = signal.Notify
	stopSignals   = signal.Stop
)

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isNotFound(output []byte) bool {
	s := strings.ToLower(string(output))
	return strings.Contains(s, "not found") || strings.Contains(s, "no such container")
}

func trimOutput(output []byte) string {
	return strings.TrimSpace(string(output))
}

// Ensure AppleRuntime implements Runtime
var _ Runtime = (*AppleRuntime)(nil)
