package runtime

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/system"
)

func newTestRuntime() (*AppleRuntime, *system.MockExecutor) {
	exec := system.NewMockExecutor()
	return NewAppleRuntime("container", exec), exec
}

func TestAppleRuntime_Name(t *testing.T) {
	rt, _ := newTestRuntime()
	if rt.Name() != "apple" {
		t.Errorf("Name() = %q, want %q", rt.Name(), "apple")
	}
	if NewAppleRuntime("", nil).Binary != "container" {
		t.Error("empty binary should default to container")
	}
}

func TestAppleRuntime_Preflight(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(m *system.MockExecutor)
		wantError bool
		wantHint  string
	}{
		{
			name: "ready",
			setup: func(m *system.MockExecutor) {
				m.AddResponse("container --version", []byte("container CLI version 0.5.0\n"), 0)
				m.AddResponse("container system status", []byte("apiserver is running\n"), 0)
			},
		},
		{
			name:      "not installed",
			setup:     func(m *system.MockExecutor) { m.Missing["container"] = true },
			wantError: true,
			wantHint:  "github.com/apple/container",
		},
		{
			name: "version fails",
			setup: func(m *system.MockExecutor) {
				m.AddResponse("container --version", []byte("dyld: library not loaded\n"), 134)
			},
			wantError: true,
		},
		{
			name: "service stopped",
			setup: func(m *system.MockExecutor) {
				m.AddResponse("container system status", []byte("apiserver is not running\n"), 1)
			},
			wantError: true,
			wantHint:  "container system start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, exec := newTestRuntime()
			tt.setup(exec)

			err := rt.Preflight(context.Background())
			if !tt.wantError {
				if err != nil {
					t.Fatalf("Preflight() = %v", err)
				}
				return
			}
			if !errors.Is(err, errors.ErrToolUnavailable) {
				t.Fatalf("Preflight() = %v, want ToolUnavailable", err)
			}
			if errors.Is(err, errors.ErrBuildFailed) {
				t.Error("tool unavailability must be distinct from a build failure")
			}
			if tt.wantHint != "" && !strings.Contains(errors.GetHint(err), tt.wantHint) {
				t.Errorf("hint = %q, want it to contain %q", errors.GetHint(err), tt.wantHint)
			}
		})
	}
}

func TestAppleRuntime_Build(t *testing.T) {
	rt, exec := newTestRuntime()
	opts := BuildOptions{
		Tag:           "claude-sandbox",
		Containerfile: "/work/app/.claude-sandbox/Containerfile",
		ContextDir:    "/work/app/.claude-sandbox",
	}

	if err := rt.Build(context.Background(), opts); err != nil {
		t.Fatalf("Build() = %v", err)
	}

	cmd, ok := exec.LastCommand()
	if !ok {
		t.Fatal("no command executed")
	}
	want := "container build -t claude-sandbox -f /work/app/.claude-sandbox/Containerfile /work/app/.claude-sandbox"
	if cmd.Line() != want {
		t.Errorf("command = %q, want %q", cmd.Line(), want)
	}
}

func TestAppleRuntime_BuildFailure(t *testing.T) {
	rt, exec := newTestRuntime()
	output := "[3/7] RUN npm install -g @anthropic-ai/claude-code\nnpm ERR! network request failed\n"
	exec.AddResponse("container build", []byte(output), 1)

	err := rt.Build(context.Background(), BuildOptions{Tag: "t", Containerfile: "f", ContextDir: "d"})
	if !errors.Is(err, errors.ErrBuildFailed) {
		t.Fatalf("Build() = %v, want BuildFailed", err)
	}
	if !strings.Contains(err.Error(), output) {
		t.Errorf("error %q does not contain the build output verbatim", err)
	}
	if n := len(exec.Find("container build")); n != 1 {
		t.Errorf("build ran %d times, want exactly once", n)
	}
}

func TestAppleRuntime_BuildToolMissing(t *testing.T) {
	rt, exec := newTestRuntime()
	exec.Missing["container"] = true

	err := rt.Build(context.Background(), BuildOptions{Tag: "t", Containerfile: "f", ContextDir: "d"})
	if !errors.Is(err, errors.ErrToolUnavailable) {
		t.Errorf("Build() = %v, want ToolUnavailable", err)
	}
}

func TestAppleRuntime_ImageExists(t *testing.T) {
	rt, exec := newTestRuntime()
	exec.AddResponse("container image inspect present", []byte("[{}]"), 0)
	exec.AddResponse("container image inspect absent", []byte("Error: image not found"), 1)

	if ok, err := rt.ImageExists(context.Background(), "present"); err != nil || !ok {
		t.Errorf("ImageExists(present) = %v, %v; want true, nil", ok, err)
	}
	if ok, err := rt.ImageExists(context.Background(), "absent"); err != nil || ok {
		t.Errorf("ImageExists(absent) = %v, %v; want false, nil", ok, err)
	}
}

func testRunOptions() RunOptions {
	return RunOptions{
		Image:      "claude-sandbox",
		ProjectDir: "/Users/me/src/app",
		Workdir:    "/home/claude/code",
		Resources:  config.RunSettings{CPUs: 4, MemoryGB: 6},
		SecretEnv:  map[string]string{"CLAUDE_CODE_OAUTH_TOKEN": "sk-ant-oat01-secret"},
	}
}

func TestAppleRuntime_RunArgs(t *testing.T) {
	rt, _ := newTestRuntime()
	session := &Session{Name: "claude-sandbox-app-1234abcd"}

	tests := []struct {
		name string
		tty  bool
		want string
	}{
		{
			name: "no tty",
			want: "run --rm --name claude-sandbox-app-1234abcd -i -e CLAUDE_CODE_OAUTH_TOKEN -c 4 -m 6G -v /Users/me/src/app:/home/claude/code -w /home/claude/code claude-sandbox",
		},
		{
			name: "tty",
			tty:  true,
			want: "run --rm --name claude-sandbox-app-1234abcd -i -t -e CLAUDE_CODE_OAUTH_TOKEN -c 4 -m 6G -v /Users/me/src/app:/home/claude/code -w /home/claude/code claude-sandbox",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testRunOptions()
			opts.TTY = tt.tty
			got := strings.Join(rt.RunArgs(session, opts), " ")
			if got != tt.want {
				t.Errorf("RunArgs() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestAppleRuntime_Run_TokenOnlyInEnvironment(t *testing.T) {
	rt, exec := newTestRuntime()
	exec.InteractiveExitCode = 0
	opts := testRunOptions()
	opts.Signals = make(chan os.Signal)

	session := rt.NewSession(opts.ProjectDir)
	code, err := rt.Run(context.Background(), session, opts)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}

	runs := exec.Find("container run")
	if len(runs) != 1 {
		t.Fatalf("container run invoked %d times, want 1", len(runs))
	}
	run := runs[0]

	for _, c := range exec.Commands {
		if strings.Contains(c.Line(), "sk-ant-oat01-secret") {
			t.Errorf("token leaked into argv: %s", c.Line())
		}
	}
	if len(run.Env) != 1 || run.Env[0] != "CLAUDE_CODE_OAUTH_TOKEN=sk-ant-oat01-secret" {
		t.Errorf("run env = %v, want only the token variable", run.Env)
	}
	if !run.Interactive {
		t.Error("container run should be attached to the terminal")
	}
}

func TestAppleRuntime_Run_ForwardsExitStatus(t *testing.T) {
	rt, exec := newTestRuntime()
	exec.InteractiveExitCode = 130
	opts := testRunOptions()
	opts.Signals = make(chan os.Signal)

	code, err := rt.Run(context.Background(), rt.NewSession(opts.ProjectDir), opts)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if code != 130 {
		t.Errorf("exit code = %d, want 130", code)
	}
}

func TestAppleRuntime_Run_ReleasesSession(t *testing.T) {
	tests := []struct {
		name     string
		startErr error
	}{
		{name: "normal exit"},
		{name: "spawn failure", startErr: fmt.Errorf("fork/exec: resource temporarily unavailable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, exec := newTestRuntime()
			exec.InteractiveErr = tt.startErr
			opts := testRunOptions()
			opts.Signals = make(chan os.Signal)

			session := rt.NewSession(opts.ProjectDir)
			_, err := rt.Run(context.Background(), session, opts)
			if (err != nil) != (tt.startErr != nil) {
				t.Fatalf("Run() error = %v, want error %v", err, tt.startErr != nil)
			}

			if n := len(exec.Find("container stop " + session.Name)); n != 1 {
				t.Errorf("stop ran %d times, want 1", n)
			}
			if n := len(exec.Find("container rm -f " + session.Name)); n != 1 {
				t.Errorf("rm ran %d times, want 1", n)
			}

			// A second release is a no-op.
			_ = session.Release(context.Background())
			if n := len(exec.Find("container rm -f")); n != 1 {
				t.Errorf("rm ran %d times after second Release, want 1", n)
			}
		})
	}
}

func TestAppleRuntime_Run_SignalsReachChild(t *testing.T) {
	rt, exec := newTestRuntime()
	opts := testRunOptions()
	sigs := make(chan os.Signal, 1)
	opts.Signals = sigs

	var received os.Signal
	exec.OnInteractive = func(o system.InteractiveOptions) {
		sigs <- syscall.SIGINT
		received = <-o.Signals
	}

	if _, err := rt.Run(context.Background(), rt.NewSession(opts.ProjectDir), opts); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if received != syscall.SIGINT {
		t.Errorf("child received %v, want SIGINT", received)
	}
	if n := len(exec.Find("container rm -f")); n != 1 {
		t.Errorf("rm ran %d times, want 1", n)
	}
}

// teardownExecutor records whether each captured command ran while the
// run's signal subscription was active.
type teardownExecutor struct {
	*system.MockExecutor
	subscribed *bool
	caught     map[string]bool
}

func (e *teardownExecutor) Execute(ctx context.Context, name string, args ...string) (*system.Result, error) {
	if len(args) > 0 {
		e.caught[args[0]] = *e.subscribed
	}
	return e.MockExecutor.Execute(ctx, name, args...)
}

func TestAppleRuntime_Run_TeardownStillCatchesSignals(t *testing.T) {
	var subscribed bool
	origNotify, origStop := notifySignals, stopSignals
	notifySignals = func(c chan<- os.Signal, sig ...os.Signal) { subscribed = true }
	stopSignals = func(c chan<- os.Signal) { subscribed = false }
	t.Cleanup(func() { notifySignals, stopSignals = origNotify, origStop })

	exec := &teardownExecutor{
		MockExecutor: system.NewMockExecutor(),
		subscribed:   &subscribed,
		caught:       make(map[string]bool),
	}
	rt := NewAppleRuntime("container", exec)
	opts := testRunOptions()
	opts.Signals = nil

	if _, err := rt.Run(context.Background(), rt.NewSession(opts.ProjectDir), opts); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	for _, sub := range []string{"stop", "rm"} {
		caught, ran := exec.caught[sub]
		if !ran {
			t.Errorf("container %s did not run", sub)
			continue
		}
		if !caught {
			t.Errorf("container %s ran after signals were released", sub)
		}
	}
	if subscribed {
		t.Error("signal subscription still active after Run returned")
	}
}

func TestSession_ReleaseIgnoresNotFound(t *testing.T) {
	rt, exec := newTestRuntime()
	exec.AddResponse("container stop", []byte("Error: container not found"), 1)
	exec.AddResponse("container rm", []byte("Error: container not found"), 1)

	session := rt.NewSession("/work/app")
	if err := session.Release(context.Background()); err != nil {
		t.Errorf("Release() = %v, want nil for an already removed container", err)
	}
}

func TestSession_ReleaseReportsFailure(t *testing.T) {
	rt, exec := newTestRuntime()
	exec.AddResponse("container rm", []byte("Error: XPC connection interrupted"), 1)

	session := rt.NewSession("/work/app")
	err := session.Release(context.Background())
	if err == nil || !strings.Contains(err.Error(), "XPC connection interrupted") {
		t.Errorf("Release() = %v, want the rm diagnostic", err)
	}
	if again := session.Release(context.Background()); again != err {
		t.Errorf("second Release() = %v, want the first result %v", again, err)
	}
}
