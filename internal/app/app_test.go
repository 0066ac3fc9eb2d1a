package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/credentials"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/runtime"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/system"
)

func TestNew_Defaults(t *testing.T) {
	exec := system.NewMockExecutor()

	app, err := New(WithConfig(config.DefaultUserConfig()), WithExecutor(exec))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if app.FS == nil {
		t.Error("FS should not be nil")
	}
	rt, ok := app.Runtime.(*runtime.AppleRuntime)
	if !ok {
		t.Fatalf("Runtime = %T, want *runtime.AppleRuntime", app.Runtime)
	}
	if rt.Binary != config.DefaultRuntimeBinary {
		t.Errorf("Binary = %q, want %q", rt.Binary, config.DefaultRuntimeBinary)
	}
	if app.Credentials == nil {
		t.Error("Credentials should not be nil")
	}
	if app.Stdin != os.Stdin || app.Stdout != os.Stdout || app.Stderr != os.Stderr {
		t.Error("streams should default to the process streams")
	}
}

func TestNew_RuntimeUsesConfiguredBinary(t *testing.T) {
	cfg := config.DefaultUserConfig()
	cfg.RuntimeBinary = "/opt/container/bin/container"

	app, err := New(WithConfig(cfg), WithExecutor(system.NewMockExecutor()))
	if err != nil {
		t.Fatal(err)
	}
	if rt := app.Runtime.(*runtime.AppleRuntime); rt.Binary != cfg.RuntimeBinary {
		t.Errorf("Binary = %q, want %q", rt.Binary, cfg.RuntimeBinary)
	}
}

func TestNew_MultipleOptions(t *testing.T) {
	exec := system.NewMockExecutor()
	rt := runtime.NewAppleRuntime("container", exec)
	store := credentials.NewKeychainStore("svc", exec)
	var stdout, stderr bytes.Buffer

	app, err := New(
		WithConfig(config.DefaultUserConfig()),
		WithRuntime(rt),
		WithCredentials(store),
		WithStreams(strings.NewReader(""), &stdout, &stderr),
	)
	if err != nil {
		t.Fatal(err)
	}

	if app.Runtime != rt {
		t.Error("Runtime not set correctly")
	}
	if app.Credentials != store {
		t.Error("Credentials not set correctly")
	}
	if app.Stdout != &stdout || app.Stderr != &stderr {
		t.Error("streams not set correctly")
	}
}

func TestNew_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "claude-sandbox", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("image = \n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(WithExecutor(system.NewMockExecutor())); !errors.Is(err, errors.ErrConfig) {
		t.Errorf("New() error = %v, want ConfigError", err)
	}
}

func TestGetAndSetDefault(t *testing.T) {
	original := Default
	defer func() { Default = original }()

	custom, err := New(WithConfig(config.DefaultUserConfig()), WithExecutor(system.NewMockExecutor()))
	if err != nil {
		t.Fatal(err)
	}
	SetDefault(custom)

	got, err := Get()
	if err != nil {
		t.Fatal(err)
	}
	if got != custom {
		t.Error("Get did not return the default instance")
	}

	ResetDefault()
	if Default != nil {
		t.Error("ResetDefault should clear Default")
	}
}
