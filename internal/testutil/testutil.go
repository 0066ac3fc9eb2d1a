// Package testutil provides test utilities for command and orchestration tests
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/credentials"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/system"
)

// KeychainCommand is the lookup the keychain store performs for the
// default service.
const KeychainCommand = "security find-generic-password -s " + config.DefaultCredentialService + " -w"

// TestEnv holds the test environment
type TestEnv struct {
	T *testing.T

	// ProjectDir is an empty project root
	ProjectDir string

	Config   *config.UserConfig
	Executor *system.MockExecutor
	App      *app.App

	Stdout *bytes.Buffer
	Stderr *bytes.Buffer

	cleanup func()
}

// NewTestEnv creates a test environment whose executor behaves like a
// working container runtime with an image already built and a token in
// the keychain.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	projectDir := filepath.Join(t.TempDir(), "project")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatalf("Failed to create project directory: %v", err)
	}

	exec := system.NewMockExecutor()
	exec.AddResponse("container --version", []byte("container CLI version 0.5.0 (build: release)\n"), 0)
	exec.AddResponse("container system status", []byte("apiserver is running\n"), 0)
	exec.AddResponse("container image inspect", []byte(`[{"name":"claude-sandbox"}]`), 0)
	exec.AddResponse(KeychainCommand, append(KeychainEntry(), '\n'), 0)

	cfg := config.DefaultUserConfig()
	var stdout, stderr bytes.Buffer

	testApp, err := app.New(
		app.WithConfig(cfg),
		app.WithExecutor(exec),
		app.WithCredentials(credentials.NewKeychainStore(cfg.CredentialService, exec)),
		app.WithStreams(strings.NewReader(""), &stdout, &stderr),
	)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	original := app.Default
	app.SetDefault(testApp)

	return &TestEnv{
		T:          t,
		ProjectDir: projectDir,
		Config:     cfg,
		Executor:   exec,
		App:        testApp,
		Stdout:     &stdout,
		Stderr:     &stderr,
		cleanup: func() {
			app.SetDefault(original)
		},
	}
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// ConfigDir returns the project's configuration directory.
func (e *TestEnv) ConfigDir() string {
	return filepath.Join(e.ProjectDir, config.SandboxDirName)
}

// WriteArtifact writes a file into the configuration directory, creating it.
func (e *TestEnv) WriteArtifact(name, content string) {
	e.T.Helper()

	if err := os.MkdirAll(e.ConfigDir(), 0755); err != nil {
		e.T.Fatalf("Failed to create %s: %v", e.ConfigDir(), err)
	}
	if err := os.WriteFile(filepath.Join(e.ConfigDir(), name), []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", name, err)
	}
}

// WithoutImage makes image inspect report a missing image.
func (e *TestEnv) WithoutImage() {
	e.Executor.AddResponse("container image inspect", []byte("Error: notFound: image not found\n"), 1)
}

// WithoutToken makes the keychain report a missing item.
func (e *TestEnv) WithoutToken() {
	e.Executor.AddResponse(KeychainCommand,
		[]byte("security: SecKeychainSearchCopyNext: The specified item could not be found in the keychain.\n"), 44)
}

// ExternalCommands returns the commands run through the executor.
func (e *TestEnv) ExternalCommands() []system.MockCommand {
	return e.Executor.Commands
}
