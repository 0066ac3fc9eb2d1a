package app

import (
	"io"
	"os"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/credentials"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/runtime"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/system"
)

// App holds the application dependencies
type App struct {
	// Config is the loaded user configuration
	Config *config.UserConfig

	// FS is used for the project configuration directory
	FS system.FileSystem

	// Executor runs external tools
	Executor system.CommandExecutor

	// Runtime is the container runtime
	Runtime runtime.Runtime

	// Credentials is the host credential store
	Credentials credentials.Store

	// Standard streams for interactive sessions
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets the user configuration instead of loading it
func WithConfig(cfg *config.UserConfig) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithFS sets a custom filesystem
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets the command executor used by the default runtime and
// credential store
func WithExecutor(e system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = e
	}
}

// WithRuntime sets a custom runtime
func WithRuntime(r runtime.Runtime) Option {
	return func(a *App) {
		a.Runtime = r
	}
}

// WithCredentials sets a custom credential store
func WithCredentials(s credentials.Store) Option {
	return func(a *App) {
		a.Credentials = s
	}
}

// WithStreams sets the standard streams
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.Stdin = stdin
		a.Stdout = stdout
		a.Stderr = stderr
	}
}

// New creates a new App with the given options.
// The user configuration is loaded from disk unless WithConfig is given;
// a malformed file is a ConfigError.
func New(opts ...Option) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		app.Config = cfg
	}
	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}
	if app.Runtime == nil {
		app.Runtime = runtime.NewAppleRuntime(app.Config.RuntimeBinary, app.Executor)
	}
	if app.Credentials == nil {
		app.Credentials = credentials.NewStore(app.Config.CredentialService, app.Executor)
	}
	if app.Stdin == nil {
		app.Stdin = os.Stdin
	}
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}

	return app, nil
}

// Default is the application instance used by commands. When nil, Get
// builds one.
var Default *App

// Get returns Default, creating it on first use.
func Get() (*App, error) {
	if Default != nil {
		return Default, nil
	}
	app, err := New()
	if err != nil {
		return nil, err
	}
	Default = app
	return app, nil
}

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault clears the default application instance
func ResetDefault() {
	Default = nil
}
