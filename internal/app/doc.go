// Package app provides the application context for claude-sandbox.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Config      *config.UserConfig     // ~/.config/claude-sandbox/config.toml
//	    FS          system.FileSystem      // Project configuration directory access
//	    Executor    system.CommandExecutor // External tools
//	    Runtime     runtime.Runtime        // Container CLI driver
//	    Credentials credentials.Store      // Keychain or secret service
//	}
//
// # Creating an App
//
//	// Production usage
//	app, err := app.New()
//
//	// Testing with custom dependencies
//	app, err := app.New(
//	    app.WithConfig(config.DefaultUserConfig()),
//	    app.WithExecutor(system.NewMockExecutor()),
//	)
//
// Runtime and Credentials default to implementations driven by Executor,
// so a mock executor records every external command.
package app
