// Package testutil provides test fixtures and a scripted environment for
// exercising claude-sandbox commands without a container runtime.
//
// # Fixtures
//
// Fixtures are embedded using go:embed:
//
//	fixtures/keychain_entry.json          // credential document with an access token
//	fixtures/keychain_entry_no_token.json // credential document without one
//	fixtures/valid_config.toml
//	fixtures/invalid_config.toml          // out-of-range defaults
//
// # Test Environment
//
// NewTestEnv returns an empty project directory and an app.App whose
// executor is a system.MockExecutor scripted as a healthy runtime, a built
// image and a stored token. The app is installed as app.Default until
// Cleanup:
//
//	env := testutil.NewTestEnv(t)
//	defer env.Cleanup()
//
//	env.WithoutImage()
//	err := orchestrator.Run(ctx, env.ProjectDir, settings)
//	// err is ImageNotFound; env.Executor.Find("container run") is empty
package testutil
