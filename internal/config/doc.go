// Package config holds the constants, run settings and optional user
// configuration for claude-sandbox.
//
// # Run Settings
//
// RunSettings carries the CPU and memory bounds for a single run. Both
// values must lie in [2, 8]; Validate reports the first offending flag.
//
// # User Configuration
//
// An optional TOML file at $XDG_CONFIG_HOME/claude-sandbox/config.toml
// overrides the built-in defaults:
//
//	image = "claude-sandbox"
//	runtime_binary = "container"
//	credential_service = "Claude Code-credentials"
//	base_image = "node:22-bookworm-slim"
//
//	[defaults]
//	cpus = 2
//	memory = 4
//
// Command-line flags take precedence over the file.
package config
