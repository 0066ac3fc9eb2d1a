// Package logging provides logging utilities for claude-sandbox.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("building image", "image", tag, "context", dir)
//	logging.Warn("container teardown failed", "container", name, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Building image %s...", tag)
//	logging.UserSuccess("Image '%s' built successfully", tag)
//	logging.UserWarning("failed to remove container %s", name)
//	logging.UserError("%v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError, UserHint: stderr
//
// Both are package variables (Stdout, Stderr) so tests can capture them.
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
//
// Glyphs are coloured with lipgloss; colour is dropped automatically when
// the destination is not a terminal.
package logging
