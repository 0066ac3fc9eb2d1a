// Package workspace locates a project and manages its .claude-sandbox
// configuration directory.
//
// # Locating a Project
//
// The project root is the directory claude-sandbox was invoked from:
//
//	project, err := workspace.Locate(cwd)
//	// project.Root      = /Users/me/src/app
//	// project.ConfigDir = /Users/me/src/app/.claude-sandbox
//
// # State
//
// Inspect classifies the configuration directory as missing, incomplete
// (a file is absent or settings.json does not parse) or initialized.
// RequireInitialized turns anything but initialized into a NotInitialized
// error for the build and run commands.
//
// # Materializing
//
// Materialize installs a rendered artifact set. The set is installed
// completely or not at all; with force, the previous contents are replaced
// wholesale, including any extra files the user added.
package workspace
