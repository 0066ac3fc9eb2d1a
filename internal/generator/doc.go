// Package generator renders the files that make up a project's
// .claude-sandbox directory.
//
// Render returns three artifacts:
//   - Containerfile: the image definition, from an embedded text/template
//   - settings.json: Claude Code settings, generated from Go types
//   - CLAUDE.md: orientation notes for the assistant, embedded verbatim
//
// The Containerfile copies the other two into the assistant's home
// directory, so the configuration directory is also the build context.
//
//	artifacts, err := generator.Render(generator.DefaultTemplateData(baseImage))
package generator
