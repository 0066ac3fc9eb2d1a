// Package tui provides terminal progress output for claude-sandbox.
//
// Spin runs a blocking operation while a Bubble Tea program animates a
// spinner next to a title. It is used for image builds, which can take
// minutes and print nothing until they finish:
//
//	err := tui.Spin(ctx, tui.SpinOptions{
//	    Title:  "Building image claude-sandbox",
//	    Input:  os.Stdin,
//	    Output: os.Stderr,
//	}, func(ctx context.Context) error {
//	    return rt.Build(ctx, opts)
//	})
//
// Callers should only spin on an interactive terminal; IsTerminal reports
// whether a stream is one.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - spinner component
//   - github.com/charmbracelet/lipgloss - Styling
package tui
