package tui

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// SpinOptions configures Spin.
type SpinOptions struct {
	Title  string
	Input  io.Reader // Keyboard input; nil disables ctrl+c handling
	Output io.Writer // Where the spinner is drawn
}

// doneMsg tells the model the work has finished.
type doneMsg struct{}

// spinnerModel is the Bubble Tea model behind Spin.
type spinnerModel struct {
	spinner  spinner.Model
	title    string
	cancel   context.CancelFunc
	stopping bool
	done     bool
}

func newSpinnerModel(title string, cancel context.CancelFunc) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return spinnerModel{spinner: s, title: title, cancel: cancel}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		// Raw mode turns ctrl+c into a key press. Cancel the work and keep
		// spinning until it returns.
		if msg.String() == "ctrl+c" && !m.stopping {
			m.stopping = true
			m.cancel()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	view := m.spinner.View() + " " + titleStyle.Render(m.title)
	if m.stopping {
		view += helpStyle.Render("  (cancelling)")
	}
	return view + "\n"
}

// Spin runs work while showing a spinner and returns work's error. The
// context passed to work is cancelled if the user presses ctrl+c.
func Spin(ctx context.Context, opts SpinOptions, work func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	programOpts := []tea.ProgramOption{tea.WithInput(opts.Input)}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(newSpinnerModel(opts.Title, cancel), programOpts...)

	result := make(chan error, 1)
	go func() {
		result <- work(ctx)
		p.Send(doneMsg{})
	}()

	// A program that fails to start or render does not stop the work.
	_, _ = p.Run()
	return <-result
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f any) bool {
	file, ok := f.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
