package system

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	// Responses maps command patterns to responses. The longest matching
	// prefix of "command arg1 arg2..." wins.
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching response is found.
	DefaultResponse MockResponse

	// Missing lists binaries that LookPath and Execute report as not found.
	Missing map[string]bool

	// InteractiveExitCode and InteractiveErr are returned by ExecuteInteractive.
	InteractiveExitCode int
	InteractiveErr      error

	// OnInteractive, if set, runs while the interactive command is "running".
	OnInteractive func(opts InteractiveOptions)
}

// MockCommand records an executed command.
type MockCommand struct {
	Name        string
	Args        []string
	Env         []string
	Interactive bool
}

// Line returns the command and its arguments joined by spaces.
func (c MockCommand) Line() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Output   []byte
	ExitCode int
	Err      error
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands:  make([]MockCommand, 0),
		Responses: make(map[string]MockResponse),
		Missing:   make(map[string]bool),
	}
}

// AddResponse adds a response for a specific command pattern.
func (m *MockExecutor) AddResponse(pattern string, output []byte, exitCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = MockResponse{Output: output, ExitCode: exitCode}
}

// AddError makes commands matching pattern fail to start with err.
func (m *MockExecutor) AddError(pattern string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = MockResponse{Err: err}
}

func (m *MockExecutor) LookPath(file string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Missing[file] {
		return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
	}
	return "/usr/local/bin/" + file, nil
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args})

	if m.Missing[name] {
		return &Result{ExitCode: -1}, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}

	resp := m.lookup(name, args)
	return &Result{ExitCode: resp.ExitCode, Output: resp.Output}, resp.Err
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, opts InteractiveOptions, name string, args ...string) (int, error) {
	m.mu.Lock()
	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args, Env: opts.Env, Interactive: true})
	hook := m.OnInteractive
	code, err := m.InteractiveExitCode, m.InteractiveErr
	missing := m.Missing[name]
	m.mu.Unlock()

	if missing {
		return -1, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	if hook != nil {
		hook(opts)
	}
	if err != nil {
		return -1, err
	}
	return code, nil
}

// lookup finds the response for the longest matching command prefix.
// Caller must hold m.mu.
func (m *MockExecutor) lookup(name string, args []string) MockResponse {
	for i := len(args); i >= 0; i-- {
		key := strings.Join(append([]string{name}, args[:i]...), " ")
		if resp, ok := m.Responses[key]; ok {
			return resp
		}
	}
	return m.DefaultResponse
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// Find returns the recorded commands whose line starts with prefix.
func (m *MockExecutor) Find(prefix string) []MockCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found []MockCommand
	for _, c := range m.Commands {
		if strings.HasPrefix(c.Line(), prefix) {
			found = append(found, c)
		}
	}
	return found
}

// Reset clears all recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = make([]MockCommand, 0)
}

// Ensure MockExecutor implements CommandExecutor
var _ CommandExecutor = (*MockExecutor)(nil)
