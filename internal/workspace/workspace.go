package workspace

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/tidwall/jsonc"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/generator"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/system"
)

// State describes the configuration directory of a project.
type State int

const (
	// StateMissing means the configuration directory does not exist.
	StateMissing State = iota
	// StateIncomplete means it exists but is not usable.
	StateIncomplete
	// StateInitialized means all artifacts are present and well-formed.
	StateInitialized
)

func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateIncomplete:
		return "incomplete"
	case StateInitialized:
		return "initialized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Project is a project root and its configuration directory.
type Project struct {
	// Root is the absolute path of the directory the command was run from.
	Root string
	// ConfigDir is Root/.claude-sandbox.
	ConfigDir string

	fs system.FileSystem
}

// Locate returns the project rooted at dir.
func Locate(dir string) (*Project, error) {
	return LocateWithFS(dir, system.DefaultFS())
}

// LocateWithFS is Locate with an explicit FileSystem.
func LocateWithFS(dir string, fsys system.FileSystem) (*Project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	// SecureJoin resolves symlinks as if root were the filesystem root, so
	// the result can never point outside the project.
	configDir, err := securejoin.SecureJoin(root, config.SandboxDirName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", config.SandboxDirName, err)
	}
	if configDir != filepath.Join(root, config.SandboxDirName) {
		return nil, errors.New(errors.ExitGeneralError,
			fmt.Sprintf("%s must be a directory inside the project, not a symlink", config.SandboxDirName))
	}

	return &Project{Root: root, ConfigDir: configDir, fs: fsys}, nil
}

// ArtifactPath returns the path of a named artifact in the configuration directory.
func (p *Project) ArtifactPath(name string) string {
	return filepath.Join(p.ConfigDir, name)
}

// Containerfile returns the path of the image definition.
func (p *Project) Containerfile() string {
	return p.ArtifactPath(generator.ContainerfileName)
}

// Inspect reports the state of the configuration directory. For
// StateIncomplete the error says what is wrong.
func (p *Project) Inspect() (State, error) {
	info, err := p.fs.Lstat(p.ConfigDir)
	if err != nil {
		return StateMissing, nil
	}
	if !info.IsDir() {
		return StateIncomplete, fmt.Errorf("%s is not a directory", config.SandboxDirName)
	}

	for _, name := range generator.ArtifactNames() {
		info, err := p.fs.Lstat(p.ArtifactPath(name))
		if err != nil {
			return StateIncomplete, fmt.Errorf("%s/%s is missing", config.SandboxDirName, name)
		}
		if !info.Mode().IsRegular() {
			return StateIncomplete, fmt.Errorf("%s/%s is not a regular file", config.SandboxDirName, name)
		}
	}

	data, err := p.fs.ReadFile(p.ArtifactPath(generator.SettingsFileName))
	if err != nil {
		return StateIncomplete, fmt.Errorf("failed to read %s/%s: %w", config.SandboxDirName, generator.SettingsFileName, err)
	}
	// Users may annotate settings.json; comments and trailing commas are accepted.
	if !json.Valid(jsonc.ToJSON(data)) {
		return StateIncomplete, fmt.Errorf("%s/%s is not valid JSON", config.SandboxDirName, generator.SettingsFileName)
	}

	return StateInitialized, nil
}

// RequireInitialized returns NotInitialized unless the configuration
// directory is present and well-formed.
func (p *Project) RequireInitialized() error {
	state, reason := p.Inspect()
	switch state {
	case StateInitialized:
		return nil
	case StateIncomplete:
		return errors.Incomplete(config.SandboxDirName, reason)
	default:
		return errors.NotInitialized(config.SandboxDirName)
	}
}
