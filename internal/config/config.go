package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/errors"
)

const (
	// SandboxDirName is the per-project configuration directory.
	SandboxDirName = ".claude-sandbox"

	DefaultImage             = "claude-sandbox"
	DefaultRuntimeBinary     = "container"
	DefaultCredentialService = "Claude Code-credentials"
	DefaultBaseImage         = "node:22-bookworm-slim"

	// ContainerUser owns the home directory the project is mounted under.
	ContainerUser = "claude"
	// ContainerWorkdir is where the project root is mounted read-write.
	ContainerWorkdir = "/home/claude/code"
	// TokenEnvVar carries the OAuth token into the container.
	TokenEnvVar = "CLAUDE_CODE_OAUTH_TOKEN"

	MinResource     = 2
	MaxResource     = 8
	DefaultCPUs     = 2
	DefaultMemoryGB = 4

	userConfigDirName  = "claude-sandbox"
	userConfigFileName = "config.toml"
)

// RunSettings holds the resource bounds for one run. It is never persisted.
type RunSettings struct {
	CPUs     int
	MemoryGB int
}

// DefaultRunSettings returns 2 CPUs and 4 GB.
func DefaultRunSettings() RunSettings {
	return RunSettings{CPUs: DefaultCPUs, MemoryGB: DefaultMemoryGB}
}

// Validate checks both bounds independently against [MinResource, MaxResource].
func (s RunSettings) Validate() error {
	if err := validateResource("--cpus", s.CPUs); err != nil {
		return err
	}
	return validateResource("--memory", s.MemoryGB)
}

func validateResource(param string, value int) error {
	if value < MinResource || value > MaxResource {
		return errors.InvalidResourceParameter(param, value, MinResource, MaxResource)
	}
	return nil
}

// MemoryFlag formats the memory bound for the container CLI.
func (s RunSettings) MemoryFlag() string {
	return fmt.Sprintf("%dG", s.MemoryGB)
}

// UserConfig is the optional per-user config.toml.
type UserConfig struct {
	Image             string   `toml:"image"`
	RuntimeBinary     string   `toml:"runtime_binary"`
	CredentialService string   `toml:"credential_service"`
	BaseImage         string   `toml:"base_image"`
	Defaults          Defaults `toml:"defaults"`
}

// Defaults are the run settings used when flags are not given.
type Defaults struct {
	CPUs   int `toml:"cpus"`
	Memory int `toml:"memory"`
}

// RunSettings returns the defaults as RunSettings.
func (d Defaults) RunSettings() RunSettings {
	return RunSettings{CPUs: d.CPUs, MemoryGB: d.Memory}
}

// DefaultUserConfig returns the built-in configuration.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Image:             DefaultImage,
		RuntimeBinary:     DefaultRuntimeBinary,
		CredentialService: DefaultCredentialService,
		BaseImage:         DefaultBaseImage,
		Defaults: Defaults{
			CPUs:   DefaultCPUs,
			Memory: DefaultMemoryGB,
		},
	}
}

// Validate checks that the UserConfig is usable. Defaults are not checked
// here; run validates them after flags are applied.
func (c *UserConfig) Validate() error {
	if strings.TrimSpace(c.Image) == "" {
		return fmt.Errorf("image cannot be empty")
	}
	if strings.TrimSpace(c.RuntimeBinary) == "" {
		return fmt.Errorf("runtime_binary cannot be empty")
	}
	if strings.TrimSpace(c.CredentialService) == "" {
		return fmt.Errorf("credential_service cannot be empty")
	}
	if strings.TrimSpace(c.BaseImage) == "" {
		return fmt.Errorf("base_image cannot be empty")
	}
	return nil
}

// UserConfigPath returns $XDG_CONFIG_HOME/claude-sandbox/config.toml,
// falling back to ~/.config when XDG_CONFIG_HOME is unset.
func UserConfigPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, userConfigDirName, userConfigFileName), nil
}

// LoadUserConfig reads path over the built-in defaults. A missing file is
// not an error. Unknown keys are rejected.
func LoadUserConfig(path string) (*UserConfig, error) {
	cfg := DefaultUserConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse %s", path), err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.ConfigError(fmt.Sprintf("unknown keys in %s: %s", path, strings.Join(keys, ", ")), nil)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid %s", path), err)
	}

	return cfg, nil
}

// Load reads the user config from its default location.
func Load() (*UserConfig, error) {
	path, err := UserConfigPath()
	if err != nil {
		return nil, errors.ConfigError("failed to locate config file", err)
	}
	return LoadUserConfig(path)
}
