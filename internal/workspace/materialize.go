package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/generator"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/logging"
)

const (
	stagingPattern  = ".staging-"
	previousPattern = ".previous-"
)

// Materialize writes artifacts into the configuration directory as a set.
//
// Everything is first written to a staging directory inside ConfigDir. With
// force, the previous entries are moved aside, the staged artifacts are
// moved in, and the previous entries are removed. Any failure restores the
// prior state. Nothing is written outside ConfigDir.
func (p *Project) Materialize(artifacts []generator.Artifact, force bool) (err error) {
	_, lerr := p.fs.Lstat(p.ConfigDir)
	existed := lerr == nil

	if existed && !force {
		return errors.AlreadyInitialized(config.SandboxDirName)
	}
	if existed && !p.fs.IsDir(p.ConfigDir) {
		return errors.New(errors.ExitGeneralError,
			fmt.Sprintf("%s exists and is not a directory", config.SandboxDirName))
	}

	if !existed {
		if err := p.fs.MkdirAll(p.ConfigDir, 0755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", config.SandboxDirName, err)
		}
		defer func() {
			if err != nil {
				_ = p.fs.RemoveAll(p.ConfigDir)
			}
		}()
	}

	staging, err := p.fs.MkdirTemp(p.ConfigDir, stagingPattern)
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = p.fs.RemoveAll(staging) }()

	for _, a := range artifacts {
		if err := p.fs.WriteFile(filepath.Join(staging, a.Name), a.Content, a.Mode); err != nil {
			return fmt.Errorf("failed to write %s/%s: %w", config.SandboxDirName, a.Name, err)
		}
	}

	var previous string
	var movedOld []string
	if existed {
		previous, err = p.fs.MkdirTemp(p.ConfigDir, previousPattern)
		if err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}

		entries, err := p.fs.ReadDir(p.ConfigDir)
		if err != nil {
			_ = p.fs.RemoveAll(previous)
			return fmt.Errorf("failed to read %s: %w", config.SandboxDirName, err)
		}
		for _, e := range entries {
			path := filepath.Join(p.ConfigDir, e.Name())
			if path == staging || path == previous {
				continue
			}
			if err := p.fs.Rename(path, filepath.Join(previous, e.Name())); err != nil {
				p.restore(previous, movedOld, nil)
				return fmt.Errorf("failed to move aside %s/%s: %w", config.SandboxDirName, e.Name(), err)
			}
			movedOld = append(movedOld, e.Name())
		}
	}

	var movedNew []string
	for _, a := range artifacts {
		if err := p.fs.Rename(filepath.Join(staging, a.Name), p.ArtifactPath(a.Name)); err != nil {
			if existed {
				p.restore(previous, movedOld, movedNew)
			}
			return fmt.Errorf("failed to install %s/%s: %w", config.SandboxDirName, a.Name, err)
		}
		movedNew = append(movedNew, a.Name)
	}

	if existed {
		if err := p.fs.RemoveAll(previous); err != nil {
			logging.Warn("failed to remove previous configuration", "path", previous, "error", err)
		}
	}

	return nil
}

// restore removes newly installed artifacts and moves the previous entries
// back into ConfigDir.
func (p *Project) restore(previous string, movedOld, movedNew []string) {
	for _, name := range movedNew {
		_ = p.fs.RemoveAll(p.ArtifactPath(name))
	}
	for _, name := range movedOld {
		if err := p.fs.Rename(filepath.Join(previous, name), p.ArtifactPath(name)); err != nil {
			logging.Error("failed to restore previous configuration",
				"file", name, "backup", previous, "error", err)
			return
		}
	}
	_ = p.fs.RemoveAll(previous)
}
