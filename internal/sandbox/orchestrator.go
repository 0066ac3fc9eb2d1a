package sandbox

import (
	"context"
	"fmt"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/generator"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/runtime"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/tui"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/workspace"
)

// Orchestrator runs each command against a project directory,
// short-circuiting on the first failure.
type Orchestrator struct {
	app *app.App
}

// New creates an Orchestrator using the dependencies in a.
func New(a *app.App) *Orchestrator {
	return &Orchestrator{app: a}
}

func (o *Orchestrator) project(dir string) (*workspace.Project, error) {
	return workspace.LocateWithFS(dir, o.app.FS)
}

// Init renders the default configuration into dir/.claude-sandbox.
func (o *Orchestrator) Init(ctx context.Context, dir string, opts InitOptions) (*InitResult, error) {
	project, err := o.project(dir)
	if err != nil {
		return nil, err
	}
	logging.Debug("initializing project", "root", project.Root, "force", opts.Force)

	state, _ := project.Inspect()

	artifacts, err := generator.Render(generator.DefaultTemplateData(o.app.Config.BaseImage))
	if err != nil {
		return nil, fmt.Errorf("failed to render configuration: %w", err)
	}

	if err := project.Materialize(artifacts, opts.Force); err != nil {
		return nil, err
	}

	result := &InitResult{
		ConfigDir: project.ConfigDir,
		Replaced:  state != workspace.StateMissing,
	}
	for _, a := range artifacts {
		result.Artifacts = append(result.Artifacts, a.Name)
	}
	return result, nil
}

// Build builds the image from dir/.claude-sandbox. The build is attempted
// once; a failure carries the tool's output.
func (o *Orchestrator) Build(ctx context.Context, dir string, opts BuildOptions) (*BuildResult, error) {
	project, err := o.project(dir)
	if err != nil {
		return nil, err
	}
	if err := project.RequireInitialized(); err != nil {
		return nil, err
	}

	rt := o.app.Runtime
	if err := rt.Preflight(ctx); err != nil {
		return nil, err
	}

	image := o.app.Config.Image
	buildOpts := runtime.BuildOptions{
		Tag:           image,
		Containerfile: project.Containerfile(),
		ContextDir:    project.ConfigDir,
	}

	build := func(ctx context.Context) error {
		return rt.Build(ctx, buildOpts)
	}
	if opts.Progress {
		err = tui.Spin(ctx, tui.SpinOptions{
			Title:  fmt.Sprintf("Building image %s", image),
			Input:  o.app.Stdin,
			Output: o.app.Stderr,
		}, build)
	} else {
		logging.UserInfo("Building image %s...", image)
		err = build(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &BuildResult{Image: image}, nil
}

// Run starts an interactive session in dir and blocks until it ends. A
// non-zero container exit status is returned as a silent error carrying
// that status.
func (o *Orchestrator) Run(ctx context.Context, dir string, opts RunOptions) error {
	project, err := o.project(dir)
	if err != nil {
		return err
	}
	if err := project.RequireInitialized(); err != nil {
		return err
	}
	if err := opts.Settings.Validate(); err != nil {
		return err
	}

	token, err := o.app.Credentials.Token(ctx)
	if err != nil {
		return err
	}
	logging.Debug("credential retrieved", "token", token)

	rt := o.app.Runtime
	if err := rt.Preflight(ctx); err != nil {
		return err
	}

	image := o.app.Config.Image
	exists, err := rt.ImageExists(ctx, image)
	if err != nil {
		return err
	}
	if !exists {
		return errors.ImageNotFound(image)
	}

	session := rt.NewSession(project.Root)
	defer func() { _ = session.Release(ctx) }()

	logging.Debug("starting session", "container", session.Name,
		"cpus", opts.Settings.CPUs, "memory", opts.Settings.MemoryFlag())

	code, err := rt.Run(ctx, session, runtime.RunOptions{
		Image:      image,
		ProjectDir: project.Root,
		Workdir:    config.ContainerWorkdir,
		Resources:  opts.Settings,
		SecretEnv:  map[string]string{config.TokenEnvVar: token.Value()},
		TTY:        opts.TTY,
		Stdin:      o.app.Stdin,
		Stdout:     o.app.Stdout,
		Stderr:     o.app.Stderr,
	})
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.ContainerExited(code)
	}
	return nil
}
