// Package sandbox orchestrates the init, build and run commands.
//
// An Orchestrator wires the project workspace, template renderer,
// credential store and container runtime from an app.App:
//
//	o := sandbox.New(a)
//	_, err := o.Init(ctx, cwd, sandbox.InitOptions{Force: force})
//	_, err = o.Build(ctx, cwd, sandbox.BuildOptions{Progress: tty})
//	err = o.Run(ctx, cwd, sandbox.RunOptions{Settings: settings, TTY: tty})
//
// # Run Order
//
// Run checks, in order, that the project is initialized, that the resource
// settings are in range, that a token can be read, that the runtime is
// usable and that the image exists. The first two touch no external
// process. Only then is a container session acquired and started; the
// session is released on every path out of Run.
package sandbox
