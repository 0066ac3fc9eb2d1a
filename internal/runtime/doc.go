// Package runtime drives the container CLI that builds and runs the
// sandbox image.
//
// The only backend is Apple's container CLI (github.com/apple/container),
// which runs each container in a lightweight VM on macOS. All invocations
// go through system.CommandExecutor so tests can record argv and
// environment without a container runtime.
//
// # Operations
//
//   - Preflight: the CLI is on PATH, answers --version and its system
//     service is running
//   - Build: container build -t <tag> -f <Containerfile> <context>
//   - ImageExists: container image inspect <tag>
//   - Run: an attached, auto-removed container with resource limits and the
//     project bind-mounted
//
// # Sessions
//
// Run acquires a Session before spawning the container. Releasing a session
// stops and force-removes the container by name; it is safe to call more
// than once and tolerates a container that already removed itself.
//
// # Secrets
//
// RunOptions.SecretEnv values are passed to the CLI through its process
// environment. The argv only names the variables (-e NAME), and logged
// commands never include the values.
package runtime
