// Package errors provides typed errors with exit codes for claude-sandbox.
//
// # Error Types
//
// SandboxError is the base error type that wraps an error with an exit code:
//
//	type SandboxError struct {
//	    Code    int    // Exit code, also the error category
//	    Message string // User-facing message
//	    Hint    string // Next step for the user
//	    Cause   error  // Wrapped error
//	    Silent  bool   // Report by exit code only
//	}
//
// # Exit Codes
//
//	ExitSuccess                    = 0
//	ExitGeneralError               = 1
//	ExitNotInitialized             = 2  // .claude-sandbox missing or incomplete
//	ExitAlreadyInitialized         = 3  // init without --force
//	ExitInvalidResourceParameter   = 4  // --cpus/--memory out of range
//	ExitCredentialNotFound         = 5  // no token in credential store
//	ExitCredentialStoreUnavailable = 6  // credential store cannot be queried
//	ExitBuildFailed                = 7  // container build exited non-zero
//	ExitImageNotFound              = 8  // run before build
//	ExitToolUnavailable            = 9  // container CLI missing or not running
//	ExitConfigError                = 10 // malformed config.toml
//
// A container that exits non-zero is reported with ContainerExited, which
// carries the container's own exit status and is silent.
//
// # Matching
//
// Errors match the package sentinels by code:
//
//	if errors.Is(err, errors.ErrImageNotFound) {
//	    ...
//	}
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
