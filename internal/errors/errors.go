package errors

import (
	"errors"
	"fmt"
)

// Exit codes for claude-sandbox
const (
	ExitSuccess                    = 0
	ExitGeneralError               = 1
	ExitNotInitialized             = 2
	ExitAlreadyInitialized         = 3
	ExitInvalidResourceParameter   = 4
	ExitCredentialNotFound         = 5
	ExitCredentialStoreUnavailable = 6
	ExitBuildFailed                = 7
	ExitImageNotFound              = 8
	ExitToolUnavailable            = 9
	ExitConfigError                = 10
)

// SandboxError is the base error type for claude-sandbox
type SandboxError struct {
	Code    int
	Message string
	// Hint tells the user what to do next. It is printed on its own line
	// and is not part of Error().
	Hint  string
	Cause error
	// Silent errors carry an exit code only; nothing is printed for them.
	Silent bool
}

func (e *SandboxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SandboxError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a SandboxError of the same category.
func (e *SandboxError) Is(target error) bool {
	t, ok := target.(*SandboxError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Silent == e.Silent
}

// ExitCode returns the exit code for this error
func (e *SandboxError) ExitCode() int {
	return e.Code
}

// WithHint returns e with its hint set.
func (e *SandboxError) WithHint(hint string) *SandboxError {
	e.Hint = hint
	return e
}

// New creates a new SandboxError
func New(code int, message string) *SandboxError {
	return &SandboxError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SandboxError
func Wrap(code int, message string, cause error) *SandboxError {
	return &SandboxError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Sentinels for use with errors.Is. Matching is by exit code.
var (
	ErrNotInitialized             = New(ExitNotInitialized, "not initialized")
	ErrAlreadyInitialized         = New(ExitAlreadyInitialized, "already initialized")
	ErrInvalidResourceParameter   = New(ExitInvalidResourceParameter, "invalid resource parameter")
	ErrCredentialNotFound         = New(ExitCredentialNotFound, "credential not found")
	ErrCredentialStoreUnavailable = New(ExitCredentialStoreUnavailable, "credential store unavailable")
	ErrBuildFailed                = New(ExitBuildFailed, "build failed")
	ErrImageNotFound              = New(ExitImageNotFound, "image not found")
	ErrToolUnavailable            = New(ExitToolUnavailable, "container tool unavailable")
	ErrConfig                     = New(ExitConfigError, "configuration error")
)

// Common error constructors

// NotInitialized returns an error for a project without a configuration directory
func NotInitialized(dir string) *SandboxError {
	return New(ExitNotInitialized, fmt.Sprintf("%s not found", dir)).
		WithHint("Run 'claude-sandbox init' first to initialize the workspace.")
}

// Incomplete returns an error for a configuration directory that exists but is not usable
func Incomplete(dir string, cause error) *SandboxError {
	return Wrap(ExitNotInitialized, fmt.Sprintf("%s is incomplete", dir), cause).
		WithHint("Run 'claude-sandbox init --force' to restore the default files.")
}

// AlreadyInitialized returns an error when init would overwrite existing files
func AlreadyInitialized(dir string) *SandboxError {
	return New(ExitAlreadyInitialized, fmt.Sprintf("%s already initialized", dir)).
		WithHint("Use --force to overwrite.")
}

// InvalidResourceParameter returns an error for an out-of-range resource flag
func InvalidResourceParameter(param string, value, min, max int) *SandboxError {
	return New(ExitInvalidResourceParameter,
		fmt.Sprintf("invalid value %d for %s: must be between %d and %d", value, param, min, max))
}

// CredentialNotFound returns an error when the credential store holds no token
func CredentialNotFound(cause error) *SandboxError {
	return Wrap(ExitCredentialNotFound, "no OAuth token found in credential store", cause).
		WithHint("Please authenticate using the official Claude CLI first:\n  claude auth login")
}

// CredentialStoreUnavailable returns an error when the credential store cannot be queried
func CredentialStoreUnavailable(cause error) *SandboxError {
	return Wrap(ExitCredentialStoreUnavailable, "credential store unavailable", cause)
}

// BuildFailed returns an error carrying the build tool's output verbatim
func BuildFailed(output string, cause error) *SandboxError {
	msg := "container build failed"
	if output != "" {
		msg += ":\n" + output
	}
	return Wrap(ExitBuildFailed, msg, cause)
}

// ImageNotFound returns an error for a missing container image
func ImageNotFound(image string) *SandboxError {
	return New(ExitImageNotFound, fmt.Sprintf("image %q not found", image)).
		WithHint("Run 'claude-sandbox build' first.")
}

// ToolUnavailable returns an error when the container CLI is missing or not running
func ToolUnavailable(message string, cause error) *SandboxError {
	return Wrap(ExitToolUnavailable, message, cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *SandboxError {
	return Wrap(ExitConfigError, message, cause)
}

// ContainerExited forwards a container's non-zero exit status without a message
func ContainerExited(code int) *SandboxError {
	return &SandboxError{
		Code:    code,
		Message: fmt.Sprintf("container exited with status %d", code),
		Silent:  true,
	}
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var sandboxErr *SandboxError
	if errors.As(err, &sandboxErr) {
		return sandboxErr.ExitCode()
	}
	return ExitGeneralError
}

// GetHint returns the hint attached to the first SandboxError in err's chain.
func GetHint(err error) string {
	var sandboxErr *SandboxError
	if errors.As(err, &sandboxErr) {
		return sandboxErr.Hint
	}
	return ""
}

// IsSilent reports whether err should be reported by exit code only.
func IsSilent(err error) bool {
	var sandboxErr *SandboxError
	return errors.As(err, &sandboxErr) && sandboxErr.Silent
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
