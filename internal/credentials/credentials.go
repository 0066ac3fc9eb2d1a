package credentials

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os/exec"
	goruntime "runtime"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/system"
)

// keychainItemNotFound is the exit status of security(1) for a missing item.
const keychainItemNotFound = 44

// Token is an OAuth token. Its zero value is empty.
type Token struct {
	value string
}

// NewToken wraps a raw token value.
func NewToken(value string) Token {
	return Token{value: value}
}

// Value returns the raw token. Only pass it to a child process environment.
func (t Token) Value() string {
	return t.value
}

// String implements fmt.Stringer without revealing the token.
func (t Token) String() string {
	if t.value == "" {
		return "<empty>"
	}
	return "<redacted>"
}

// GoString keeps %#v from printing the value.
func (t Token) GoString() string {
	return "credentials.Token(" + t.String() + ")"
}

// LogValue implements slog.LogValuer.
func (t Token) LogValue() slog.Value {
	return slog.StringValue(t.String())
}

// Store retrieves the token from a host credential store.
type Store interface {
	// Token returns the current token. It returns a CredentialNotFound
	// error when no token is stored and CredentialStoreUnavailable when the
	// store cannot be queried.
	Token(ctx context.Context) (Token, error)
}

// NewStore returns the store for the host operating system.
func NewStore(service string, executor system.CommandExecutor) Store {
	return newStoreFor(goruntime.GOOS, service, executor)
}

func newStoreFor(goos, service string, executor system.CommandExecutor) Store {
	if goos == "darwin" {
		return &KeychainStore{Service: service, executor: executor}
	}
	return &SecretToolStore{Service: service, executor: executor}
}

// KeychainStore reads a generic password from the macOS keychain.
type KeychainStore struct {
	Service  string
	executor system.CommandExecutor
}

// NewKeychainStore creates a KeychainStore for service.
func NewKeychainStore(service string, executor system.CommandExecutor) *KeychainStore {
	return &KeychainStore{Service: service, executor: executor}
}

// Token implements Store.
func (s *KeychainStore) Token(ctx context.Context) (Token, error) {
	logging.Debug("reading token from keychain", "service", s.Service)

	result, err := s.executor.Execute(ctx, "security", "find-generic-password", "-s", s.Service, "-w")
	if err != nil {
		return Token{}, unavailable("security", err)
	}
	if result.ExitCode == keychainItemNotFound {
		return Token{}, errors.CredentialNotFound(
			fmt.Errorf("keychain item %q not found", s.Service))
	}
	if !result.Success() {
		return Token{}, errors.CredentialStoreUnavailable(
			fmt.Errorf("security exited with status %d: %s", result.ExitCode, strings.TrimSpace(string(result.Output))))
	}
	return parseSecret(result.Output)
}

// SecretToolStore reads a secret through libsecret's secret-tool.
type SecretToolStore struct {
	Service  string
	executor system.CommandExecutor
}

// NewSecretToolStore creates a SecretToolStore for service.
func NewSecretToolStore(service string, executor system.CommandExecutor) *SecretToolStore {
	return &SecretToolStore{Service: service, executor: executor}
}

// Token implements Store.
func (s *SecretToolStore) Token(ctx context.Context) (Token, error) {
	logging.Debug("reading token from secret service", "service", s.Service)

	result, err := s.executor.Execute(ctx, "secret-tool", "lookup", "service", s.Service)
	if err != nil {
		return Token{}, unavailable("secret-tool", err)
	}
	// secret-tool exits 1 with no output when nothing matches.
	if result.ExitCode == 1 && len(bytes.TrimSpace(result.Output)) == 0 {
		return Token{}, errors.CredentialNotFound(
			fmt.Errorf("no secret stored for service %q", s.Service))
	}
	if !result.Success() {
		return Token{}, errors.CredentialStoreUnavailable(
			fmt.Errorf("secret-tool exited with status %d: %s", result.ExitCode, strings.TrimSpace(string(result.Output))))
	}
	return parseSecret(result.Output)
}

func unavailable(tool string, err error) error {
	if stderrors.Is(err, exec.ErrNotFound) {
		return errors.CredentialStoreUnavailable(fmt.Errorf("%s not found in PATH: %w", tool, err))
	}
	return errors.CredentialStoreUnavailable(fmt.Errorf("failed to run %s: %w", tool, err))
}

// storedCredentials is the document the Claude CLI keeps in the store.
type storedCredentials struct {
	ClaudeAiOauth *struct {
		AccessToken string `json:"accessToken"`
	} `json:"claudeAiOauth"`
}

// parseSecret extracts the token from a stored value.
func parseSecret(raw []byte) (Token, error) {
	value := bytes.TrimSpace(raw)
	if len(value) == 0 {
		return Token{}, errors.CredentialNotFound(fmt.Errorf("stored credential is empty"))
	}

	if value[0] != '{' {
		return NewToken(string(value)), nil
	}

	var doc storedCredentials
	if err := json.Unmarshal(value, &doc); err != nil {
		// Not JSON after all; treat as an opaque token.
		return NewToken(string(value)), nil
	}
	if doc.ClaudeAiOauth == nil || strings.TrimSpace(doc.ClaudeAiOauth.AccessToken) == "" {
		return Token{}, errors.CredentialNotFound(fmt.Errorf("stored credential has no claudeAiOauth.accessToken"))
	}
	return NewToken(strings.TrimSpace(doc.ClaudeAiOauth.AccessToken)), nil
}
