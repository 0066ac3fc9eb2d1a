package testutil

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// TestToken is the access token in the keychain_entry.json fixture.
const TestToken = "sk-ant-REDACTED"

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// KeychainEntry returns the stored credential document the Claude CLI writes.
func KeychainEntry() []byte {
	return mustFixture("keychain_entry.json")
}

// KeychainEntryWithoutToken returns a credential document with no access token.
func KeychainEntryWithoutToken() []byte {
	return mustFixture("keychain_entry_no_token.json")
}

// WriteConfigFixture copies a TOML fixture to dir/claude-sandbox/config.toml
// and returns its path.
func WriteConfigFixture(dir, name string) (string, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "claude-sandbox", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func mustFixture(name string) []byte {
	data, err := LoadFixture(name)
	if err != nil {
		panic("testutil: missing fixture " + name + ": " + err.Error())
	}
	return data
}
