// Package credentials reads the assistant's OAuth token from the host
// credential store.
//
// On macOS the token lives in the login keychain under the generic password
// service "Claude Code-credentials"; on Linux it is looked up through
// libsecret's secret-tool. The stored value is either the bare token or the
// JSON document the Claude CLI writes:
//
//	{"claudeAiOauth": {"accessToken": "sk-ant-oat01-...", ...}}
//
// Tokens are fetched fresh on every call and never cached or persisted.
// Token.String redacts the value so it cannot leak through logs or %v.
package credentials
