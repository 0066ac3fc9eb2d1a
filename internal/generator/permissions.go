package generator

import (
	"encoding/json"
	"fmt"
)

// claudeToolFamilies are allowed without confirmation inside the container.
var claudeToolFamilies = []string{
	"Bash",
	"Edit",
	"Read",
	"Write",
	"WebFetch",
	"WebSearch",
	"Glob",
	"Grep",
	"NotebookEdit",
	"TodoWrite",
}

// claudeDeniedCommands keep the injected token out of transcripts.
var claudeDeniedCommands = []string{
	"Bash(printenv:*)",
	"Bash(env)",
}

type permissionsBlock struct {
	DefaultMode string   `json:"defaultMode"`
	Allow       []string `json:"allow"`
	Deny        []string `json:"deny,omitempty"`
}

type sandboxBlock struct {
	Enabled bool `json:"enabled"`
}

type claudeSettings struct {
	Permissions         permissionsBlock  `json:"permissions"`
	Sandbox             sandboxBlock      `json:"sandbox"`
	Env                 map[string]string `json:"env"`
	IncludeCoAuthoredBy bool              `json:"includeCoAuthoredBy"`
	CleanupPeriodDays   int               `json:"cleanupPeriodDays"`
}

// GenerateSettings produces the default settings document. Edits and shell
// commands run without prompting and the assistant's own command sandbox is
// off; the container is the boundary.
func GenerateSettings() ([]byte, error) {
	settings := claudeSettings{
		Permissions: permissionsBlock{
			DefaultMode: "acceptEdits",
			Allow:       claudeToolFamilies,
			Deny:        claudeDeniedCommands,
		},
		Sandbox: sandboxBlock{Enabled: false},
		Env: map[string]string{
			"DISABLE_AUTOUPDATER": "1",
		},
		IncludeCoAuthoredBy: true,
		CleanupPeriodDays:   7,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal claude settings: %w", err)
	}
	return append(data, '\n'), nil
}
