package generator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
)

func TestRender_ThreeArtifacts(t *testing.T) {
	artifacts, err := Render(DefaultTemplateData(config.DefaultBaseImage))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	names := ArtifactNames()
	if len(artifacts) != len(names) {
		t.Fatalf("Render returned %d artifacts, want %d", len(artifacts), len(names))
	}
	for i, a := range artifacts {
		if a.Name != names[i] {
			t.Errorf("artifact %d name = %q, want %q", i, a.Name, names[i])
		}
		if len(a.Content) == 0 {
			t.Errorf("artifact %s is empty", a.Name)
		}
		if a.Mode != 0644 {
			t.Errorf("artifact %s mode = %o, want 0644", a.Name, a.Mode)
		}
	}
}

func TestGenerateContainerfile(t *testing.T) {
	data := DefaultTemplateData("debian:bookworm")
	data.ClaudeVersion = "1.0.30"

	out, err := GenerateContainerfile(data)
	if err != nil {
		t.Fatalf("GenerateContainerfile failed: %v", err)
	}
	content := string(out)

	wants := []string{
		"FROM debian:bookworm",
		"@anthropic-ai/claude-code@1.0.30",
		"useradd --create-home --shell /bin/bash claude",
		"WORKDIR " + config.ContainerWorkdir,
		"COPY --chown=claude:claude settings.json /home/claude/.claude/settings.json",
		"COPY --chown=claude:claude CLAUDE.md /home/claude/.claude/CLAUDE.md",
		"USER claude",
	}
	for _, want := range wants {
		if !strings.Contains(content, want) {
			t.Errorf("Containerfile missing %q\n%s", want, content)
		}
	}
	if strings.Contains(content, "{{") {
		t.Error("Containerfile contains unrendered template actions")
	}
}

func TestGenerateContainerfile_LatestWhenNoVersion(t *testing.T) {
	out, err := GenerateContainerfile(DefaultTemplateData(config.DefaultBaseImage))
	if err != nil {
		t.Fatalf("GenerateContainerfile failed: %v", err)
	}
	if strings.Contains(string(out), "claude-code@") {
		t.Error("expected unpinned claude-code install")
	}
}

func TestTemplateData_Validate(t *testing.T) {
	valid := DefaultTemplateData(config.DefaultBaseImage)

	tests := []struct {
		name   string
		modify func(*TemplateData)
	}{
		{"base image with newline", func(d *TemplateData) { d.BaseImage = "debian\nRUN rm -rf /" }},
		{"empty base image", func(d *TemplateData) { d.BaseImage = "" }},
		{"bad user", func(d *TemplateData) { d.User = "Root User" }},
		{"relative workdir", func(d *TemplateData) { d.Workdir = "code" }},
		{"unclean workdir", func(d *TemplateData) { d.Workdir = "/home/claude/../code" }},
		{"bad version", func(d *TemplateData) { d.ClaudeVersion = "1.0; rm -rf /" }},
		{"missing file names", func(d *TemplateData) { d.SettingsFile = "" }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("default data should be valid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.modify(&d)
			if err := d.Validate(); err == nil {
				t.Error("expected validation error")
			}
			if _, err := GenerateContainerfile(d); err == nil {
				t.Error("expected GenerateContainerfile to reject invalid data")
			}
		})
	}
}

func TestGenerateSettings(t *testing.T) {
	data, err := GenerateSettings()
	if err != nil {
		t.Fatalf("GenerateSettings failed: %v", err)
	}

	var settings struct {
		Permissions struct {
			DefaultMode string   `json:"defaultMode"`
			Allow       []string `json:"allow"`
			Deny        []string `json:"deny"`
		} `json:"permissions"`
		Sandbox struct {
			Enabled bool `json:"enabled"`
		} `json:"sandbox"`
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		t.Fatalf("settings is not valid JSON: %v", err)
	}

	if settings.Permissions.DefaultMode != "acceptEdits" {
		t.Errorf("defaultMode = %q, want %q", settings.Permissions.DefaultMode, "acceptEdits")
	}

	found := false
	for _, a := range settings.Permissions.Allow {
		if a == "Bash" {
			found = true
		}
	}
	if !found {
		t.Error("Bash should be allowed without confirmation")
	}
	if settings.Sandbox.Enabled {
		t.Error("in-assistant sandbox should be disabled inside the container")
	}
}

func TestRender_OrientationIsCopy(t *testing.T) {
	first, err := Render(DefaultTemplateData(config.DefaultBaseImage))
	if err != nil {
		t.Fatal(err)
	}
	first[2].Content[0] = 'X'

	second, err := Render(DefaultTemplateData(config.DefaultBaseImage))
	if err != nil {
		t.Fatal(err)
	}
	if second[2].Content[0] == 'X' {
		t.Error("Render must not hand out the embedded orientation buffer")
	}
}
