package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/config"
)

// Artifact names inside the configuration directory.
const (
	ContainerfileName   = "Containerfile"
	SettingsFileName    = "settings.json"
	OrientationFileName = "CLAUDE.md"
)

// ArtifactNames lists the files a well-formed configuration directory holds.
func ArtifactNames() []string {
	return []string{ContainerfileName, SettingsFileName, OrientationFileName}
}

// Artifact is one rendered file.
type Artifact struct {
	Name    string
	Content []byte
	Mode    fs.FileMode
}

// DefaultTemplateData returns the data used by init.
func DefaultTemplateData(baseImage string) TemplateData {
	return TemplateData{
		BaseImage:       baseImage,
		User:            config.ContainerUser,
		Workdir:         config.ContainerWorkdir,
		SettingsFile:    SettingsFileName,
		OrientationFile: OrientationFileName,
	}
}

// Validate checks that the data is safe to substitute into the Containerfile.
func (d TemplateData) Validate() error {
	if !baseImageRegex.MatchString(d.BaseImage) {
		return fmt.Errorf("invalid base image %q", d.BaseImage)
	}
	if !userNameRegex.MatchString(d.User) {
		return fmt.Errorf("invalid container user %q", d.User)
	}
	if !path.IsAbs(d.Workdir) || path.Clean(d.Workdir) != d.Workdir {
		return fmt.Errorf("container workdir must be a clean absolute path, got %q", d.Workdir)
	}
	if !versionRegex.MatchString(d.ClaudeVersion) {
		return fmt.Errorf("invalid claude version %q", d.ClaudeVersion)
	}
	if d.SettingsFile == "" || d.OrientationFile == "" {
		return fmt.Errorf("settings and orientation file names are required")
	}
	return nil
}

// GenerateContainerfile renders the image definition.
func GenerateContainerfile(data TemplateData) ([]byte, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template data: %w", err)
	}

	var buf bytes.Buffer
	if err := containerfileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute Containerfile template: %w", err)
	}
	return buf.Bytes(), nil
}

// Render produces the three configuration artifacts in ArtifactNames order.
func Render(data TemplateData) ([]Artifact, error) {
	containerfile, err := GenerateContainerfile(data)
	if err != nil {
		return nil, err
	}

	settings, err := GenerateSettings()
	if err != nil {
		return nil, err
	}

	orientation := make([]byte, len(orientationDocument))
	copy(orientation, orientationDocument)

	return []Artifact{
		{Name: ContainerfileName, Content: containerfile, Mode: 0644},
		{Name: SettingsFileName, Content: settings, Mode: 0644},
		{Name: OrientationFileName, Content: orientation, Mode: 0644},
	}, nil
}
