package generator

import (
	_ "embed"
	"regexp"
	"text/template"
)

//go:embed templates/Containerfile.tmpl
var containerfileSource string

//go:embed templates/CLAUDE.md
var orientationDocument []byte

var containerfileTemplate = template.Must(template.New("Containerfile").Parse(containerfileSource))

// TemplateData holds the values substituted into the Containerfile.
type TemplateData struct {
	BaseImage       string // FROM line
	User            string // non-root user the assistant runs as
	Workdir         string // in-container path of the project mount
	ClaudeVersion   string // npm version of the assistant; empty installs latest
	SettingsFile    string // settings document name in the build context
	OrientationFile string // orientation document name in the build context
}

// userNameRegex matches names accepted by useradd.
var userNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

// versionRegex matches npm version specifiers we are willing to interpolate.
var versionRegex = regexp.MustCompile(`^[0-9A-Za-z.\-+]*$`)

// baseImageRegex rejects whitespace and newlines in image references.
var baseImageRegex = regexp.MustCompile(`^[^\s]+$`)
