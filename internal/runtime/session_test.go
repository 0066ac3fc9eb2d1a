package runtime

import (
	"context"
	"regexp"
	"strings"
	"testing"
)

func TestSessionName(t *testing.T) {
	tests := []struct {
		projectDir string
		wantLabel  string
	}{
		{"/Users/me/src/app", "app"},
		{"/Users/me/src/My Project", "my-project"},
		{"/tmp/__weird__..name", "weird-name"},
		{"/", "project"},
		{"/src/" + strings.Repeat("a", 50), strings.Repeat("a", 32)},
	}

	for _, tt := range tests {
		t.Run(tt.projectDir, func(t *testing.T) {
			name := SessionName(tt.projectDir)
			re := regexp.MustCompile("^" + regexp.QuoteMeta(SessionPrefix+tt.wantLabel) + "-[0-9a-f]{8}$")
			if !re.MatchString(name) {
				t.Errorf("SessionName(%q) = %q, want %s<label>-<8 hex>", tt.projectDir, name, SessionPrefix)
			}
		})
	}
}

func TestSessionName_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := SessionName("/work/app")
		if seen[name] {
			t.Fatalf("duplicate session name %q", name)
		}
		seen[name] = true
	}
}

func TestSession_ReleaseNil(t *testing.T) {
	s := &Session{Name: "x"}
	if err := s.Release(context.Background()); err != nil {
		t.Errorf("Release() = %v, want nil", err)
	}
}
