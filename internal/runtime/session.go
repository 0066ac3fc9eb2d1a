package runtime

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/firefly-engineering/firefly-forage/packages/claude-sandbox/internal/logging"
)

// SessionPrefix starts every container name created by claude-sandbox.
const SessionPrefix = "claude-sandbox-"

// releaseTimeout bounds teardown after the run context is gone.
const releaseTimeout = 30 * time.Second

// maxLabelLen caps the project part of a session name.
const maxLabelLen = 32

// Session is one container instance, named uniquely per invocation.
type Session struct {
	// Name is the container name passed to --name.
	Name string

	release func(ctx context.Context, name string) error
	once    sync.Once
	err     error
}

func newSession(projectDir string, release func(ctx context.Context, name string) error) *Session {
	return &Session{
		Name:    SessionName(projectDir),
		release: release,
	}
}

// SessionName returns a fresh container name for projectDir.
func SessionName(projectDir string) string {
	id := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return SessionPrefix + sanitizeLabel(filepath.Base(projectDir)) + "-" + id
}

// sanitizeLabel reduces s to lowercase alphanumerics and single hyphens.
func sanitizeLabel(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	label := strings.Trim(b.String(), "-")
	if len(label) > maxLabelLen {
		label = strings.TrimRight(label[:maxLabelLen], "-")
	}
	if label == "" {
		return "project"
	}
	return label
}

// Release stops and removes the container. Only the first call does any
// work; later calls return the first result.
func (s *Session) Release(ctx context.Context) error {
	s.once.Do(func() {
		if s.release == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()

		logging.Debug("releasing session", "container", s.Name)
		s.err = s.release(ctx, s.Name)
		if s.err != nil {
			logging.Warn("failed to remove container", "container", s.Name, "error", s.err)
		}
	})
	return s.err
}
