package project

import (
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/htmlvet/internal/config"
	"github.com/dshills/htmlvet/internal/notify"
)

// State is a point-in-time snapshot of the session's published
// configuration state. Config and ConfigError are independent optional
// fields: both empty is the legal "no config file" case.
type State struct {
	// Config is the active project configuration, or nil.
	Config map[string]any

	// ConfigError describes why no usable configuration is active.
	// Empty when there is no error.
	ConfigError string

	// Generation is the reload generation the state belongs to.
	Generation int64
}

// Session holds the lint orchestration state for one open project.
//
// Thread Safety: Session is safe for concurrent use. Published state is
// replaced wholesale under mu; config maps are never mutated in place.
type Session struct {
	mu sync.RWMutex

	// Project identity
	root       string
	activePath string

	// Published configuration state
	config      map[string]any
	configError string

	// Reload guard state. generation increments at the start of every
	// reload attempt; reloadToken identifies the most recently started
	// reload and is compared before any mutation, so a superseded
	// resolution can never win even when its captured root still
	// matches the current root.
	generation  int64
	reloadToken uuid.UUID

	notifier *notify.Notifier
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithNotifier sets the notifier used to publish session events.
func WithNotifier(n *notify.Notifier) SessionOption {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// NewSession creates a session for a project root.
func NewSession(root string, opts ...SessionOption) *Session {
	s := &Session{
		root:     filepath.Clean(root),
		notifier: notify.New(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Root returns the current project root.
func (s *Session) Root() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// SetRoot switches the session to a new project root. In-flight reload
// resolutions for the old root are invalidated: their captured root no
// longer matches, and the reload token is rotated so even a same-path
// resolution cannot publish.
func (s *Session) SetRoot(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.root = filepath.Clean(root)
	s.config = nil
	s.configError = ""
	s.reloadToken = uuid.New()
}

// ConfigPath returns the expected configuration file path for the
// current root.
func (s *Session) ConfigPath() string {
	return config.ProjectConfigPath(s.Root())
}

// ActivePath returns the path of the currently foregrounded document.
func (s *Session) ActivePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activePath
}

// SetActivePath records the currently foregrounded document.
func (s *Session) SetActivePath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activePath = path
}

// State returns a snapshot of the published configuration state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Config:      s.config,
		ConfigError: s.configError,
		Generation:  s.generation,
	}
}

// Generation returns the current reload generation.
func (s *Session) Generation() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// LintState returns the configuration state captured with a lint
// request.
func (s *Session) LintState() (cfg map[string]any, configError string, generation int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, s.configError, s.generation
}

// Notifier returns the session's event notifier.
func (s *Session) Notifier() *notify.Notifier {
	return s.notifier
}

// Close releases session resources.
func (s *Session) Close() {
	s.notifier.Close()
}

// beginReload starts a reload cycle: it clears the published state,
// advances the generation, and mints a fresh reload token. It returns
// the captured target root and the token the resolution must present
// before mutating state.
func (s *Session) beginReload() (root string, token uuid.UUID, generation int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = nil
	s.configError = ""
	s.generation++
	s.reloadToken = uuid.New()

	return s.root, s.reloadToken, s.generation
}

// current reports whether a resolution holding the given token and
// captured root is still the latest reload for the active project.
func (s *Session) current(token uuid.UUID, root string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reloadToken == token && s.root == root
}

// publishConfig publishes a loaded configuration if the resolution is
// still current. It reports whether the publish happened.
func (s *Session) publishConfig(token uuid.UUID, root string, cfg map[string]any) bool {
	s.mu.Lock()
	if s.reloadToken != token || s.root != root {
		s.mu.Unlock()
		return false
	}
	s.config = cfg
	s.configError = ""
	generation := s.generation
	s.mu.Unlock()

	s.notifier.Notify(notify.Event{Type: notify.EventConfigLoaded, Root: root, Generation: generation})
	s.notifier.Notify(notify.Event{Type: notify.EventRelint, Root: root, Generation: generation})
	return true
}

// publishError publishes a configuration error message if the
// resolution is still current. It reports whether the publish happened.
func (s *Session) publishError(token uuid.UUID, root, message string) bool {
	s.mu.Lock()
	if s.reloadToken != token || s.root != root {
		s.mu.Unlock()
		return false
	}
	s.config = nil
	s.configError = message
	generation := s.generation
	s.mu.Unlock()

	s.notifier.Notify(notify.Event{Type: notify.EventConfigError, Root: root, Message: message, Generation: generation})
	s.notifier.Notify(notify.Event{Type: notify.EventRelint, Root: root, Generation: generation})
	return true
}
