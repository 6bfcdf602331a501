package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// PrefsFileName is the name of htmlvet's own preferences file.
const PrefsFileName = ".htmlvet.toml"

// Prefs holds user preferences for htmlvet itself, as opposed to the
// per-project validator options carried by the JSON config file.
type Prefs struct {
	// Enabled gates the inspector. When false, scans are skipped.
	Enabled bool `toml:"enabled"`

	// WorkerCommand is the lint worker command and its arguments.
	WorkerCommand []string `toml:"worker_command"`

	// WorkerTimeoutSeconds bounds a single worker invocation. Zero or
	// negative keeps the default worker timeout.
	WorkerTimeoutSeconds int `toml:"worker_timeout_seconds"`
}

// DefaultPrefs returns the default preferences.
func DefaultPrefs() *Prefs {
	return &Prefs{
		Enabled:              true,
		WorkerTimeoutSeconds: 30,
	}
}

// LoadPrefs loads preferences from a file, falling back to defaults
// when the file doesn't exist.
func LoadPrefs(path string) (*Prefs, error) {
	return LoadPrefsWithFS(DefaultFS(), path)
}

// LoadPrefsWithFS loads preferences using a custom file system.
func LoadPrefsWithFS(fsys FileSystem, path string) (*Prefs, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPrefs(), nil
		}
		return nil, fmt.Errorf("reading preferences file %s: %w", path, err)
	}

	prefs := DefaultPrefs()
	if err := toml.Unmarshal(data, prefs); err != nil {
		return nil, &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}

	return prefs, nil
}

// PrefsStore holds the current preferences for a running session and
// supports re-reading them from disk when the preferences file changes.
//
// Thread Safety: PrefsStore is safe for concurrent use.
type PrefsStore struct {
	mu    sync.RWMutex
	fs    FileSystem
	path  string
	prefs *Prefs
}

// PrefsStoreOption configures a PrefsStore.
type PrefsStoreOption func(*PrefsStore)

// WithPrefsFileSystem sets the file system used for loading.
func WithPrefsFileSystem(fsys FileSystem) PrefsStoreOption {
	return func(s *PrefsStore) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// NewPrefsStore creates a store reading from the given path and performs
// the initial load. A missing file yields the defaults.
func NewPrefsStore(path string, opts ...PrefsStoreOption) (*PrefsStore, error) {
	s := &PrefsStore{
		fs:   DefaultFS(),
		path: path,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	return s, nil
}

// Path returns the preferences file path the store reads from.
func (s *PrefsStore) Path() string {
	return s.path
}

// Prefs returns a copy of the current preferences.
func (s *PrefsStore) Prefs() Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs := *s.prefs
	prefs.WorkerCommand = append([]string(nil), s.prefs.WorkerCommand...)
	return prefs
}

// Reload re-reads the preferences file. On failure the previously
// loaded preferences stay active.
func (s *PrefsStore) Reload() error {
	prefs, err := LoadPrefsWithFS(s.fs, s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()

	return nil
}
