package project

import (
	"context"
	"path/filepath"
)

// ChangeEvent describes a filesystem notification affecting a project.
type ChangeEvent struct {
	// Path is the changed file path, if any.
	Path string

	// Added are paths that were created.
	Added []string

	// Removed are paths that were deleted or renamed away.
	Removed []string
}

// Router filters filesystem notifications down to the files the
// session cares about: configuration file changes trigger a reload, and
// preference file changes (when a preferences path is configured)
// invoke the preference-change callback.
type Router struct {
	session  *Session
	reloader *Reloader

	prefsPath     string
	onPrefsChange func(context.Context)
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithPrefsPath routes change events touching the given preferences
// file to the onChange callback.
func WithPrefsPath(path string, onChange func(context.Context)) RouterOption {
	return func(rt *Router) {
		if path != "" && onChange != nil {
			rt.prefsPath = path
			rt.onPrefsChange = onChange
		}
	}
}

// NewRouter creates a router for a session.
func NewRouter(session *Session, reloader *Reloader, opts ...RouterOption) *Router {
	rt := &Router{
		session:  session,
		reloader: reloader,
	}

	for _, opt := range opts {
		opt(rt)
	}

	return rt
}

// HandleEvent inspects a change event and triggers a reload when it
// affects the configuration file for the current root, or the
// preference-change callback when it touches the preferences file. It
// reports whether the event was acted on.
func (rt *Router) HandleEvent(ctx context.Context, event ChangeEvent) bool {
	if rt.affectsConfig(event) {
		rt.reloader.Reload(ctx)
		return true
	}

	if rt.onPrefsChange != nil && eventTouches(event, rt.prefsPath) {
		rt.onPrefsChange(ctx)
		return true
	}

	return false
}

// affectsConfig reports whether the event touches the expected
// configuration file path.
func (rt *Router) affectsConfig(event ChangeEvent) bool {
	return eventTouches(event, rt.session.ConfigPath())
}

// eventTouches reports whether any path carried by the event matches
// the target path.
func eventTouches(event ChangeEvent, target string) bool {
	if samePath(event.Path, target) {
		return true
	}
	for _, p := range event.Added {
		if samePath(p, target) {
			return true
		}
	}
	for _, p := range event.Removed {
		if samePath(p, target) {
			return true
		}
	}
	return false
}

// samePath compares two paths after cleaning.
func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
