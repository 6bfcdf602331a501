// Package project manages the per-project lint session: the active
// configuration state, generation-guarded reloads, and routing of
// filesystem change notifications to reloads.
//
// A Session is constructed when a project is opened and discarded when
// it closes. All published state (configuration, configuration error,
// generation) lives on the Session rather than in package globals, so
// concurrent sessions never interfere.
package project
