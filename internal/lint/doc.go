// Package lint dispatches documents to an out-of-process validation
// worker and translates raw findings into positioned diagnostics.
//
// The dispatcher snapshots the session's configuration state with every
// request, short-circuits when a configuration error is active, and
// discards worker responses that arrive after the document is no longer
// foregrounded.
package lint
