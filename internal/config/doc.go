// Package config provides per-project lint configuration loading for
// htmlvet.
//
// A project opts into custom validator options by placing a single JSON
// configuration file (.htmlvalidate.json) in its root. Absence of the
// file is a valid state, not an error. Two legacy configuration
// variants (.htmlvalidate.js and .htmlvalidate.cjs) are recognized but
// rejected with a message directing the user to the JSON format.
//
// The package also loads htmlvet's own TOML preferences file, which
// controls the worker command and the enable/disable gate.
package config
