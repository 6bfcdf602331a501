// Package inspect exposes named inspectors to a host inspection
// framework: each inspector pairs an asynchronous scan function with a
// gate reflecting a user-toggleable preference.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/htmlvet/internal/lint"
)

// Errors returned by registry operations.
var (
	// ErrInspectorRegistered indicates a duplicate inspector name.
	ErrInspectorRegistered = errors.New("inspector already registered")

	// ErrInspectorNotFound indicates the named inspector doesn't exist.
	ErrInspectorNotFound = errors.New("inspector not found")
)

// ScanFunc lints a document and returns its diagnostics. A nil result
// means "no problems".
type ScanFunc func(ctx context.Context, text, path string) (*lint.Result, error)

// GateFunc reports whether the inspector is enabled for a path.
type GateFunc func(path string) bool

// Inspector is a named scanner registered with the host framework.
type Inspector struct {
	// Name identifies the inspector in results and UI.
	Name string

	// Scan produces diagnostics for a document.
	Scan ScanFunc

	// Enabled gates the inspector per path. A nil gate means always
	// enabled.
	Enabled GateFunc
}

// Registry holds registered inspectors.
type Registry struct {
	mu         sync.RWMutex
	inspectors map[string]Inspector
	order      []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		inspectors: make(map[string]Inspector),
	}
}

// Register adds an inspector. Names must be unique.
func (r *Registry) Register(ins Inspector) error {
	if ins.Name == "" {
		return errors.New("inspector name is required")
	}
	if ins.Scan == nil {
		return errors.New("inspector scan function is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.inspectors[ins.Name]; exists {
		return fmt.Errorf("%w: %s", ErrInspectorRegistered, ins.Name)
	}

	r.inspectors[ins.Name] = ins
	r.order = append(r.order, ins.Name)
	return nil
}

// Get returns a registered inspector by name.
func (r *Registry) Get(name string) (Inspector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ins, ok := r.inspectors[name]
	return ins, ok
}

// Names returns inspector names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Run scans a document with the named inspector. A disabled inspector
// yields a nil result without scanning.
func (r *Registry) Run(ctx context.Context, name, text, path string) (*lint.Result, error) {
	ins, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInspectorNotFound, name)
	}

	if ins.Enabled != nil && !ins.Enabled(path) {
		return nil, nil
	}

	return ins.Scan(ctx, text, path)
}
