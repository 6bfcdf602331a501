package lint

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
)

// ErrStaleResult indicates the worker responded for a document that is
// no longer the active one. The response is dropped without producing
// diagnostics.
var ErrStaleResult = errors.New("stale lint result")

// ConfigSource provides the configuration state captured with each
// lint request.
type ConfigSource interface {
	// LintState returns the active configuration (possibly nil), the
	// active configuration error message (empty when none), and the
	// current configuration generation.
	LintState() (config map[string]any, configError string, generation int64)
}

// ActiveDocument reports which document is currently foregrounded.
type ActiveDocument interface {
	ActivePath() string
}

// Result carries the diagnostics for one scan. A nil Result means "no
// problems".
type Result struct {
	Errors []Diagnostic
}

// DispatcherStats reports dispatcher counters.
type DispatcherStats struct {
	// Scans is the number of scan requests handled.
	Scans int64
	// ShortCircuits is the number of scans answered from a
	// configuration error without invoking the backend.
	ShortCircuits int64
	// Stale is the number of worker responses dropped as stale.
	Stale int64
}

// Dispatcher sends documents to the lint backend and converts raw
// findings into diagnostics.
type Dispatcher struct {
	source  ConfigSource
	active  ActiveDocument
	backend Backend

	// Stats
	scans         int64
	shortCircuits int64
	stale         int64
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(source ConfigSource, active ActiveDocument, backend Backend) *Dispatcher {
	return &Dispatcher{
		source:  source,
		active:  active,
		backend: backend,
	}
}

// Scan lints a document. The configuration state is snapshotted at
// submission time.
//
// When a configuration error is active, Scan returns exactly one
// diagnostic carrying that message, anchored at the sentinel position,
// and never invokes the backend. When the worker responds for a
// document that is no longer active, Scan fails with ErrStaleResult;
// the staleness check is skipped while no active document is recorded.
func (d *Dispatcher) Scan(ctx context.Context, text, path string) (*Result, error) {
	atomic.AddInt64(&d.scans, 1)

	cfg, configError, generation := d.source.LintState()

	if configError != "" {
		atomic.AddInt64(&d.shortCircuits, 1)
		return &Result{Errors: []Diagnostic{NewConfigProblem(configError)}}, nil
	}

	findings, err := d.backend.Lint(ctx, Request{
		Text:       text,
		FilePath:   path,
		Generation: generation,
		Config:     cfg,
	})
	if err != nil {
		return nil, err
	}

	// The worker call is a suspension point: by the time the response
	// arrives, the user may have switched documents.
	if d.active != nil {
		if active := d.active.ActivePath(); active != "" && !sameDocument(active, path) {
			atomic.AddInt64(&d.stale, 1)
			return nil, ErrStaleResult
		}
	}

	if len(findings) == 0 {
		return nil, nil
	}

	pc := NewPositionConverter(text)
	diagnostics := make([]Diagnostic, 0, len(findings))
	for _, f := range findings {
		diagnostics = append(diagnostics, Diagnostic{
			Range: Range{
				Start: pc.OffsetToPosition(f.Start),
				End:   pc.OffsetToPosition(f.End),
			},
			Message:  fmt.Sprintf("%s (%s)", f.Message, f.RuleID),
			Severity: SeverityFromRaw(f.Severity),
			RuleURL:  f.RuleURL,
		})
	}

	return &Result{Errors: diagnostics}, nil
}

// Stats returns dispatcher counters.
func (d *Dispatcher) Stats() DispatcherStats {
	return DispatcherStats{
		Scans:         atomic.LoadInt64(&d.scans),
		ShortCircuits: atomic.LoadInt64(&d.shortCircuits),
		Stale:         atomic.LoadInt64(&d.stale),
	}
}

// sameDocument compares two document paths after cleaning.
func sameDocument(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
