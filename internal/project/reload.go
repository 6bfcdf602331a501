package project

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/htmlvet/internal/config"
)

// Reloader drives configuration reload cycles for a session.
//
// Each Reload clears the published state, captures the target root and
// a fresh reload token, and resolves asynchronously. A resolution
// mutates the session only when its token is still the session's
// current token and its captured root still matches; anything else is
// discarded without side effects.
type Reloader struct {
	session *Session
	fs      config.FileSystem

	wg sync.WaitGroup

	// Stats
	started   int64
	published int64
	discarded int64
	failures  int64
}

// ReloadStats reports reloader counters.
type ReloadStats struct {
	// Started is the number of reload cycles begun.
	Started int64
	// Published is the number of resolutions that mutated state.
	Published int64
	// Discarded is the number of stale resolutions dropped.
	Discarded int64
	// Failures is the number of resolutions that published an error.
	Failures int64
}

// ReloaderOption configures a Reloader.
type ReloaderOption func(*Reloader)

// WithFileSystem sets the file system used for loading.
func WithFileSystem(fs config.FileSystem) ReloaderOption {
	return func(r *Reloader) {
		if fs != nil {
			r.fs = fs
		}
	}
}

// NewReloader creates a reloader for a session.
func NewReloader(session *Session, opts ...ReloaderOption) *Reloader {
	r := &Reloader{
		session: session,
		fs:      config.DefaultFS(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Reload begins an asynchronous reload cycle.
func (r *Reloader) Reload(ctx context.Context) {
	root, token, _ := r.session.beginReload()
	atomic.AddInt64(&r.started, 1)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.resolve(ctx, root, token)
	}()
}

// Wait blocks until all in-flight reload resolutions have finished.
func (r *Reloader) Wait() {
	r.wg.Wait()
}

// Stats returns reloader counters.
func (r *Reloader) Stats() ReloadStats {
	return ReloadStats{
		Started:   atomic.LoadInt64(&r.started),
		Published: atomic.LoadInt64(&r.published),
		Discarded: atomic.LoadInt64(&r.discarded),
		Failures:  atomic.LoadInt64(&r.failures),
	}
}

// resolve performs one reload resolution against the captured target
// root. It runs off the caller's goroutine; every return path either
// publishes through the session's guarded setters or discards.
func (r *Reloader) resolve(ctx context.Context, root string, token uuid.UUID) {
	loader := config.NewJSONLoaderWithFS(r.fs, config.ProjectConfigPath(root))
	cfg, err := loader.Load()

	if ctx.Err() != nil {
		atomic.AddInt64(&r.discarded, 1)
		return
	}

	switch {
	case err != nil:
		if r.session.publishError(token, root, loadErrorMessage(err)) {
			atomic.AddInt64(&r.published, 1)
			atomic.AddInt64(&r.failures, 1)
		} else {
			atomic.AddInt64(&r.discarded, 1)
		}

	case cfg != nil:
		if r.session.publishConfig(token, root, cfg) {
			atomic.AddInt64(&r.published, 1)
		} else {
			atomic.AddInt64(&r.discarded, 1)
		}

	default:
		// No config file. Check for unsupported variants, but only if
		// this resolution is still current; the Stat calls are another
		// suspension point.
		if !r.session.current(token, root) {
			atomic.AddInt64(&r.discarded, 1)
			return
		}

		ue := config.DetectUnsupported(r.fs, root)
		if ue == nil {
			// Legal no-config state; beginReload already cleared both
			// fields.
			atomic.AddInt64(&r.published, 1)
			return
		}

		if r.session.publishError(token, root, ue.Error()) {
			atomic.AddInt64(&r.published, 1)
			atomic.AddInt64(&r.failures, 1)
		} else {
			atomic.AddInt64(&r.discarded, 1)
		}
	}
}

// loadErrorMessage converts a loader error to the user-facing message.
// Parse errors carry their full detail; other I/O failures surface as a
// generic message naming the config file.
func loadErrorMessage(err error) string {
	var parseErr *config.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Error()
	}
	return fmt.Sprintf("unable to read %s", config.FileName)
}
