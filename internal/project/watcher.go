package project

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher errors.
var (
	// ErrWatcherClosed indicates the watcher has been closed.
	ErrWatcherClosed = errors.New("watcher is closed")
)

// WatcherStats reports watcher counters.
type WatcherStats struct {
	TotalEvents int64
	Reloads     int64
	Errors      int64
	StartTime   time.Time
}

// Watcher monitors a project root for filesystem changes and feeds
// them to a Router, which triggers configuration reloads for events
// that touch the config file.
type Watcher struct {
	mu sync.Mutex

	session *Session
	router  *Router
	watcher *fsnotify.Watcher

	// Stats
	startTime   time.Time
	totalEvents int64
	reloads     int64
	totalErrors int64

	// Lifecycle
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewWatcher creates a watcher feeding the given router.
func NewWatcher(session *Session, router *Router) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		session:   session,
		router:    router,
		watcher:   fsw,
		startTime: time.Now(),
		closeCh:   make(chan struct{}),
	}, nil
}

// Start begins watching the session's project root. Events are
// processed until the context is canceled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	if err := w.watcher.Add(w.session.Root()); err != nil {
		return err
	}

	w.closedWg.Add(1)
	go w.processLoop(ctx)

	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	return w.watcher.Close()
}

// Stats returns watcher counters.
func (w *Watcher) Stats() WatcherStats {
	return WatcherStats{
		TotalEvents: atomic.LoadInt64(&w.totalEvents),
		Reloads:     atomic.LoadInt64(&w.reloads),
		Errors:      atomic.LoadInt64(&w.totalErrors),
		StartTime:   w.startTime,
	}
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop(ctx context.Context) {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case <-ctx.Done():
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(ctx, fsEvent)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			atomic.AddInt64(&w.totalErrors, 1)
		}
	}
}

// handleFSEvent converts an fsnotify event into a ChangeEvent and
// routes it.
func (w *Watcher) handleFSEvent(ctx context.Context, fsEvent fsnotify.Event) {
	event, ok := convertFSEvent(fsEvent)
	if !ok {
		return
	}

	atomic.AddInt64(&w.totalEvents, 1)
	if w.router.HandleEvent(ctx, event) {
		atomic.AddInt64(&w.reloads, 1)
	}
}

// convertFSEvent maps an fsnotify event onto the changed/added/removed
// shape the router consumes. Chmod-only events are dropped.
func convertFSEvent(fsEvent fsnotify.Event) (ChangeEvent, bool) {
	var event ChangeEvent

	switch {
	case fsEvent.Op.Has(fsnotify.Create):
		event.Added = []string{fsEvent.Name}
	case fsEvent.Op.Has(fsnotify.Remove), fsEvent.Op.Has(fsnotify.Rename):
		event.Removed = []string{fsEvent.Name}
	case fsEvent.Op.Has(fsnotify.Write):
		event.Path = fsEvent.Name
	default:
		return ChangeEvent{}, false
	}

	return event, true
}
