package lint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ErrNoWorkerCommand indicates a CommandBackend was constructed without
// a command.
var ErrNoWorkerCommand = errors.New("no worker command configured")

// CommandBackend runs the validation engine as an external worker
// process. Each request spawns the configured command, writes the
// request as JSON to its stdin, and reads a JSON array of findings
// from its stdout.
//
// Thread Safety: CommandBackend is safe for concurrent use; the command
// may be swapped between requests with Reconfigure.
type CommandBackend struct {
	mu      sync.RWMutex
	command []string
	timeout time.Duration

	// Stats
	totalRequests int64
	totalFailures int64
}

// WorkerStats reports backend counters.
type WorkerStats struct {
	TotalRequests int64
	TotalFailures int64
}

// CommandBackendOption configures a CommandBackend.
type CommandBackendOption func(*CommandBackend)

// WithWorkerTimeout bounds a single worker invocation. Non-positive
// durations keep the default timeout.
func WithWorkerTimeout(d time.Duration) CommandBackendOption {
	return func(b *CommandBackend) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// NewCommandBackend creates a backend running the given command.
func NewCommandBackend(command []string, opts ...CommandBackendOption) (*CommandBackend, error) {
	if len(command) == 0 {
		return nil, ErrNoWorkerCommand
	}

	b := &CommandBackend{
		command: command,
		timeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Reconfigure replaces the worker command and timeout for subsequent
// requests. An empty command is rejected; non-positive timeouts keep
// the current one. Requests already in flight finish with the old
// configuration.
func (b *CommandBackend) Reconfigure(command []string, timeout time.Duration) error {
	if len(command) == 0 {
		return ErrNoWorkerCommand
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.command = append([]string(nil), command...)
	if timeout > 0 {
		b.timeout = timeout
	}

	return nil
}

// Lint implements Backend.
func (b *CommandBackend) Lint(ctx context.Context, req Request) ([]Finding, error) {
	atomic.AddInt64(&b.totalRequests, 1)

	b.mu.RLock()
	command := b.command
	timeout := b.timeout
	b.mu.RUnlock()

	payload, err := json.Marshal(req)
	if err != nil {
		atomic.AddInt64(&b.totalFailures, 1)
		return nil, fmt.Errorf("encoding lint request: %w", err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		atomic.AddInt64(&b.totalFailures, 1)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("lint worker %s: %w: %s", command[0], err, msg)
		}
		return nil, fmt.Errorf("lint worker %s: %w", command[0], err)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		return nil, nil
	}

	var findings []Finding
	if err := json.Unmarshal(out, &findings); err != nil {
		atomic.AddInt64(&b.totalFailures, 1)
		return nil, fmt.Errorf("lint worker %s: decoding response: %w", command[0], err)
	}

	return findings, nil
}

// Stats returns backend counters.
func (b *CommandBackend) Stats() WorkerStats {
	return WorkerStats{
		TotalRequests: atomic.LoadInt64(&b.totalRequests),
		TotalFailures: atomic.LoadInt64(&b.totalFailures),
	}
}

// Ensure CommandBackend implements Backend.
var _ Backend = (*CommandBackend)(nil)
