package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chainguard-dev/clog"
)

// DefaultTimeout bounds contexts created without an explicit timeout.
const DefaultTimeout = 5 * time.Second

// Context returns a test-scoped context carrying a debug clog logger that
// writes through t.Log. It is cancelled when the test ends or the timeout
// (capped by the test deadline) elapses.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if deadline, ok := t.Deadline(); ok {
		if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	w := &tbWriter{t: t}
	logger := clog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx, cancel := context.WithTimeout(clog.WithLogger(context.Background(), logger), timeout)
	t.Cleanup(func() {
		cancel()
		w.close()
	})
	return ctx
}

// tbWriter forwards log lines to the test until the test is cleaned up;
// later writes from lingering goroutines are discarded.
type tbWriter struct {
	mu     sync.Mutex
	t      testing.TB
	closed bool
}

func (w *tbWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.t.Log(strings.TrimRight(string(p), "\n"))
	}
	return len(p), nil
}

func (w *tbWriter) close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
}
