package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// LogRecord represents a captured log record for testing
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// logStore is shared by a handler and every handler derived from it
type logStore struct {
	mu      sync.Mutex
	records []LogRecord
}

// CaptureHandler records log records in memory. Attributes added with With
// are kept; groups are flattened.
type CaptureHandler struct {
	store *logStore
	attrs []slog.Attr
	t     *testing.T
}

// NewTestLogger creates a logger backed by a capture handler
func NewTestLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	handler := &CaptureHandler{store: &logStore{}, t: t}
	return slog.New(handler), handler
}

// Handle implements slog.Handler
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.store.mu.Lock()
	h.store.records = append(h.store.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	h.store.mu.Unlock()

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// Enabled implements slog.Handler; every level is captured
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CaptureHandler{store: h.store, attrs: merged, t: h.t}
}

// WithGroup implements slog.Handler
func (h *CaptureHandler) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of every captured record
func (h *CaptureHandler) Records() []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	records := make([]LogRecord, len(h.store.records))
	copy(records, h.store.records)
	return records
}

// Find returns the records with the given level and message
func (h *CaptureHandler) Find(level slog.Level, message string) []LogRecord {
	var found []LogRecord
	for _, r := range h.Records() {
		if r.Level == level && r.Message == message {
			found = append(found, r)
		}
	}
	return found
}

// AssertLogged checks that a record with level and message was captured
// carrying every attribute in want
func AssertLogged(t *testing.T, h *CaptureHandler, level slog.Level, message string, want map[string]any) bool {
	t.Helper()

	for _, r := range h.Find(level, message) {
		matched := true
		for k, v := range want {
			if got, ok := r.Attrs[k]; !ok || got != v {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return assert.Fail(t, "log record not found",
		"level=%s message=%q attrs=%v\ncaptured: %v", level, message, want, h.Records())
}

// AssertNoErrors checks that no error-level logs were recorded
func AssertNoErrors(t *testing.T, h *CaptureHandler) bool {
	t.Helper()

	var errs []LogRecord
	for _, r := range h.Records() {
		if r.Level >= slog.LevelError {
			errs = append(errs, r)
		}
	}
	return assert.Empty(t, errs, "unexpected error logs")
}
