// Package testutil provides test helpers shared across packages,
// currently an in-memory slog handler for asserting on log output.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Record is one captured log line with its attributes flattened into a
// map. Grouped attributes use dotted keys.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is a slog.Handler that keeps records in memory so
// tests can assert on what a component logged. Derived handlers from
// With share the same record store.
type CaptureHandler struct {
	store *recordStore
	attrs []slog.Attr
	group string
}

type recordStore struct {
	mu      sync.Mutex
	records []Record
}

// NewCaptureLogger returns a logger wired to a capture handler and the
// handler itself for inspection.
func NewCaptureLogger() (*slog.Logger, *CaptureHandler) {
	h := &CaptureHandler{store: &recordStore{}}
	return slog.New(h), h
}

// Enabled captures every level; filtering belongs in assertions.
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[h.qualify(a.Key)] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[h.qualify(a.Key)] = a.Value.Resolve().Any()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = append(h.store.records, Record{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

func (h *CaptureHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *h
	derived.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &derived
}

func (h *CaptureHandler) WithGroup(name string) slog.Handler {
	derived := *h
	if derived.group == "" {
		derived.group = name
	} else {
		derived.group += "." + name
	}
	return &derived
}

// Records returns a copy of everything captured so far.
func (h *CaptureHandler) Records() []Record {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]Record, len(h.store.records))
	copy(out, h.store.records)
	return out
}

// Find returns the first record whose message contains the given
// fragment.
func (h *CaptureHandler) Find(fragment string) (Record, bool) {
	for _, r := range h.Records() {
		if strings.Contains(r.Message, fragment) {
			return r, true
		}
	}
	return Record{}, false
}

// Contains reports whether any record's message contains the fragment.
func (h *CaptureHandler) Contains(fragment string) bool {
	_, ok := h.Find(fragment)
	return ok
}
