package markpad

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// DebugEntry is one recorded render-cycle diagnostic. Order of entries is
// the order of recording; no explicit timestamp is kept.
type DebugEntry struct {
	Message string
	Details any
}

// Recorder accumulates structured diagnostics for each render cycle.
// It is a no-op unless enabled, never panics, and never blocks the
// render path; logging failures must not affect rendering. The log is
// session-scoped and unbounded.
type Recorder struct {
	mu      sync.Mutex
	enabled bool
	entries []DebugEntry
	logger  *slog.Logger
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithLogger mirrors recorded entries to a slog logger.
func WithLogger(l *slog.Logger) RecorderOption {
	return func(r *Recorder) { r.logger = l }
}

// NewRecorder creates a Recorder. When enabled is false every Record
// call is a no-op.
func NewRecorder(enabled bool, opts ...RecorderOption) *Recorder {
	r := &Recorder{enabled: enabled}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Enabled reports whether recording is active.
func (r *Recorder) Enabled() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Record appends an entry when recording is active. details may be nil.
// Any fault while formatting or logging is swallowed.
func (r *Recorder) Record(message string, details any) {
	if r == nil {
		return
	}
	defer func() {
		_ = recover()
	}()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return
	}

	r.entries = append(r.entries, DebugEntry{Message: message, Details: details})

	if r.logger != nil {
		r.logger.Debug(message, slog.String("details", formatDetails(details)))
	}
}

// Entries returns a copy of the recorded log.
func (r *Recorder) Entries() []DebugEntry {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DebugEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// formatDetails pretty-prints structured details. Values that cannot be
// marshalled degrade to their Go syntax representation instead of
// failing the record.
func formatDetails(details any) string {
	if details == nil {
		return ""
	}
	b, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return "(unprintable details)"
	}
	return string(b)
}
