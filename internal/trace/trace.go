// Package trace carries optional diagnostic events out of the cleanup and
// correction stages. Events describe decisions already made; nothing in the
// pipeline reads them back.
package trace

import (
	"context"
	"log/slog"
	"sync"
)

// Kind names the decision an Event reports.
type Kind string

const (
	LineKept       Kind = "line_kept"
	LineRejected   Kind = "line_rejected"
	WordIgnored    Kind = "word_ignored"
	WordReliable   Kind = "word_reliable"
	WordSuspicious Kind = "word_suspicious"
	Suggested      Kind = "suggested"
)

// Event is a single structured trace record.
type Event struct {
	Kind       Kind
	Line       int      // 1-based line number, line events only
	Text       string   // line or word the event is about
	Reason     string   // rejection or ignore reason
	Frequency  int      // word events only
	Reliable   []string // Suggested only
	Dictionary []string // Suggested only
}

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	Trace(Event)
}

// Func adapts a function to Tracer.
type Func func(Event)

func (f Func) Trace(e Event) { f(e) }

// Nop discards every event.
var Nop Tracer = Func(func(Event) {})

// Slog writes events as debug records to a logger.
type Slog struct {
	Logger *slog.Logger // slog.Default() when nil
}

func (s Slog) Trace(e Event) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := []any{"kind", string(e.Kind), "text", e.Text}
	if e.Line > 0 {
		attrs = append(attrs, "line", e.Line)
	}
	if e.Reason != "" {
		attrs = append(attrs, "reason", e.Reason)
	}
	if e.Frequency > 0 {
		attrs = append(attrs, "frequency", e.Frequency)
	}
	if e.Kind == Suggested {
		attrs = append(attrs, "reliable", e.Reliable, "dictionary", e.Dictionary)
	}
	logger.Debug("Trace event", attrs...)
}

// Recorder keeps every event in memory, in arrival order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Trace(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// OfKind returns the recorded events of kind k.
func (r *Recorder) OfKind(k Kind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// OrNop returns t, or Nop when t is nil.
func OrNop(t Tracer) Tracer {
	if t == nil {
		return Nop
	}
	return t
}
