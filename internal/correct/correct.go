// Package correct exposes the two boundary operations of the cleanup engine:
// Cleanup removes noise lines from raw OCR text, and Correct classifies the
// words of cleaned text and suggests replacements for the suspicious ones.
//
// Usage Example:
//
//	dict, _ := dictionary.LoadFile("pt-br.txt")
//	cleaned := correct.Cleanup(raw)
//	result, err := correct.Correct(ctx, cleaned, dict)
package correct

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chriscorrea/ocrtidy/internal/classify"
	"github.com/chriscorrea/ocrtidy/internal/dictionary"
	"github.com/chriscorrea/ocrtidy/internal/linefilter"
	"github.com/chriscorrea/ocrtidy/internal/suggest"
	"github.com/chriscorrea/ocrtidy/internal/trace"
)

// Result is the structured output handed to the caller.
type Result struct {
	Original    string              `json:"original"`    // cleaned text
	Corrections map[string][]string `json:"corrections"` // suspicious word -> candidates
}

type options struct {
	tracer    trace.Tracer
	suggester []suggest.Option
}

// Option configures Cleanup and Correct.
type Option func(*options)

// WithTracer sends line, word and suggestion events to t.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithSuggestOptions forwards options to the suggester.
func WithSuggestOptions(opts ...suggest.Option) Option {
	return func(o *options) { o.suggester = append(o.suggester, opts...) }
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.tracer = trace.OrNop(o.tracer)
	return o
}

// Cleanup returns text with noise lines removed.
func Cleanup(text string, opts ...Option) string {
	o := collect(opts)
	return linefilter.FilterTraced(text, o.tracer)
}

// Correct classifies the words of cleaned and computes candidate lists for
// every suspicious word. Empty or whitespace-only input yields an empty
// correction map. The only error returned is ctx's.
func Correct(ctx context.Context, cleaned string, dict *dictionary.Dictionary, opts ...Option) (Result, error) {
	o := collect(opts)

	result := Result{Original: cleaned, Corrections: map[string][]string{}}
	if strings.TrimSpace(cleaned) == "" {
		return result, nil
	}

	classified := classify.NewClassifier(dict, o.tracer).Classify(cleaned)
	slog.Debug("Classified words",
		"vocabulary", len(classified.Frequencies),
		"reliable", classified.Reliable.Len(),
		"suspicious", classified.Suspicious.Len())

	if classified.Suspicious.Len() == 0 {
		return result, nil
	}

	suggesterOpts := append([]suggest.Option{suggest.WithTracer(o.tracer)}, o.suggester...)
	corrections, err := suggest.New(suggesterOpts...).SuggestAll(ctx, classified.Suspicious, classified.Reliable, dict)
	if err != nil {
		return Result{}, fmt.Errorf("failed to suggest corrections: %w", err)
	}
	result.Corrections = corrections

	return result, nil
}

// Run applies Cleanup and then Correct to raw OCR text.
func Run(ctx context.Context, raw string, dict *dictionary.Dictionary, opts ...Option) (Result, error) {
	return Correct(ctx, Cleanup(raw, opts...), dict, opts...)
}
