// Package app contains the core application logic for the ocrtidy CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chriscorrea/ocrtidy/internal/correct"
	"github.com/chriscorrea/ocrtidy/internal/counter"
	"github.com/chriscorrea/ocrtidy/internal/customdict"
	"github.com/chriscorrea/ocrtidy/internal/dictionary"
	"github.com/chriscorrea/ocrtidy/internal/extract"
	"github.com/chriscorrea/ocrtidy/internal/fetch"
	"github.com/chriscorrea/ocrtidy/internal/spinner"
	"github.com/chriscorrea/ocrtidy/internal/suggest"
	"github.com/chriscorrea/ocrtidy/internal/trace"
)

// OutputFormat defines the output format for results
type OutputFormat int

const (
	// JSON output format (default)
	JSON OutputFormat = iota
	// plaintext output format
	Text
)

// String returns the string representation of the output
func (f OutputFormat) String() string {
	switch f {
	case JSON:
		return "JSON"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

// Config holds all configuration options for the ocrtidy application.
type Config struct {
	Sources        []string // file paths, or "-" for stdin; one page each
	DictionaryPath string   // word list, one entry per line
	HOCR           bool     // parse every source as hOCR, not only .hocr/.html files
	OutputFormat   OutputFormat
	CleanOnly      bool // skip classification and suggestions
	Workers        int  // concurrent suggestion workers; 0 means one per CPU
	Stats          bool // report raw vs cleaned sizes
	Redis          customdict.Options
	Quiet          bool // suppress warnings and progress
	Debug          bool
}

// Run executes the main ocrtidy application logic with the given configuration.
//
// Processing Pipeline:
// 1. Read every source as one page and join the pages with a blank line
// 2. Remove noise lines
// 3. Load the dictionary (plus custom words) and suggest corrections
// 4. Render the result
//
// ctx allows for cancellation of the suggestion phase.
func Run(ctx context.Context, cfg Config) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}

	raw, err := readPages(ctx, cfg)
	if err != nil {
		return "", err
	}

	tracer := trace.Slog{}
	result := correct.Result{Corrections: map[string][]string{}}

	if cfg.CleanOnly {
		result.Original = correct.Cleanup(raw, correct.WithTracer(tracer))
	} else {
		dict, err := loadDictionary(ctx, cfg)
		if err != nil {
			return "", err
		}

		opts := []suggest.Option{suggest.WithWorkers(cfg.Workers)}
		if spinner.Enabled(os.Stderr, cfg.Quiet) {
			sp := spinner.New(ctx, os.Stderr, "Suggesting corrections...")
			sp.Start()
			defer sp.Stop()
			opts = append(opts, suggest.WithProgress(sp.Progress))
		}

		result, err = correct.Run(ctx, raw, dict,
			correct.WithTracer(tracer),
			correct.WithSuggestOptions(opts...),
		)
		if err != nil {
			return "", err
		}
	}

	var stats []counter.Stats
	if cfg.Stats {
		stats = measure(raw, result.Original)
	}

	return render(cfg.OutputFormat, result, stats)
}

// readPages reads every source and joins the pages with a blank line.
func readPages(ctx context.Context, cfg Config) (string, error) {
	var pages strings.Builder

	for _, source := range cfg.Sources {
		page, err := readPage(ctx, source, cfg.HOCR || extract.IsHOCR(source))
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Warning: failed to process source %q: %v\n", source, err)
			}
			continue
		}

		if pages.Len() > 0 {
			pages.WriteString("\n\n")
		}
		pages.WriteString(page)
	}

	if pages.Len() == 0 {
		return "", fmt.Errorf("no text read from any source")
	}

	slog.Debug("Pages read", "sources", len(cfg.Sources), "bytes", pages.Len())
	return pages.String(), nil
}

// readPage returns the OCR text of a single source.
func readPage(ctx context.Context, source string, hocr bool) (string, error) {
	if !hocr {
		return fetch.ReadAll(ctx, source)
	}

	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	defer reader.Close()

	text, err := extract.FromHOCR(reader)
	if err != nil {
		return "", fmt.Errorf("failed to extract hOCR text: %w", err)
	}
	return text, nil
}

// loadDictionary loads the word list and merges custom words from Redis when configured.
func loadDictionary(ctx context.Context, cfg Config) (*dictionary.Dictionary, error) {
	if cfg.DictionaryPath == "" {
		return nil, fmt.Errorf("no dictionary provided")
	}

	dict, err := dictionary.LoadFile(cfg.DictionaryPath)
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Addr == "" {
		return dict, nil
	}

	store, err := customdict.Open(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to open custom dictionary: %w", err)
	}
	defer store.Close()

	custom, err := store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read custom dictionary: %w", err)
	}

	merged := dict.With(custom...)
	slog.Debug("Custom words merged", "custom", len(custom), "size", merged.Len())
	return merged, nil
}

// measure compares raw and cleaned text. Token counts are best effort since
// the encoding may need to be downloaded.
func measure(raw, cleaned string) []counter.Stats {
	stats, err := counter.Compare(raw, cleaned, counter.Lines, counter.Words, counter.Characters)
	if err != nil {
		slog.Debug("Failed to measure text", "error", err)
		return nil
	}

	tokens, err := counter.Compare(raw, cleaned, counter.Tokens)
	if err != nil {
		slog.Debug("Token counts unavailable", "error", err)
		return stats
	}
	return append(stats, tokens...)
}
