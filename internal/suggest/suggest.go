// Package suggest ranks correction candidates for suspicious words.
//
// Candidates come from two pools searched in turn: the reliable words of the
// same document, then the dictionary. Each pool is scanned in tiers of
// increasing Levenshtein distance until PoolLimit candidates are found or
// MaxDistance is passed. While no close match (distance <= GoodDistance) has
// been seen for the word, candidates whose length differs too much from the
// word are skipped; once one is seen the gate is lifted for the rest of that
// word's search, including the dictionary pool.
package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"golang.org/x/sync/errgroup"

	"github.com/chriscorrea/ocrtidy/internal/dictionary"
	"github.com/chriscorrea/ocrtidy/internal/normalize"
	"github.com/chriscorrea/ocrtidy/internal/trace"
	"github.com/chriscorrea/ocrtidy/internal/wordset"
)

// Config holds the search limits.
type Config struct {
	MaxDistance   int // highest distance tier searched
	PoolLimit     int // candidates kept per pool
	GoodDistance  int // distance that lifts the length gate
	MinLengthDiff int // candidate may be at most this much shorter while gated
	MaxLengthDiff int // candidate may be at most this much longer while gated
	Workers       int // concurrent words in SuggestAll; <= 0 means runtime.NumCPU()
}

// DefaultConfig returns the standard search limits.
func DefaultConfig() Config {
	return Config{
		MaxDistance:   10,
		PoolLimit:     5,
		GoodDistance:  2,
		MinLengthDiff: -2,
		MaxLengthDiff: 4,
		Workers:       runtime.NumCPU(),
	}
}

// Candidates is the ranked output for one word.
type Candidates struct {
	Reliable   []string // from the document's reliable words
	Dictionary []string // from the dictionary
}

// All returns the reliable candidates followed by the dictionary candidates.
func (c Candidates) All() []string {
	out := make([]string, 0, len(c.Reliable)+len(c.Dictionary))
	out = append(out, c.Reliable...)
	return append(out, c.Dictionary...)
}

// Option configures a Suggester.
type Option func(*Suggester)

// WithConfig replaces the search limits.
func WithConfig(cfg Config) Option {
	return func(s *Suggester) { s.cfg = cfg }
}

// WithWorkers sets how many words SuggestAll processes at once.
func WithWorkers(n int) Option {
	return func(s *Suggester) { s.cfg.Workers = n }
}

// WithTracer sends one trace.Suggested event per word to t.
func WithTracer(t trace.Tracer) Option {
	return func(s *Suggester) { s.tracer = trace.OrNop(t) }
}

// WithProgress registers fn to be called after each word SuggestAll finishes.
// fn may be called from several goroutines at once.
func WithProgress(fn func(done, total int)) Option {
	return func(s *Suggester) { s.progress = fn }
}

// Suggester computes candidate lists. It holds no per-call state and is safe for concurrent use.
type Suggester struct {
	cfg      Config
	tracer   trace.Tracer
	progress func(done, total int)
}

// New creates a Suggester with DefaultConfig and the given options applied.
func New(opts ...Option) *Suggester {
	s := &Suggester{cfg: DefaultConfig(), tracer: trace.Nop}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Distance returns the Levenshtein distance between a and b, counted in runes.
func Distance(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// Suggest returns up to 2*PoolLimit candidates for word.
func (s *Suggester) Suggest(word string, reliable *wordset.Set, dict *dictionary.Dictionary) []string {
	return s.Candidates(word, reliable, dict).All()
}

// Candidates runs the reliable-pool search and then the dictionary-pool search for word.
func (s *Suggester) Candidates(word string, reliable *wordset.Set, dict *dictionary.Dictionary) Candidates {
	target := normalize.Word(word)

	// shared across both pools
	goodMatch := false

	return Candidates{
		Reliable:   s.searchPool(target, reliable.Entries(), &goodMatch),
		Dictionary: s.searchPool(target, dict.Entries(), &goodMatch),
	}
}

// searchPool walks pool once per distance tier, in pool order, collecting
// candidates whose distance equals the tier. Distances are computed lazily
// and cached, so each entry is measured at most once.
func (s *Suggester) searchPool(target string, pool []wordset.Entry, goodMatch *bool) []string {
	if len(pool) == 0 || s.cfg.PoolLimit <= 0 {
		return nil
	}

	targetLen := utf8.RuneCountInString(target)
	dist := make([]int, len(pool))
	for i := range dist {
		dist[i] = -1
	}
	lengths := make([]int, len(pool))

	var found []string
	for tier := 0; tier <= s.cfg.MaxDistance && len(found) < s.cfg.PoolLimit; tier++ {
		for i, e := range pool {
			if len(found) >= s.cfg.PoolLimit {
				break
			}

			// entry keys are already normalized
			if dist[i] < 0 {
				dist[i] = Distance(target, e.Key)
				lengths[i] = utf8.RuneCountInString(e.Key)
			}
			if dist[i] <= s.cfg.GoodDistance {
				*goodMatch = true
			}

			lengthDiff := lengths[i] - targetLen
			if !*goodMatch && (lengthDiff < s.cfg.MinLengthDiff || lengthDiff > s.cfg.MaxLengthDiff) {
				continue
			}
			if dist[i] != tier {
				continue
			}

			// tiers ascend, so appending keeps the pool sorted by distance
			found = append(found, e.Surface)
		}
	}
	return found
}

// SuggestAll computes candidates for every suspicious word, keyed by the
// word's surface form. Words are processed concurrently; the result does not
// depend on scheduling. The only error returned is ctx's.
func (s *Suggester) SuggestAll(ctx context.Context, suspicious, reliable *wordset.Set, dict *dictionary.Dictionary) (map[string][]string, error) {
	words := suspicious.Entries()
	results := make([][]string, len(words))

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	slog.Debug("Suggesting corrections", "words", len(words), "reliable", reliable.Len(), "dictionary", dict.Len(), "workers", workers)

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, w := range words {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			c := s.Candidates(w.Key, reliable, dict)
			results[i] = c.All()

			s.tracer.Trace(trace.Event{Kind: trace.Suggested, Text: w.Surface, Reliable: c.Reliable, Dictionary: c.Dictionary})
			if s.progress != nil {
				s.progress(int(done.Add(1)), len(words))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("suggestion interrupted: %w", err)
	}

	out := make(map[string][]string, len(words))
	for i, w := range words {
		out[w.Surface] = results[i]
	}
	return out, nil
}
