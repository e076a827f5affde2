// Package classify partitions the vocabulary of cleaned OCR text into
// reliable and suspicious words.
//
// The classifier counts every token in the text under its normalized form and
// applies a simple rule: a word is reliable when it occurs more than once or
// when it appears in the dictionary. Everything else is suspicious and is a
// candidate for correction. Tokens containing digits and single-character
// tokens are left out of the count entirely.
//
// Counting sees punctuation, so "caza," and "caza." are two words seen once
// each. Punctuation is only dropped afterwards, to compare against the
// dictionary and to key the reliable and suspicious sets.
package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chriscorrea/ocrtidy/internal/dictionary"
	"github.com/chriscorrea/ocrtidy/internal/normalize"
	"github.com/chriscorrea/ocrtidy/internal/trace"
	"github.com/chriscorrea/ocrtidy/internal/wordset"
)

// MinWordLength is the shortest normalized word that is counted.
const MinWordLength = 2

// Ignore reasons reported through trace events.
const (
	ReasonHasDigit  = "has_digit"
	ReasonTooShort  = "too_short"
	ReasonNoLetters = "no_letters"
)

// Result holds the outcome of one classification.
type Result struct {
	Reliable    *wordset.Set   // reliable words, first-occurrence order
	Suspicious  *wordset.Set   // suspicious words, first-occurrence order
	Frequencies map[string]int // occurrences per normalized token, punctuation kept
}

// Classifier splits text into reliable and suspicious words
type Classifier struct {
	dict   *dictionary.Dictionary
	tracer trace.Tracer
}

// NewClassifier creates a Classifier that checks membership against dict.
// A nil tracer discards events.
func NewClassifier(dict *dictionary.Dictionary, tracer trace.Tracer) *Classifier {
	return &Classifier{dict: dict, tracer: trace.OrNop(tracer)}
}

// Classify counts and partitions the words of text using dict.
func Classify(text string, dict *dictionary.Dictionary) Result {
	return NewClassifier(dict, nil).Classify(text)
}

// Classify counts every eligible token in text and partitions the vocabulary.
//
// Tokens are counted under their normalized form. Counted forms that differ
// only in punctuation then share one set key, and that key is reliable when
// any of its forms is. The first surface form seen for a key (edge
// punctuation trimmed) is kept for display.
func (c *Classifier) Classify(text string) Result {
	freq := make(map[string]int)
	// counted forms in first-occurrence order, with their first surface
	var forms []string
	surfaces := make(map[string]string)

	for _, token := range strings.Fields(text) {
		if strings.IndexFunc(token, unicode.IsDigit) >= 0 {
			c.tracer.Trace(trace.Event{Kind: trace.WordIgnored, Text: token, Reason: ReasonHasDigit})
			continue
		}

		form := normalize.Word(token)
		if utf8.RuneCountInString(form) < MinWordLength {
			if form != "" {
				c.tracer.Trace(trace.Event{Kind: trace.WordIgnored, Text: token, Reason: ReasonTooShort})
			}
			continue
		}

		if freq[form] == 0 {
			forms = append(forms, form)
			surfaces[form] = normalize.TrimPunctuation(token)
		}
		freq[form]++
	}

	type group struct {
		surface   string
		frequency int
		reliable  bool
	}
	var keys []string
	groups := make(map[string]*group)

	for _, form := range forms {
		key := normalize.StripPunctuation(form)
		if key == "" {
			c.tracer.Trace(trace.Event{Kind: trace.WordIgnored, Text: form, Reason: ReasonNoLetters})
			continue
		}

		g, ok := groups[key]
		if !ok {
			g = &group{surface: surfaces[form]}
			groups[key] = g
			keys = append(keys, key)
		}
		n := freq[form]
		g.frequency += n
		if n > 1 || c.dict.Contains(key) {
			g.reliable = true
		}
	}

	result := Result{
		Reliable:    wordset.New(len(keys)),
		Suspicious:  wordset.New(0),
		Frequencies: freq,
	}

	for _, key := range keys {
		g := groups[key]
		if g.reliable {
			result.Reliable.Add(key, g.surface)
			c.tracer.Trace(trace.Event{Kind: trace.WordReliable, Text: g.surface, Frequency: g.frequency})
			continue
		}
		result.Suspicious.Add(key, g.surface)
		c.tracer.Trace(trace.Event{Kind: trace.WordSuspicious, Text: g.surface, Frequency: g.frequency})
	}

	return result
}
