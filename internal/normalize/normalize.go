// Package normalize canonicalizes words into comparison keys.
//
// A key is the word after canonical decomposition, removal of combining marks
// and lower-casing, so "Coração" and "coracao" compare equal. Keys are only
// used for comparison; callers keep the surface form for display.
package normalize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrNormalization reports that a word could not be run through the Unicode transform chain.
var ErrNormalization = errors.New("unicode normalization failed")

// stripMarks decomposes, drops combining marks and recomposes what is left.
// transform.Chain is stateful, so a fresh chain is built per call.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)), norm.NFC)
}

// Key returns the comparison key for word, or an error wrapping ErrNormalization.
func Key(word string) (string, error) {
	stripped, _, err := transform.String(stripMarks(), word)
	if err != nil {
		return word, fmt.Errorf("%w: %q: %v", ErrNormalization, word, err)
	}
	return strings.ToLower(stripped), nil
}

// Word returns the comparison key for word.
// Input that fails normalization passes through unchanged.
func Word(word string) string {
	key, err := Key(word)
	if err != nil {
		return word
	}
	return key
}

// StripPunctuation removes punctuation and symbol runes anywhere in s.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
}

// TrimPunctuation removes punctuation and symbol runes from both ends of s.
func TrimPunctuation(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
