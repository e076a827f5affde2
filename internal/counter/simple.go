package counter

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// LineCounter counts lines that hold at least one non-space character.
type LineCounter struct{}

func (LineCounter) Count(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func (LineCounter) Name() string { return "lines" }

// WordCounter counts whitespace-separated words.
type WordCounter struct{}

// Count splits on any Unicode whitespace, as strings.Fields does.
func (WordCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	wordCount := len(strings.Fields(text))

	slog.Debug("Word count calculated", "textLength", len(text), "wordCount", wordCount)
	return wordCount
}

func (WordCounter) Name() string { return "words" }

// CharCounter counts runes, not bytes.
type CharCounter struct{}

func (CharCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

func (CharCounter) Name() string { return "characters" }
