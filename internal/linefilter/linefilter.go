// Package linefilter drops noise lines from raw OCR output.
//
// Each line is judged on its own by a fixed set of heuristics:
//  1. Lines shorter than MinLineLength after trimming and punctuation stripping
//  2. Lines where a character (other than whitespace or '.') repeats
//     MaxRepeat or more times in a row, ignoring digits
//  3. Lines with a run of more than MaxSmallRun consecutive small tokens
//     (length <= SmallTokenLength, or all digits) and fewer than MinBigWords
//     words of BigWordLength or more
//
// Surviving lines keep their order and are joined with newlines.
package linefilter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chriscorrea/ocrtidy/internal/trace"
)

const (
	MinLineLength    = 6
	MaxRepeat        = 3
	SmallTokenLength = 2
	MaxSmallRun      = 2
	BigWordLength    = 6
	MinBigWords      = 2
)

// Reason explains why a line was rejected.
type Reason string

const (
	Kept          Reason = ""
	TooShort      Reason = "too_short"
	RepeatedChar  Reason = "repeated_char"
	SmallTokenRun Reason = "small_token_run"
)

// Verdict is the decision for one line.
type Verdict struct {
	Line   string // the line after trimming and punctuation stripping
	Reason Reason
}

// Keep reports whether the line survives.
func (v Verdict) Keep() bool { return v.Reason == Kept }

var (
	lineBreak     = regexp.MustCompile(`\r?\n`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	allDigits     = regexp.MustCompile(`^[0-9]+$`)
	noiseRunes    = strings.NewReplacer("=", "", ">", "", "'", "", `"`, "", "—", "", "!", "")
)

// Filter returns the lines of raw that survive Inspect, each followed by a newline.
func Filter(raw string) string {
	return FilterTraced(raw, nil)
}

// FilterTraced is Filter with a per-line trace event for every decision.
func FilterTraced(raw string, tracer trace.Tracer) string {
	tracer = trace.OrNop(tracer)

	var sb strings.Builder
	for i, line := range lineBreak.Split(raw, -1) {
		v := Inspect(line)
		if !v.Keep() {
			tracer.Trace(trace.Event{Kind: trace.LineRejected, Line: i + 1, Text: v.Line, Reason: string(v.Reason)})
			continue
		}
		tracer.Trace(trace.Event{Kind: trace.LineKept, Line: i + 1, Text: v.Line})
		sb.WriteString(v.Line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Inspect applies the noise heuristics to a single line.
func Inspect(line string) Verdict {
	clean := noiseRunes.Replace(strings.TrimSpace(line))

	if utf8.RuneCountInString(clean) < MinLineLength {
		return Verdict{Line: clean, Reason: TooShort}
	}

	if hasRepeatedRun(stripDigits(clean)) {
		return Verdict{Line: clean, Reason: RepeatedChar}
	}

	if smallRun, bigWords := tokenShape(clean); smallRun > MaxSmallRun && bigWords < MinBigWords {
		return Verdict{Line: clean, Reason: SmallTokenRun}
	}

	return Verdict{Line: clean, Reason: Kept}
}

func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}

// hasRepeatedRun reports whether a rune other than whitespace or '.' occurs
// MaxRepeat or more times consecutively.
func hasRepeatedRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if run > 0 && r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run >= MaxRepeat && r != '.' && !unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// splitTokens splits s on whitespace runs. Leading whitespace, left behind
// when a stripped noise rune opened the line, yields an empty first token that
// counts as small; trailing empty tokens are dropped.
func splitTokens(s string) []string {
	tokens := whitespaceRun.Split(s, -1)
	for len(tokens) > 0 && tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// tokenShape returns the longest run of consecutive small tokens and the
// number of big words in s.
func tokenShape(s string) (longestSmallRun, bigWords int) {
	current := 0
	for _, tok := range splitTokens(s) {
		n := utf8.RuneCountInString(tok)
		if n <= SmallTokenLength || allDigits.MatchString(tok) {
			current++
			longestSmallRun = max(longestSmallRun, current)
		} else {
			current = 0
		}
		if n >= BigWordLength {
			bigWords++
		}
	}
	return longestSmallRun, bigWords
}
