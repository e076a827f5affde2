// Package counter measures text in lines, words, characters or tokens.
//
// It is used to report how much of the raw OCR output survived cleanup.
// Token counting uses OpenAI's tiktoken with the cl100k_base encoding, which
// is useful when the cleaned text is headed for a language model.
//
// Usage Example:
//
//	stats, err := counter.Compare(raw, cleaned, counter.Lines, counter.Words)
//	// stats[0].Raw, stats[0].Cleaned
package counter

import "fmt"

// Counter defines the interface for different text counting strategies.
type Counter interface {
	// Count returns the number of units in text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the different available counting strategies.
type CountingMethod int

const (
	// Lines counts non-blank lines
	Lines CountingMethod = iota
	// Words counts words using whitespace splitting
	Words
	// Characters counts Unicode characters including whitespace
	Characters
	// Tokens uses tiktoken with cl100k_base encoding
	Tokens
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Lines:
		return "lines"
	case Words:
		return "words"
	case Characters:
		return "characters"
	case Tokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// NewCounter creates a Counter for method.
// Returns an error if the counter cannot be initialized (e.g., tiktoken encoding fails).
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Lines:
		return LineCounter{}, nil
	case Words:
		return WordCounter{}, nil
	case Characters:
		return CharCounter{}, nil
	case Tokens:
		return NewTokenCounter()
	default:
		return nil, fmt.Errorf("unknown counting method %d", int(method))
	}
}

// Stats compares one measurement before and after cleanup.
type Stats struct {
	Method  CountingMethod `json:"-"`
	Unit    string         `json:"unit"`
	Raw     int            `json:"raw"`
	Cleaned int            `json:"cleaned"`
}

// Removed returns how many units cleanup dropped.
func (s Stats) Removed() int { return s.Raw - s.Cleaned }

// Compare measures raw and cleaned text with each method, in order.
func Compare(raw, cleaned string, methods ...CountingMethod) ([]Stats, error) {
	stats := make([]Stats, 0, len(methods))
	for _, m := range methods {
		c, err := NewCounter(m)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s counter: %w", m, err)
		}
		stats = append(stats, Stats{
			Method:  m,
			Unit:    m.String(),
			Raw:     c.Count(raw),
			Cleaned: c.Count(cleaned),
		})
	}
	return stats, nil
}
