package counter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "cl100k_base"

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
	encodingErr  error
)

// sharedEncoding loads the BPE ranks once per process; the first call may
// download them into tiktoken's cache.
func sharedEncoding() (*tiktoken.Tiktoken, error) {
	encodingOnce.Do(func() {
		slog.Debug("Initializing tiktoken encoding", "encoding", tokenEncoding)
		encoding, encodingErr = tiktoken.GetEncoding(tokenEncoding)
	})
	return encoding, encodingErr
}

// TokenCounter counts cl100k_base tokens.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.Mutex // the encoder caches internally
}

// NewTokenCounter creates a TokenCounter.
func NewTokenCounter() (*TokenCounter, error) {
	enc, err := sharedEncoding()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s encoding: %w", tokenEncoding, err)
	}
	return &TokenCounter{encoding: enc}, nil
}

// Count returns the number of tokens in text. Safe for concurrent use.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	// nil params mean no special tokens allowed/disallowed
	tokenCount := len(tc.encoding.Encode(text, nil, nil))

	slog.Debug("Token count calculated", "textLength", len(text), "tokenCount", tokenCount)
	return tokenCount
}

func (tc *TokenCounter) Name() string {
	return "tokens (" + tokenEncoding + ")"
}
