// Package customdict keeps user-added valid words in a Redis set.
// The words are merged into the dictionary when a run starts.
package customdict

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis set that holds custom words.
const DefaultKey = "ocrtidy:custom_words"

// Options configure the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string // DefaultKey when empty
}

// Store wraps a Redis client to store custom dictionary words.
type Store struct {
	client *redis.Client
	key    string
}

// New creates a Store on an existing client.
func New(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

// Open connects to Redis and checks the connection.
func Open(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis at %q: %w", opts.Addr, err)
	}
	return New(client, opts.Key), nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Add inserts words, lower-cased and trimmed. Blank words are skipped.
func (s *Store) Add(ctx context.Context, words ...string) error {
	members := clean(words)
	if len(members) == 0 {
		return nil
	}
	if err := s.client.SAdd(ctx, s.key, members...).Err(); err != nil {
		return fmt.Errorf("failed to add custom words: %w", err)
	}
	return nil
}

// Remove deletes words from the set.
func (s *Store) Remove(ctx context.Context, words ...string) error {
	members := clean(words)
	if len(members) == 0 {
		return nil
	}
	if err := s.client.SRem(ctx, s.key, members...).Err(); err != nil {
		return fmt.Errorf("failed to remove custom words: %w", err)
	}
	return nil
}

// All returns the stored words sorted, so merges are reproducible.
func (s *Store) All(ctx context.Context) ([]string, error) {
	words, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list custom words: %w", err)
	}
	sort.Strings(words)
	return words, nil
}

func clean(words []string) []any {
	members := make([]any, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			members = append(members, w)
		}
	}
	return members
}
