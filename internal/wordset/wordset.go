// Package wordset provides an insertion-ordered set of words keyed by their
// normalized form. Iteration follows first insertion, which keeps suggestion
// tie-breaking reproducible.
package wordset

// Entry is a word in the set.
type Entry struct {
	Key     string // normalized comparison key
	Surface string // form shown to the user
}

// Set is an insertion-ordered set of entries with unique keys.
// A Set is not safe for concurrent mutation; once built it may be read concurrently.
type Set struct {
	entries []Entry
	index   map[string]int
}

// New creates an empty Set with room for capacity entries.
func New(capacity int) *Set {
	return &Set{
		entries: make([]Entry, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

// Add inserts an entry unless its key is already present.
// It reports whether the entry was inserted.
func (s *Set) Add(key, surface string) bool {
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, Entry{Key: key, Surface: surface})
	return true
}

// Contains reports whether key is in the set.
func (s *Set) Contains(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[key]
	return ok
}

// Get returns the entry stored under key.
func (s *Set) Get(key string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	i, ok := s.index[key]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns the entries in insertion order. The slice must not be modified.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Keys returns the keys in insertion order.
func (s *Set) Keys() []string {
	keys := make([]string, 0, s.Len())
	for _, e := range s.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	c := New(s.Len())
	for _, e := range s.Entries() {
		c.Add(e.Key, e.Surface)
	}
	return c
}
