// Package dictionary loads and holds the immutable set of known-valid words.
//
// A Dictionary is built once from a newline-delimited word list and shared by
// reference across classification and suggestion calls. Entries are trimmed
// and lower-cased; blank lines are ignored and duplicates collapse. Membership
// is tested on normalized keys, so lookups are case- and diacritic-insensitive,
// while the lower-cased entry (accents kept) is what suggestions display.
//
// Usage Example:
//
//	dict, err := dictionary.LoadFile("pt-br.txt")
//	if err != nil {
//		return err
//	}
//	dict.Contains("Coração") // true if "coração" or "coracao" is listed
package dictionary

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/chriscorrea/ocrtidy/internal/normalize"
	"github.com/chriscorrea/ocrtidy/internal/wordset"
)

// maxLineBytes bounds a single word-list line
const maxLineBytes = 1024 * 1024

// ErrLoad is matched by every dictionary loading failure.
var ErrLoad = errors.New("dictionary load failed")

// LoadError reports that a word list could not be read.
type LoadError struct {
	Source string // file path or "reader"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dictionary %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLoad) true for any *LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// Dictionary is an insertion-ordered, read-only set of valid words.
type Dictionary struct {
	entries []wordset.Entry
	words   map[string]struct{} // lower-cased entries, for duplicate collapsing
	keys    map[string]struct{} // normalized keys, for membership
}

// New builds a Dictionary from words, applying the same rules as Load.
func New(words ...string) *Dictionary {
	d := empty(len(words))
	for _, w := range words {
		d.add(w)
	}
	return d
}

func empty(capacity int) *Dictionary {
	return &Dictionary{
		entries: make([]wordset.Entry, 0, capacity),
		words:   make(map[string]struct{}, capacity),
		keys:    make(map[string]struct{}, capacity),
	}
}

// add inserts one raw line; blank and duplicate lines are ignored.
func (d *Dictionary) add(line string) {
	word := strings.ToLower(strings.TrimSpace(line))
	if word == "" {
		return
	}
	if _, dup := d.words[word]; dup {
		return
	}
	key := normalize.Word(word)
	d.words[word] = struct{}{}
	d.keys[key] = struct{}{}
	d.entries = append(d.entries, wordset.Entry{Key: key, Surface: word})
}

// Load reads a newline-delimited word list from r.
func Load(r io.Reader) (*Dictionary, error) {
	return read(r, "reader")
}

// LoadFile reads a word list from path. The file is memory-mapped for the
// duration of the read; the mapping and the handle are released on return.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("is a directory")}
	}
	if info.Size() == 0 {
		// zero-length files cannot be mapped
		return read(bytes.NewReader(nil), path)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("mmap: %w", err)}
	}
	defer func() {
		if uerr := m.Unmap(); uerr != nil {
			slog.Debug("Failed to unmap dictionary", "path", path, "error", uerr)
		}
	}()

	return read(bytes.NewReader(m), path)
}

func read(r io.Reader, source string) (*Dictionary, error) {
	d := empty(0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		// Text copies the line, so the result never aliases a mapped region
		d.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	slog.Debug("Dictionary loaded", "source", source, "words", d.Len())
	return d, nil
}

// With returns a new Dictionary holding d's words followed by words.
// d itself is not modified.
func (d *Dictionary) With(words ...string) *Dictionary {
	c := empty(d.Len() + len(words))
	for _, e := range d.Entries() {
		c.add(e.Surface)
	}
	for _, w := range words {
		c.add(w)
	}
	return c
}

// Contains reports whether word matches an entry, ignoring case and diacritics.
func (d *Dictionary) Contains(word string) bool {
	if d == nil {
		return false
	}
	_, ok := d.keys[normalize.Word(word)]
	return ok
}

// Entries returns the dictionary words in load order. The slice must not be modified.
func (d *Dictionary) Entries() []wordset.Entry {
	if d == nil {
		return nil
	}
	return d.entries
}

// Words returns the lower-cased entries in load order.
func (d *Dictionary) Words() []string {
	words := make([]string, 0, d.Len())
	for _, e := range d.Entries() {
		words = append(words, e.Surface)
	}
	return words
}

// Len returns the number of distinct entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}
