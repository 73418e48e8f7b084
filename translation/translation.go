// Package translation implements the in-memory multilingual dictionary
// that every import/export run is built around.
//
// A Store maps localization keys to per-language translations. Keys keep
// their first-insertion order so that spreadsheet rows and regenerated
// resource files come out in a stable order run after run. The set of
// language codes observed across all rows is maintained alongside, so a
// caller never has to re-scan rows to learn which languages exist.
//
// A Store is built fresh for each run (from parsed resource files on
// import, from a fetched spreadsheet grid on export) and discarded after
// producing its output; it persists nothing itself.
package translation

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Get when the requested key was never
// inserted into the store.
var ErrKeyNotFound = errors.New("translation key not found")

// ---------------------------------------------------------------------------
// Row
// ---------------------------------------------------------------------------

// Row holds all known translations of a single localization key.
// A row may lack an entry for some languages; that is a missing
// translation, distinct from an empty-string one.
type Row struct {
	// Key is the localization key shared across all languages.
	Key string

	values map[string]string
}

// Value returns the translation for lang and whether one exists.
// An empty string with ok=true is a real (empty) translation.
func (r *Row) Value(lang string) (value string, ok bool) {
	value, ok = r.values[lang]
	return
}

// set inserts or replaces the translation for lang.
func (r *Row) set(lang, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	r.values[lang] = value
}

// ---------------------------------------------------------------------------
// Store
// ---------------------------------------------------------------------------

// Store is an insertion-ordered mapping from localization key to Row,
// plus the set of language codes seen across any row.
type Store struct {
	keys  []string
	rows  map[string]*Row
	langs map[string]struct{}
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		rows:  make(map[string]*Row),
		langs: make(map[string]struct{}),
	}
}

// Add inserts or updates the translation of key for lang. Inserting an
// existing key augments its row rather than creating a new one, so the
// key keeps its original position. The language is registered in the
// store's language set. Empty values are stored verbatim.
func (s *Store) Add(key, lang, value string) {
	s.langs[lang] = struct{}{}

	row, ok := s.rows[key]
	if !ok {
		row = &Row{Key: key}
		s.rows[key] = row
		s.keys = append(s.keys, key)
	}
	row.set(lang, value)
}

// AddLanguage registers a language code without attaching it to any row.
// Used when a spreadsheet declares a language column that has no values
// yet; the column must survive the round trip.
func (s *Store) AddLanguage(lang string) {
	s.langs[lang] = struct{}{}
}

// Get returns the translation of key for lang. ok reports whether a
// translation exists for that language; a missing translation is not
// the same as an empty one. ErrKeyNotFound is returned when the key
// itself was never inserted.
func (s *Store) Get(key, lang string) (value string, ok bool, err error) {
	row, found := s.rows[key]
	if !found {
		return "", false, fmt.Errorf("%q: %w", key, ErrKeyNotFound)
	}
	value, ok = row.Value(lang)
	return value, ok, nil
}

// Row returns the row for key, or nil if the key was never inserted.
func (s *Store) Row(key string) *Row {
	return s.rows[key]
}

// Keys returns all keys in first-insertion order. The returned slice is
// a copy; mutating it does not affect the store.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Languages returns the set of language codes seen across all rows, in
// unspecified order. Callers sort before relying on an ordering.
func (s *Store) Languages() []string {
	langs := make([]string, 0, len(s.langs))
	for lang := range s.langs {
		langs = append(langs, lang)
	}
	return langs
}

// Len returns the number of keys in the store.
func (s *Store) Len() int {
	return len(s.keys)
}
