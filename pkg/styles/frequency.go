package styles

import (
	"encoding/json"
	"sort"
)

// Entry is a counted token.
type Entry struct {
	Token string `json:"token" yaml:"token"`
	Count int    `json:"count" yaml:"count"`
}

// Frequency counts tokens while remembering first-seen order, so that
// equal counts sort deterministically by order of appearance.
type Frequency struct {
	counts map[string]int
	order  []string
}

// NewFrequency returns an empty table.
func NewFrequency() *Frequency {
	return &Frequency{counts: make(map[string]int)}
}

// Add records one occurrence of token.
func (f *Frequency) Add(token string) {
	if _, seen := f.counts[token]; !seen {
		f.order = append(f.order, token)
	}
	f.counts[token]++
}

// Count returns the occurrence count for token.
func (f *Frequency) Count(token string) int {
	return f.counts[token]
}

// Len returns the number of unique tokens.
func (f *Frequency) Len() int {
	return len(f.order)
}

// Top returns the n most frequent entries, descending by count with ties
// broken by first-seen order. n <= 0 returns all entries.
func (f *Frequency) Top(n int) []Entry {
	entries := make([]Entry, 0, len(f.order))
	for _, token := range f.order {
		entries = append(entries, Entry{Token: token, Count: f.counts[token]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// All returns every entry, most frequent first.
func (f *Frequency) All() []Entry {
	return f.Top(0)
}

// MarshalJSON serializes the table as its entry list, most frequent first.
func (f *Frequency) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.All())
}

// MarshalYAML serializes the table as its entry list, most frequent first.
func (f *Frequency) MarshalYAML() (any, error) {
	return f.All(), nil
}
