package history

import (
	"sync"
	"time"

	"github.com/dmitrymomot/promptmix/pkg/sampler"
)

// Record is one successful generation. It is immutable once stored.
type Record struct {
	Sequence  int               `json:"sequence"`
	Selection sampler.Selection `json:"selection"`
	Summary   string            `json:"summary"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"created_at"`
}

// Entry is the exported form of a record.
type Entry struct {
	Summary    string `json:"summary"`
	FullPrompt string `json:"full_prompt"`
}

// Store is an append-only, newest-first record list. It is safe for
// concurrent use, though a session normally serializes access itself.
type Store struct {
	mu      sync.RWMutex
	records []Record // oldest first; reversed on read
	used    sampler.Set
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{used: sampler.NewSet()}
}

// NextSequence is the sequence number the next appended record must carry.
func (s *Store) NextSequence() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records) + 1
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Append stores rec as the newest record. The record's sequence must equal
// NextSequence and its selection must not be in use.
func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Sequence != len(s.records)+1 {
		return ErrSequenceMismatch
	}
	if s.used.Contains(rec.Selection) {
		return ErrDuplicateSelection
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.Selection = rec.Selection.Clone()
	s.records = append(s.records, rec)
	s.used.Add(rec.Selection)
	return nil
}

// Used returns a snapshot of the selections currently stored.
func (s *Store) Used() sampler.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(sampler.Set, len(s.used))
	for k := range s.used {
		out[k] = struct{}{}
	}
	return out
}

// Contains reports whether sel is already stored.
func (s *Store) Contains(sel sampler.Selection) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used.Contains(sel)
}

// Records returns all records, newest first.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, s.records[i])
	}
	return out
}

// Latest returns the newest record.
func (s *Store) Latest() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// FindBySummary returns the newest record whose summary matches exactly.
func (s *Store) FindBySummary(summary string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].Summary == summary {
			return s.records[i], nil
		}
	}
	return Record{}, ErrNotFound
}

// Export returns summary and text pairs, newest first.
func (s *Store) Export() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, Entry{Summary: s.records[i].Summary, FullPrompt: s.records[i].Text})
	}
	return out
}

// Clear removes every record and resets the sequence.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.used = sampler.NewSet()
}
