package leaderboard

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]Entry
	order    []string
	sections map[string][]SectionScore
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:  map[string]Entry{},
		sections: map[string][]SectionScore{},
	}
}

// Upsert inserts or replaces an entry.
func (s *MemoryStore) Upsert(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.StudentNumber == "" {
		return ErrEmptyStudentNumber
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.StudentNumber]; !ok {
		s.order = append(s.order, entry.StudentNumber)
	}
	s.entries[entry.StudentNumber] = entry
	return nil
}

// Entries returns entries in insertion order.
func (s *MemoryStore) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, 0, len(s.order))
	for _, number := range s.order {
		out = append(out, s.entries[number])
	}
	return out, nil
}

// RecordSections replaces the stored section scores for a student.
func (s *MemoryStore) RecordSections(ctx context.Context, studentNumber string, scores []SectionScore) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[studentNumber] = append([]SectionScore(nil), scores...)
	return nil
}

// Sections returns the section scores recorded for a student.
func (s *MemoryStore) Sections(studentNumber string) []SectionScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SectionScore(nil), s.sections[studentNumber]...)
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
