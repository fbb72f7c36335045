package history

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for single-process use and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(ctx context.Context, rec Record, overwrite bool) (Record, error) {
	rec, err := normalize(rec)
	if err != nil {
		return rec, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if overwrite {
		kept := s.records[:0]
		for _, existing := range s.records {
			if existing.CustomerName == rec.CustomerName && existing.Address == rec.Address {
				continue
			}
			kept = append(kept, existing)
		}
		s.records = kept
	}
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *MemoryStore) LoadByCustomer(ctx context.Context, name string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest Record
	found := false
	for _, rec := range s.records {
		if rec.CustomerName != name {
			continue
		}
		if !found || rec.Timestamp.After(latest.Timestamp) {
			latest = rec
			found = true
		}
	}
	return latest, found, nil
}

func (s *MemoryStore) Customers(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinctNames(s.records, ""), nil
}

func (s *MemoryStore) SearchByKeyword(ctx context.Context, keyword string) ([]string, error) {
	if keyword == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinctNames(s.records, keyword), nil
}

func (s *MemoryStore) CleanupOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	removed := 0
	for _, rec := range s.records {
		if rec.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return removed, nil
}

// distinctNames returns the sorted distinct customer names, optionally
// filtered to those containing the keyword.
func distinctNames(records []Record, keyword string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		if keyword != "" && !strings.Contains(rec.CustomerName, keyword) {
			continue
		}
		if seen[rec.CustomerName] {
			continue
		}
		seen[rec.CustomerName] = true
		names = append(names, rec.CustomerName)
	}
	sort.Strings(names)
	return names
}
