package explore

import (
	"strings"
	"sync"
)

// MaxRecentSearches bounds the recent-query list.
const MaxRecentSearches = 5

// RecentStore persists the recent-search list. Implementations store what
// they are given; ordering, de-duplication and the length cap are the
// Navigator's job. The datasource package provides a SQLite-backed
// implementation and MemoryRecentStore covers tests and robot runs.
type RecentStore interface {
	Get() ([]string, error)
	Put(queries []string) error
}

// pushRecent returns the list with q at the front, earlier occurrences of
// the same trimmed query removed, capped at max entries.
func pushRecent(list []string, q string, max int) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return list
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, q)
	for _, prev := range list {
		if strings.TrimSpace(prev) == q {
			continue
		}
		out = append(out, prev)
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// MemoryRecentStore keeps the recent-search list in process memory.
type MemoryRecentStore struct {
	mu      sync.Mutex
	queries []string
}

func NewMemoryRecentStore(seed ...string) *MemoryRecentStore {
	s := &MemoryRecentStore{}
	if len(seed) > 0 {
		s.queries = append([]string(nil), seed...)
	}
	return s
}

func (s *MemoryRecentStore) Get() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return nil, nil
	}
	return append([]string(nil), s.queries...), nil
}

func (s *MemoryRecentStore) Put(queries []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries[:0], queries...)
	return nil
}
