package cache

import (
	"strings"
	"sync"
	"time"
)

// Freshness windows. The store never evicts on its own; readers compare
// Entry.StoredAt against the window that fits their data.
const (
	TTLProducts   = 5 * time.Minute
	TTLCategories = 30 * time.Minute
)

// Key prefixes used by writers when invalidating.
const (
	PrefixProducts   = "products:"
	PrefixCategories = "categories:"
)

type Entry struct {
	Value    any
	StoredAt time.Time
}

// Fresh reports whether the entry was stored within the given window.
func (e Entry) Fresh(ttl time.Duration, now time.Time) bool {
	return now.Sub(e.StoredAt) < ttl
}

type Store interface {
	Get(key string) (Entry, bool)
	Set(key string, value any)
	Delete(key string)
	ClearPrefix(prefix string) int
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

func NewMemoryStore() Store {
	return &memoryStore{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

func (s *memoryStore) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

func (s *memoryStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Entry{Value: value, StoredAt: s.now()}
}

func (s *memoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *memoryStore) ClearPrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cleared := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			cleared++
		}
	}
	return cleared
}
