package reflexion

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Category classifies past errors for lookup.
type Category string

// Error categories.
const (
	CategoryConfiguration Category = "configuration"
	CategoryDependency    Category = "dependency"
	CategoryLogic         Category = "logic"
	CategoryIntegration   Category = "integration"
	CategorySecurity      Category = "security"
)

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryConfiguration, CategoryDependency, CategoryLogic, CategoryIntegration, CategorySecurity:
		return Category(s), true
	}
	return "", false
}

// PastError is a durable error/solution record. Records are append-only:
// they are never mutated or deleted once stored.
type PastError struct {
	ErrorMessage string
	Category     Category
	RootCause    string
	Solution     string
	Timestamp    time.Time
	Metadata     map[string]string
}

// Store is the narrow lookup/append contract the engine needs from a
// learning backend. Search matches the query case-insensitively as a
// substring of stored error messages; exactCategory additionally requires
// category equality. Match order follows store iteration order, so the
// first match may change across backends.
type Store interface {
	Search(ctx context.Context, query string, category Category, exactCategory bool) ([]PastError, error)
	Append(ctx context.Context, record PastError) error
}

// MemoryStore is the default in-process Store. Access is mutex guarded so
// one engine instance can be shared across goroutines.
type MemoryStore struct {
	mu      sync.Mutex
	records []PastError
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Search implements Store.
func (s *MemoryStore) Search(_ context.Context, query string, category Category, exactCategory bool) ([]PastError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(query)
	var matches []PastError
	for _, rec := range s.records {
		if !strings.Contains(strings.ToLower(rec.ErrorMessage), needle) {
			continue
		}
		if exactCategory && rec.Category != category {
			continue
		}
		matches = append(matches, rec)
	}
	return matches, nil
}

// Append implements Store.
func (s *MemoryStore) Append(_ context.Context, record PastError) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
