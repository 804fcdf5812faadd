package store

import (
	"context"
	"sync"

	"appr/internal/audit"
	"appr/pkg/platform/sentinel"
)

// InMemoryStore keeps records in process. Suitable for tests and single-node runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]audit.Record
	order   []string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]audit.Record)}
}

func (s *InMemoryStore) Append(_ context.Context, rec audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.RequestID]; exists {
		return nil
	}
	s.records[rec.RequestID] = rec
	s.order = append(s.order, rec.RequestID)
	return nil
}

func (s *InMemoryStore) FindByRequestID(_ context.Context, requestID string) (*audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[requestID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &rec, nil
}

func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.order) {
		limit = len(s.order)
	}
	out := make([]audit.Record, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[s.order[i]])
	}
	return out, nil
}

// Clear removes every record.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]audit.Record)
	s.order = nil
}
