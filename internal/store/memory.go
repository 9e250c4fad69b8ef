package store

import (
	"context"
	"sort"
	"sync"

	"github.com/kmnair/farmlog/internal/records"
)

// MemoryHarvestStore is a concurrency-safe in-memory implementation of
// records.HarvestStore. It backs tests and runs without MongoDB.
type MemoryHarvestStore struct {
	mu   sync.RWMutex
	byID map[string]records.HarvestRecord
}

// NewMemoryHarvestStore creates an empty in-memory harvest store.
func NewMemoryHarvestStore() *MemoryHarvestStore {
	return &MemoryHarvestStore{
		byID: make(map[string]records.HarvestRecord),
	}
}

func (s *MemoryHarvestStore) List(ctx context.Context) ([]records.HarvestRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]records.HarvestRecord, 0, len(s.byID))
	for _, rec := range s.byID {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Date.After(recs[j].Date)
	})
	return recs, nil
}

func (s *MemoryHarvestStore) Create(ctx context.Context, rec records.HarvestRecord) (records.HarvestRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[rec.ID]; exists {
		return records.HarvestRecord{}, records.ErrDuplicateID
	}
	s.byID[rec.ID] = rec
	return rec, nil
}

// MemoryRainfallStore is a concurrency-safe in-memory implementation
// of records.RainfallStore.
type MemoryRainfallStore struct {
	mu   sync.RWMutex
	byID map[string]records.RainfallRecord
}

// NewMemoryRainfallStore creates an empty in-memory rainfall store.
func NewMemoryRainfallStore() *MemoryRainfallStore {
	return &MemoryRainfallStore{
		byID: make(map[string]records.RainfallRecord),
	}
}

func (s *MemoryRainfallStore) List(ctx context.Context) ([]records.RainfallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]records.RainfallRecord, 0, len(s.byID))
	for _, rec := range s.byID {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Date.After(recs[j].Date)
	})
	return recs, nil
}

func (s *MemoryRainfallStore) Create(ctx context.Context, rec records.RainfallRecord) (records.RainfallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[rec.ID]; exists {
		return records.RainfallRecord{}, records.ErrDuplicateID
	}
	s.byID[rec.ID] = rec
	return rec, nil
}

// MemoryIntervalStore is a concurrency-safe in-memory implementation
// of records.IntervalStore. Intervals carry no date, so listing
// preserves insertion order.
type MemoryIntervalStore struct {
	mu    sync.RWMutex
	byID  map[string]records.CustomInterval
	order []string
}

// NewMemoryIntervalStore creates an empty in-memory interval store.
func NewMemoryIntervalStore() *MemoryIntervalStore {
	return &MemoryIntervalStore{
		byID: make(map[string]records.CustomInterval),
	}
}

func (s *MemoryIntervalStore) List(ctx context.Context) ([]records.CustomInterval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]records.CustomInterval, 0, len(s.order))
	for _, id := range s.order {
		recs = append(recs, s.byID[id])
	}
	return recs, nil
}

func (s *MemoryIntervalStore) Create(ctx context.Context, rec records.CustomInterval) (records.CustomInterval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[rec.ID]; exists {
		return records.CustomInterval{}, records.ErrDuplicateID
	}
	s.byID[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return rec, nil
}
