package memory

import (
	"briefing-service/internal/core/domain"
	"context"
	"sync"
)

// BriefingStorage - хранилище статусов в памяти. Используется, когда внешнее хранилище не настроено.
type BriefingStorage struct {
	mu   sync.RWMutex
	data map[string]map[domain.ListingID]domain.BriefingStatus
}

func NewBriefingStorage() *BriefingStorage {
	return &BriefingStorage{data: make(map[string]map[domain.ListingID]domain.BriefingStatus)}
}

func (s *BriefingStorage) Load(_ context.Context, key string) (map[domain.ListingID]domain.BriefingStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyStatuses(s.data[key]), nil
}

func (s *BriefingStorage) Save(_ context.Context, key string, statuses map[domain.ListingID]domain.BriefingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copyStatuses(statuses)
	return nil
}

func copyStatuses(in map[domain.ListingID]domain.BriefingStatus) map[domain.ListingID]domain.BriefingStatus {
	out := make(map[domain.ListingID]domain.BriefingStatus, len(in))
	for id, st := range in {
		out[id] = st
	}
	return out
}
