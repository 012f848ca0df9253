package briefing

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
	"fmt"
)

// Store управляет статусами брифинга активного клиента.
// Состояние в памяти главнее хранилища: ошибки записи только логируются.
type Store struct {
	storage port.BriefingStoragePort
	metrics port.MetricsPort
	state   *domain.BriefingState
}

func NewStore(storage port.BriefingStoragePort, metrics port.MetricsPort, state *domain.BriefingState) *Store {
	if state.Statuses == nil {
		state.Statuses = make(map[domain.ListingID]domain.BriefingStatus)
	}
	return &Store{
		storage: storage,
		metrics: metrics,
		state:   state,
	}
}

// Load заменяет состояние в памяти картой клиента из хранилища.
func (s *Store) Load(ctx context.Context, customerID string) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "BriefingStore",
		"method":      "Load",
		"customer_id": customerID,
	})

	s.state.CustomerID = customerID
	s.state.Statuses = make(map[domain.ListingID]domain.BriefingStatus)
	if customerID == "" {
		return
	}

	stored, err := s.storage.Load(ctx, domain.BriefingStorageKey(customerID))
	if err != nil {
		logger.Error("Failed to load briefing statuses, starting with empty map", err, nil)
		s.metrics.StorageFailure("load")
		return
	}

	dropped := 0
	for id, status := range stored {
		if status == domain.BriefingNormal || !status.Valid() {
			dropped++
			continue
		}
		s.state.Statuses[id] = status
	}
	if dropped > 0 {
		logger.Warn("Dropped stored statuses that are not allowed in the map", port.Fields{"dropped": dropped})
	}
	logger.Debug("Briefing statuses loaded", port.Fields{"count": len(s.state.Statuses)})
}

func (s *Store) CustomerID() string {
	return s.state.CustomerID
}

func (s *Store) Get(id domain.ListingID) domain.BriefingStatus {
	return s.state.Status(id)
}

// Set меняет статус и возвращает предыдущий. normal удаляет запись.
// Карта сохраняется целиком и только при выбранном клиенте.
func (s *Store) Set(ctx context.Context, id domain.ListingID, status domain.BriefingStatus) (domain.BriefingStatus, error) {
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidBriefingStatus, status)
	}

	previous := s.Get(id)
	if status == domain.BriefingNormal {
		delete(s.state.Statuses, id)
	} else {
		s.state.Statuses[id] = status
	}

	if !s.state.Active() {
		return previous, nil
	}
	s.persist(ctx)
	return previous, nil
}

// Cycle переключает статус на следующий по кругу.
func (s *Store) Cycle(ctx context.Context, id domain.ListingID) (previous, next domain.BriefingStatus, err error) {
	next = s.Get(id).Next()
	previous, err = s.Set(ctx, id, next)
	return previous, next, err
}

// Snapshot возвращает копию карты статусов.
func (s *Store) Snapshot() map[domain.ListingID]domain.BriefingStatus {
	out := make(map[domain.ListingID]domain.BriefingStatus, len(s.state.Statuses))
	for id, st := range s.state.Statuses {
		out[id] = st
	}
	return out
}

func (s *Store) persist(ctx context.Context) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "BriefingStore",
		"method":      "persist",
		"customer_id": s.state.CustomerID,
	})

	if err := s.storage.Save(ctx, domain.BriefingStorageKey(s.state.CustomerID), s.Snapshot()); err != nil {
		logger.Error("Failed to save briefing statuses, keeping in-memory state", err, nil)
		s.metrics.StorageFailure("save")
	}
}
