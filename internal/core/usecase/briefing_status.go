package usecase

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/briefing"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/pipeline"
	"briefing-service/internal/core/port"
	"context"
	"fmt"
	"time"
)

// briefingDeps - общие зависимости установки и переключения статуса.
type briefingDeps struct {
	repo     port.SessionRepositoryPort
	storage  port.BriefingStoragePort
	events   port.BriefingEventsPort
	notifier port.ViewNotifierPort
	metrics  port.MetricsPort
}

type changeFunc func(ctx context.Context, store *briefing.Store, id domain.ListingID) (previous, next domain.BriefingStatus, err error)

func (d briefingDeps) change(
	ctx context.Context,
	useCase, sessionID string,
	listingID domain.ListingID,
	apply changeFunc,
) (domain.BriefingStatusChanged, domain.SessionSnapshot, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   useCase,
		"session_id": sessionID,
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	var (
		event    domain.BriefingStatusChanged
		snapshot domain.SessionSnapshot
	)
	err := updateOwned(ctx, d.repo, sessionID, func(sess *domain.Session) error {
		if _, ok := sess.Listing(listingID); !ok {
			return fmt.Errorf("%w: %s", domain.ErrListingNotFound, listingID)
		}

		// Шаг 1: Меняем статус (сохранение внутри стора)
		store := briefing.NewStore(d.storage, d.metrics, &sess.Briefing)
		previous, next, err := apply(ctx, store, listingID)
		if err != nil {
			return err
		}

		event = domain.BriefingStatusChanged{
			CustomerID: sess.CustomerID,
			ListingID:  listingID,
			Previous:   previous,
			Status:     next,
			UserID:     sess.UserID,
			ChangedAt:  time.Now().UTC(),
		}
		d.metrics.BriefingStatusChanged(string(next))

		// Шаг 2: Новый вид без сброса циклов сортировки
		runPipeline(ctx, sess, pipeline.Compose, viewComposed, d.notifier, d.metrics)
		snapshot = sess.Snapshot()
		return nil
	})
	if err != nil {
		return domain.BriefingStatusChanged{}, domain.SessionSnapshot{}, err
	}

	// Шаг 3: Событие публикуется только для выбранного клиента и только при реальном изменении
	if event.CustomerID != "" && event.Previous != event.Status {
		if err := d.events.PublishStatusChanged(ctx, event); err != nil {
			ucLogger.Error("Failed to publish briefing status event", err, nil)
			d.metrics.PublishFailure("briefing.status.changed")
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"previous": event.Previous,
		"status":   event.Status,
	})
	return event, snapshot, nil
}

type SetBriefingStatusUseCase struct {
	briefingDeps
}

func NewSetBriefingStatusUseCase(
	repo port.SessionRepositoryPort,
	storage port.BriefingStoragePort,
	events port.BriefingEventsPort,
	notifier port.ViewNotifierPort,
	metrics port.MetricsPort,
) *SetBriefingStatusUseCase {
	return &SetBriefingStatusUseCase{briefingDeps{repo, storage, events, notifier, metrics}}
}

func (uc *SetBriefingStatusUseCase) Execute(ctx context.Context, sessionID string, listingID domain.ListingID, status domain.BriefingStatus) (domain.BriefingStatusChanged, domain.SessionSnapshot, error) {
	if !status.Valid() {
		return domain.BriefingStatusChanged{}, domain.SessionSnapshot{}, fmt.Errorf("%w: %q", domain.ErrInvalidBriefingStatus, status)
	}
	return uc.change(ctx, "SetBriefingStatus", sessionID, listingID,
		func(ctx context.Context, store *briefing.Store, id domain.ListingID) (domain.BriefingStatus, domain.BriefingStatus, error) {
			previous, err := store.Set(ctx, id, status)
			return previous, status, err
		})
}

type CycleBriefingStatusUseCase struct {
	briefingDeps
}

func NewCycleBriefingStatusUseCase(
	repo port.SessionRepositoryPort,
	storage port.BriefingStoragePort,
	events port.BriefingEventsPort,
	notifier port.ViewNotifierPort,
	metrics port.MetricsPort,
) *CycleBriefingStatusUseCase {
	return &CycleBriefingStatusUseCase{briefingDeps{repo, storage, events, notifier, metrics}}
}

func (uc *CycleBriefingStatusUseCase) Execute(ctx context.Context, sessionID string, listingID domain.ListingID) (domain.BriefingStatusChanged, domain.SessionSnapshot, error) {
	return uc.change(ctx, "CycleBriefingStatus", sessionID, listingID,
		func(ctx context.Context, store *briefing.Store, id domain.ListingID) (domain.BriefingStatus, domain.BriefingStatus, error) {
			return store.Cycle(ctx, id)
		})
}
