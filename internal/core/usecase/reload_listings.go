package usecase

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/pipeline"
	"briefing-service/internal/core/port"
	"context"
)

type ReloadListingsUseCase struct {
	repo     port.SessionRepositoryPort
	listings port.ListingSourcePort
	notifier port.ViewNotifierPort
	metrics  port.MetricsPort
}

func NewReloadListingsUseCase(
	repo port.SessionRepositoryPort,
	listings port.ListingSourcePort,
	notifier port.ViewNotifierPort,
	metrics port.MetricsPort,
) *ReloadListingsUseCase {
	return &ReloadListingsUseCase{
		repo:     repo,
		listings: listings,
		notifier: notifier,
		metrics:  metrics,
	}
}

func (uc *ReloadListingsUseCase) Execute(ctx context.Context, sessionID string) (domain.SessionSnapshot, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ReloadListings",
		"session_id": sessionID,
	})

	ucLogger.Info("Use case started", nil)

	var snapshot domain.SessionSnapshot
	err := updateOwned(ctx, uc.repo, sessionID, func(sess *domain.Session) error {
		fetchListings(ctx, uc.listings, uc.metrics, sess, ucLogger)
		runPipeline(ctx, sess, pipeline.Refresh, viewRefreshed, uc.notifier, uc.metrics)
		snapshot = sess.Snapshot()
		return nil
	})
	if err != nil {
		ucLogger.Warn("Session is not available", port.Fields{"error": err.Error()})
		return domain.SessionSnapshot{}, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"loaded": snapshot.View.Loaded})
	return snapshot, nil
}
