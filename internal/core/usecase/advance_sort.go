package usecase

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/pipeline"
	"briefing-service/internal/core/port"
	"briefing-service/internal/core/sorting"
	"context"
)

type AdvanceSortUseCase struct {
	repo     port.SessionRepositoryPort
	notifier port.ViewNotifierPort
	metrics  port.MetricsPort
}

func NewAdvanceSortUseCase(repo port.SessionRepositoryPort, notifier port.ViewNotifierPort, metrics port.MetricsPort) *AdvanceSortUseCase {
	return &AdvanceSortUseCase{repo: repo, notifier: notifier, metrics: metrics}
}

func (uc *AdvanceSortUseCase) Execute(ctx context.Context, sessionID string, family domain.SortFamily) (domain.SessionSnapshot, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "AdvanceSort",
		"session_id": sessionID,
		"family":     family,
	})

	ucLogger.Info("Use case started", nil)

	var snapshot domain.SessionSnapshot
	err := updateOwned(ctx, uc.repo, sessionID, func(sess *domain.Session) error {
		mode, err := sorting.Advance(sess.SortCycles, family)
		if err != nil {
			return err
		}
		sess.SortMode = mode
		// циклы остальных кнопок не сбрасываются
		runPipeline(ctx, sess, pipeline.Compose, viewComposed, uc.notifier, uc.metrics)
		snapshot = sess.Snapshot()
		return nil
	})
	if err != nil {
		ucLogger.Warn("Sort was not applied", port.Fields{"error": err.Error()})
		return domain.SessionSnapshot{}, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"sort_mode": snapshot.SortMode})
	return snapshot, nil
}
