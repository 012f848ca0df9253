package usecase

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/pipeline"
	"briefing-service/internal/core/port"
	"context"
	"fmt"
)

type ApplyFiltersUseCase struct {
	repo     port.SessionRepositoryPort
	notifier port.ViewNotifierPort
	metrics  port.MetricsPort
}

func NewApplyFiltersUseCase(repo port.SessionRepositoryPort, notifier port.ViewNotifierPort, metrics port.MetricsPort) *ApplyFiltersUseCase {
	return &ApplyFiltersUseCase{repo: repo, notifier: notifier, metrics: metrics}
}

// Execute заменяет значения верхней панели целиком и пересчитывает вид.
func (uc *ApplyFiltersUseCase) Execute(ctx context.Context, sessionID string, update domain.FilterUpdate) (domain.SessionSnapshot, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ApplyFilters",
		"session_id": sessionID,
	})

	ucLogger.Info("Use case started", port.Fields{"filters": len(update.Top)})

	// Шаг 1: Проверяем ключи до того, как трогать сессию
	for k := range update.Top {
		if !domain.IsFilterKey(k) {
			return domain.SessionSnapshot{}, fmt.Errorf("%w: %s", domain.ErrInvalidFilterKey, k)
		}
	}
	for st := range update.Checks {
		if !st.Valid() {
			return domain.SessionSnapshot{}, fmt.Errorf("%w: %s", domain.ErrInvalidBriefingStatus, st)
		}
	}

	// Шаг 2: Обновляем состояние и запускаем полный проход
	var snapshot domain.SessionSnapshot
	err := updateOwned(ctx, uc.repo, sessionID, func(sess *domain.Session) error {
		sess.TopFilters = update.Top.Clone()
		if update.Checks != nil {
			checks := make(domain.BriefingChecks, len(domain.BriefingCycleOrder))
			for _, st := range domain.BriefingCycleOrder {
				checks[st] = update.Checks[st]
			}
			sess.BriefingChecks = checks
		}
		runPipeline(ctx, sess, pipeline.Refresh, viewRefreshed, uc.notifier, uc.metrics)
		snapshot = sess.Snapshot()
		return nil
	})
	if err != nil {
		return domain.SessionSnapshot{}, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total":    snapshot.View.Total,
		"filtered": snapshot.View.Filtered,
	})
	return snapshot, nil
}
