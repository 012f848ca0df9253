package usecase

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/pipeline"
	"briefing-service/internal/core/port"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OpenSessionUseCase struct {
	repo     port.SessionRepositoryPort
	listings port.ListingSourcePort
	notifier port.ViewNotifierPort
	metrics  port.MetricsPort
}

func NewOpenSessionUseCase(
	repo port.SessionRepositoryPort,
	listings port.ListingSourcePort,
	notifier port.ViewNotifierPort,
	metrics port.MetricsPort,
) *OpenSessionUseCase {
	return &OpenSessionUseCase{
		repo:     repo,
		listings: listings,
		notifier: notifier,
		metrics:  metrics,
	}
}

func (uc *OpenSessionUseCase) Execute(ctx context.Context, userID string, role domain.ViewerRole) (domain.SessionSnapshot, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "OpenSession",
		"user_id":  userID,
		"role":     role,
	})

	ucLogger.Info("Use case started", nil)

	sess := domain.NewSession(uuid.NewString(), userID, role, time.Now())

	// Шаг 1: Загружаем рабочий набор
	fetchListings(ctx, uc.listings, uc.metrics, sess, ucLogger)

	// Шаг 2: Первый проход пайплайна
	runPipeline(ctx, sess, pipeline.Refresh, viewRefreshed, uc.notifier, uc.metrics)

	// Шаг 3: Регистрируем сессию
	if err := uc.repo.Create(ctx, sess); err != nil {
		ucLogger.Error("Failed to store session", err, nil)
		return domain.SessionSnapshot{}, fmt.Errorf("failed to create session: %w", err)
	}
	uc.metrics.SessionsActive(uc.repo.Count())

	ucLogger.Info("Use case finished successfully", port.Fields{
		"session_id": sess.ID,
		"loaded":     len(sess.Listings),
	})
	return sess.Snapshot(), nil
}
