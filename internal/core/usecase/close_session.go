package usecase

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
)

type CloseSessionUseCase struct {
	repo    port.SessionRepositoryPort
	metrics port.MetricsPort
}

func NewCloseSessionUseCase(repo port.SessionRepositoryPort, metrics port.MetricsPort) *CloseSessionUseCase {
	return &CloseSessionUseCase{repo: repo, metrics: metrics}
}

func (uc *CloseSessionUseCase) Execute(ctx context.Context, sessionID string) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "CloseSession",
		"session_id": sessionID,
	})

	ucLogger.Info("Use case started", nil)

	// проверяем владельца до удаления
	if err := updateOwned(ctx, uc.repo, sessionID, func(*domain.Session) error { return nil }); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, sessionID); err != nil {
		ucLogger.Error("Failed to delete session", err, nil)
		return err
	}
	uc.metrics.SessionsActive(uc.repo.Count())

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
