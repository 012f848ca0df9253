package usecase

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/pipeline"
	"briefing-service/internal/core/port"
	"context"
)

type GetClusterSummaryUseCase struct {
	repo port.SessionRepositoryPort
}

func NewGetClusterSummaryUseCase(repo port.SessionRepositoryPort) *GetClusterSummaryUseCase {
	return &GetClusterSummaryUseCase{repo: repo}
}

func (uc *GetClusterSummaryUseCase) Execute(ctx context.Context, sessionID string, precision int) ([]domain.ClusterSummary, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetClusterSummary",
		"session_id": sessionID,
		"precision":  precision,
	})

	ucLogger.Info("Use case started", nil)

	var clusters []domain.ClusterSummary
	err := updateOwned(ctx, uc.repo, sessionID, func(sess *domain.Session) error {
		clusters = pipeline.Clusters(sess.View, &sess.Briefing, precision)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"clusters": len(clusters)})
	return clusters, nil
}
