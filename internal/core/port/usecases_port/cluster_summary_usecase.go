package usecases_port

import (
	"briefing-service/internal/core/domain"
	"context"
)

type GetClusterSummaryUseCasePort interface {
	Execute(ctx context.Context, sessionID string, precision int) ([]domain.ClusterSummary, error)
}
