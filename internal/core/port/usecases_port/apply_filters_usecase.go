package usecases_port

import (
	"briefing-service/internal/core/domain"
	"context"
)

type ApplyFiltersUseCasePort interface {
	Execute(ctx context.Context, sessionID string, update domain.FilterUpdate) (domain.SessionSnapshot, error)
}
