package usecases_port

import (
	"briefing-service/internal/core/domain"
	"context"
)

type GetViewUseCasePort interface {
	// Возвращает страницу последнего построенного вида
	Execute(ctx context.Context, sessionID string, limit, offset int) (domain.ListingView, error)
}
