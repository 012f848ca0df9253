package usecases_port

import (
	"briefing-service/internal/core/domain"
	"context"
)

type GetBriefingListUseCasePort interface {
	Execute(ctx context.Context, sessionID string, mode domain.ViewMode) (domain.BriefingListView, error)
}

type EditBriefingFieldUseCasePort interface {
	// Возвращает все правки объекта после изменения
	Execute(ctx context.Context, sessionID string, listingID domain.ListingID, field, value string) (map[string]string, error)
}
