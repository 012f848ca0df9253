package usecases_port

import (
	"briefing-service/internal/core/domain"
	"context"
)

type AdvanceSortUseCasePort interface {
	// family - кнопка сортировки или конкретный режим
	Execute(ctx context.Context, sessionID string, family domain.SortFamily) (domain.SessionSnapshot, error)
}
