package usecases_port

import (
	"briefing-service/internal/core/domain"
	"context"
)

type OpenSessionUseCasePort interface {
	// Загружает объявления пользователя и строит первый вид списка
	Execute(ctx context.Context, userID string, role domain.ViewerRole) (domain.SessionSnapshot, error)
}
