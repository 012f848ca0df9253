package port

import (
	"briefing-service/internal/core/domain"
	"context"
)

// SessionRepositoryPort хранит сессии. Все изменения одной сессии идут через
// Update и выполняются последовательно.
type SessionRepositoryPort interface {
	Create(ctx context.Context, session *domain.Session) error
	// Update вызывает fn под блокировкой сессии. Ошибка fn возвращается как есть.
	Update(ctx context.Context, sessionID string, fn func(*domain.Session) error) error
	Delete(ctx context.Context, sessionID string) error
	Count() int
}
