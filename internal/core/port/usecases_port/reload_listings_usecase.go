package usecases_port

import (
	"briefing-service/internal/core/domain"
	"context"
)

type ReloadListingsUseCasePort interface {
	Execute(ctx context.Context, sessionID string) (domain.SessionSnapshot, error)
}
