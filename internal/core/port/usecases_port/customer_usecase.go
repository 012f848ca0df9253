package usecases_port

import (
	"briefing-service/internal/core/domain"
	"context"
)

type SelectCustomerUseCasePort interface {
	Execute(ctx context.Context, sessionID, customerID string) (domain.SessionSnapshot, error)
}

type ClearCustomerUseCasePort interface {
	Execute(ctx context.Context, sessionID string) (domain.SessionSnapshot, error)
}
