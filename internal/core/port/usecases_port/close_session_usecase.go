package usecases_port

import "context"

type CloseSessionUseCasePort interface {
	Execute(ctx context.Context, sessionID string) error
}
