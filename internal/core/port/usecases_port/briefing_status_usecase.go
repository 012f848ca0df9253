package usecases_port

import (
	"briefing-service/internal/core/domain"
	"context"
)

type SetBriefingStatusUseCasePort interface {
	Execute(ctx context.Context, sessionID string, listingID domain.ListingID, status domain.BriefingStatus) (domain.BriefingStatusChanged, domain.SessionSnapshot, error)
}

type CycleBriefingStatusUseCasePort interface {
	Execute(ctx context.Context, sessionID string, listingID domain.ListingID) (domain.BriefingStatusChanged, domain.SessionSnapshot, error)
}
