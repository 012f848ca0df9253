package port

import (
	"briefing-service/internal/core/domain"
	"context"
)

// ListingSourcePort - источник объявлений (бэкенд).
// Для роли user бэкенд сам возвращает только разрешенные объявления.
type ListingSourcePort interface {
	FetchListings(ctx context.Context, userID string) ([]domain.Listing, error)
}

// CustomerSourcePort возвращает запись клиента вместе с сохраненным фильтром.
type CustomerSourcePort interface {
	GetCustomer(ctx context.Context, userID, customerID string) (*domain.Customer, error)
}
