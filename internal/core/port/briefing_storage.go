package port

import (
	"briefing-service/internal/core/domain"
	"context"
)

// BriefingStoragePort - хранилище карт статусов брифинга.
// Load возвращает пустую карту без ошибки, если по ключу ничего нет.
type BriefingStoragePort interface {
	Load(ctx context.Context, key string) (map[domain.ListingID]domain.BriefingStatus, error)
	Save(ctx context.Context, key string, statuses map[domain.ListingID]domain.BriefingStatus) error
}
