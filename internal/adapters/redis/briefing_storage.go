package redis_adapter

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// kvClient - подмножество redis.Cmdable, которым пользуется адаптер.
type kvClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// BriefingStorage хранит карту статусов клиента одной JSON-строкой.
type BriefingStorage struct {
	client kvClient
	prefix string
	ttl    time.Duration
}

// NewBriefingStorage - ttl 0 означает хранение без срока.
func NewBriefingStorage(client kvClient, prefix string, ttl time.Duration) (*BriefingStorage, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	return &BriefingStorage{client: client, prefix: prefix, ttl: ttl}, nil
}

func (s *BriefingStorage) Load(ctx context.Context, key string) (map[domain.ListingID]domain.BriefingStatus, error) {
	storageLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "RedisBriefingStorage",
		"method":    "Load",
		"key":       key,
	})

	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		storageLogger.Debug("No stored statuses for key", nil)
		return map[domain.ListingID]domain.BriefingStatus{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read briefing statuses: %w", err)
	}

	statuses := make(map[domain.ListingID]domain.BriefingStatus)
	if err := sonic.Unmarshal(raw, &statuses); err != nil {
		return nil, fmt.Errorf("failed to decode briefing statuses: %w", err)
	}
	storageLogger.Debug("Statuses loaded", port.Fields{"count": len(statuses)})
	return statuses, nil
}

func (s *BriefingStorage) Save(ctx context.Context, key string, statuses map[domain.ListingID]domain.BriefingStatus) error {
	if statuses == nil {
		statuses = map[domain.ListingID]domain.BriefingStatus{}
	}
	body, err := sonic.Marshal(statuses)
	if err != nil {
		return fmt.Errorf("failed to encode briefing statuses: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+key, body, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write briefing statuses: %w", err)
	}
	return nil
}
