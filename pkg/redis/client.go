package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Config хранит параметры подключения к Redis.
type Config struct {
	Addr     string // "localhost:6379"
	Password string
	DB       int
}

// NewClient создает клиент и проверяет соединение.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR configuration is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}
	return rdb, nil
}
