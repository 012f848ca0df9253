package postgres_adapter

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const createBriefingTable = `
	CREATE TABLE IF NOT EXISTS briefing_states (
		storage_key TEXT PRIMARY KEY,
		states      JSONB NOT NULL DEFAULT '{}'::jsonb,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// dbExecutor - часть pgxpool.Pool, нужная хранилищу.
type dbExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresBriefingStorage хранит карту статусов клиента в jsonb-колонке.
type PostgresBriefingStorage struct {
	db dbExecutor
}

func NewPostgresBriefingStorage(db dbExecutor) (*PostgresBriefingStorage, error) {
	if db == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresBriefingStorage{db: db}, nil
}

// EnsureSchema создает таблицу, если ее еще нет.
func (r *PostgresBriefingStorage) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createBriefingTable); err != nil {
		return fmt.Errorf("failed to create briefing_states table: %w", err)
	}
	return nil
}

func (r *PostgresBriefingStorage) Load(ctx context.Context, key string) (map[domain.ListingID]domain.BriefingStatus, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresBriefingStorage",
		"method":    "Load",
		"key":       key,
	})

	query := `SELECT states FROM briefing_states WHERE storage_key = $1`
	var raw []byte
	err := r.db.QueryRow(ctx, query, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		repoLogger.Debug("No stored statuses for key", nil)
		return map[domain.ListingID]domain.BriefingStatus{}, nil
	}
	if err != nil {
		repoLogger.Error("Failed to query briefing statuses", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query briefing statuses: %w", err)
	}

	statuses := make(map[domain.ListingID]domain.BriefingStatus)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &statuses); err != nil {
			return nil, fmt.Errorf("failed to decode briefing statuses: %w", err)
		}
	}
	return statuses, nil
}

// Save перезаписывает карту целиком.
func (r *PostgresBriefingStorage) Save(ctx context.Context, key string, statuses map[domain.ListingID]domain.BriefingStatus) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresBriefingStorage",
		"method":    "Save",
		"key":       key,
	})

	if statuses == nil {
		statuses = map[domain.ListingID]domain.BriefingStatus{}
	}
	body, err := json.Marshal(statuses)
	if err != nil {
		return fmt.Errorf("failed to encode briefing statuses: %w", err)
	}

	query := `
		INSERT INTO briefing_states (storage_key, states, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (storage_key) DO UPDATE SET states = EXCLUDED.states, updated_at = now()
	`
	if _, err := r.db.Exec(ctx, query, key, body); err != nil {
		repoLogger.Error("Failed to save briefing statuses", err, port.Fields{"query": query})
		return fmt.Errorf("failed to save briefing statuses: %w", err)
	}
	repoLogger.Debug("Briefing statuses saved", port.Fields{"count": len(statuses)})
	return nil
}
