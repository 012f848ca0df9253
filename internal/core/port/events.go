package port

import (
	"briefing-service/internal/core/domain"
	"context"
)

// ViewEvent - уведомление подписчикам сессии о новом виде списка.
type ViewEvent struct {
	Type       string          `json:"type"`
	SessionID  string          `json:"session_id"`
	Total      int             `json:"total"`
	Filtered   int             `json:"filtered"`
	Loaded     int             `json:"loaded"`
	SortMode   domain.SortMode `json:"sort_mode"`
	FetchError string          `json:"fetch_error,omitempty"`
}

// ViewNotifierPort рассылает изменения вида подписчикам сессии.
type ViewNotifierPort interface {
	Notify(ctx context.Context, event ViewEvent)
}

// BriefingEventsPort публикует изменения статусов брифинга во внешние системы.
type BriefingEventsPort interface {
	PublishStatusChanged(ctx context.Context, event domain.BriefingStatusChanged) error
}
