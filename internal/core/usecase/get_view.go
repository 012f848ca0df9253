package usecase

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
)

type GetViewUseCase struct {
	repo port.SessionRepositoryPort
}

func NewGetViewUseCase(repo port.SessionRepositoryPort) *GetViewUseCase {
	return &GetViewUseCase{repo: repo}
}

// Execute возвращает страницу последнего построенного вида. Пайплайн не запускается.
func (uc *GetViewUseCase) Execute(ctx context.Context, sessionID string, limit, offset int) (domain.ListingView, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetView",
		"session_id": sessionID,
		"limit":      limit,
		"offset":     offset,
	})

	ucLogger.Debug("Use case started", nil)

	var view domain.ListingView
	err := updateOwned(ctx, uc.repo, sessionID, func(sess *domain.Session) error {
		view = sess.View
		view.Items = page(sess.View.Items, limit, offset)
		return nil
	})
	if err != nil {
		return domain.ListingView{}, err
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{"items": len(view.Items)})
	return view, nil
}

// page копирует нужный диапазон, чтобы вызывающий не держал срез сессии.
func page(items []domain.Listing, limit, offset int) []domain.Listing {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []domain.Listing{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]domain.Listing, end-offset)
	copy(out, items[offset:end])
	return out
}
