package usecase

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/pipeline"
	"briefing-service/internal/core/port"
	"context"
	"fmt"
	"strings"
)

type GetBriefingListUseCase struct {
	repo port.SessionRepositoryPort
}

func NewGetBriefingListUseCase(repo port.SessionRepositoryPort) *GetBriefingListUseCase {
	return &GetBriefingListUseCase{repo: repo}
}

func (uc *GetBriefingListUseCase) Execute(ctx context.Context, sessionID string, mode domain.ViewMode) (domain.BriefingListView, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetBriefingList",
		"session_id": sessionID,
		"mode":       mode,
	})

	ucLogger.Info("Use case started", nil)

	var list domain.BriefingListView
	err := updateOwned(ctx, uc.repo, sessionID, func(sess *domain.Session) error {
		list = pipeline.BriefingList(sess, mode)
		return nil
	})
	if err != nil {
		return domain.BriefingListView{}, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"briefing": list.Briefing,
		"filtered": list.Filtered,
	})
	return list, nil
}

type EditBriefingFieldUseCase struct {
	repo port.SessionRepositoryPort
}

func NewEditBriefingFieldUseCase(repo port.SessionRepositoryPort) *EditBriefingFieldUseCase {
	return &EditBriefingFieldUseCase{repo: repo}
}

// Execute сохраняет локальную правку поля. На бэкенд правки не уходят.
func (uc *EditBriefingFieldUseCase) Execute(ctx context.Context, sessionID string, listingID domain.ListingID, field, value string) (map[string]string, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "EditBriefingField",
		"session_id": sessionID,
		"listing_id": listingID,
		"field":      field,
	})

	ucLogger.Info("Use case started", nil)

	field = strings.TrimSpace(field)
	if field == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidField)
	}

	var edits map[string]string
	err := updateOwned(ctx, uc.repo, sessionID, func(sess *domain.Session) error {
		if _, ok := sess.Listing(listingID); !ok {
			return fmt.Errorf("%w: %s", domain.ErrListingNotFound, listingID)
		}
		sess.Overlay.Set(listingID, field, value)

		edits = make(map[string]string, len(sess.Overlay[listingID]))
		for k, v := range sess.Overlay[listingID] {
			edits[k] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"edited_fields": len(edits)})
	return edits, nil
}
