package usecase

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
	"time"
)

const (
	viewRefreshed = "view.refreshed"
	viewComposed  = "view.composed"
)

// updateOwned выполняет fn над сессией, если она принадлежит пользователю из контекста.
// Чужая сессия неотличима от несуществующей.
func updateOwned(ctx context.Context, repo port.SessionRepositoryPort, sessionID string, fn func(*domain.Session) error) error {
	viewer, hasViewer := contextkeys.ViewerFromContext(ctx)
	return repo.Update(ctx, sessionID, func(sess *domain.Session) error {
		if hasViewer && sess.UserID != viewer.UserID {
			return domain.ErrSessionNotFound
		}
		return fn(sess)
	})
}

// runPipeline строит вид, пишет метрику и уведомляет подписчиков сессии.
func runPipeline(
	ctx context.Context,
	sess *domain.Session,
	build func(*domain.Session) domain.ListingView,
	eventType string,
	notifier port.ViewNotifierPort,
	metrics port.MetricsPort,
) domain.ListingView {
	start := time.Now()
	view := build(sess)
	metrics.ObservePipelineRun(eventType, time.Since(start), view.Total, view.Filtered)

	notifier.Notify(ctx, port.ViewEvent{
		Type:       eventType,
		SessionID:  sess.ID,
		Total:      view.Total,
		Filtered:   view.Filtered,
		Loaded:     view.Loaded,
		SortMode:   view.SortMode,
		FetchError: view.FetchError,
	})
	return view
}

// fetchListings загружает рабочий набор. Ошибка загрузки не прерывает работу:
// набор становится пустым, а текст ошибки попадает в вид.
func fetchListings(ctx context.Context, source port.ListingSourcePort, metrics port.MetricsPort, sess *domain.Session, logger port.LoggerPort) {
	listings, err := source.FetchListings(ctx, sess.UserID)
	if err != nil {
		logger.Error("Failed to fetch listings, continuing with empty set", err, nil)
		metrics.FetchFailure("listings")
		sess.Listings = nil
		sess.FetchError = err.Error()
		return
	}
	sess.Listings = listings
	sess.FetchError = ""
	logger.Info("Listings fetched", port.Fields{"count": len(listings)})
}
