package contextkeys

import (
	"briefing-service/internal/core/domain"
	"context"
)

type viewerKeyType struct{}

var viewerKey = viewerKeyType{}

// Viewer - пользователь, от имени которого пришел запрос.
type Viewer struct {
	UserID string
	Role   domain.ViewerRole
}

func ContextWithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

func ViewerFromContext(ctx context.Context) (Viewer, bool) {
	v, ok := ctx.Value(viewerKey).(Viewer)
	return v, ok
}
