package contextkeys

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type traceIDKey struct{}

// Trace id пришедший снаружи обрезается до этой длины.
const maxTraceIDLen = 64

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext возвращает "" если trace id не задан.
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}

// EnsureTraceID кладет в контекст переданный id или новый uuid, если id пустой.
// Возвращает контекст и id, который в нем оказался.
func EnsureTraceID(ctx context.Context, candidate string) (context.Context, string) {
	traceID := strings.TrimSpace(candidate)
	if len(traceID) > maxTraceIDLen {
		traceID = traceID[:maxTraceIDLen]
	}
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return ContextWithTraceID(ctx, traceID), traceID
}
