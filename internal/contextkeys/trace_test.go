package contextkeys

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceIDFromEmptyContext(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestEnsureTraceID(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background(), " abc ")
	assert.Equal(t, "abc", id)
	assert.Equal(t, "abc", TraceIDFromContext(ctx))

	ctx, id = EnsureTraceID(context.Background(), "")
	assert.Len(t, id, 36)
	assert.Equal(t, id, TraceIDFromContext(ctx))

	_, id = EnsureTraceID(context.Background(), strings.Repeat("x", 100))
	assert.Len(t, id, maxTraceIDLen)
}
