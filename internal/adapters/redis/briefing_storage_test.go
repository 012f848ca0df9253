package redis_adapter

import (
	"briefing-service/internal/core/domain"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data   map[string]string
	ttl    time.Duration
	getErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.getErr != nil {
		cmd.SetErr(f.getErr)
		return cmd
	}
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	f.data[key] = string(value.([]byte))
	f.ttl = expiration
	cmd.SetVal("OK")
	return cmd
}

func TestRedisBriefingStorageRoundTrip(t *testing.T) {
	kv := newFakeKV()
	storage, err := NewBriefingStorage(kv, "svc:", time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	statuses := map[domain.ListingID]domain.BriefingStatus{
		"1": domain.BriefingPending,
		"7": domain.BriefingOnHold,
	}
	require.NoError(t, storage.Save(ctx, "briefing_42", statuses))

	assert.Contains(t, kv.data, "svc:briefing_42")
	assert.Equal(t, time.Hour, kv.ttl)

	got, err := storage.Load(ctx, "briefing_42")
	require.NoError(t, err)
	assert.Equal(t, statuses, got)
}

func TestRedisBriefingStorageMissingKey(t *testing.T) {
	storage, err := NewBriefingStorage(newFakeKV(), "", 0)
	require.NoError(t, err)

	got, err := storage.Load(context.Background(), "briefing_1")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRedisBriefingStorageErrors(t *testing.T) {
	kv := newFakeKV()
	kv.data["briefing_1"] = "not json"
	storage, err := NewBriefingStorage(kv, "", 0)
	require.NoError(t, err)

	_, err = storage.Load(context.Background(), "briefing_1")
	assert.Error(t, err)

	kv.getErr = errors.New("connection refused")
	_, err = storage.Load(context.Background(), "briefing_1")
	assert.ErrorContains(t, err, "connection refused")

	_, err = NewBriefingStorage(nil, "", 0)
	assert.Error(t, err)
}
