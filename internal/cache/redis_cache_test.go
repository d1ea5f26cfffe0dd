package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	ID    string   `json:"id"`
	Items []string `json:"items"`
}

func newTestCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewRedisCache(client, logger), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	stored := snapshot{ID: "a1", Items: []string{"q1", "q2"}}
	require.NoError(t, c.Set(ctx, "key", stored, time.Minute))

	var loaded snapshot
	require.NoError(t, c.Get(ctx, "key", &loaded))
	assert.Equal(t, stored, loaded)
}

func TestRedisCache_MissingKey(t *testing.T) {
	c, _ := newTestCache(t)

	var loaded snapshot
	err := c.Get(context.Background(), "absent", &loaded)

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", snapshot{ID: "a1"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var loaded snapshot
	err := c.Get(ctx, "key", &loaded)

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", snapshot{ID: "a1"}, time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	var loaded snapshot
	err := c.Get(ctx, "key", &loaded)

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "key", snapshot{ID: "a1"}, time.Minute))

	var loaded snapshot
	assert.ErrorIs(t, c.Get(ctx, "key", &loaded), ErrCacheMiss)
	assert.NoError(t, c.Delete(ctx, "key"))
}
