package redisrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCache struct {
	value string
	err   error
}

func (s stubCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (s stubCache) Get(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult(s.value, s.err)
}

func (s stubCache) Del(ctx context.Context, keys ...string) error {
	return nil
}

type cached struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestGetJSON(t *testing.T) {
	ctx := context.Background()

	got, err := GetJSON[*cached](stubCache{value: `{"id":7,"name":"Comment on Psalm 23"}`}, ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, &cached{ID: 7, Name: "Comment on Psalm 23"}, got)

	list, err := GetJSON[[]cached](stubCache{value: `[]`}, ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = GetJSON[*cached](stubCache{err: redis.Nil}, ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = GetJSON[*cached](stubCache{value: "null"}, ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	boom := errors.New("connection refused")
	_, err = GetJSON[*cached](stubCache{err: boom}, ctx, "k")
	assert.ErrorIs(t, err, boom)

	_, err = GetJSON[*cached](stubCache{value: "{"}, ctx, "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
