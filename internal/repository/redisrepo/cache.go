package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by GetJSON when the key is absent or holds null.
var ErrCacheMiss = errors.New("cache miss")

type cacheRepo struct {
	rdb *redis.Client
}

func newCacheRepo(rdb *redis.Client) Cache {
	return &cacheRepo{
		rdb: rdb,
	}
}

func (r *cacheRepo) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return r.rdb.Set(ctx, key, data, ttl).Err()
}

func (r *cacheRepo) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.rdb.Get(ctx, key)
}

func (r *cacheRepo) Del(ctx context.Context, keys ...string) error {
	return r.rdb.Del(ctx, keys...).Err()
}

// GetJSON decodes the value cached under key.
func GetJSON[T any](c Cache, ctx context.Context, key string) (T, error) {
	var result T

	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return result, ErrCacheMiss
	}
	if err != nil {
		return result, err
	}
	if string(data) == "null" {
		return result, ErrCacheMiss
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode %s: %w", key, err)
	}
	return result, nil
}
