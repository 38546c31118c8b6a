package redisrepo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) error
}

type RedisRepository struct {
	Cache
}

func New(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{
		Cache: newCacheRepo(rdb),
	}
}
