package staff

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"staffhub.org/internal/obs"
)

const redisKeyPrefix = "staffhub:resolution:"

// RedisCache backs the resolution cache with Redis so several API instances
// share one memo table. Redis failures degrade to cache misses; a broken
// cache must never break resolution.
type RedisCache struct {
	client *goredis.Client
	ttl    time.Duration
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache wraps an existing client. ttl of zero keeps entries forever,
// matching the in-memory behavior.
func NewRedisCache(client *goredis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (Resolution, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			obs.LogEvent(map[string]any{
				"level": "warn", "msg": "resolution cache get failed", "key": key, "error": err.Error(),
			})
		}
		return Resolution{}, false
	}
	var res Resolution
	if err := json.Unmarshal(data, &res); err != nil {
		return Resolution{}, false
	}
	return res, true
}

func (c *RedisCache) Set(ctx context.Context, key string, res Resolution) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		obs.LogEvent(map[string]any{
			"level": "warn", "msg": "resolution cache set failed", "key": key, "error": err.Error(),
		})
	}
}

func (c *RedisCache) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}
