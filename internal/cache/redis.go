package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	redisKeyNamespace = "wavelength:analytics:"
	redisScanCount    = 200
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(rawURL string, ttl time.Duration) (*RedisCache, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, errors.New("redis cache requires REDIS_URL")
	}
	options, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisCacheWithClient(redis.NewClient(options), ttl), nil
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (cache *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := cache.client.Get(ctx, redisKeyNamespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

func (cache *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	if err := cache.client.Set(ctx, redisKeyNamespace+key, value, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidatePrefix walks matching keys with SCAN so large keyspaces are never
// blocked by a single KEYS call.
func (cache *RedisCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	pattern := redisKeyNamespace + escapeRedisGlob(prefix) + "*"
	iterator := cache.client.Scan(ctx, 0, pattern, redisScanCount).Iterator()

	batch := make([]string, 0, redisScanCount)
	for iterator.Next(ctx) {
		batch = append(batch, iterator.Val())
		if len(batch) == redisScanCount {
			if err := cache.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iterator.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(batch) > 0 {
		if err := cache.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	return nil
}

func (cache *RedisCache) Close() error {
	return cache.client.Close()
}

func escapeRedisGlob(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return replacer.Replace(value)
}
