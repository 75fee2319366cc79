package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix     = "course-studio"
	scanBatchSize = 100
)

var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Key joins parts under the service prefix, e.g. Key("catalog", "courses").
func Key(parts ...string) string {
	return keyPrefix + ":" + strings.Join(parts, ":")
}

type redisCache struct {
	client redis.UniversalClient
	logger *zap.Logger
}

func (r redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value for %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		r.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Get decodes the cached value into dest. A missing key yields ErrCacheMiss.
func (r redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		r.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		r.logger.Warn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = r.client.Del(ctx, key).Err()
		return ErrCacheMiss
	}
	return nil
}

func (r redisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r redisCache) DeletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	deleted := 0
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys for %s: %w", pattern, err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	r.logger.Debug("cache pattern invalidated", zap.String("pattern", pattern), zap.Int("keys", deleted))
	return nil
}

func NewRedisCache(client redis.UniversalClient, logger *zap.Logger) CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisCache{
		client: client,
		logger: logger,
	}
}

// NoopCache is used when no Redis URL is configured. Every Get misses.
type NoopCache struct{}

func (NoopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (NoopCache) Get(context.Context, string, interface{}) error                { return ErrCacheMiss }
func (NoopCache) Delete(context.Context, string) error                          { return nil }
func (NoopCache) DeletePattern(context.Context, string) error                   { return nil }
