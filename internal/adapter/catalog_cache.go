package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sportTypesKey = "turf:catalog:sport-types"

// SportTypeCache stores the derived list of sport types. Failures are logged
// and reported as misses so the catalog falls back to the database.
type SportTypeCache interface {
	Get(ctx context.Context) ([]string, bool)
	Set(ctx context.Context, types []string)
	Invalidate(ctx context.Context)
}

// RedisSportTypeCache keeps the list as a JSON string with a TTL.
type RedisSportTypeCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSportTypeCache creates a RedisSportTypeCache.
func NewRedisSportTypeCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSportTypeCache {
	return &RedisSportTypeCache{client: client, ttl: ttl, logger: logger}
}

// Get implements SportTypeCache.
func (c *RedisSportTypeCache) Get(ctx context.Context) ([]string, bool) {
	raw, err := c.client.Get(ctx, sportTypesKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("sport type cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var types []string
	if err := json.Unmarshal(raw, &types); err != nil {
		c.logger.Warn("sport type cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return types, true
}

// Set implements SportTypeCache.
func (c *RedisSportTypeCache) Set(ctx context.Context, types []string) {
	raw, err := json.Marshal(types)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, sportTypesKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("sport type cache write failed", zap.Error(err))
	}
}

// Invalidate implements SportTypeCache.
func (c *RedisSportTypeCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, sportTypesKey).Err(); err != nil {
		c.logger.Warn("sport type cache invalidation failed", zap.Error(err))
	}
}

// NoopSportTypeCache never stores anything.
type NoopSportTypeCache struct{}

func (NoopSportTypeCache) Get(context.Context) ([]string, bool) { return nil, false }
func (NoopSportTypeCache) Set(context.Context, []string)        {}
func (NoopSportTypeCache) Invalidate(context.Context)           {}
