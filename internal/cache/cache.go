// Package cache is a small read-through cache for the public profession
// listing. A nil client disables it entirely.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix  = "public_professions"
	defaultTTL = 5 * time.Minute
)

// NewRedis creates the Redis client, or nil when no address is configured.
func NewRedis(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

type ProfessionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProfessionCache(rdb *redis.Client) *ProfessionCache {
	return &ProfessionCache{rdb: rdb, ttl: defaultTTL}
}

func Key(name, category string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, name, category)
}

// Get loads a cached listing into dest. Cache errors count as misses.
func (c *ProfessionCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *ProfessionCache) Set(ctx context.Context, key string, v interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Invalidate drops every cached listing. Called after profession mutations.
func (c *ProfessionCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	keys, err := c.rdb.Keys(ctx, keyPrefix+":*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("cache invalidation failed")
	}
}
