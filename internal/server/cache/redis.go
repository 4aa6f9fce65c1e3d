// Package cache keeps recent match results of the gateway in Redis, keyed by
// a fingerprint of the submitted profile.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/scholarmatch/internal/cryptox"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// KeyPrefix namespaces match entries in a shared Redis.
const KeyPrefix = "scholarmatch:matches:"

// Cache stores match results per profile.
type Cache interface {
	// Get reports a miss as (nil, false, nil).
	Get(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, bool, error)
	Set(ctx context.Context, p models.UserProfile, matches []models.ScholarshipMatch) error
}

// Cmdable is the part of *redis.Client the cache uses.
type Cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

var _ Cmdable = (*redis.Client)(nil)

type RedisCache struct {
	rdb Cmdable
	ttl time.Duration
}

// NewRedisCache stores entries with the given ttl; zero keeps them forever.
func NewRedisCache(rdb Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Key returns the Redis key of a profile.
func Key(p models.UserProfile) (string, error) {
	fp, err := cryptox.Fingerprint(p)
	if err != nil {
		return "", fmt.Errorf("fingerprint profile: %w", err)
	}
	return KeyPrefix + fp, nil
}

func (c *RedisCache) Get(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, bool, error) {
	key, err := Key(p)
	if err != nil {
		return nil, false, err
	}

	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var matches []models.ScholarshipMatch
	if err := json.Unmarshal(val, &matches); err != nil {
		return nil, false, fmt.Errorf("decode cached matches: %w", err)
	}
	return matches, true, nil
}

func (c *RedisCache) Set(ctx context.Context, p models.UserProfile, matches []models.ScholarshipMatch) error {
	key, err := Key(p)
	if err != nil {
		return err
	}
	b, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("encode matches: %w", err)
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}
