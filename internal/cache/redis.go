// Package cache provides an optional Redis-backed snapshot cache for the
// public college listing. The degraded-mode path serves the last cached
// snapshot before falling back to the built-in dataset.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/pkg/logger"
)

const collegeListKey = "comla:colleges:all"

// CollegeCache caches the full public college list. A nil receiver is a
// valid no-op cache, so callers never need to gate on configuration.
type CollegeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCollegeCache creates a cache backed by the given Redis client.
// Returns nil (a disabled cache) when the client is nil.
func NewCollegeCache(client *redis.Client, ttl time.Duration) *CollegeCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CollegeCache{client: client, ttl: ttl}
}

// Store writes the college list snapshot, best effort.
func (c *CollegeCache) Store(ctx context.Context, colleges []models.College) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(colleges)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to marshal college snapshot for cache")
		return
	}

	if err := c.client.Set(ctx, collegeListKey, payload, c.ttl).Err(); err != nil {
		logger.Warn().Err(err).Msg("Failed to store college snapshot in redis")
	}
}

// Load returns the cached snapshot, or false when absent or unreadable.
func (c *CollegeCache) Load(ctx context.Context) ([]models.College, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, collegeListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn().Err(err).Msg("Failed to read college snapshot from redis")
		}
		return nil, false
	}

	var colleges []models.College
	if err := json.Unmarshal(payload, &colleges); err != nil {
		logger.Warn().Err(err).Msg("Failed to unmarshal cached college snapshot")
		return nil, false
	}

	return colleges, true
}

// NewRedisClient creates a Redis client, or nil when addr is empty.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
