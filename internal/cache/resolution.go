// Package cache provides Redis-backed caches for hot read paths. Today that
// is the user -> company resolution lookup which runs on every request.
package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResolutionCache stores userID -> companyID resolutions with a TTL. A cache
// miss is not an error; resolution falls through to the database.
type ResolutionCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewResolutionCache wraps an existing Redis client.
func NewResolutionCache(client *redis.Client, ttl time.Duration) *ResolutionCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ResolutionCache{redis: client, ttl: ttl}
}

// NewResolutionCacheFromURL connects to Redis and verifies the connection.
func NewResolutionCacheFromURL(redisURL string, ttl time.Duration) (*ResolutionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Printf("[cache.ResolutionCache] Connected to Redis at %s", opts.Addr)

	return NewResolutionCache(client, ttl), nil
}

func key(userID string) string {
	return "brandhub:resolve:" + userID
}

// GetCompany returns the cached company for userID. The second return is
// false on a miss.
func (c *ResolutionCache) GetCompany(ctx context.Context, userID string) (string, bool, error) {
	v, err := c.redis.Get(ctx, key(userID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return v, true, nil
}

// SetCompany caches the resolution for the configured TTL.
func (c *ResolutionCache) SetCompany(ctx context.Context, userID, companyID string) error {
	if err := c.redis.Set(ctx, key(userID), companyID, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateCompany drops the cached resolution, e.g. after a company switch
// or membership change.
func (c *ResolutionCache) InvalidateCompany(ctx context.Context, userID string) error {
	if err := c.redis.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (c *ResolutionCache) Close() error {
	return c.redis.Close()
}
