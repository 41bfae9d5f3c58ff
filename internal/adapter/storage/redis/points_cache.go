package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// PointsBalanceCache implements ports.PointsBalanceCache using Redis. It is a
// read-through cache over the derived points balance; PostgreSQL remains the
// source of truth and every write path invalidates the entry after commit.
type PointsBalanceCache struct {
	client *goredis.Client
	prefix string
}

// NewPointsBalanceCache creates a new Redis-backed points balance cache.
func NewPointsBalanceCache(client *goredis.Client) *PointsBalanceCache {
	return &PointsBalanceCache{
		client: client,
		prefix: "points:balance:",
	}
}

// Get retrieves a cached balance. Returns ok=false on a miss.
func (c *PointsBalanceCache) Get(ctx context.Context, userID uuid.UUID) (int64, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+userID.String()).Result()
	if err != nil {
		if err == goredis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis points get: %w", err)
	}
	balance, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("redis points parse: %w", err)
	}
	return balance, true, nil
}

// Set stores a balance with TTL.
func (c *PointsBalanceCache) Set(ctx context.Context, userID uuid.UUID, balance int64, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+userID.String(), strconv.FormatInt(balance, 10), ttl).Err()
	if err != nil {
		return fmt.Errorf("redis points set: %w", err)
	}
	return nil
}

// Invalidate drops the cached balance for a user.
func (c *PointsBalanceCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, c.prefix+userID.String()).Err(); err != nil {
		return fmt.Errorf("redis points invalidate: %w", err)
	}
	return nil
}
