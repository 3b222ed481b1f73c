package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "blacklist:"

// BlacklistRepository records revoked refresh token IDs in Redis. Each entry
// expires when the token it shadows would have expired, so the set never
// outgrows the population of live refresh tokens.
type BlacklistRepository struct {
	client *redis.Client
}

// NewBlacklistRepository creates a new Redis-backed token blacklist.
func NewBlacklistRepository(client *redis.Client) *BlacklistRepository {
	return &BlacklistRepository{client: client}
}

// NewRedisClient creates a Redis client for the given address.
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

// Add records a token ID as revoked for the given duration.
func (r *BlacklistRepository) Add(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to record.
		return nil
	}

	key := blacklistKeyPrefix + tokenID
	if err := r.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set blacklist entry: %w", err)
	}

	return nil
}

// Contains reports whether a token ID has been revoked.
func (r *BlacklistRepository) Contains(ctx context.Context, tokenID string) (bool, error) {
	key := blacklistKeyPrefix + tokenID

	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis check blacklist entry: %w", err)
	}

	return n > 0, nil
}
