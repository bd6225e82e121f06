package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"coachdesk/internal/application/catalog/dto"
	"coachdesk/internal/shared/logger"
)

const (
	publicPlansKey = "catalog:public_plans"
	basePlansTTL   = 30 * time.Minute
	plansTTLJitter = 10 * time.Minute // TTL range: 30-40 min (anti-stampede)
)

// RedisPublicPlanCache caches the rendered landing-page plan listing in a
// single Redis key. The whole listing is one JSON blob: it is small, read
// together, and invalidated together.
type RedisPublicPlanCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisPublicPlanCache(client *redis.Client, logger logger.Interface) *RedisPublicPlanCache {
	return &RedisPublicPlanCache{
		client: client,
		logger: logger,
	}
}

// GetPublicPlans returns the cached listing, or (nil, nil) on a miss.
func (c *RedisPublicPlanCache) GetPublicPlans(ctx context.Context) ([]*dto.PublicPlanDTO, error) {
	raw, err := c.client.Get(ctx, publicPlansKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get public plans from cache: %w", err)
	}

	var plans []*dto.PublicPlanDTO
	if err := json.Unmarshal(raw, &plans); err != nil {
		// Corrupt entry: drop it and report a miss so the caller rebuilds.
		c.logger.Warnw("dropping corrupt public plan cache entry", "error", err)
		if delErr := c.client.Del(ctx, publicPlansKey).Err(); delErr != nil {
			c.logger.Warnw("failed to drop corrupt public plan cache entry", "error", delErr)
		}
		return nil, nil
	}

	return plans, nil
}

// SetPublicPlans stores the listing with a jittered TTL.
func (c *RedisPublicPlanCache) SetPublicPlans(ctx context.Context, plans []*dto.PublicPlanDTO) error {
	raw, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("failed to marshal public plans: %w", err)
	}

	ttl := basePlansTTL + rand.N(plansTTLJitter)
	if err := c.client.Set(ctx, publicPlansKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set public plans in cache: %w", err)
	}

	return nil
}

// InvalidatePublicPlans drops the cached listing.
func (c *RedisPublicPlanCache) InvalidatePublicPlans(ctx context.Context) error {
	if err := c.client.Del(ctx, publicPlansKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate public plans cache: %w", err)
	}
	return nil
}
