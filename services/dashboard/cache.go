// File: questly/services/dashboard/cache.go
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"questly/models"
	"questly/utils"

	"github.com/go-redis/redis/v8"
)

// OverviewCache stores built dashboard aggregates. Two copies are kept: a
// fresh one with a short TTL that absorbs load, and a last-good one with a
// long TTL that backs degraded mode when Mongo is down.
type OverviewCache interface {
	GetFresh(ctx context.Context, role models.Role, userID string) (*models.DashboardOverview, error)
	GetLastGood(ctx context.Context, role models.Role, userID string) (*models.DashboardOverview, error)
	Store(ctx context.Context, role models.Role, userID string, overview *models.DashboardOverview) error
	Invalidate(ctx context.Context, role models.Role, userID string) error
}

// RedisOverviewCache implements OverviewCache on the generic cache client.
type RedisOverviewCache struct {
	client   *redis.Client
	freshTTL time.Duration
}

const lastGoodTTL = 24 * time.Hour

func NewRedisOverviewCache(client *redis.Client, freshTTL time.Duration) *RedisOverviewCache {
	if freshTTL <= 0 {
		freshTTL = 30 * time.Second
	}
	return &RedisOverviewCache{client: client, freshTTL: freshTTL}
}

func overviewKey(role models.Role, userID string) string {
	return fmt.Sprintf("%s%s:%s", utils.DashboardCachePrefix, role, userID)
}

func lastGoodKey(role models.Role, userID string) string {
	return overviewKey(role, userID) + ":lastgood"
}

func (c *RedisOverviewCache) get(ctx context.Context, key string) (*models.DashboardOverview, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var overview models.DashboardOverview
	if err := json.Unmarshal([]byte(data), &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

func (c *RedisOverviewCache) GetFresh(ctx context.Context, role models.Role, userID string) (*models.DashboardOverview, error) {
	return c.get(ctx, overviewKey(role, userID))
}

func (c *RedisOverviewCache) GetLastGood(ctx context.Context, role models.Role, userID string) (*models.DashboardOverview, error) {
	return c.get(ctx, lastGoodKey(role, userID))
}

// Store writes both copies. Degraded aggregates are cached fresh (to stop a
// thundering herd against a down database) but never overwrite last-good.
func (c *RedisOverviewCache) Store(ctx context.Context, role models.Role, userID string, overview *models.DashboardOverview) error {
	data, err := json.Marshal(overview)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, overviewKey(role, userID), data, c.freshTTL)
	if !overview.Degraded {
		pipe.Set(ctx, lastGoodKey(role, userID), data, lastGoodTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisOverviewCache) Invalidate(ctx context.Context, role models.Role, userID string) error {
	return c.client.Del(ctx, overviewKey(role, userID)).Err()
}
