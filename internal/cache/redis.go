package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/aerodrome/config"
	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client       *redis.Client
	resourcesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, resourcesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:       redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		resourcesTTL: resourcesTTL,
	}
}

func (c *RedisCache) GetResources(ctx context.Context) ([]domain.Resource, error) {
	data, err := c.client.Get(ctx, resourcesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var resources []domain.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (c *RedisCache) SetResources(ctx context.Context, resources []domain.Resource) error {
	payload, err := json.Marshal(resources)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, resourcesKey(), payload, c.resourcesTTL).Err()
}

func (c *RedisCache) InvalidateResources(ctx context.Context) error {
	return c.client.Del(ctx, resourcesKey()).Err()
}

// AcquireBookingLock serializes booking writes on a resource across service
// instances. The TTL bounds how long a crashed holder can block the resource.
func (c *RedisCache) AcquireBookingLock(ctx context.Context, resourceID int64, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, bookingLockKey(resourceID), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseBookingLock(ctx context.Context, resourceID int64) error {
	return c.client.Del(ctx, bookingLockKey(resourceID)).Err()
}

func resourcesKey() string {
	return "cache:resources"
}

func bookingLockKey(resourceID int64) string {
	return fmt.Sprintf("lock:resource:%d", resourceID)
}
