package cache

import (
	"context"
	"errors"
	"time"

	"edupay/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "edupay:"

type stringStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisOwnerCache memoises instructor lookups in Redis.
type RedisOwnerCache struct {
	store  stringStore
	client *redis.Client
}

var _ interfaces.IOwnerCache = (*RedisOwnerCache)(nil)

// NewRedisOwnerCache connects to redisURL and checks the connection.
func NewRedisOwnerCache(ctx context.Context, redisURL string) (*RedisOwnerCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisOwnerCache{store: client, client: client}, nil
}

func (c *RedisOwnerCache) GetOwner(ctx context.Context, key string) (string, bool, error) {
	owner, err := c.store.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return owner, owner != "", nil
}

func (c *RedisOwnerCache) SetOwner(ctx context.Context, key, ownerID string, ttl time.Duration) error {
	return c.store.Set(ctx, keyPrefix+key, ownerID, ttl).Err()
}

func (c *RedisOwnerCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
