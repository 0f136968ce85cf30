package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values map[string]string
	getErr error
	setKey string
	setTTL time.Duration
}

func (f *fakeStore) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.values[key] = value.(string)
	f.setKey = key
	f.setTTL = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisOwnerCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		store := &fakeStore{values: map[string]string{}}
		c := &RedisOwnerCache{store: store}

		_, ok, err := c.GetOwner(ctx, "owner:course:c1")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, c.SetOwner(ctx, "owner:course:c1", "inst-1", 10*time.Minute))
		assert.Equal(t, "edupay:owner:course:c1", store.setKey)
		assert.Equal(t, 10*time.Minute, store.setTTL)

		owner, ok, err := c.GetOwner(ctx, "owner:course:c1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "inst-1", owner)
	})

	t.Run("store error", func(t *testing.T) {
		c := &RedisOwnerCache{store: &fakeStore{getErr: errors.New("conn refused")}}
		_, ok, err := c.GetOwner(ctx, "owner:course:c1")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := NewRedisOwnerCache(ctx, "://nope")
		assert.Error(t, err)
	})
}
