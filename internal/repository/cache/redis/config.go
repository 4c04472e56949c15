package redis

import (
	"context"
	"encoding/json"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/repository/cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ cache.ChatSettingsCache = (*Cache)(nil)

// Cache 多实例共享的可用性配置缓存
type Cache struct {
	rdb redis.Cmdable
}

func NewCache(rdb redis.Cmdable) *Cache {
	return &Cache{
		rdb: rdb,
	}
}

func (c *Cache) Del(ctx context.Context) error {
	return c.rdb.Del(ctx, cache.ChatSettingsKey()).Err()
}

func (c *Cache) Get(ctx context.Context) (domain.ChatAvailabilitySettings, error) {
	val, err := c.rdb.Get(ctx, cache.ChatSettingsKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ChatAvailabilitySettings{}, cache.ErrorKeyNotFound
		}
		return domain.ChatAvailabilitySettings{}, errors.Wrap(err, "failed to get chat settings from redis")
	}

	var s domain.ChatAvailabilitySettings
	err = json.Unmarshal([]byte(val), &s)
	if err != nil {
		return domain.ChatAvailabilitySettings{}, errors.Wrap(err, "failed to unmarshal chat settings")
	}
	return s, nil
}

func (c *Cache) Set(ctx context.Context, s domain.ChatAvailabilitySettings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "failed to marshal chat settings")
	}
	err = c.rdb.Set(ctx, cache.ChatSettingsKey(), data, cache.DefaultExpiredTime).Err()
	if err != nil {
		return errors.Wrap(err, "failed to set chat settings to redis")
	}
	return nil
}
