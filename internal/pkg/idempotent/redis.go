package idempotent

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ IdempotencyService = (*RedisIdempotencyService)(nil)

// RedisIdempotencyService 多实例共享，基于 SETNX
type RedisIdempotencyService struct {
	client    redis.Cmdable
	keyPrefix string
}

func NewRedisService(client redis.Cmdable, keyPrefix string) *RedisIdempotencyService {
	return &RedisIdempotencyService{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisIdempotencyService) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, errors.New("empty key")
	}
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, 1, ttl).Result()
	if err != nil {
		return false, errors.Wrapf(err, "claim %s", key)
	}
	return ok, nil
}

func (s *RedisIdempotencyService) Release(ctx context.Context, key string) error {
	return errors.Wrapf(s.client.Del(ctx, s.keyPrefix+key).Err(), "release %s", key)
}
