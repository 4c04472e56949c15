package idempotent

import (
	"context"
	"time"

	ca "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

var _ IdempotencyService = (*LocalIdempotencyService)(nil)

// LocalIdempotencyService 单实例部署和测试使用
type LocalIdempotencyService struct {
	c *ca.Cache
}

func NewLocalService(c *ca.Cache) *LocalIdempotencyService {
	return &LocalIdempotencyService{c: c}
}

func (s *LocalIdempotencyService) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, errors.New("empty key")
	}
	// Add 在 key 已存在且未过期时返回错误
	return s.c.Add(key, struct{}{}, ttl) == nil, nil
}

func (s *LocalIdempotencyService) Release(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}
