package local

import (
	"context"
	"time"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/repository/cache"
	ca "github.com/patrickmn/go-cache"
)

var (
	_ cache.ChatSettingsCache     = (*SettingsCache)(nil)
	_ cache.PermissionMatrixCache = (*MatrixCache)(nil)
)

// Publisher 删除本地缓存之后通知其他实例删除同一个 key
type Publisher interface {
	Publish(ctx context.Context, key string) error
}

// SettingsCache 进程内的可用性配置缓存，过期时间较短，写入时主动删除
type SettingsCache struct {
	c   *ca.Cache
	ttl time.Duration
	pub Publisher
}

// NewSettingsCache pub 为 nil 时只删除本进程的缓存
func NewSettingsCache(c *ca.Cache, ttl time.Duration, pub Publisher) *SettingsCache {
	return &SettingsCache{c: c, ttl: ttl, pub: pub}
}

func (l *SettingsCache) Get(_ context.Context) (domain.ChatAvailabilitySettings, error) {
	v, ok := l.c.Get(cache.ChatSettingsKey())
	if !ok {
		return domain.ChatAvailabilitySettings{}, cache.ErrorKeyNotFound
	}
	return v.(domain.ChatAvailabilitySettings), nil
}

func (l *SettingsCache) Set(_ context.Context, s domain.ChatAvailabilitySettings) error {
	l.c.Set(cache.ChatSettingsKey(), s, l.ttl)
	return nil
}

func (l *SettingsCache) Del(ctx context.Context) error {
	return del(ctx, l.c, l.pub, cache.ChatSettingsKey())
}

// MatrixCache 进程内的权限矩阵缓存
type MatrixCache struct {
	c   *ca.Cache
	ttl time.Duration
	pub Publisher
}

func NewMatrixCache(c *ca.Cache, ttl time.Duration, pub Publisher) *MatrixCache {
	return &MatrixCache{c: c, ttl: ttl, pub: pub}
}

func (l *MatrixCache) Get(_ context.Context) (domain.PermissionMatrix, error) {
	v, ok := l.c.Get(cache.PermissionMatrixKey())
	if !ok {
		return nil, cache.ErrorKeyNotFound
	}
	return copyMatrix(v.(domain.PermissionMatrix)), nil
}

func (l *MatrixCache) Set(_ context.Context, m domain.PermissionMatrix) error {
	l.c.Set(cache.PermissionMatrixKey(), copyMatrix(m), l.ttl)
	return nil
}

func (l *MatrixCache) Del(ctx context.Context) error {
	return del(ctx, l.c, l.pub, cache.PermissionMatrixKey())
}

// del 本进程的缓存总是先删掉，广播失败时其他实例最迟在过期之后读到新值
func del(ctx context.Context, c *ca.Cache, pub Publisher, key string) error {
	c.Delete(key)
	if pub == nil {
		return nil
	}
	return pub.Publish(ctx, key)
}

// copyMatrix 缓存里存的是 map，取出去的调用方可能会修改
func copyMatrix(m domain.PermissionMatrix) domain.PermissionMatrix {
	res := make(domain.PermissionMatrix, len(m))
	for from, row := range m {
		for to, cell := range row {
			res.Set(from, to, cell)
		}
	}
	return res
}
