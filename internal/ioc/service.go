package ioc

import (
	"time"

	"gitee.com/flycash/notification-policy/internal/pkg/idempotent"
	"gitee.com/flycash/notification-policy/internal/repository"
	"gitee.com/flycash/notification-policy/internal/repository/cache/local"
	rediscache "gitee.com/flycash/notification-policy/internal/repository/cache/redis"
	"gitee.com/flycash/notification-policy/internal/repository/dao"
	"gitee.com/flycash/notification-policy/internal/service/dispatch"
	"gitee.com/flycash/notification-policy/internal/service/eventsource"
	"github.com/gotomicro/ego/core/econf"
	ca "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

func InitEventSource() eventsource.Source {
	path := econf.GetString("events.file")
	if path == "" {
		panic("缺少配置 events.file")
	}
	return eventsource.NewFileSource(path)
}

// ChatLocalCache 聊天配置和权限矩阵的进程内缓存
type ChatLocalCache struct {
	*ca.Cache
	TTL time.Duration
}

func InitChatLocalCache() ChatLocalCache {
	type Config struct {
		SettingsCacheTTL time.Duration `yaml:"settingsCacheTTL"`
	}
	cfg := Config{SettingsCacheTTL: time.Minute}
	if econf.Get("chat") != nil {
		if err := econf.UnmarshalKey("chat", &cfg); err != nil {
			panic(err)
		}
	}
	return ChatLocalCache{
		Cache: ca.New(cfg.SettingsCacheTTL, 2*cfg.SettingsCacheTTL),
		TTL:   cfg.SettingsCacheTTL,
	}
}

// InitChatCacheInvalidator 任意实例修改配置后，所有实例的本地缓存一起删除
func InitChatCacheInvalidator(client *redis.Client, lc ChatLocalCache) *rediscache.Invalidator {
	return rediscache.NewInvalidator(client, rediscache.DefaultInvalidationChannel, lc.Delete)
}

func InitChatRepository(
	d dao.ChatDAO,
	rdb redis.Cmdable,
	lc ChatLocalCache,
	inv *rediscache.Invalidator,
) repository.ChatRepository {
	return repository.NewChatRepository(
		d,
		local.NewSettingsCache(lc.Cache, lc.TTL, inv),
		rediscache.NewCache(rdb),
		local.NewMatrixCache(lc.Cache, lc.TTL, inv),
	)
}

// InitOccurrenceClaims 多实例部署必须用 redis，claims.store 配置为 local 时只在本进程内去重
func InitOccurrenceClaims(rdb redis.Cmdable) idempotent.IdempotencyService {
	if econf.GetString("claims.store") == "local" {
		return idempotent.NewLocalService(ca.New(time.Hour, 10*time.Minute))
	}
	return idempotent.NewRedisService(rdb, "notification_policy:occurrence:")
}

func InitDispatchConfig() dispatch.Config {
	cfg := dispatch.DefaultConfig()
	if econf.Get("dispatch") != nil {
		if err := econf.UnmarshalKey("dispatch", &cfg); err != nil {
			panic(err)
		}
	}
	return cfg
}
