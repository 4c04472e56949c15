//go:build wireinject

package ioc

import (
	"gitee.com/flycash/notification-policy/internal/event/platform"
	"gitee.com/flycash/notification-policy/internal/ioc"
	"gitee.com/flycash/notification-policy/internal/pkg/counter"
	"gitee.com/flycash/notification-policy/internal/repository"
	"gitee.com/flycash/notification-policy/internal/repository/dao"
	"gitee.com/flycash/notification-policy/internal/service/chatpolicy"
	"gitee.com/flycash/notification-policy/internal/service/directory"
	"gitee.com/flycash/notification-policy/internal/service/dispatch"
	"gitee.com/flycash/notification-policy/internal/service/ledger"
	"gitee.com/flycash/notification-policy/internal/service/notificationtype"
	"gitee.com/flycash/notification-policy/internal/service/registry"
	"gitee.com/flycash/notification-policy/internal/service/template"
	"gitee.com/flycash/notification-policy/internal/web"
	"github.com/google/wire"
)

var (
	BaseSet = wire.NewSet(
		ioc.InitDB,
		ioc.InitRedisClient,
		ioc.InitRedisCmd,
		ioc.InitDistributedLock,
		ioc.InitIDGenerator,
		ioc.InitMQ,
		ioc.InitEventSource,
		ioc.InitChannelProvider,
		ioc.InitDispatchConfig,
		ioc.InitOccurrenceClaims,
	)
	registrySvcSet = wire.NewSet(
		registry.NewService,
		repository.NewEventRepository,
		dao.NewEventDAO,
	)
	notificationTypeSvcSet = wire.NewSet(
		notificationtype.NewService,
		repository.NewNotificationTypeRepository,
		dao.NewNotificationTypeDAO,
	)
	dispatchSvcSet = wire.NewSet(
		dispatch.NewEngine,
		dispatch.NewScheduledTask,
		directory.NewGormDirectory,
		wire.Bind(new(directory.Directory), new(*directory.GormDirectory)),
		repository.NewDeliveryRepository,
		dao.NewDeliveryDAO,
	)
	chatSvcSet = wire.NewSet(
		chatpolicy.NewEvaluator,
		chatpolicy.NewAdminService,
		ioc.InitChatLocalCache,
		ioc.InitChatCacheInvalidator,
		ioc.InitChatRepository,
		dao.NewChatDAO,
		counter.NewRedisDailyCounter,
		wire.Bind(new(counter.DailyCounter), new(*counter.RedisDailyCounter)),
	)
	webSet = wire.NewSet(
		template.NewPreview,
		web.NewEventHandler,
		web.NewNotificationTypeHandler,
		web.NewDeliveryHandler,
		web.NewChatHandler,
		ioc.InitGinServer,
	)
)

func InitApp() (*ioc.App, error) {
	wire.Build(
		// 基础设施
		BaseSet,

		// 事件注册表、通知类型
		registrySvcSet,
		notificationTypeSvcSet,

		// 分发与投递记录
		dispatchSvcSet,
		ledger.NewService,

		// 聊天策略
		chatSvcSet,

		// 后台任务
		platform.NewEventConsumer,
		ioc.InitTasks,
		ioc.Crons,

		// HTTP 服务
		webSet,
		wire.Struct(new(ioc.App), "*"),
	)
	return new(ioc.App), nil
}
