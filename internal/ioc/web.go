package ioc

import (
	"gitee.com/flycash/notification-policy/internal/web"
	"github.com/gotomicro/ego/server/egin"
)

func InitGinServer(
	event *web.EventHandler,
	types *web.NotificationTypeHandler,
	delivery *web.DeliveryHandler,
	chat *web.ChatHandler,
) *egin.Component {
	server := egin.Load("server.http").Build()
	event.PublicRoutes(server.Engine)
	types.PublicRoutes(server.Engine)
	delivery.PublicRoutes(server.Engine)
	chat.PublicRoutes(server.Engine)
	web.MetricsRoutes(server.Engine)
	return server
}
