package console

import (
	"context"

	"gitee.com/flycash/notification-policy/internal/service/channel"
	"github.com/gotomicro/ego/core/elog"
)

// Provider 把消息输出到日志，没有接入真实供应商的渠道默认使用它
type Provider struct {
	logger *elog.Component
}

func NewProvider() *Provider {
	return &Provider{
		logger: elog.DefaultLogger,
	}
}

func (p *Provider) Send(_ context.Context, msg channel.Message) (channel.Result, error) {
	p.logger.Info("发送通知",
		elog.Any("deliveryId", msg.DeliveryID),
		elog.String("channel", msg.Channel.String()),
		elog.String("recipient", msg.RecipientUserID),
		elog.String("title", msg.Title))
	return channel.Succeeded(), nil
}
