package tracing

import (
	"context"
	"strconv"

	"gitee.com/flycash/notification-policy/internal/service/channel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Provider 为供应商实现添加链路追踪的装饰器
type Provider struct {
	provider channel.Provider
	tracer   trace.Tracer
}

func NewProvider(p channel.Provider) *Provider {
	return &Provider{
		provider: p,
		tracer:   otel.Tracer("notification-policy/channel"),
	}
}

func (p *Provider) Send(ctx context.Context, msg channel.Message) (channel.Result, error) {
	ctx, span := p.tracer.Start(ctx, "Provider.Send",
		trace.WithAttributes(
			attribute.String("delivery.id", strconv.FormatUint(msg.DeliveryID, 10)),
			attribute.String("delivery.channel", msg.Channel.String()),
			attribute.String("delivery.recipient", msg.RecipientUserID),
		))
	defer span.End()

	res, err := p.provider.Send(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("delivery.status", res.Status.String()))
	}
	return res, err
}
