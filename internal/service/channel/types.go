package channel

import (
	"context"

	"gitee.com/flycash/notification-policy/internal/domain"
)

// Message 交给渠道供应商的一条消息
type Message struct {
	DeliveryID      uint64
	Channel         domain.Channel
	RecipientUserID string
	RecipientRole   domain.Role
	Priority        domain.Priority
	Title           string
	Body            string
}

// Result 供应商的同步应答。
// Status 为 pending 表示供应商已受理，最终结果之后通过投递结果回写接口上报
type Result struct {
	Status       domain.DeliveryStatus
	ErrorMessage string
}

func Succeeded() Result {
	return Result{Status: domain.DeliveryStatusSuccess}
}

func Accepted() Result {
	return Result{Status: domain.DeliveryStatusPending}
}

func Failed(msg string) Result {
	return Result{Status: domain.DeliveryStatusFailed, ErrorMessage: msg}
}

// Provider 渠道供应商，调用方会给 ctx 设置超时，实现需要响应 ctx 的取消
//
//go:generate mockgen -source=./types.go -destination=./mocks/provider.mock.go -package=channelmocks Provider
type Provider interface {
	Send(ctx context.Context, msg Message) (Result, error)
}
