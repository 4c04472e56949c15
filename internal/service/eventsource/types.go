package eventsource

import (
	"context"

	"gitee.com/flycash/notification-policy/internal/domain"
)

// Source 宿主应用能够发出的事件以及每个事件可用的模板变量
//
//go:generate mockgen -source=./types.go -destination=./mocks/source.mock.go -package=eventsourcemocks Source
type Source interface {
	// Events 枚举全部可发出的事件，无法枚举时返回错误
	Events(ctx context.Context) ([]domain.EventDescriptor, error)
	// Catalog 事件的模板变量，按声明顺序返回。未声明的事件返回空列表
	Catalog(ctx context.Context, eventKey string) ([]domain.TemplateVariable, error)
}
