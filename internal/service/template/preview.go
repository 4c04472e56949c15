package template

import (
	"context"

	"gitee.com/flycash/notification-policy/internal/service/registry"
)

// Preview 运营配置模板时的预览，和实际投递使用同一套变量目录和渲染逻辑
type Preview struct {
	registry registry.Service
}

func NewPreview(reg registry.Service) *Preview {
	return &Preview{registry: reg}
}

// Render eventType 未注册时返回 errs.ErrUnknownEvent
func (p *Preview) Render(ctx context.Context, eventType, tpl string, bindings map[string]any) (string, error) {
	catalog, err := p.registry.Catalog(ctx, eventType)
	if err != nil {
		return "", err
	}
	return Render(tpl, Bindings(bindings), catalog), nil
}
