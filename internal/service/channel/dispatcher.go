package channel

import (
	"context"
	"fmt"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/errs"
)

var _ Provider = (*Dispatcher)(nil)

// Dispatcher 按渠道分发，对外伪装成 Provider，作为统一入口
type Dispatcher struct {
	providers map[domain.Channel]Provider
}

func NewDispatcher(providers map[domain.Channel]Provider) *Dispatcher {
	return &Dispatcher{providers: providers}
}

func (d *Dispatcher) Send(ctx context.Context, msg Message) (Result, error) {
	p, ok := d.providers[msg.Channel]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", errs.ErrNoAvailableChannel, msg.Channel)
	}
	return p.Send(ctx, msg)
}
