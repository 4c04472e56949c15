package channel

import (
	"context"
	"fmt"

	"gitee.com/flycash/notification-policy/internal/errs"
	"github.com/hashicorp/go-multierror"
)

var _ Provider = (*FailoverProvider)(nil)

// FailoverProvider 同一个渠道配置多个供应商时，按顺序尝试，前一个返回错误才换下一个。
// 供应商明确返回 failed 结果时不再重试
type FailoverProvider struct {
	providers []Provider
}

func NewFailoverProvider(providers ...Provider) *FailoverProvider {
	return &FailoverProvider{providers: providers}
}

func (f *FailoverProvider) Send(ctx context.Context, msg Message) (Result, error) {
	if len(f.providers) == 0 {
		return Result{}, fmt.Errorf("%w: %s", errs.ErrNoAvailableChannel, msg.Channel)
	}
	var merr *multierror.Error
	for _, p := range f.providers {
		res, err := p.Send(ctx, msg)
		if err == nil {
			return res, nil
		}
		merr = multierror.Append(merr, err)
		if ctx.Err() != nil {
			break
		}
	}
	return Result{}, fmt.Errorf("%w: %w", errs.ErrChannelDeliveryFailure, merr.ErrorOrNil())
}
