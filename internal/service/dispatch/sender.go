package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/errs"
	"gitee.com/flycash/notification-policy/internal/repository"
	"gitee.com/flycash/notification-policy/internal/service/channel"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

// sender 把 pending 记录交给渠道，并把同步结果写回投递流水
type sender struct {
	provider    channel.Provider
	repo        repository.DeliveryRepository
	timeout     time.Duration
	concurrency int
	logger      *elog.Component
}

func newSender(provider channel.Provider, repo repository.DeliveryRepository, cfg Config) *sender {
	return &sender{
		provider:    provider,
		repo:        repo,
		timeout:     cfg.SendTimeout,
		concurrency: cfg.MaxConcurrency,
		logger:      elog.DefaultLogger,
	}
}

// deliver 并发发送，直接修改 records 里对应记录的状态。
// 单条记录的失败只会体现在这条记录上
func (s *sender) deliver(ctx context.Context, records []domain.DeliveryRecord) {
	var eg errgroup.Group
	eg.SetLimit(s.concurrency)
	for i := range records {
		eg.Go(func() error {
			s.deliverOne(ctx, &records[i])
			return nil
		})
	}
	_ = eg.Wait()
}

func (s *sender) deliverOne(ctx context.Context, r *domain.DeliveryRecord) {
	res, err := s.send(ctx, channel.Message{
		DeliveryID:      r.ID,
		Channel:         r.Channel,
		RecipientUserID: r.RecipientUserID,
		RecipientRole:   r.RecipientRole,
		Priority:        r.Priority,
		Title:           r.RenderedTitle,
		Body:            r.RenderedBody,
	})
	if err != nil {
		s.logger.Warn("渠道发送失败",
			elog.Any("deliveryID", r.ID),
			elog.String("channel", r.Channel.String()),
			elog.FieldErr(err))
		res = channel.Failed(err.Error())
	}
	if res.Status == domain.DeliveryStatusPending {
		// 异步渠道，结果之后通过回写接口上报
		return
	}
	s.resolve(ctx, r, res.Status, res.ErrorMessage)
}

// send 在 ctx 超时的时候直接返回，不等待不响应 ctx 的渠道实现
func (s *sender) send(ctx context.Context, msg channel.Message) (channel.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type resp struct {
		res channel.Result
		err error
	}
	ch := make(chan resp, 1)
	go func() {
		res, err := s.provider.Send(ctx, msg)
		ch <- resp{res: res, err: err}
	}()
	select {
	case r := <-ch:
		return r.res, r.err
	case <-ctx.Done():
		return channel.Result{}, fmt.Errorf("%w: 发送超时 %w", errs.ErrChannelDeliveryFailure, ctx.Err())
	}
}

func (s *sender) resolve(ctx context.Context, r *domain.DeliveryRecord, status domain.DeliveryStatus, errMsg string) {
	var deliveredAt int64
	if status == domain.DeliveryStatusSuccess {
		deliveredAt = time.Now().UnixMilli()
	}
	err := s.repo.Resolve(ctx, r.ID, status, deliveredAt, errMsg)
	switch {
	case err == nil:
		r.Status, r.DeliveredAt, r.ErrorMessage = status, deliveredAt, errMsg
	case errors.Is(err, errs.ErrDeliveryAlreadyResolved):
		// 异步回调先到了，以回调为准
		s.logger.Warn("投递记录已经有最终状态", elog.Any("deliveryID", r.ID))
		if latest, err1 := s.repo.GetByID(ctx, r.ID); err1 == nil {
			*r = latest
		}
	default:
		s.logger.Error("回写投递结果失败",
			elog.Any("deliveryID", r.ID),
			elog.String("status", status.String()),
			elog.FieldErr(err))
	}
}

// fail 直接把记录置为失败，不经过渠道
func (s *sender) fail(ctx context.Context, records []domain.DeliveryRecord, reason string) {
	for i := range records {
		s.resolve(ctx, &records[i], domain.DeliveryStatusFailed, reason)
	}
}
