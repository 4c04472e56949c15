package dispatch

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/pkg/idempotent"
	"gitee.com/flycash/notification-policy/internal/pkg/loopjob"
	"gitee.com/flycash/notification-policy/internal/repository"
	"gitee.com/flycash/notification-policy/internal/service/channel"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
)

const reasonTypeInactive = "notification type inactive"

// ScheduledTask 投递到期的定时记录。
// 同一个通知类型的同一个发送时间点只会被一个实例认领
type ScheduledTask struct {
	dclient  dlock.Client
	repo     repository.DeliveryRepository
	typeRepo repository.NotificationTypeRepository
	claims   idempotent.IdempotencyService
	sender   *sender
	cfg      Config
	logger   *elog.Component
	now      func() time.Time
}

func NewScheduledTask(
	dclient dlock.Client,
	repo repository.DeliveryRepository,
	typeRepo repository.NotificationTypeRepository,
	claims idempotent.IdempotencyService,
	provider channel.Provider,
	cfg Config,
) *ScheduledTask {
	cfg = cfg.withDefaults()
	return &ScheduledTask{
		dclient:  dclient,
		repo:     repo,
		typeRepo: typeRepo,
		claims:   claims,
		sender:   newSender(provider, repo, cfg),
		cfg:      cfg,
		logger:   elog.DefaultLogger,
		now:      time.Now,
	}
}

func (t *ScheduledTask) Start(ctx context.Context) {
	const key = "notification_policy_scheduled_delivery"
	lj := loopjob.NewInfiniteLoop(t.dclient, t.HandleDue, key,
		loopjob.WithRetryInterval(t.cfg.ScheduleInterval))
	lj.Run(ctx)
}

// occurrence 一个通知类型的一个发送时间点
type occurrence struct {
	typeID      uint64
	scheduledAt int64
}

func (o occurrence) key() string {
	return fmt.Sprintf("%d:%d", o.typeID, o.scheduledAt)
}

func (t *ScheduledTask) HandleDue(ctx context.Context) error {
	start := t.now()
	due, err := t.repo.FindDueDeferred(ctx, start.UnixMilli(), t.cfg.ScheduleBatchSize)
	if err != nil {
		return err
	}
	occurrences := t.group(due)
	if len(occurrences) > 0 {
		ids := slice.Map(occurrences, func(_ int, src occurrence) uint64 { return src.typeID })
		types, err1 := t.typeRepo.FindByIDs(ctx, ids)
		if err1 != nil {
			return err1
		}
		for _, o := range occurrences {
			t.handle(ctx, o, types)
		}
	}
	// 到期的不多，可以休息一下
	if len(due) < t.cfg.ScheduleBatchSize {
		t.sleep(ctx, t.cfg.ScheduleInterval-time.Since(start))
	}
	return nil
}

func (t *ScheduledTask) handle(ctx context.Context, o occurrence, types map[uint64]domain.NotificationType) {
	ok, err := t.claims.Claim(ctx, o.key(), t.cfg.ClaimTTL)
	if err != nil {
		t.logger.Error("认领定时发送失败", elog.String("occurrence", o.key()), elog.FieldErr(err))
		return
	}
	if !ok {
		return
	}
	// 记录都已标记为已派发才释放认领，释放之后才提交的记录由下一轮调度处理
	defer func() {
		if er := t.claims.Release(context.WithoutCancel(ctx), o.key()); er != nil {
			t.logger.Warn("释放定时发送认领失败", elog.String("occurrence", o.key()), elog.FieldErr(er))
		}
	}()
	nt, found := types[o.typeID]
	active := found && nt.IsActive
	total := 0
	for {
		records, err := t.repo.FindPendingDeferred(ctx, o.typeID, o.scheduledAt)
		if err != nil {
			t.logger.Error("查找定时记录失败", elog.String("occurrence", o.key()), elog.FieldErr(err))
			return
		}
		if len(records) == 0 {
			break
		}
		ids := slice.Map(records, func(_ int, src domain.DeliveryRecord) uint64 { return src.ID })
		if err = t.repo.MarkDispatched(ctx, ids); err != nil {
			t.logger.Error("标记定时记录失败", elog.String("occurrence", o.key()), elog.FieldErr(err))
			return
		}
		if active {
			t.sender.deliver(ctx, records)
		} else {
			t.sender.fail(ctx, records, reasonTypeInactive)
		}
		total += len(records)
	}
	if total > 0 {
		t.logger.Info("定时发送完成", elog.String("occurrence", o.key()), elog.Int("records", total))
	}
}

// group 按通知类型和发送时间点分组，保持出现的顺序
func (t *ScheduledTask) group(records []domain.DeliveryRecord) []occurrence {
	seen := make(map[occurrence]struct{}, len(records))
	res := make([]occurrence, 0, len(records))
	for _, r := range records {
		o := occurrence{typeID: r.NotificationTypeID, scheduledAt: r.ScheduledAt}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		res = append(res, o)
	}
	return res
}

func (t *ScheduledTask) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
