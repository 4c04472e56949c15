package dispatch

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/repository"
	"gitee.com/flycash/notification-policy/internal/service/channel"
	"gitee.com/flycash/notification-policy/internal/service/directory"
	"gitee.com/flycash/notification-policy/internal/service/notificationtype"
	"gitee.com/flycash/notification-policy/internal/service/registry"
	"gitee.com/flycash/notification-policy/internal/service/template"
	"github.com/gofrs/uuid"
	"github.com/gotomicro/ego/core/elog"
	"github.com/sony/sonyflake"
)

const reasonNoFutureOccurrence = "schedule has no future occurrence"

// Engine 事件发出之后的通知分发。
// 生产事件和运营手动触发的测试通知都走 Emit
//
//go:generate mockgen -source=./engine.go -destination=./mocks/engine.mock.go -package=dispatchmocks Engine
type Engine interface {
	// Emit 返回这次发出创建的全部投递记录，立即发送的记录已经带上了同步结果。
	// 事件未注册返回 errs.ErrUnknownEvent；没有匹配的通知类型返回空切片
	Emit(ctx context.Context, eventKey string, payload map[string]any) ([]domain.DeliveryRecord, error)
}

type engine struct {
	registry    registry.Service
	types       notificationtype.Service
	directory   directory.Directory
	repo        repository.DeliveryRepository
	sender      *sender
	idGenerator *sonyflake.Sonyflake
	logger      *elog.Component
	now         func() time.Time
}

func NewEngine(
	reg registry.Service,
	types notificationtype.Service,
	dir directory.Directory,
	repo repository.DeliveryRepository,
	provider channel.Provider,
	idGenerator *sonyflake.Sonyflake,
	cfg Config,
) Engine {
	cfg = cfg.withDefaults()
	return &engine{
		registry:    reg,
		types:       types,
		directory:   dir,
		repo:        repo,
		sender:      newSender(provider, repo, cfg),
		idGenerator: idGenerator,
		logger:      elog.DefaultLogger,
		now:         time.Now,
	}
}

func (e *engine) Emit(ctx context.Context, eventKey string, payload map[string]any) ([]domain.DeliveryRecord, error) {
	catalog, err := e.registry.Catalog(ctx, eventKey)
	if err != nil {
		return nil, err
	}
	types, err := e.types.FindActiveByEvent(ctx, eventKey)
	if err != nil {
		return nil, fmt.Errorf("查找通知类型失败: %w", err)
	}
	if len(types) == 0 {
		return []domain.DeliveryRecord{}, nil
	}

	emissionID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("生成发出ID失败: %w", err)
	}
	emittedAt := e.now()
	bindings := template.Bindings(payload)

	var records []domain.DeliveryRecord
	for i := range types {
		list, err1 := e.build(ctx, emissionID.String(), emittedAt, types[i], bindings, catalog)
		if err1 != nil {
			return nil, err1
		}
		records = append(records, list...)
	}
	if len(records) == 0 {
		return []domain.DeliveryRecord{}, nil
	}

	records, err = e.repo.BatchCreate(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("创建投递记录失败: %w", err)
	}

	// 立即发送的记录和已经没有发送时间点的定时记录在这里就有最终状态
	var immediate, expired []int
	for i := range records {
		switch {
		case records[i].Deferred:
		case records[i].ScheduledAt == 0:
			expired = append(expired, i)
		default:
			immediate = append(immediate, i)
		}
	}
	e.deliverAt(ctx, records, immediate)
	for _, idx := range expired {
		e.sender.resolve(ctx, &records[idx], domain.DeliveryStatusFailed, reasonNoFutureOccurrence)
	}
	e.logger.Info("事件发出完成",
		elog.String("eventKey", eventKey),
		elog.String("emissionID", emissionID.String()),
		elog.Int("records", len(records)))
	return records, nil
}

// deliverAt 只发送 idx 指向的那些记录，结果写回 records
func (e *engine) deliverAt(ctx context.Context, records []domain.DeliveryRecord, idx []int) {
	if len(idx) == 0 {
		return
	}
	batch := make([]domain.DeliveryRecord, 0, len(idx))
	for _, i := range idx {
		batch = append(batch, records[i])
	}
	e.sender.deliver(ctx, batch)
	for j, i := range idx {
		records[i] = batch[j]
	}
}

// build 接收人 × 开启的渠道，每一对一条记录，模板在这里就渲染好
func (e *engine) build(
	ctx context.Context,
	emissionID string,
	emittedAt time.Time,
	nt domain.NotificationType,
	bindings map[string]string,
	catalog []domain.TemplateVariable,
) ([]domain.DeliveryRecord, error) {
	users, err := e.directory.UsersByRoles(ctx, nt.Roles)
	if err != nil {
		return nil, fmt.Errorf("查找接收人失败: %w", err)
	}
	channels := nt.Channels.Enabled()
	if len(users) == 0 || len(channels) == 0 {
		return nil, nil
	}

	title := template.Render(nt.Title, bindings, catalog)
	body := template.Render(nt.MessageTemplate, bindings, catalog)
	sentAt := emittedAt.UnixMilli()
	scheduledAt, deferred := sentAt, false
	if nt.Schedule.IsScheduled() {
		// 没有后续发送时间点的定时记录 ScheduledAt 为 0，不交给调度任务
		scheduledAt = 0
		if next, ok := nt.Schedule.Next(emittedAt); ok {
			scheduledAt, deferred = next.UnixMilli(), true
		}
	}

	res := make([]domain.DeliveryRecord, 0, len(users)*len(channels))
	for _, u := range users {
		for _, ch := range channels {
			id, err1 := e.idGenerator.NextID()
			if err1 != nil {
				return nil, fmt.Errorf("生成投递记录ID失败: %w", err1)
			}
			res = append(res, domain.DeliveryRecord{
				ID:                 id,
				EmissionID:         emissionID,
				EventType:          nt.EventType,
				NotificationTypeID: nt.ID,
				RecipientUserID:    u.ID,
				RecipientRole:      u.Role,
				Channel:            ch,
				Priority:           nt.Priority,
				Status:             domain.DeliveryStatusPending,
				RenderedTitle:      title,
				RenderedBody:       body,
				SentAt:             sentAt,
				ScheduledAt:        scheduledAt,
				Deferred:           deferred,
			})
		}
	}
	return res, nil
}
