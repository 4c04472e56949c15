package repository

import (
	"context"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

//go:generate mockgen -source=./delivery.go -destination=./mocks/delivery.mock.go -package=repomocks DeliveryRepository
type DeliveryRepository interface {
	// BatchCreate 同一次发出的记录一起写入
	BatchCreate(ctx context.Context, records []domain.DeliveryRecord) ([]domain.DeliveryRecord, error)
	GetByID(ctx context.Context, id uint64) (domain.DeliveryRecord, error)
	// Resolve pending -> success|failed，重复处理返回 errs.ErrDeliveryAlreadyResolved
	Resolve(ctx context.Context, id uint64, status domain.DeliveryStatus, deliveredAt int64, errMsg string) error
	List(ctx context.Context, filter domain.DeliveryFilter) ([]domain.DeliveryRecord, int64, error)
	// Scroll 游标翻页，按 id 倒序，只看 filter.BeforeID 和 filter.Limit，忽略 Offset
	Scroll(ctx context.Context, filter domain.DeliveryFilter) ([]domain.DeliveryRecord, error)
	FindDueDeferred(ctx context.Context, now int64, limit int) ([]domain.DeliveryRecord, error)
	FindPendingDeferred(ctx context.Context, typeID uint64, scheduledAt int64) ([]domain.DeliveryRecord, error)
	MarkDispatched(ctx context.Context, ids []uint64) error
	Stats(ctx context.Context, filter domain.DeliveryFilter) ([]domain.DeliveryStat, error)
}

type deliveryRepository struct {
	dao dao.DeliveryDAO
}

// NewDeliveryRepository 创建投递流水仓库实例
func NewDeliveryRepository(d dao.DeliveryDAO) DeliveryRepository {
	return &deliveryRepository{dao: d}
}

func (r *deliveryRepository) BatchCreate(ctx context.Context, records []domain.DeliveryRecord) ([]domain.DeliveryRecord, error) {
	entities := slice.Map(records, func(_ int, src domain.DeliveryRecord) dao.DeliveryRecord {
		return r.toEntity(src)
	})
	created, err := r.dao.BatchCreate(ctx, entities)
	if err != nil {
		return nil, err
	}
	return r.toDomains(created), nil
}

func (r *deliveryRepository) GetByID(ctx context.Context, id uint64) (domain.DeliveryRecord, error) {
	e, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.DeliveryRecord{}, err
	}
	return r.toDomain(e), nil
}

func (r *deliveryRepository) Resolve(ctx context.Context, id uint64, status domain.DeliveryStatus, deliveredAt int64, errMsg string) error {
	return r.dao.Resolve(ctx, id, string(status), deliveredAt, errMsg)
}

func (r *deliveryRepository) List(ctx context.Context, filter domain.DeliveryFilter) ([]domain.DeliveryRecord, int64, error) {
	list, total, err := r.dao.List(ctx, r.toQuery(filter))
	if err != nil {
		return nil, 0, err
	}
	return r.toDomains(list), total, nil
}

func (r *deliveryRepository) Scroll(ctx context.Context, filter domain.DeliveryFilter) ([]domain.DeliveryRecord, error) {
	list, err := r.dao.Scroll(ctx, r.toQuery(filter))
	if err != nil {
		return nil, err
	}
	return r.toDomains(list), nil
}

func (r *deliveryRepository) FindDueDeferred(ctx context.Context, now int64, limit int) ([]domain.DeliveryRecord, error) {
	list, err := r.dao.FindDueDeferred(ctx, now, limit)
	if err != nil {
		return nil, err
	}
	return r.toDomains(list), nil
}

func (r *deliveryRepository) FindPendingDeferred(ctx context.Context, typeID uint64, scheduledAt int64) ([]domain.DeliveryRecord, error) {
	list, err := r.dao.FindPendingDeferred(ctx, typeID, scheduledAt)
	if err != nil {
		return nil, err
	}
	return r.toDomains(list), nil
}

func (r *deliveryRepository) MarkDispatched(ctx context.Context, ids []uint64) error {
	return r.dao.MarkDispatched(ctx, ids)
}

func (r *deliveryRepository) Stats(ctx context.Context, filter domain.DeliveryFilter) ([]domain.DeliveryStat, error) {
	list, err := r.dao.Stats(ctx, r.toQuery(filter))
	if err != nil {
		return nil, err
	}
	return slice.Map(list, func(_ int, src dao.DeliveryStat) domain.DeliveryStat {
		return domain.DeliveryStat{
			Channel: domain.Channel(src.Channel),
			Status:  domain.DeliveryStatus(src.Status),
			Count:   src.Cnt,
		}
	}), nil
}

func (r *deliveryRepository) toQuery(f domain.DeliveryFilter) dao.DeliveryQuery {
	return dao.DeliveryQuery{
		NotificationTypeID: f.NotificationTypeID,
		Channel:            string(f.Channel),
		Status:             string(f.Status),
		RecipientRole:      string(f.RecipientRole),
		RecipientUserID:    f.RecipientUserID,
		EmissionID:         f.EmissionID,
		SentFrom:           f.SentFrom,
		SentTo:             f.SentTo,
		BeforeID:           f.BeforeID,
		Offset:             f.Offset,
		Limit:              f.Limit,
	}
}

func (r *deliveryRepository) toDomains(list []dao.DeliveryRecord) []domain.DeliveryRecord {
	return slice.Map(list, func(_ int, src dao.DeliveryRecord) domain.DeliveryRecord {
		return r.toDomain(src)
	})
}

func (r *deliveryRepository) toEntity(d domain.DeliveryRecord) dao.DeliveryRecord {
	return dao.DeliveryRecord{
		ID:                 d.ID,
		EmissionID:         d.EmissionID,
		NotificationTypeID: d.NotificationTypeID,
		RecipientUserID:    d.RecipientUserID,
		Channel:            string(d.Channel),
		EventType:          d.EventType,
		RecipientRole:      string(d.RecipientRole),
		Priority:           string(d.Priority),
		Status:             string(d.Status),
		RenderedTitle:      d.RenderedTitle,
		RenderedBody:       d.RenderedBody,
		Deferred:           d.Deferred,
		SentAt:             d.SentAt,
		ScheduledAt:        d.ScheduledAt,
		DeliveredAt:        d.DeliveredAt,
		ErrorMessage:       d.ErrorMessage,
	}
}

func (r *deliveryRepository) toDomain(e dao.DeliveryRecord) domain.DeliveryRecord {
	return domain.DeliveryRecord{
		ID:                 e.ID,
		EmissionID:         e.EmissionID,
		EventType:          e.EventType,
		NotificationTypeID: e.NotificationTypeID,
		RecipientUserID:    e.RecipientUserID,
		RecipientRole:      domain.Role(e.RecipientRole),
		Channel:            domain.Channel(e.Channel),
		Priority:           domain.Priority(e.Priority),
		Status:             domain.DeliveryStatus(e.Status),
		RenderedTitle:      e.RenderedTitle,
		RenderedBody:       e.RenderedBody,
		SentAt:             e.SentAt,
		ScheduledAt:        e.ScheduledAt,
		Deferred:           e.Deferred,
		DeliveredAt:        e.DeliveredAt,
		ErrorMessage:       e.ErrorMessage,
	}
}
