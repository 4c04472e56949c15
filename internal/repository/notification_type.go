package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./notification_type.go -destination=./mocks/notification_type.mock.go -package=repomocks NotificationTypeRepository
type NotificationTypeRepository interface {
	Create(ctx context.Context, nt domain.NotificationType) (domain.NotificationType, error)
	GetByID(ctx context.Context, id uint64) (domain.NotificationType, error)
	// FindByIDs 包含已删除的通知类型，已删除的 IsActive 固定为 false
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.NotificationType, error)
	// Update nt.Version 为修改前读到的版本号
	Update(ctx context.Context, nt domain.NotificationType) error
	ToggleActive(ctx context.Context, id uint64) (bool, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter domain.NotificationTypeFilter) ([]domain.NotificationType, error)
	FindActiveByEvent(ctx context.Context, eventType string) ([]domain.NotificationType, error)
}

type notificationTypeRepository struct {
	dao    dao.NotificationTypeDAO
	logger *elog.Component
}

// NewNotificationTypeRepository 创建通知类型仓库实例
func NewNotificationTypeRepository(d dao.NotificationTypeDAO) NotificationTypeRepository {
	return &notificationTypeRepository{
		dao:    d,
		logger: elog.DefaultLogger,
	}
}

func (r *notificationTypeRepository) Create(ctx context.Context, nt domain.NotificationType) (domain.NotificationType, error) {
	entity, err := r.toEntity(nt)
	if err != nil {
		return domain.NotificationType{}, err
	}
	created, err := r.dao.Create(ctx, entity)
	if err != nil {
		return domain.NotificationType{}, err
	}
	return r.toDomain(created), nil
}

func (r *notificationTypeRepository) GetByID(ctx context.Context, id uint64) (domain.NotificationType, error) {
	entity, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.NotificationType{}, err
	}
	return r.toDomain(entity), nil
}

func (r *notificationTypeRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.NotificationType, error) {
	entities, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	res := make(map[uint64]domain.NotificationType, len(entities))
	for id, e := range entities {
		nt := r.toDomain(e)
		if e.Dtime > 0 {
			nt.IsActive = false
		}
		res[id] = nt
	}
	return res, nil
}

func (r *notificationTypeRepository) Update(ctx context.Context, nt domain.NotificationType) error {
	entity, err := r.toEntity(nt)
	if err != nil {
		return err
	}
	return r.dao.Update(ctx, entity)
}

func (r *notificationTypeRepository) ToggleActive(ctx context.Context, id uint64) (bool, error) {
	return r.dao.ToggleActive(ctx, id)
}

func (r *notificationTypeRepository) Delete(ctx context.Context, id uint64) error {
	return r.dao.SoftDelete(ctx, id)
}

func (r *notificationTypeRepository) List(ctx context.Context, filter domain.NotificationTypeFilter) ([]domain.NotificationType, error) {
	list, err := r.dao.List(ctx, dao.NotificationTypeQuery{
		Search: filter.Search,
		Role:   filter.Role.String(),
		Active: filter.Active,
		Offset: filter.Offset,
		Limit:  filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	return slice.Map(list, func(_ int, src dao.NotificationType) domain.NotificationType {
		return r.toDomain(src)
	}), nil
}

func (r *notificationTypeRepository) FindActiveByEvent(ctx context.Context, eventType string) ([]domain.NotificationType, error) {
	list, err := r.dao.FindActiveByEvent(ctx, eventType)
	if err != nil {
		return nil, err
	}
	return slice.Map(list, func(_ int, src dao.NotificationType) domain.NotificationType {
		return r.toDomain(src)
	}), nil
}

func (r *notificationTypeRepository) toEntity(nt domain.NotificationType) (dao.NotificationType, error) {
	roles, err := json.Marshal(nt.Roles)
	if err != nil {
		return dao.NotificationType{}, fmt.Errorf("序列化角色失败: %w", err)
	}
	channels, err := json.Marshal(nt.Channels)
	if err != nil {
		return dao.NotificationType{}, fmt.Errorf("序列化渠道失败: %w", err)
	}
	schedule, err := json.Marshal(nt.Schedule)
	if err != nil {
		return dao.NotificationType{}, fmt.Errorf("序列化调度配置失败: %w", err)
	}
	return dao.NotificationType{
		ID:              nt.ID,
		Title:           nt.Title,
		MessageTemplate: nt.MessageTemplate,
		EventType:       nt.EventType,
		Roles:           string(roles),
		Channels:        string(channels),
		IsActive:        nt.IsActive,
		Priority:        string(nt.Priority),
		ScheduleType:    string(nt.Schedule.Type),
		Schedule:        string(schedule),
		Version:         nt.Version,
		Ctime:           nt.Ctime,
		Utime:           nt.Utime,
	}, nil
}

// toDomain JSON 列损坏时只记录日志，对应字段保持零值
func (r *notificationTypeRepository) toDomain(e dao.NotificationType) domain.NotificationType {
	nt := domain.NotificationType{
		ID:              e.ID,
		Title:           e.Title,
		MessageTemplate: e.MessageTemplate,
		EventType:       e.EventType,
		IsActive:        e.IsActive,
		Priority:        domain.Priority(e.Priority),
		Version:         e.Version,
		Ctime:           e.Ctime,
		Utime:           e.Utime,
	}
	if err := json.Unmarshal([]byte(e.Roles), &nt.Roles); err != nil {
		r.logger.Error("通知类型角色反序列化失败", elog.FieldErr(err), elog.Any("id", e.ID))
	}
	if err := json.Unmarshal([]byte(e.Channels), &nt.Channels); err != nil {
		r.logger.Error("通知类型渠道反序列化失败", elog.FieldErr(err), elog.Any("id", e.ID))
	}
	if err := json.Unmarshal([]byte(e.Schedule), &nt.Schedule); err != nil {
		r.logger.Error("通知类型调度配置反序列化失败", elog.FieldErr(err), elog.Any("id", e.ID))
		nt.Schedule = domain.ImmediateSchedule()
	}
	return nt
}
