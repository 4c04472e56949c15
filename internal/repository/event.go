package repository

import (
	"context"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

//go:generate mockgen -source=./event.go -destination=./mocks/event.mock.go -package=repomocks EventRepository
type EventRepository interface {
	// Create key 已存在时返回 errs.ErrEventDuplicate
	Create(ctx context.Context, e domain.EventDescriptor) (domain.EventDescriptor, error)
	FindAll(ctx context.Context) ([]domain.EventDescriptor, error)
	FindByKeys(ctx context.Context, keys []string) ([]domain.EventDescriptor, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

type eventRepository struct {
	dao dao.EventDAO
}

// NewEventRepository 创建事件仓库实例
func NewEventRepository(d dao.EventDAO) EventRepository {
	return &eventRepository{dao: d}
}

func (r *eventRepository) Create(ctx context.Context, e domain.EventDescriptor) (domain.EventDescriptor, error) {
	created, err := r.dao.Insert(ctx, dao.EventDescriptor{Key: e.Key, Label: e.Label})
	if err != nil {
		return domain.EventDescriptor{}, err
	}
	return r.toDomain(created), nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]domain.EventDescriptor, error) {
	list, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return slice.Map(list, func(_ int, src dao.EventDescriptor) domain.EventDescriptor {
		return r.toDomain(src)
	}), nil
}

func (r *eventRepository) FindByKeys(ctx context.Context, keys []string) ([]domain.EventDescriptor, error) {
	list, err := r.dao.FindByKeys(ctx, keys)
	if err != nil {
		return nil, err
	}
	return slice.Map(list, func(_ int, src dao.EventDescriptor) domain.EventDescriptor {
		return r.toDomain(src)
	}), nil
}

func (r *eventRepository) Exists(ctx context.Context, key string) (bool, error) {
	return r.dao.Exists(ctx, key)
}

func (r *eventRepository) Delete(ctx context.Context, key string) error {
	return r.dao.Delete(ctx, key)
}

func (r *eventRepository) toDomain(e dao.EventDescriptor) domain.EventDescriptor {
	return domain.EventDescriptor{
		Key:   e.Key,
		Label: e.Label,
		Ctime: e.Ctime,
	}
}
