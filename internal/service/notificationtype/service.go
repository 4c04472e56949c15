package notificationtype

import (
	"context"
	"fmt"
	"strings"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/errs"
	"gitee.com/flycash/notification-policy/internal/repository"
	"gitee.com/flycash/notification-policy/internal/service/registry"
	"github.com/gotomicro/ego/core/elog"
	"github.com/sony/sonyflake"
)

// Service 通知类型管理
//
//go:generate mockgen -source=./service.go -destination=./mocks/service.mock.go -package=notificationtypemocks Service
type Service interface {
	// Create 校验失败时返回 *errs.ValidationError，包含全部不合法的字段
	Create(ctx context.Context, nt domain.NotificationType) (domain.NotificationType, error)
	// Update 部分更新，调度配置是合并而不是整体替换
	Update(ctx context.Context, id uint64, patch domain.NotificationTypePatch) (domain.NotificationType, error)
	// ToggleActive 翻转启用状态，返回翻转后的值
	ToggleActive(ctx context.Context, id uint64) (bool, error)
	// Delete 软删除
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (domain.NotificationType, error)
	List(ctx context.Context, filter domain.NotificationTypeFilter) ([]domain.NotificationType, error)
	// FindActiveByEvent 绑定到事件上的、启用的、未删除的通知类型
	FindActiveByEvent(ctx context.Context, eventType string) ([]domain.NotificationType, error)
}

type service struct {
	repo        repository.NotificationTypeRepository
	registry    registry.Service
	idGenerator *sonyflake.Sonyflake
	logger      *elog.Component
}

func NewService(repo repository.NotificationTypeRepository, reg registry.Service, idGenerator *sonyflake.Sonyflake) Service {
	return &service{
		repo:        repo,
		registry:    reg,
		idGenerator: idGenerator,
		logger:      elog.DefaultLogger,
	}
}

func (s *service) Create(ctx context.Context, nt domain.NotificationType) (domain.NotificationType, error) {
	nt = s.normalize(nt)
	if err := s.validate(ctx, nt); err != nil {
		return domain.NotificationType{}, err
	}
	id, err := s.idGenerator.NextID()
	if err != nil {
		return domain.NotificationType{}, fmt.Errorf("生成ID失败: %w", err)
	}
	nt.ID = id
	return s.repo.Create(ctx, nt)
}

func (s *service) Update(ctx context.Context, id uint64, patch domain.NotificationTypePatch) (domain.NotificationType, error) {
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.NotificationType{}, err
	}
	if patch.Version != 0 && patch.Version != cur.Version {
		return domain.NotificationType{}, fmt.Errorf("%w: 当前版本 %d, 请求版本 %d",
			errs.ErrNotificationTypeVersionMismatch, cur.Version, patch.Version)
	}
	updated := s.normalize(cur.Apply(patch))
	if err = s.validate(ctx, updated); err != nil {
		return domain.NotificationType{}, err
	}
	if err = s.repo.Update(ctx, updated); err != nil {
		return domain.NotificationType{}, err
	}
	updated.Version++
	return updated, nil
}

func (s *service) ToggleActive(ctx context.Context, id uint64) (bool, error) {
	active, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return false, err
	}
	s.logger.Info("切换通知类型启用状态", elog.Any("id", id), elog.Any("isActive", active))
	return active, nil
}

func (s *service) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Get(ctx context.Context, id uint64) (domain.NotificationType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter domain.NotificationTypeFilter) ([]domain.NotificationType, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Role != "" && !filter.Role.IsKnown() {
		return nil, fmt.Errorf("%w: 未知角色 %q", errs.ErrInvalidParameter, filter.Role)
	}
	return s.repo.List(ctx, filter)
}

func (s *service) FindActiveByEvent(ctx context.Context, eventType string) ([]domain.NotificationType, error) {
	return s.repo.FindActiveByEvent(ctx, eventType)
}

func (s *service) normalize(nt domain.NotificationType) domain.NotificationType {
	nt.Title = strings.TrimSpace(nt.Title)
	nt.EventType = strings.TrimSpace(nt.EventType)
	if nt.Priority == "" {
		nt.Priority = domain.PriorityMedium
	}
	nt.Roles = dedupRoles(nt.Roles)
	nt.Schedule = nt.Schedule.Normalize()
	return nt
}

// validate 字段校验和事件是否注册的校验结果合并在一起返回
func (s *service) validate(ctx context.Context, nt domain.NotificationType) error {
	violations := nt.Validate()
	if nt.EventType != "" {
		ok, err := s.registry.Exists(ctx, nt.EventType)
		if err != nil {
			return err
		}
		if !ok {
			violations = append(violations, errs.FieldError{
				Field:  "eventType",
				Reason: fmt.Sprintf("事件 %q 未注册", nt.EventType),
			})
		}
	}
	return errs.NewValidationError(violations...)
}

func dedupRoles(roles []domain.Role) []domain.Role {
	if roles == nil {
		return nil
	}
	seen := make(map[domain.Role]struct{}, len(roles))
	res := make([]domain.Role, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		res = append(res, r)
	}
	return res
}
