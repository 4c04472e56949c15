package chatpolicy

import (
	"context"
	"fmt"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/errs"
	"gitee.com/flycash/notification-policy/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

// AdminService 权限矩阵、可用性配置和聊天限制的管理
//
//go:generate mockgen -source=./admin.go -destination=./mocks/admin.mock.go -package=chatpolicymocks AdminService
type AdminService interface {
	GetMatrix(ctx context.Context) (domain.PermissionMatrix, error)
	// ReplaceMatrix 整体替换权限矩阵
	ReplaceMatrix(ctx context.Context, matrix domain.PermissionMatrix) error
	SaveCell(ctx context.Context, from, to domain.Role, cell domain.PermissionCell) error

	GetSettings(ctx context.Context) (domain.ChatAvailabilitySettings, error)
	// SaveSettings s.Version 必须是读到的版本号，否则返回 errs.ErrSettingsVersionConflict
	SaveSettings(ctx context.Context, s domain.ChatAvailabilitySettings) (domain.ChatAvailabilitySettings, error)

	ListRestrictions(ctx context.Context, role domain.Role) ([]domain.ChatRestriction, error)
	CreateRestriction(ctx context.Context, r domain.ChatRestriction) (domain.ChatRestriction, error)
	UpdateRestriction(ctx context.Context, r domain.ChatRestriction) error
	DeleteRestriction(ctx context.Context, id uint64) error
}

type adminService struct {
	repo   repository.ChatRepository
	logger *elog.Component
}

func NewAdminService(repo repository.ChatRepository) AdminService {
	return &adminService{
		repo:   repo,
		logger: elog.DefaultLogger,
	}
}

func (a *adminService) GetMatrix(ctx context.Context) (domain.PermissionMatrix, error) {
	return a.repo.GetMatrix(ctx)
}

func (a *adminService) ReplaceMatrix(ctx context.Context, matrix domain.PermissionMatrix) error {
	if err := errs.NewValidationError(matrix.Validate()...); err != nil {
		return err
	}
	if err := a.repo.ReplaceMatrix(ctx, matrix); err != nil {
		return err
	}
	a.logger.Info("替换聊天权限矩阵", elog.Int("rows", len(matrix)))
	return nil
}

func (a *adminService) SaveCell(ctx context.Context, from, to domain.Role, cell domain.PermissionCell) error {
	var fields []errs.FieldError
	if !from.IsKnown() {
		fields = append(fields, errs.FieldError{Field: "from", Reason: fmt.Sprintf("未知角色 %q", from)})
	}
	if !to.IsKnown() {
		fields = append(fields, errs.FieldError{Field: "to", Reason: fmt.Sprintf("未知角色 %q", to)})
	}
	fields = append(fields, cell.Validate("cell")...)
	if err := errs.NewValidationError(fields...); err != nil {
		return err
	}
	return a.repo.SaveCell(ctx, from, to, cell)
}

func (a *adminService) GetSettings(ctx context.Context) (domain.ChatAvailabilitySettings, error) {
	return a.repo.GetSettings(ctx)
}

func (a *adminService) SaveSettings(ctx context.Context, s domain.ChatAvailabilitySettings) (domain.ChatAvailabilitySettings, error) {
	if s.DefaultHours == nil {
		s.DefaultHours = map[domain.Role]domain.ChatWindow{}
	}
	if s.Timezone == "" {
		s.Timezone = "UTC"
	}
	if err := errs.NewValidationError(s.Validate()...); err != nil {
		return domain.ChatAvailabilitySettings{}, err
	}
	saved, err := a.repo.SaveSettings(ctx, s)
	if err != nil {
		return domain.ChatAvailabilitySettings{}, err
	}
	a.logger.Info("保存聊天可用性配置", elog.Int64("version", saved.Version))
	return saved, nil
}

func (a *adminService) ListRestrictions(ctx context.Context, role domain.Role) ([]domain.ChatRestriction, error) {
	if role != "" && !role.IsKnown() {
		return nil, fmt.Errorf("%w: 未知角色 %q", errs.ErrInvalidParameter, role)
	}
	return a.repo.ListRestrictions(ctx, role)
}

func (a *adminService) CreateRestriction(ctx context.Context, r domain.ChatRestriction) (domain.ChatRestriction, error) {
	if err := errs.NewValidationError(r.Validate()...); err != nil {
		return domain.ChatRestriction{}, err
	}
	return a.repo.CreateRestriction(ctx, r)
}

func (a *adminService) UpdateRestriction(ctx context.Context, r domain.ChatRestriction) error {
	if r.ID == 0 {
		return fmt.Errorf("%w: id 不能为空", errs.ErrInvalidParameter)
	}
	if err := errs.NewValidationError(r.Validate()...); err != nil {
		return err
	}
	return a.repo.UpdateRestriction(ctx, r)
}

func (a *adminService) DeleteRestriction(ctx context.Context, id uint64) error {
	return a.repo.DeleteRestriction(ctx, id)
}
