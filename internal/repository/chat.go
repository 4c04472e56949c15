package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/repository/cache"
	"gitee.com/flycash/notification-policy/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	"gorm.io/gorm"
)

//go:generate mockgen -source=./chat.go -destination=./mocks/chat.mock.go -package=repomocks ChatRepository
type ChatRepository interface {
	GetMatrix(ctx context.Context) (domain.PermissionMatrix, error)
	ReplaceMatrix(ctx context.Context, matrix domain.PermissionMatrix) error
	SaveCell(ctx context.Context, from, to domain.Role, cell domain.PermissionCell) error

	// GetSettings 没有保存过时返回默认配置，版本号为 0
	GetSettings(ctx context.Context) (domain.ChatAvailabilitySettings, error)
	// SaveSettings s.Version 为修改前读到的版本号，返回保存后的配置
	SaveSettings(ctx context.Context, s domain.ChatAvailabilitySettings) (domain.ChatAvailabilitySettings, error)

	ListRestrictions(ctx context.Context, role domain.Role) ([]domain.ChatRestriction, error)
	CreateRestriction(ctx context.Context, r domain.ChatRestriction) (domain.ChatRestriction, error)
	UpdateRestriction(ctx context.Context, r domain.ChatRestriction) error
	DeleteRestriction(ctx context.Context, id uint64) error
}

type chatRepository struct {
	dao           dao.ChatDAO
	localSettings cache.ChatSettingsCache
	redisSettings cache.ChatSettingsCache
	matrixCache   cache.PermissionMatrixCache
	logger        *elog.Component
}

// NewChatRepository 配置读多写少，读走 本地缓存 -> redis -> 数据库，写入数据库后删除缓存
func NewChatRepository(
	d dao.ChatDAO,
	localSettings cache.ChatSettingsCache,
	redisSettings cache.ChatSettingsCache,
	matrixCache cache.PermissionMatrixCache,
) ChatRepository {
	return &chatRepository{
		dao:           d,
		localSettings: localSettings,
		redisSettings: redisSettings,
		matrixCache:   matrixCache,
		logger:        elog.DefaultLogger,
	}
}

func (r *chatRepository) GetMatrix(ctx context.Context) (domain.PermissionMatrix, error) {
	m, err := r.matrixCache.Get(ctx)
	if err == nil {
		return m, nil
	}
	perms, err := r.dao.FindAllPermissions(ctx)
	if err != nil {
		return nil, err
	}
	m = make(domain.PermissionMatrix)
	for i := range perms {
		m.Set(domain.Role(perms[i].FromRole), domain.Role(perms[i].ToRole), r.cellToDomain(perms[i]))
	}
	if err1 := r.matrixCache.Set(ctx, m); err1 != nil {
		r.logger.Warn("缓存权限矩阵失败", elog.FieldErr(err1))
	}
	return m, nil
}

func (r *chatRepository) ReplaceMatrix(ctx context.Context, m domain.PermissionMatrix) error {
	perms := make([]dao.ChatPermission, 0, len(m)*len(m))
	for from, row := range m {
		for to, cell := range row {
			perms = append(perms, r.cellToEntity(from, to, cell))
		}
	}
	if err := r.dao.ReplacePermissions(ctx, perms); err != nil {
		return err
	}
	r.evictMatrix(ctx)
	return nil
}

func (r *chatRepository) SaveCell(ctx context.Context, from, to domain.Role, cell domain.PermissionCell) error {
	if err := r.dao.UpsertPermission(ctx, r.cellToEntity(from, to, cell)); err != nil {
		return err
	}
	r.evictMatrix(ctx)
	return nil
}

// evictMatrix 数据库已经写成功，删除缓存失败只记录日志
func (r *chatRepository) evictMatrix(ctx context.Context) {
	if err := r.matrixCache.Del(ctx); err != nil {
		r.logger.Error("删除权限矩阵缓存失败", elog.FieldErr(err))
	}
}

func (r *chatRepository) GetSettings(ctx context.Context) (domain.ChatAvailabilitySettings, error) {
	s, err := r.localSettings.Get(ctx)
	if err == nil {
		return s, nil
	}
	s, err = r.redisSettings.Get(ctx)
	if err == nil {
		_ = r.localSettings.Set(ctx, s)
		return s, nil
	}
	if !errors.Is(err, cache.ErrorKeyNotFound) {
		r.logger.Warn("从redis读取聊天配置失败", elog.FieldErr(err))
	}

	entity, err := r.dao.GetSettings(ctx)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		s = domain.DefaultChatAvailabilitySettings()
	case err != nil:
		return domain.ChatAvailabilitySettings{}, err
	default:
		s, err = r.settingsToDomain(entity)
		if err != nil {
			return domain.ChatAvailabilitySettings{}, err
		}
	}
	_ = r.localSettings.Set(ctx, s)
	if err1 := r.redisSettings.Set(ctx, s); err1 != nil {
		r.logger.Warn("回写redis聊天配置失败", elog.FieldErr(err1))
	}
	return s, nil
}

func (r *chatRepository) SaveSettings(ctx context.Context, s domain.ChatAvailabilitySettings) (domain.ChatAvailabilitySettings, error) {
	content, err := json.Marshal(s)
	if err != nil {
		return domain.ChatAvailabilitySettings{}, fmt.Errorf("序列化聊天配置失败: %w", err)
	}
	saved, err := r.dao.SaveSettings(ctx, s.Version, string(content))
	if err != nil {
		return domain.ChatAvailabilitySettings{}, err
	}
	if err1 := r.localSettings.Del(ctx); err1 != nil {
		r.logger.Error("删除本地聊天配置缓存失败", elog.FieldErr(err1))
	}
	if err1 := r.redisSettings.Del(ctx); err1 != nil {
		r.logger.Error("删除redis聊天配置失败", elog.FieldErr(err1))
	}
	s.Version = saved.Version
	s.Utime = saved.Utime
	return s, nil
}

func (r *chatRepository) ListRestrictions(ctx context.Context, role domain.Role) ([]domain.ChatRestriction, error) {
	list, err := r.dao.ListRestrictions(ctx, role.String())
	if err != nil {
		return nil, err
	}
	return slice.Map(list, func(_ int, src dao.ChatRestriction) domain.ChatRestriction {
		return r.restrictionToDomain(src)
	}), nil
}

func (r *chatRepository) CreateRestriction(ctx context.Context, cr domain.ChatRestriction) (domain.ChatRestriction, error) {
	created, err := r.dao.CreateRestriction(ctx, r.restrictionToEntity(cr))
	if err != nil {
		return domain.ChatRestriction{}, err
	}
	return r.restrictionToDomain(created), nil
}

func (r *chatRepository) UpdateRestriction(ctx context.Context, cr domain.ChatRestriction) error {
	return r.dao.UpdateRestriction(ctx, r.restrictionToEntity(cr))
}

func (r *chatRepository) DeleteRestriction(ctx context.Context, id uint64) error {
	return r.dao.DeleteRestriction(ctx, id)
}

func (r *chatRepository) settingsToDomain(e dao.ChatSettings) (domain.ChatAvailabilitySettings, error) {
	var s domain.ChatAvailabilitySettings
	if err := json.Unmarshal([]byte(e.Content), &s); err != nil {
		return domain.ChatAvailabilitySettings{}, fmt.Errorf("反序列化聊天配置失败: %w", err)
	}
	if s.DefaultHours == nil {
		s.DefaultHours = map[domain.Role]domain.ChatWindow{}
	}
	s.Version = e.Version
	s.Utime = e.Utime
	return s, nil
}

func (r *chatRepository) cellToEntity(from, to domain.Role, c domain.PermissionCell) dao.ChatPermission {
	return dao.ChatPermission{
		FromRole:                 from.String(),
		ToRole:                   to.String(),
		CanChat:                  c.CanChat,
		CanInitiate:              c.CanInitiate,
		CanRespond:               c.CanRespond,
		RequiresCourseEnrollment: c.RequiresCourseEnrollment,
		RequiresLessonCompletion: toNullInt64(c.RequiresLessonCompletion),
		MaxDailyMessages:         toNullInt64(c.MaxDailyMessages),
	}
}

func (r *chatRepository) cellToDomain(e dao.ChatPermission) domain.PermissionCell {
	return domain.PermissionCell{
		CanChat:                  e.CanChat,
		CanInitiate:              e.CanInitiate,
		CanRespond:               e.CanRespond,
		RequiresCourseEnrollment: e.RequiresCourseEnrollment,
		RequiresLessonCompletion: fromNullInt64(e.RequiresLessonCompletion),
		MaxDailyMessages:         fromNullInt64(e.MaxDailyMessages),
	}
}

func (r *chatRepository) restrictionToEntity(cr domain.ChatRestriction) dao.ChatRestriction {
	return dao.ChatRestriction{
		ID:          cr.ID,
		Role:        cr.Role.String(),
		Name:        cr.Name,
		Description: cr.Description,
		RuleType:    cr.RuleType,
		Value:       cr.Value,
		IsActive:    cr.IsActive,
		Ctime:       cr.Ctime,
		Utime:       cr.Utime,
	}
}

func (r *chatRepository) restrictionToDomain(e dao.ChatRestriction) domain.ChatRestriction {
	return domain.ChatRestriction{
		ID:          e.ID,
		Role:        domain.Role(e.Role),
		Name:        e.Name,
		Description: e.Description,
		RuleType:    e.RuleType,
		Value:       e.Value,
		IsActive:    e.IsActive,
		Ctime:       e.Ctime,
		Utime:       e.Utime,
	}
}

func toNullInt64(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func fromNullInt64(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
