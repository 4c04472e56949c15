package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/errs"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatPermission 角色对聊天权限表，(from_role, to_role) 唯一
type ChatPermission struct {
	ID                       int64         `gorm:"primaryKey;autoIncrement;comment:'自增ID'"`
	FromRole                 string        `gorm:"type:VARCHAR(32);NOT NULL;uniqueIndex:uk_from_to,priority:1;comment:'发起方角色'"`
	ToRole                   string        `gorm:"type:VARCHAR(32);NOT NULL;uniqueIndex:uk_from_to,priority:2;comment:'接收方角色'"`
	CanChat                  bool          `gorm:"NOT NULL;DEFAULT:false;comment:'总开关'"`
	CanInitiate              bool          `gorm:"NOT NULL;DEFAULT:false;comment:'是否允许发起'"`
	CanRespond               bool          `gorm:"NOT NULL;DEFAULT:false;comment:'是否允许回复'"`
	RequiresCourseEnrollment bool          `gorm:"NOT NULL;DEFAULT:false;comment:'是否要求已报名课程'"`
	RequiresLessonCompletion sql.NullInt64 `gorm:"comment:'要求完成的课时数，NULL表示不要求'"`
	MaxDailyMessages         sql.NullInt64 `gorm:"comment:'每日上限，NULL表示不限制'"`
	Ctime                    int64
	Utime                    int64
}

// TableName 重命名表
func (ChatPermission) TableName() string {
	return "chat_permissions"
}

const chatSettingsID = 1

// ChatSettings 全局聊天配置，只有一行
type ChatSettings struct {
	ID      int64  `gorm:"primaryKey;comment:'固定为1'"`
	Version int64  `gorm:"NOT NULL;comment:'版本号，整体替换时做CAS'"`
	Content string `gorm:"type:JSON;NOT NULL;comment:'配置内容'"`
	Ctime   int64
	Utime   int64
}

// TableName 重命名表
func (ChatSettings) TableName() string {
	return "chat_availability_settings"
}

// ChatRestriction 角色附加限制
type ChatRestriction struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement;comment:'自增ID'"`
	Role        string `gorm:"type:VARCHAR(32);NOT NULL;index:idx_role;comment:'角色'"`
	Name        string `gorm:"type:VARCHAR(128);NOT NULL;comment:'名称'"`
	Description string `gorm:"type:VARCHAR(512);comment:'描述'"`
	RuleType    string `gorm:"type:VARCHAR(64);comment:'规则类型'"`
	Value       string `gorm:"type:VARCHAR(256);comment:'规则值'"`
	IsActive    bool   `gorm:"NOT NULL;comment:'是否生效'"`
	Ctime       int64
	Utime       int64
}

// TableName 重命名表
func (ChatRestriction) TableName() string {
	return "chat_restrictions"
}

type ChatDAO interface {
	FindAllPermissions(ctx context.Context) ([]ChatPermission, error)
	// ReplacePermissions 整体替换权限矩阵
	ReplacePermissions(ctx context.Context, perms []ChatPermission) error
	UpsertPermission(ctx context.Context, perm ChatPermission) error

	// GetSettings 没有记录时返回 gorm.ErrRecordNotFound
	GetSettings(ctx context.Context) (ChatSettings, error)
	// SaveSettings expectedVersion 必须等于当前版本，成功后版本号加一
	SaveSettings(ctx context.Context, expectedVersion int64, content string) (ChatSettings, error)

	ListRestrictions(ctx context.Context, role string) ([]ChatRestriction, error)
	CreateRestriction(ctx context.Context, r ChatRestriction) (ChatRestriction, error)
	UpdateRestriction(ctx context.Context, r ChatRestriction) error
	DeleteRestriction(ctx context.Context, id uint64) error
}

type chatDAO struct {
	db *egorm.Component
}

func NewChatDAO(db *egorm.Component) ChatDAO {
	return &chatDAO{db: db}
}

func (c *chatDAO) FindAllPermissions(ctx context.Context) ([]ChatPermission, error) {
	var res []ChatPermission
	err := c.db.WithContext(ctx).Order("from_role, to_role").Find(&res).Error
	return res, err
}

func (c *chatDAO) ReplacePermissions(ctx context.Context, perms []ChatPermission) error {
	now := time.Now().UnixMilli()
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&ChatPermission{}).Error; err != nil {
			return err
		}
		if len(perms) == 0 {
			return nil
		}
		for i := range perms {
			perms[i].ID = 0
			perms[i].Ctime, perms[i].Utime = now, now
		}
		return tx.Create(&perms).Error
	})
}

func (c *chatDAO) UpsertPermission(ctx context.Context, perm ChatPermission) error {
	now := time.Now().UnixMilli()
	perm.ID = 0
	perm.Ctime, perm.Utime = now, now
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoUpdates: clause.AssignmentColumns([]string{
			"can_chat", "can_initiate", "can_respond", "requires_course_enrollment",
			"requires_lesson_completion", "max_daily_messages", "utime",
		}),
	}).Create(&perm).Error
}

func (c *chatDAO) GetSettings(ctx context.Context) (ChatSettings, error) {
	var res ChatSettings
	err := c.db.WithContext(ctx).Where("id = ?", chatSettingsID).First(&res).Error
	return res, err
}

func (c *chatDAO) SaveSettings(ctx context.Context, expectedVersion int64, content string) (ChatSettings, error) {
	now := time.Now().UnixMilli()
	if expectedVersion == 0 {
		// 第一次保存
		s := ChatSettings{ID: chatSettingsID, Version: 1, Content: content, Ctime: now, Utime: now}
		err := c.db.WithContext(ctx).Create(&s).Error
		if err != nil {
			if isUniqueConstraintError(err) {
				return ChatSettings{}, fmt.Errorf("%w: 配置已存在", errs.ErrSettingsVersionConflict)
			}
			return ChatSettings{}, err
		}
		return s, nil
	}
	res := c.db.WithContext(ctx).Model(&ChatSettings{}).
		Where("id = ? AND version = ?", chatSettingsID, expectedVersion).
		Updates(map[string]any{
			"content": content,
			"version": gorm.Expr("version + 1"),
			"utime":   now,
		})
	if res.Error != nil {
		return ChatSettings{}, res.Error
	}
	if res.RowsAffected < 1 {
		return ChatSettings{}, fmt.Errorf("%w: version=%d", errs.ErrSettingsVersionConflict, expectedVersion)
	}
	return ChatSettings{ID: chatSettingsID, Version: expectedVersion + 1, Content: content, Utime: now}, nil
}

func (c *chatDAO) ListRestrictions(ctx context.Context, role string) ([]ChatRestriction, error) {
	db := c.db.WithContext(ctx)
	if role != "" {
		db = db.Where("role = ?", role)
	}
	var res []ChatRestriction
	err := db.Order("id ASC").Find(&res).Error
	return res, err
}

func (c *chatDAO) CreateRestriction(ctx context.Context, r ChatRestriction) (ChatRestriction, error) {
	now := time.Now().UnixMilli()
	r.Ctime, r.Utime = now, now
	err := c.db.WithContext(ctx).Create(&r).Error
	return r, err
}

func (c *chatDAO) UpdateRestriction(ctx context.Context, r ChatRestriction) error {
	res := c.db.WithContext(ctx).Model(&ChatRestriction{}).
		Where("id = ?", r.ID).
		Updates(map[string]any{
			"role":        r.Role,
			"name":        r.Name,
			"description": r.Description,
			"rule_type":   r.RuleType,
			"value":       r.Value,
			"is_active":   r.IsActive,
			"utime":       time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return c.restrictionExists(ctx, r.ID)
	}
	return nil
}

// restrictionExists 内容没变时 MySQL 也会返回 0 行
func (c *chatDAO) restrictionExists(ctx context.Context, id uint64) error {
	var r ChatRestriction
	err := c.db.WithContext(ctx).Where("id = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: id=%d", errs.ErrRestrictionNotFound, id)
	}
	return err
}

func (c *chatDAO) DeleteRestriction(ctx context.Context, id uint64) error {
	res := c.db.WithContext(ctx).Where("id = ?", id).Delete(&ChatRestriction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("%w: id=%d", errs.ErrRestrictionNotFound, id)
	}
	return nil
}
