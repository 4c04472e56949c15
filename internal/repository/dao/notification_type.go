package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/errs"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

// NotificationType 通知类型表，删除为软删除，Dtime 不为 0 表示已删除
type NotificationType struct {
	ID              uint64 `gorm:"primaryKey;comment:'雪花算法ID'"`
	Title           string `gorm:"type:VARCHAR(256);NOT NULL;comment:'标题模板'"`
	MessageTemplate string `gorm:"type:TEXT;NOT NULL;comment:'内容模板，变量格式为{{name}}'"`
	EventType       string `gorm:"type:VARCHAR(128);NOT NULL;index:idx_event_active,priority:1;comment:'绑定的事件'"`
	Roles           string `gorm:"type:JSON;NOT NULL;comment:'目标角色，JSON数组'"`
	Channels        string `gorm:"type:JSON;NOT NULL;comment:'渠道开关，JSON对象'"`
	IsActive        bool   `gorm:"NOT NULL;index:idx_event_active,priority:2;comment:'是否启用'"`
	Priority        string `gorm:"type:ENUM('low','medium','high');NOT NULL;DEFAULT:'medium';comment:'优先级'"`
	ScheduleType    string `gorm:"type:ENUM('immediate','scheduled');NOT NULL;DEFAULT:'immediate';comment:'调度类型'"`
	Schedule        string `gorm:"type:JSON;NOT NULL;comment:'调度配置'"`
	Version         int    `gorm:"type:INT;NOT NULL;DEFAULT:1;comment:'版本号，用于CAS操作'"`
	Dtime           int64  `gorm:"NOT NULL;DEFAULT:0;index:idx_event_active,priority:3;comment:'删除时间，0表示未删除'"`
	Ctime           int64
	Utime           int64
}

// TableName 重命名表
func (NotificationType) TableName() string {
	return "notification_types"
}

// NotificationTypeQuery 列表查询条件
type NotificationTypeQuery struct {
	Search string
	Role   string
	Active *bool
	Offset int
	Limit  int
}

type NotificationTypeDAO interface {
	Create(ctx context.Context, data NotificationType) (NotificationType, error)
	// GetByID 已删除的记录视为不存在
	GetByID(ctx context.Context, id uint64) (NotificationType, error)
	// FindByIDs 包含已删除的记录，用于定时投递时核对通知类型的状态
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]NotificationType, error)
	// Update 使用版本号做乐观锁
	Update(ctx context.Context, data NotificationType) error
	// ToggleActive 翻转启用状态，返回翻转后的值
	ToggleActive(ctx context.Context, id uint64) (bool, error)
	SoftDelete(ctx context.Context, id uint64) error
	List(ctx context.Context, q NotificationTypeQuery) ([]NotificationType, error)
	FindActiveByEvent(ctx context.Context, eventType string) ([]NotificationType, error)
}

type notificationTypeDAO struct {
	db *egorm.Component
}

// NewNotificationTypeDAO 创建通知类型DAO实例
func NewNotificationTypeDAO(db *egorm.Component) NotificationTypeDAO {
	return &notificationTypeDAO{db: db}
}

func (d *notificationTypeDAO) Create(ctx context.Context, data NotificationType) (NotificationType, error) {
	now := time.Now().UnixMilli()
	data.Ctime, data.Utime = now, now
	data.Version = 1
	data.Dtime = 0
	err := d.db.WithContext(ctx).Create(&data).Error
	return data, err
}

func (d *notificationTypeDAO) GetByID(ctx context.Context, id uint64) (NotificationType, error) {
	var res NotificationType
	err := d.db.WithContext(ctx).Where("id = ? AND dtime = 0", id).First(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationType{}, fmt.Errorf("%w: id=%d", errs.ErrNotificationTypeNotFound, id)
		}
		return NotificationType{}, err
	}
	return res, nil
}

func (d *notificationTypeDAO) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]NotificationType, error) {
	res := make(map[uint64]NotificationType, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	var list []NotificationType
	err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	if err != nil {
		return nil, err
	}
	for i := range list {
		res[list[i].ID] = list[i]
	}
	return res, nil
}

func (d *notificationTypeDAO) Update(ctx context.Context, data NotificationType) error {
	res := d.db.WithContext(ctx).Model(&NotificationType{}).
		Where("id = ? AND version = ? AND dtime = 0", data.ID, data.Version).
		Updates(map[string]any{
			"title":            data.Title,
			"message_template": data.MessageTemplate,
			"event_type":       data.EventType,
			"roles":            data.Roles,
			"channels":         data.Channels,
			"priority":         data.Priority,
			"schedule_type":    data.ScheduleType,
			"schedule":         data.Schedule,
			"version":          gorm.Expr("version + 1"),
			"utime":            time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("并发竞争失败 %w, id %d", errs.ErrNotificationTypeVersionMismatch, data.ID)
	}
	return nil
}

func (d *notificationTypeDAO) ToggleActive(ctx context.Context, id uint64) (bool, error) {
	var active bool
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&NotificationType{}).
			Where("id = ? AND dtime = 0", id).
			Updates(map[string]any{
				"is_active": gorm.Expr("NOT is_active"),
				"utime":     time.Now().UnixMilli(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected < 1 {
			return fmt.Errorf("%w: id=%d", errs.ErrNotificationTypeNotFound, id)
		}
		var nt NotificationType
		if err := tx.Select("is_active").Where("id = ?", id).First(&nt).Error; err != nil {
			return err
		}
		active = nt.IsActive
		return nil
	})
	return active, err
}

func (d *notificationTypeDAO) SoftDelete(ctx context.Context, id uint64) error {
	now := time.Now().UnixMilli()
	res := d.db.WithContext(ctx).Model(&NotificationType{}).
		Where("id = ? AND dtime = 0", id).
		Updates(map[string]any{
			"dtime": now,
			"utime": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("%w: id=%d", errs.ErrNotificationTypeNotFound, id)
	}
	return nil
}

func (d *notificationTypeDAO) List(ctx context.Context, q NotificationTypeQuery) ([]NotificationType, error) {
	db := d.db.WithContext(ctx).Model(&NotificationType{}).Where("dtime = 0")
	if q.Search != "" {
		like := "%" + q.Search + "%"
		db = db.Where("(title LIKE ? OR message_template LIKE ? OR event_type LIKE ?)", like, like, like)
	}
	if q.Role != "" {
		db = db.Where("JSON_CONTAINS(roles, JSON_QUOTE(?))", q.Role)
	}
	if q.Active != nil {
		db = db.Where("is_active = ?", *q.Active)
	}
	if q.Limit > 0 {
		db = db.Offset(q.Offset).Limit(q.Limit)
	}
	var res []NotificationType
	err := db.Order("id DESC").Find(&res).Error
	return res, err
}

func (d *notificationTypeDAO) FindActiveByEvent(ctx context.Context, eventType string) ([]NotificationType, error) {
	var res []NotificationType
	err := d.db.WithContext(ctx).
		Where("event_type = ? AND is_active = ? AND dtime = 0", eventType, true).
		Order("id ASC").
		Find(&res).Error
	return res, err
}
