package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/notification-policy/internal/errs"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
)

// EventDescriptor 事件注册表
type EventDescriptor struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement;comment:'自增ID'"`
	Key   string `gorm:"type:VARCHAR(128);NOT NULL;uniqueIndex:uk_key;comment:'事件唯一标识'"`
	Label string `gorm:"type:VARCHAR(256);NOT NULL;comment:'展示名称'"`
	Ctime int64
	Utime int64
}

// TableName 重命名表
func (EventDescriptor) TableName() string {
	return "event_descriptors"
}

type EventDAO interface {
	// Insert 插入单个事件，key 冲突时返回 errs.ErrEventDuplicate
	Insert(ctx context.Context, e EventDescriptor) (EventDescriptor, error)
	FindAll(ctx context.Context) ([]EventDescriptor, error)
	FindByKeys(ctx context.Context, keys []string) ([]EventDescriptor, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Delete 管理员清理事件，事件不存在时返回 errs.ErrUnknownEvent
	Delete(ctx context.Context, key string) error
}

type eventDAO struct {
	db *egorm.Component
}

// NewEventDAO 创建事件DAO实例
func NewEventDAO(db *egorm.Component) EventDAO {
	return &eventDAO{db: db}
}

func (d *eventDAO) Insert(ctx context.Context, e EventDescriptor) (EventDescriptor, error) {
	now := time.Now().UnixMilli()
	e.Ctime, e.Utime = now, now
	err := d.db.WithContext(ctx).Create(&e).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return EventDescriptor{}, fmt.Errorf("%w: key=%s", errs.ErrEventDuplicate, e.Key)
		}
		return EventDescriptor{}, err
	}
	return e, nil
}

func (d *eventDAO) FindAll(ctx context.Context) ([]EventDescriptor, error) {
	var res []EventDescriptor
	err := d.db.WithContext(ctx).Order("id ASC").Find(&res).Error
	return res, err
}

func (d *eventDAO) FindByKeys(ctx context.Context, keys []string) ([]EventDescriptor, error) {
	if len(keys) == 0 {
		return []EventDescriptor{}, nil
	}
	var res []EventDescriptor
	err := d.db.WithContext(ctx).Where("`key` IN ?", keys).Find(&res).Error
	return res, err
}

func (d *eventDAO) Exists(ctx context.Context, key string) (bool, error) {
	var cnt int64
	err := d.db.WithContext(ctx).Model(&EventDescriptor{}).Where("`key` = ?", key).Count(&cnt).Error
	return cnt > 0, err
}

func (d *eventDAO) Delete(ctx context.Context, key string) error {
	res := d.db.WithContext(ctx).Where("`key` = ?", key).Delete(&EventDescriptor{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("%w: %s", errs.ErrUnknownEvent, key)
	}
	return nil
}

// isUniqueConstraintError 检查是否是唯一索引冲突错误
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	me := new(mysql.MySQLError)
	if ok := errors.As(err, &me); ok {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}
