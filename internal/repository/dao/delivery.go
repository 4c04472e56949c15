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

const (
	deliveryStatusPending = "pending"
	batchSize             = 100
)

// DeliveryRecord 投递流水表，只追加，创建后只允许 pending 状态流转到最终状态
type DeliveryRecord struct {
	ID                 uint64 `gorm:"primaryKey;comment:'雪花算法ID'"`
	EmissionID         string `gorm:"type:VARCHAR(64);NOT NULL;uniqueIndex:uk_emission_type_user_channel,priority:1;comment:'一次事件发出的唯一标识'"`
	NotificationTypeID uint64 `gorm:"NOT NULL;uniqueIndex:uk_emission_type_user_channel,priority:2;index:idx_type_id;comment:'通知类型ID'"`
	RecipientUserID    string `gorm:"type:VARCHAR(64);NOT NULL;uniqueIndex:uk_emission_type_user_channel,priority:3;comment:'接收人'"`
	Channel            string `gorm:"type:ENUM('email','sms','push','inApp','whatsapp');NOT NULL;uniqueIndex:uk_emission_type_user_channel,priority:4;comment:'渠道'"`
	EventType          string `gorm:"type:VARCHAR(128);NOT NULL;comment:'事件'"`
	RecipientRole      string `gorm:"type:VARCHAR(32);NOT NULL;comment:'接收人角色'"`
	Priority           string `gorm:"type:VARCHAR(16);NOT NULL;comment:'优先级'"`
	Status             string `gorm:"type:ENUM('pending','success','failed');NOT NULL;DEFAULT:'pending';index:idx_deferred_status_scheduled,priority:2;comment:'投递状态'"`
	RenderedTitle      string `gorm:"type:VARCHAR(512);comment:'渲染后的标题'"`
	RenderedBody       string `gorm:"type:TEXT;NOT NULL;comment:'渲染后的内容'"`
	// Deferred 表示是定时通知，等待调度任务投递
	Deferred     bool   `gorm:"NOT NULL;DEFAULT:false;index:idx_deferred_status_scheduled,priority:1;comment:'是否定时投递'"`
	SentAt       int64  `gorm:"NOT NULL;index:idx_sent_at;comment:'事件发出时间'"`
	ScheduledAt  int64  `gorm:"NOT NULL;index:idx_deferred_status_scheduled,priority:3;comment:'计划投递时间'"`
	DeliveredAt  int64  `gorm:"comment:'投递成功时间'"`
	ErrorMessage string `gorm:"type:VARCHAR(1024);comment:'失败原因'"`
	Ctime        int64
	Utime        int64
}

// TableName 重命名表
func (DeliveryRecord) TableName() string {
	return "delivery_records"
}

// DeliveryQuery 投递记录查询条件
type DeliveryQuery struct {
	NotificationTypeID uint64
	Channel            string
	Status             string
	RecipientRole      string
	RecipientUserID    string
	EmissionID         string
	SentFrom           int64
	SentTo             int64
	BeforeID           uint64
	Offset             int
	Limit              int
}

// DeliveryStat 分组计数
type DeliveryStat struct {
	Channel string
	Status  string
	Cnt     int64
}

type DeliveryDAO interface {
	// BatchCreate 批量创建，同一批要么全部成功要么全部失败
	BatchCreate(ctx context.Context, records []DeliveryRecord) ([]DeliveryRecord, error)
	GetByID(ctx context.Context, id uint64) (DeliveryRecord, error)
	// Resolve 只有 pending 状态的记录可以被更新
	Resolve(ctx context.Context, id uint64, status string, deliveredAt int64, errMsg string) error
	List(ctx context.Context, q DeliveryQuery) ([]DeliveryRecord, int64, error)
	// Scroll 按 id 倒序取一页，不统计总数，配合 BeforeID 做游标翻页
	Scroll(ctx context.Context, q DeliveryQuery) ([]DeliveryRecord, error)
	// FindDueDeferred 查找计划时间已到但还没有投递的定时记录
	FindDueDeferred(ctx context.Context, now int64, limit int) ([]DeliveryRecord, error)
	// FindPendingDeferred 查找某个通知类型某个计划时间点的待投递记录
	FindPendingDeferred(ctx context.Context, typeID uint64, scheduledAt int64) ([]DeliveryRecord, error)
	// MarkDispatched 定时记录交给渠道之后不再由调度任务处理
	MarkDispatched(ctx context.Context, ids []uint64) error
	Stats(ctx context.Context, q DeliveryQuery) ([]DeliveryStat, error)
}

type deliveryDAO struct {
	db *egorm.Component
}

// NewDeliveryDAO 创建投递流水DAO实例
func NewDeliveryDAO(db *egorm.Component) DeliveryDAO {
	return &deliveryDAO{db: db}
}

func (d *deliveryDAO) BatchCreate(ctx context.Context, records []DeliveryRecord) ([]DeliveryRecord, error) {
	if len(records) == 0 {
		return []DeliveryRecord{}, nil
	}
	now := time.Now().UnixMilli()
	for i := range records {
		records[i].Ctime, records[i].Utime = now, now
	}
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(records, batchSize).Error; err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("%w", errs.ErrDeliveryRecordDuplicate)
			}
			return err
		}
		return nil
	})
	return records, err
}

func (d *deliveryDAO) GetByID(ctx context.Context, id uint64) (DeliveryRecord, error) {
	var res DeliveryRecord
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeliveryRecord{}, fmt.Errorf("%w: id=%d", errs.ErrDeliveryRecordNotFound, id)
		}
		return DeliveryRecord{}, err
	}
	return res, nil
}

func (d *deliveryDAO) Resolve(ctx context.Context, id uint64, status string, deliveredAt int64, errMsg string) error {
	res := d.db.WithContext(ctx).Model(&DeliveryRecord{}).
		Where("id = ? AND status = ?", id, deliveryStatusPending).
		Updates(map[string]any{
			"status":        status,
			"delivered_at":  deliveredAt,
			"error_message": errMsg,
			"utime":         time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// 区分记录不存在和已经被别人处理
	if _, err := d.GetByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("%w: id=%d", errs.ErrDeliveryAlreadyResolved, id)
}

func (d *deliveryDAO) where(db *gorm.DB, q DeliveryQuery) *gorm.DB {
	if q.NotificationTypeID > 0 {
		db = db.Where("notification_type_id = ?", q.NotificationTypeID)
	}
	if q.Channel != "" {
		db = db.Where("channel = ?", q.Channel)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.RecipientRole != "" {
		db = db.Where("recipient_role = ?", q.RecipientRole)
	}
	if q.RecipientUserID != "" {
		db = db.Where("recipient_user_id = ?", q.RecipientUserID)
	}
	if q.EmissionID != "" {
		db = db.Where("emission_id = ?", q.EmissionID)
	}
	if q.SentFrom > 0 {
		db = db.Where("sent_at >= ?", q.SentFrom)
	}
	if q.SentTo > 0 {
		db = db.Where("sent_at <= ?", q.SentTo)
	}
	if q.BeforeID > 0 {
		db = db.Where("id < ?", q.BeforeID)
	}
	return db
}

func (d *deliveryDAO) List(ctx context.Context, q DeliveryQuery) ([]DeliveryRecord, int64, error) {
	var total int64
	db := d.where(d.db.WithContext(ctx).Model(&DeliveryRecord{}), q)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	db = d.where(d.db.WithContext(ctx).Model(&DeliveryRecord{}), q)
	if q.Limit > 0 {
		db = db.Offset(q.Offset).Limit(q.Limit)
	}
	var res []DeliveryRecord
	err := db.Order("id DESC").Find(&res).Error
	return res, total, err
}

func (d *deliveryDAO) Scroll(ctx context.Context, q DeliveryQuery) ([]DeliveryRecord, error) {
	var res []DeliveryRecord
	err := d.where(d.db.WithContext(ctx).Model(&DeliveryRecord{}), q).
		Order("id DESC").
		Limit(q.Limit).
		Find(&res).Error
	return res, err
}

func (d *deliveryDAO) FindDueDeferred(ctx context.Context, now int64, limit int) ([]DeliveryRecord, error) {
	var res []DeliveryRecord
	err := d.db.WithContext(ctx).
		Where("deferred = ? AND status = ? AND scheduled_at <= ?", true, deliveryStatusPending, now).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *deliveryDAO) FindPendingDeferred(ctx context.Context, typeID uint64, scheduledAt int64) ([]DeliveryRecord, error) {
	var res []DeliveryRecord
	err := d.db.WithContext(ctx).
		Where("deferred = ? AND status = ? AND notification_type_id = ? AND scheduled_at = ?",
			true, deliveryStatusPending, typeID, scheduledAt).
		Order("id ASC").
		Find(&res).Error
	return res, err
}

func (d *deliveryDAO) MarkDispatched(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return d.db.WithContext(ctx).Model(&DeliveryRecord{}).
		Where("id IN ? AND deferred = ?", ids, true).
		Updates(map[string]any{
			"deferred": false,
			"utime":    time.Now().UnixMilli(),
		}).Error
}

func (d *deliveryDAO) Stats(ctx context.Context, q DeliveryQuery) ([]DeliveryStat, error) {
	var res []DeliveryStat
	err := d.where(d.db.WithContext(ctx).Model(&DeliveryRecord{}), q).
		Select("channel, status, COUNT(*) AS cnt").
		Group("channel, status").
		Order("channel, status").
		Scan(&res).Error
	return res, err
}
