package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/errs"
	"gitee.com/flycash/notification-policy/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
	exportPageSize  = 500
)

// ExportHeader 导出文件的列，顺序固定
var ExportHeader = []string{
	"id", "emission_id", "notification_type_id", "recipient_user_id", "recipient_role",
	"channel", "status", "rendered_body", "sent_at", "delivered_at", "error_message",
}

// Service 投递流水
//
//go:generate mockgen -source=./service.go -destination=./mocks/service.mock.go -package=ledgermocks Service
type Service interface {
	List(ctx context.Context, filter domain.DeliveryFilter) ([]domain.DeliveryRecord, int64, error)
	Get(ctx context.Context, id uint64) (domain.DeliveryRecord, error)
	// Resolve 异步渠道回写最终结果，只有 pending 的记录可以回写
	Resolve(ctx context.Context, id uint64, status domain.DeliveryStatus, errMsg string) (domain.DeliveryRecord, error)
	// Export 把满足条件的全部记录以 CSV 写入 w
	Export(ctx context.Context, filter domain.DeliveryFilter, w io.Writer) error
	Stats(ctx context.Context, filter domain.DeliveryFilter) (domain.DeliveryStats, error)
}

type service struct {
	repo   repository.DeliveryRepository
	logger *elog.Component
}

func NewService(repo repository.DeliveryRepository) Service {
	return &service{
		repo:   repo,
		logger: elog.DefaultLogger,
	}
}

func (s *service) List(ctx context.Context, filter domain.DeliveryFilter) ([]domain.DeliveryRecord, int64, error) {
	if err := s.checkFilter(filter); err != nil {
		return nil, 0, err
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultPageSize
	case filter.Limit > maxPageSize:
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id uint64) (domain.DeliveryRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Resolve(ctx context.Context, id uint64, status domain.DeliveryStatus, errMsg string) (domain.DeliveryRecord, error) {
	if !status.IsTerminal() {
		return domain.DeliveryRecord{}, fmt.Errorf("%w: 状态必须是 success 或者 failed", errs.ErrInvalidParameter)
	}
	var deliveredAt int64
	if status == domain.DeliveryStatusSuccess {
		deliveredAt = time.Now().UnixMilli()
		errMsg = ""
	}
	if err := s.repo.Resolve(ctx, id, status, deliveredAt, errMsg); err != nil {
		return domain.DeliveryRecord{}, err
	}
	s.logger.Info("回写投递结果", elog.Any("deliveryID", id), elog.String("status", status.String()))
	return s.repo.GetByID(ctx, id)
}

func (s *service) Export(ctx context.Context, filter domain.DeliveryFilter, w io.Writer) error {
	if err := s.checkFilter(filter); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	// 按 id 游标翻页，导出期间新写入的记录不会让已有记录重复或遗漏
	filter.Offset, filter.Limit, filter.BeforeID = 0, exportPageSize, 0
	for {
		list, err := s.repo.Scroll(ctx, filter)
		if err != nil {
			return err
		}
		for i := range list {
			if err = cw.Write(row(list[i])); err != nil {
				return err
			}
		}
		if len(list) < exportPageSize {
			break
		}
		filter.BeforeID = list[len(list)-1].ID
	}
	cw.Flush()
	return cw.Error()
}

func (s *service) Stats(ctx context.Context, filter domain.DeliveryFilter) (domain.DeliveryStats, error) {
	if err := s.checkFilter(filter); err != nil {
		return domain.DeliveryStats{}, err
	}
	items, err := s.repo.Stats(ctx, filter)
	if err != nil {
		return domain.DeliveryStats{}, err
	}
	return domain.NewDeliveryStats(items), nil
}

func (s *service) checkFilter(f domain.DeliveryFilter) error {
	var fields []errs.FieldError
	if f.Channel != "" && !f.Channel.IsValid() {
		fields = append(fields, errs.FieldError{Field: "channel", Reason: fmt.Sprintf("未知渠道 %q", f.Channel)})
	}
	if f.Status != "" && f.Status != domain.DeliveryStatusPending && !f.Status.IsTerminal() {
		fields = append(fields, errs.FieldError{Field: "status", Reason: fmt.Sprintf("未知状态 %q", f.Status)})
	}
	if f.RecipientRole != "" && !f.RecipientRole.IsKnown() {
		fields = append(fields, errs.FieldError{Field: "recipientRole", Reason: fmt.Sprintf("未知角色 %q", f.RecipientRole)})
	}
	if f.SentFrom > 0 && f.SentTo > 0 && f.SentFrom > f.SentTo {
		fields = append(fields, errs.FieldError{Field: "sentFrom", Reason: "不能晚于 sentTo"})
	}
	return errs.NewValidationError(fields...)
}

func row(r domain.DeliveryRecord) []string {
	return []string{
		strconv.FormatUint(r.ID, 10),
		r.EmissionID,
		strconv.FormatUint(r.NotificationTypeID, 10),
		r.RecipientUserID,
		r.RecipientRole.String(),
		r.Channel.String(),
		r.Status.String(),
		r.RenderedBody,
		formatMillis(r.SentAt),
		formatMillis(r.DeliveredAt),
		r.ErrorMessage,
	}
}

// formatMillis 0 表示没有值
func formatMillis(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
