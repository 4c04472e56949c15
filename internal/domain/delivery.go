package domain

// DeliveryStatus 投递状态
type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "pending"
	DeliveryStatusSuccess DeliveryStatus = "success"
	DeliveryStatusFailed  DeliveryStatus = "failed"
)

func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryStatusSuccess || s == DeliveryStatusFailed
}

func (s DeliveryStatus) String() string {
	return string(s)
}

// DeliveryRecord 一次事件发出 × 一个通知类型 × 一个接收人 × 一个渠道，只会创建一次。
// 创建之后只允许 pending -> success|failed 的状态流转以及 DeliveredAt 的回填
type DeliveryRecord struct {
	ID                 uint64         `json:"id"`
	EmissionID         string         `json:"emissionId"`
	EventType          string         `json:"eventType"`
	NotificationTypeID uint64         `json:"notificationTypeId"`
	RecipientUserID    string         `json:"recipientUserId"`
	RecipientRole      Role           `json:"recipientRole"`
	Channel            Channel        `json:"channel"`
	Priority           Priority       `json:"priority"`
	Status             DeliveryStatus `json:"status"`
	RenderedTitle      string         `json:"renderedTitle"`
	RenderedBody       string         `json:"renderedBody"`
	// SentAt 记录创建（事件发出）的时间，毫秒
	SentAt int64 `json:"sentAt"`
	// ScheduledAt 定时通知的计划发送时间，立即发送时等于 SentAt
	ScheduledAt int64 `json:"scheduledAt"`
	// Deferred 为 true 的记录由定时任务投递
	Deferred     bool   `json:"deferred"`
	DeliveredAt  int64  `json:"deliveredAt,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// DeliveryFilter 投递记录查询条件，零值字段不参与过滤
type DeliveryFilter struct {
	NotificationTypeID uint64
	Channel            Channel
	Status             DeliveryStatus
	RecipientRole      Role
	RecipientUserID    string
	EmissionID         string
	// 毫秒时间戳，闭区间
	SentFrom int64
	SentTo   int64
	// BeforeID 游标，大于 0 时只返回 id 小于它的记录
	BeforeID uint64
	Offset   int
	Limit    int
}

// DeliveryStat 某个渠道某个状态的投递数量
type DeliveryStat struct {
	Channel Channel        `json:"channel"`
	Status  DeliveryStatus `json:"status"`
	Count   int64          `json:"count"`
}

// DeliveryStats 投递统计
type DeliveryStats struct {
	Total       int64          `json:"total"`
	Success     int64          `json:"success"`
	Failed      int64          `json:"failed"`
	Pending     int64          `json:"pending"`
	SuccessRate float64        `json:"successRate"`
	ByChannel   []DeliveryStat `json:"byChannel"`
}

// NewDeliveryStats 根据分组计数汇总统计，成功率只计算已有最终状态的记录
func NewDeliveryStats(items []DeliveryStat) DeliveryStats {
	res := DeliveryStats{ByChannel: items}
	for _, it := range items {
		res.Total += it.Count
		switch it.Status {
		case DeliveryStatusSuccess:
			res.Success += it.Count
		case DeliveryStatusFailed:
			res.Failed += it.Count
		case DeliveryStatusPending:
			res.Pending += it.Count
		}
	}
	if resolved := res.Success + res.Failed; resolved > 0 {
		res.SuccessRate = float64(res.Success) / float64(resolved)
	}
	return res
}
