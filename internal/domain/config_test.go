package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChatWindow_Contains(t *testing.T) {
	t.Parallel()
	at := func(day, hour, minute int) time.Time {
		// 2025-01-06 是周一
		return time.Date(2025, 1, 6+day, hour, minute, 0, 0, time.UTC)
	}
	workday := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	testCases := []struct {
		name   string
		window ChatWindow
		t      time.Time
		want   bool
	}{
		{name: "窗口内", window: ChatWindow{Enabled: true, Start: "09:00", End: "17:00"}, t: at(0, 9, 0), want: true},
		{name: "结束时间不包含", window: ChatWindow{Enabled: true, Start: "09:00", End: "17:00"}, t: at(0, 17, 0), want: false},
		{name: "星期不匹配", window: ChatWindow{Enabled: true, Start: "09:00", End: "17:00", Days: workday}, t: at(5, 10, 0), want: false},
		{name: "跨天窗口前半段", window: ChatWindow{Enabled: true, Start: "22:00", End: "02:00"}, t: at(0, 23, 30), want: true},
		{name: "跨天窗口后半段", window: ChatWindow{Enabled: true, Start: "22:00", End: "02:00"}, t: at(1, 1, 0), want: true},
		// 周六凌晨属于周五的窗口
		{name: "跨天窗口后半段按前一天算", window: ChatWindow{Enabled: true, Start: "22:00", End: "02:00", Days: workday}, t: at(5, 1, 0), want: true},
		{name: "跨天窗口之外", window: ChatWindow{Enabled: true, Start: "22:00", End: "02:00"}, t: at(0, 12, 0), want: false},
		{name: "格式错误", window: ChatWindow{Enabled: true, Start: "9", End: "17:00"}, t: at(0, 10, 0), want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.window.Contains(tc.t))
		})
	}
}

func TestChatAvailabilitySettings_WithinAvailability(t *testing.T) {
	t.Parallel()
	settings := ChatAvailabilitySettings{
		DefaultHours: map[Role]ChatWindow{
			RoleCreator: {Enabled: true, Start: "09:00", End: "12:00"},
		},
		GlobalChatWindow: ChatWindow{Enabled: true, Start: "14:00", End: "18:00"},
		Timezone:         "Asia/Shanghai",
	}
	// 上海 10:00
	morning := time.Date(2025, 1, 6, 2, 0, 0, 0, time.UTC)
	// 上海 13:00
	noon := time.Date(2025, 1, 6, 5, 0, 0, 0, time.UTC)
	// 上海 15:00
	afternoon := time.Date(2025, 1, 6, 7, 0, 0, 0, time.UTC)

	assert.True(t, settings.WithinAvailability(RoleCreator, morning))
	assert.False(t, settings.WithinAvailability(RoleCreator, noon))
	assert.True(t, settings.WithinAvailability(RoleCreator, afternoon))
	// 没有默认工作时间的角色只看全局窗口
	assert.False(t, settings.WithinAvailability(RoleLearner, morning))

	assert.True(t, DefaultChatAvailabilitySettings().WithinAvailability(RoleLearner, noon))
}

func TestNewDeliveryStats(t *testing.T) {
	t.Parallel()
	stats := NewDeliveryStats([]DeliveryStat{
		{Channel: ChannelEmail, Status: DeliveryStatusSuccess, Count: 6},
		{Channel: ChannelEmail, Status: DeliveryStatusFailed, Count: 2},
		{Channel: ChannelSMS, Status: DeliveryStatusPending, Count: 4},
	})
	assert.Equal(t, int64(12), stats.Total)
	assert.Equal(t, int64(6), stats.Success)
	assert.Equal(t, int64(2), stats.Failed)
	assert.Equal(t, int64(4), stats.Pending)
	assert.InDelta(t, 0.75, stats.SuccessRate, 1e-9)

	assert.Zero(t, NewDeliveryStats(nil).SuccessRate)
}
