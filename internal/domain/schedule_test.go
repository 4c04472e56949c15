package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_Next(t *testing.T) {
	t.Parallel()
	// 2025-01-06 是周一
	monday10 := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	testCases := []struct {
		name     string
		schedule Schedule
		after    time.Time
		want     time.Time
		wantOK   bool
	}{
		{
			name:     "立即发送",
			schedule: ImmediateSchedule(),
			after:    monday10,
			want:     monday10,
			wantOK:   true,
		},
		{
			name:     "当天还没到点",
			schedule: Schedule{Type: ScheduleTypeScheduled, Time: "18:30"},
			after:    monday10,
			want:     time.Date(2025, 1, 6, 18, 30, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "当天已过点顺延到第二天",
			schedule: Schedule{Type: ScheduleTypeScheduled, Time: "09:30"},
			after:    monday10,
			want:     time.Date(2025, 1, 7, 9, 30, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "只在周一发送，已过点顺延一周",
			schedule: Schedule{Type: ScheduleTypeScheduled, Time: "09:30", Days: []time.Weekday{time.Monday}},
			after:    monday10,
			want:     time.Date(2025, 1, 13, 9, 30, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "时区",
			schedule: Schedule{Type: ScheduleTypeScheduled, Time: "20:00", Timezone: "Asia/Shanghai"},
			after:    monday10,
			want:     time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			// 2026-03-08 纽约 02:00 进入夏令时
			name:     "夏令时开始当天按墙上时间",
			schedule: Schedule{Type: ScheduleTypeScheduled, Time: "09:00", Timezone: "America/New_York"},
			after:    time.Date(2026, 3, 8, 6, 0, 0, 0, time.UTC),
			want:     time.Date(2026, 3, 8, 13, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			// 2026-11-01 纽约 02:00 结束夏令时
			name:     "夏令时结束当天的指定日期",
			schedule: Schedule{Type: ScheduleTypeScheduled, Time: "09:00", Date: "2026-11-01", Timezone: "America/New_York"},
			after:    time.Date(2026, 10, 31, 12, 0, 0, 0, time.UTC),
			want:     time.Date(2026, 11, 1, 14, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "夏令时结束当天的每周定时",
			schedule: Schedule{Type: ScheduleTypeScheduled, Time: "09:00", Days: []time.Weekday{time.Sunday}, Timezone: "America/New_York"},
			after:    time.Date(2026, 10, 31, 12, 0, 0, 0, time.UTC),
			want:     time.Date(2026, 11, 1, 14, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "cron 优先于 days+time",
			schedule: Schedule{Type: ScheduleTypeScheduled, Time: "09:30", Cron: "0 12 * * *"},
			after:    monday10,
			want:     time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "date 优先于 cron",
			schedule: Schedule{Type: ScheduleTypeScheduled, Time: "08:00", Date: "2025-02-01", Cron: "0 12 * * *"},
			after:    monday10,
			want:     time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "date 已经过去",
			schedule: Schedule{Type: ScheduleTypeScheduled, Time: "08:00", Date: "2024-12-31"},
			after:    monday10,
			wantOK:   false,
		},
		{
			name:     "没有任何时间字段",
			schedule: Schedule{Type: ScheduleTypeScheduled},
			after:    monday10,
			wantOK:   false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tc.schedule.Next(tc.after)
			require.Equal(t, tc.wantOK, ok)
			if ok {
				assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestSchedule_Validate(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		schedule   Schedule
		wantFields []string
	}{
		{name: "立即发送", schedule: ImmediateSchedule()},
		{name: "合法的定时", schedule: Schedule{Type: ScheduleTypeScheduled, Time: "09:00", Days: []time.Weekday{time.Friday}}},
		{name: "只有 cron", schedule: Schedule{Type: ScheduleTypeScheduled, Cron: "*/15 * * * *"}},
		{
			name:       "time 和 cron 都为空",
			schedule:   Schedule{Type: ScheduleTypeScheduled, Days: []time.Weekday{time.Monday}},
			wantFields: []string{"schedule.time"},
		},
		{
			name:       "格式全部错误",
			schedule:   Schedule{Type: ScheduleTypeScheduled, Time: "25:61", Cron: "bad", Date: "2025/01/01", Days: []time.Weekday{9}, Timezone: "Mars/Base"},
			wantFields: []string{"schedule.time", "schedule.cron", "schedule.date", "schedule.days", "schedule.timezone"},
		},
		{
			name:       "未知类型",
			schedule:   Schedule{Type: "weekly"},
			wantFields: []string{"schedule.type"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fields := make([]string, 0)
			for _, fe := range tc.schedule.Validate() {
				fields = append(fields, fe.Field)
			}
			assert.ElementsMatch(t, tc.wantFields, fields)
		})
	}
}

func TestSchedule_NormalizeAndMerge(t *testing.T) {
	t.Parallel()
	s := Schedule{Type: ScheduleTypeImmediate, Time: "09:00", Cron: "0 9 * * *", Days: []time.Weekday{time.Monday}}
	assert.Equal(t, ImmediateSchedule(), s.Normalize())

	scheduled := Schedule{Type: ScheduleTypeScheduled, Time: "09:00", Days: []time.Weekday{time.Monday, time.Friday}}
	assert.True(t, scheduled.Normalize().Enabled)

	// 只改 time 不影响 days
	newTime := "10:15"
	merged := scheduled.Merge(SchedulePatch{Time: &newTime})
	assert.Equal(t, "10:15", merged.Time)
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, merged.Days)
	assert.Equal(t, "09:00", scheduled.Time)
}
