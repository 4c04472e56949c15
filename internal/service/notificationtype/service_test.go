package notificationtype

import (
	"context"
	"testing"
	"time"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/errs"
	repomocks "gitee.com/flycash/notification-policy/internal/repository/mocks"
	registrymocks "gitee.com/flycash/notification-policy/internal/service/registry/mocks"
	"github.com/sony/sonyflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func TestNotificationTypeSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(NotificationTypeTestSuite))
}

type NotificationTypeTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	repo     *repomocks.MockNotificationTypeRepository
	registry *registrymocks.MockService
	svc      Service
}

func (s *NotificationTypeTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = repomocks.NewMockNotificationTypeRepository(s.ctrl)
	s.registry = registrymocks.NewMockService(s.ctrl)
	idGenerator := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		MachineID: func() (uint16, error) {
			return 1, nil
		},
	})
	s.svc = NewService(s.repo, s.registry, idGenerator)
}

func (s *NotificationTypeTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *NotificationTypeTestSuite) validType() domain.NotificationType {
	return domain.NotificationType{
		Title:           "欢迎 {{learnerName}}",
		MessageTemplate: "你已报名 {{courseTitle}}",
		EventType:       "course.enrolled",
		Roles:           []domain.Role{domain.RoleLearner},
		Channels:        domain.Channels{Email: true},
		IsActive:        true,
		Priority:        domain.PriorityHigh,
		Schedule:        domain.ImmediateSchedule(),
	}
}

func (s *NotificationTypeTestSuite) TestCreate_Success() {
	t := s.T()
	s.registry.EXPECT().Exists(gomock.Any(), "course.enrolled").Return(true, nil)
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, nt domain.NotificationType) (domain.NotificationType, error) {
			assert.NotZero(t, nt.ID)
			nt.Version = 1
			return nt, nil
		})

	nt := s.validType()
	// immediate 时定时字段全部丢弃
	nt.Schedule.Enabled = true
	nt.Schedule.Time = "09:00"
	nt.Schedule.Days = []time.Weekday{time.Monday}
	nt.Priority = ""

	created, err := s.svc.Create(t.Context(), nt)
	require.NoError(t, err)
	assert.Equal(t, domain.ImmediateSchedule(), created.Schedule)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.Equal(t, 1, created.Version)
}

func (s *NotificationTypeTestSuite) TestCreate_ReportsEveryInvalidField() {
	t := s.T()
	s.registry.EXPECT().Exists(gomock.Any(), "no.such.event").Return(false, nil)

	nt := domain.NotificationType{
		EventType: "no.such.event",
		Roles:     []domain.Role{"janitor"},
		Priority:  "urgent",
		Schedule:  domain.Schedule{Type: domain.ScheduleTypeScheduled},
	}
	_, err := s.svc.Create(t.Context(), nt)
	require.ErrorIs(t, err, errs.ErrValidation)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{
		"title", "messageTemplate", "roles", "channels", "priority", "schedule.time", "eventType",
	}, ve.Fields())
}

func (s *NotificationTypeTestSuite) TestCreate_ScheduledWithoutTimeOrCron() {
	t := s.T()
	s.registry.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil)

	nt := s.validType()
	nt.Schedule = domain.Schedule{Type: domain.ScheduleTypeScheduled, Days: []time.Weekday{time.Monday}}
	_, err := s.svc.Create(t.Context(), nt)
	require.ErrorIs(t, err, errs.ErrValidation)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"schedule.time"}, ve.Fields())
}

func (s *NotificationTypeTestSuite) TestUpdate_MergesSchedule() {
	t := s.T()
	cur := s.validType()
	cur.ID = 10
	cur.Version = 3
	cur.Schedule = domain.Schedule{
		Type:    domain.ScheduleTypeScheduled,
		Enabled: true,
		Time:    "09:00",
		Days:    []time.Weekday{time.Monday, time.Friday},
	}
	s.repo.EXPECT().GetByID(gomock.Any(), uint64(10)).Return(cur, nil)
	s.registry.EXPECT().Exists(gomock.Any(), cur.EventType).Return(true, nil)
	s.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, nt domain.NotificationType) error {
			assert.Equal(t, 3, nt.Version)
			return nil
		})

	newTime := "18:30"
	updated, err := s.svc.Update(t.Context(), 10, domain.NotificationTypePatch{
		Schedule: &domain.SchedulePatch{Time: &newTime},
	})
	require.NoError(t, err)
	assert.Equal(t, "18:30", updated.Schedule.Time)
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, updated.Schedule.Days)
	assert.Equal(t, 4, updated.Version)
	assert.Equal(t, cur.Title, updated.Title)
}

func (s *NotificationTypeTestSuite) TestUpdate_SwitchToImmediateClearsDeferredFields() {
	t := s.T()
	cur := s.validType()
	cur.ID = 10
	cur.Version = 1
	cur.Schedule = domain.Schedule{Type: domain.ScheduleTypeScheduled, Enabled: true, Cron: "0 9 * * *"}
	s.repo.EXPECT().GetByID(gomock.Any(), uint64(10)).Return(cur, nil)
	s.registry.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil)
	s.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	immediate := domain.ScheduleTypeImmediate
	updated, err := s.svc.Update(t.Context(), 10, domain.NotificationTypePatch{
		Schedule: &domain.SchedulePatch{Type: &immediate},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ImmediateSchedule(), updated.Schedule)
}

func (s *NotificationTypeTestSuite) TestUpdate_StaleVersion() {
	t := s.T()
	cur := s.validType()
	cur.ID = 10
	cur.Version = 5
	s.repo.EXPECT().GetByID(gomock.Any(), uint64(10)).Return(cur, nil)

	title := "new"
	_, err := s.svc.Update(t.Context(), 10, domain.NotificationTypePatch{Title: &title, Version: 4})
	assert.ErrorIs(t, err, errs.ErrNotificationTypeVersionMismatch)
}

func (s *NotificationTypeTestSuite) TestUpdate_InvalidPatch() {
	t := s.T()
	cur := s.validType()
	cur.ID = 10
	s.repo.EXPECT().GetByID(gomock.Any(), uint64(10)).Return(cur, nil)
	s.registry.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil)

	empty := ""
	_, err := s.svc.Update(t.Context(), 10, domain.NotificationTypePatch{Title: &empty})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func (s *NotificationTypeTestSuite) TestToggleActive_IsItsOwnInverse() {
	t := s.T()
	active := true
	s.repo.EXPECT().ToggleActive(gomock.Any(), uint64(7)).
		DoAndReturn(func(_ context.Context, _ uint64) (bool, error) {
			active = !active
			return active, nil
		}).Times(2)

	first, err := s.svc.ToggleActive(t.Context(), 7)
	require.NoError(t, err)
	assert.False(t, first)
	second, err := s.svc.ToggleActive(t.Context(), 7)
	require.NoError(t, err)
	assert.True(t, second)
}

func (s *NotificationTypeTestSuite) TestList_UnknownRole() {
	t := s.T()
	_, err := s.svc.List(t.Context(), domain.NotificationTypeFilter{Role: "janitor"})
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
}
