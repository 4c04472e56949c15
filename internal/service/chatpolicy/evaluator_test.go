package chatpolicy

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/pkg/counter"
	repomocks "gitee.com/flycash/notification-policy/internal/repository/mocks"
	directorymocks "gitee.com/flycash/notification-policy/internal/service/directory/mocks"
	"github.com/ecodeclub/ekit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// 2025-03-03 是周一
var monday10am = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

func openSettings() domain.ChatAvailabilitySettings {
	return domain.DefaultChatAvailabilitySettings()
}

func TestEvaluator_CanInitiate(t *testing.T) {
	t.Parallel()

	officeHours := openSettings()
	officeHours.DefaultHours[domain.RoleCreator] = domain.ChatWindow{Enabled: true, Start: "09:00", End: "17:00"}
	officeHours.GlobalChatWindow = domain.ChatWindow{Enabled: true, Start: "12:00", End: "13:00"}

	testCases := []struct {
		name     string
		matrix   domain.PermissionMatrix
		settings domain.ChatAvailabilitySettings
		from     domain.Role
		to       domain.Role
		cc       domain.ChatContext
		before   func(dir *directorymocks.MockDirectory, c counter.DailyCounter)
		want     domain.ChatDecision
	}{
		{
			name:   "没有配置规则",
			matrix: domain.PermissionMatrix{},
			from:   domain.RoleLearner,
			to:     domain.RoleCreator,
			want:   domain.Deny(domain.DenyNoPolicyDefined),
		},
		{
			name: "canChat 为 false 时忽略 canInitiate",
			matrix: domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
				CanChat: false, CanInitiate: true, CanRespond: true,
			}}},
			from: domain.RoleLearner,
			to:   domain.RoleCreator,
			want: domain.Deny(domain.DenyChatDisabledForRolePair),
		},
		{
			name: "不允许主动发起",
			matrix: domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
				CanChat: true, CanRespond: true,
			}}},
			from: domain.RoleLearner,
			to:   domain.RoleCreator,
			want: domain.Deny(domain.DenyDirectionNotAllowed),
		},
		{
			name: "反方向的规则互不影响",
			matrix: domain.PermissionMatrix{domain.RoleCreator: {domain.RoleLearner: {
				CanChat: true, CanInitiate: true,
			}}},
			from: domain.RoleLearner,
			to:   domain.RoleCreator,
			want: domain.Deny(domain.DenyNoPolicyDefined),
		},
		{
			name: "没有选课",
			matrix: domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
				CanChat: true, CanInitiate: true, RequiresCourseEnrollment: true,
			}}},
			from: domain.RoleLearner,
			to:   domain.RoleCreator,
			cc:   domain.ChatContext{FromUserID: "l1", ToUserID: "c1", Enrolled: ekit.ToPtr(false)},
			want: domain.Deny(domain.DenyEnrollmentRequired),
		},
		{
			name: "选课信息从用户目录里查学员",
			matrix: domain.PermissionMatrix{domain.RoleCreator: {domain.RoleLearner: {
				CanChat: true, CanInitiate: true, RequiresCourseEnrollment: true,
			}}},
			from: domain.RoleCreator,
			to:   domain.RoleLearner,
			cc:   domain.ChatContext{FromUserID: "c1", ToUserID: "l1", CourseID: "go101"},
			before: func(dir *directorymocks.MockDirectory, _ counter.DailyCounter) {
				dir.EXPECT().IsEnrolled(gomock.Any(), "l1", "go101").Return(false, nil)
			},
			want: domain.Deny(domain.DenyEnrollmentRequired),
		},
		{
			name: "课时不够",
			matrix: domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
				CanChat: true, CanInitiate: true, RequiresCourseEnrollment: true,
				RequiresLessonCompletion: ekit.ToPtr(3),
			}}},
			from: domain.RoleLearner,
			to:   domain.RoleCreator,
			cc:   domain.ChatContext{FromUserID: "l1", ToUserID: "c1", CourseID: "go101"},
			before: func(dir *directorymocks.MockDirectory, _ counter.DailyCounter) {
				dir.EXPECT().IsEnrolled(gomock.Any(), "l1", "go101").Return(true, nil)
				dir.EXPECT().CompletedLessons(gomock.Any(), "l1", "go101").Return(2, nil)
			},
			want: domain.Deny(domain.DenyLessonThresholdNotMet),
		},
		{
			name: "课时足够",
			matrix: domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
				CanChat: true, CanInitiate: true, RequiresLessonCompletion: ekit.ToPtr(3),
			}}},
			from: domain.RoleLearner,
			to:   domain.RoleCreator,
			cc:   domain.ChatContext{FromUserID: "l1", ToUserID: "c1", CompletedLessons: ekit.ToPtr(3)},
			want: domain.Allow(),
		},
		{
			name: "当天额度用完",
			matrix: domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
				CanChat: true, CanInitiate: true, MaxDailyMessages: ekit.ToPtr(1),
			}}},
			from: domain.RoleLearner,
			to:   domain.RoleCreator,
			cc:   domain.ChatContext{FromUserID: "l1", ToUserID: "c1"},
			before: func(_ *directorymocks.MockDirectory, c counter.DailyCounter) {
				_, _ = c.IncrIfBelow(t.Context(), counterKey(monday10am, domain.RoleLearner, domain.RoleCreator,
					domain.ChatContext{FromUserID: "l1", ToUserID: "c1"}), 1)
			},
			want: domain.Deny(domain.DenyDailyLimitExceeded),
		},
		{
			name: "额度为 0 时总是拒绝",
			matrix: domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
				CanChat: true, CanInitiate: true, MaxDailyMessages: ekit.ToPtr(0),
			}}},
			from: domain.RoleLearner,
			to:   domain.RoleCreator,
			want: domain.Deny(domain.DenyDailyLimitExceeded),
		},
		{
			name: "额度检查在时间窗口之前",
			matrix: domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
				CanChat: true, CanInitiate: true, MaxDailyMessages: ekit.ToPtr(0),
			}}},
			settings: func() domain.ChatAvailabilitySettings {
				s := openSettings()
				s.GlobalChatWindow = domain.ChatWindow{Enabled: true, Start: "20:00", End: "21:00"}
				return s
			}(),
			from: domain.RoleLearner,
			to:   domain.RoleCreator,
			want: domain.Deny(domain.DenyDailyLimitExceeded),
		},
		{
			name: "两个窗口都不包含当前时间",
			matrix: domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
				CanChat: true, CanInitiate: true,
			}}},
			settings: officeHours,
			from:     domain.RoleLearner,
			to:       domain.RoleCreator,
			cc:       domain.ChatContext{Now: time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC)},
			want:     domain.Deny(domain.DenyOutsideAvailabilityWindow),
		},
		{
			name: "被联系方的工作时间内",
			matrix: domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
				CanChat: true, CanInitiate: true,
			}}},
			settings: officeHours,
			from:     domain.RoleLearner,
			to:       domain.RoleCreator,
			want:     domain.Allow(),
		},
		{
			name: "只看被联系方的工作时间",
			matrix: domain.PermissionMatrix{domain.RoleCreator: {domain.RoleLearner: {
				CanChat: true, CanInitiate: true,
			}}},
			settings: officeHours,
			from:     domain.RoleCreator,
			to:       domain.RoleLearner,
			// learner 没有默认工作时间，只剩全局窗口 12:00-13:00
			want: domain.Deny(domain.DenyOutsideAvailabilityWindow),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repomocks.NewMockChatRepository(ctrl)
			dir := directorymocks.NewMockDirectory(ctrl)
			c := counter.NewLocalDailyCounter()
			settings := tc.settings
			if settings.DefaultHours == nil {
				settings = openSettings()
			}
			repo.EXPECT().GetMatrix(gomock.Any()).Return(tc.matrix, nil)
			repo.EXPECT().GetSettings(gomock.Any()).Return(settings, nil).AnyTimes()
			if tc.before != nil {
				tc.before(dir, c)
			}
			cc := tc.cc
			if cc.Now.IsZero() {
				cc.Now = monday10am
			}

			got, err := NewEvaluator(repo, dir, c).CanInitiate(t.Context(), tc.from, tc.to, cc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluator_CanRespond(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockChatRepository(ctrl)
	matrix := domain.PermissionMatrix{domain.RoleCreator: {domain.RoleLearner: {
		CanChat: true, CanInitiate: false, CanRespond: true,
	}}}
	repo.EXPECT().GetMatrix(gomock.Any()).Return(matrix, nil).Times(2)
	repo.EXPECT().GetSettings(gomock.Any()).Return(openSettings(), nil)

	e := NewEvaluator(repo, directorymocks.NewMockDirectory(ctrl), counter.NewLocalDailyCounter())
	cc := domain.ChatContext{FromUserID: "c1", ToUserID: "l1", Now: monday10am}

	got, err := e.CanRespond(t.Context(), domain.RoleCreator, domain.RoleLearner, cc)
	require.NoError(t, err)
	assert.Equal(t, domain.Allow(), got)

	got, err = e.CanInitiate(t.Context(), domain.RoleCreator, domain.RoleLearner, cc)
	require.NoError(t, err)
	assert.Equal(t, domain.Deny(domain.DenyDirectionNotAllowed), got)
}

func TestEvaluator_DailyLimit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockChatRepository(ctrl)
	matrix := domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
		CanChat: true, CanInitiate: true, MaxDailyMessages: ekit.ToPtr(3),
	}}}
	repo.EXPECT().GetMatrix(gomock.Any()).Return(matrix, nil).AnyTimes()
	repo.EXPECT().GetSettings(gomock.Any()).Return(openSettings(), nil).AnyTimes()

	e := NewEvaluator(repo, directorymocks.NewMockDirectory(ctrl), counter.NewLocalDailyCounter())
	cc := domain.ChatContext{FromUserID: "l1", ToUserID: "c1", Now: monday10am}

	for i := 0; i < 3; i++ {
		got, err := e.CanInitiate(t.Context(), domain.RoleLearner, domain.RoleCreator, cc)
		require.NoError(t, err)
		assert.True(t, got.Allowed, "第 %d 次", i+1)
	}
	got, err := e.CanInitiate(t.Context(), domain.RoleLearner, domain.RoleCreator, cc)
	require.NoError(t, err)
	assert.Equal(t, domain.Deny(domain.DenyDailyLimitExceeded), got)

	// 另一个接收人有自己的额度
	other := cc
	other.ToUserID = "c2"
	got, err = e.CanInitiate(t.Context(), domain.RoleLearner, domain.RoleCreator, other)
	require.NoError(t, err)
	assert.True(t, got.Allowed)

	// 第二天重新计数
	tomorrow := cc
	tomorrow.Now = monday10am.Add(24 * time.Hour)
	got, err = e.CanInitiate(t.Context(), domain.RoleLearner, domain.RoleCreator, tomorrow)
	require.NoError(t, err)
	assert.True(t, got.Allowed)
}

func TestEvaluator_DeniedByWindowKeepsQuota(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockChatRepository(ctrl)
	matrix := domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
		CanChat: true, CanInitiate: true, MaxDailyMessages: ekit.ToPtr(1),
	}}}
	settings := openSettings()
	settings.GlobalChatWindow = domain.ChatWindow{Enabled: true, Start: "09:00", End: "11:00"}
	repo.EXPECT().GetMatrix(gomock.Any()).Return(matrix, nil).AnyTimes()
	repo.EXPECT().GetSettings(gomock.Any()).Return(settings, nil).AnyTimes()

	c := counter.NewLocalDailyCounter()
	e := NewEvaluator(repo, directorymocks.NewMockDirectory(ctrl), c)
	cc := domain.ChatContext{FromUserID: "l1", ToUserID: "c1", Now: monday10am.Add(3 * time.Hour)}

	got, err := e.CanInitiate(t.Context(), domain.RoleLearner, domain.RoleCreator, cc)
	require.NoError(t, err)
	assert.Equal(t, domain.Deny(domain.DenyOutsideAvailabilityWindow), got)

	cnt, err := c.Get(t.Context(), counterKey(cc.Now, domain.RoleLearner, domain.RoleCreator, cc))
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

// maxDailyChats 只是配置展示，限额由权限格子的 maxDailyMessages 决定
func TestEvaluator_MaxDailyChatsNotEnforced(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockChatRepository(ctrl)
	matrix := domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
		CanChat: true, CanInitiate: true,
	}}}
	settings := openSettings()
	settings.MaxDailyChats = 1
	repo.EXPECT().GetMatrix(gomock.Any()).Return(matrix, nil).AnyTimes()
	repo.EXPECT().GetSettings(gomock.Any()).Return(settings, nil).AnyTimes()

	e := NewEvaluator(repo, directorymocks.NewMockDirectory(ctrl), counter.NewLocalDailyCounter())
	for _, to := range []string{"c1", "c2", "c3"} {
		got, err := e.CanInitiate(t.Context(), domain.RoleLearner, domain.RoleCreator,
			domain.ChatContext{FromUserID: "l1", ToUserID: to, Now: monday10am})
		require.NoError(t, err)
		assert.Equal(t, domain.Allow(), got)
	}
}

func TestEvaluator_ConcurrentDailyLimit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const (
		n     = 64
		limit = 7
	)
	repo := repomocks.NewMockChatRepository(ctrl)
	matrix := domain.PermissionMatrix{domain.RoleLearner: {domain.RoleCreator: {
		CanChat: true, CanInitiate: true, MaxDailyMessages: ekit.ToPtr(limit),
	}}}
	repo.EXPECT().GetMatrix(gomock.Any()).Return(matrix, nil).AnyTimes()
	repo.EXPECT().GetSettings(gomock.Any()).Return(openSettings(), nil).AnyTimes()

	e := NewEvaluator(repo, directorymocks.NewMockDirectory(ctrl), counter.NewLocalDailyCounter())
	cc := domain.ChatContext{FromUserID: "l1", ToUserID: "c1", Now: monday10am}

	var allowed, limited atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.CanInitiate(t.Context(), domain.RoleLearner, domain.RoleCreator, cc)
			if err != nil {
				return
			}
			if got.Allowed {
				allowed.Add(1)
			} else if got.Reason == domain.DenyDailyLimitExceeded {
				limited.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(limit), allowed.Load())
	assert.Equal(t, int64(n-limit), limited.Load())
}
