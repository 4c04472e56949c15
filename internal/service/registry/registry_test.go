package registry

import (
	"context"
	"errors"
	"testing"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/errs"
	repomocks "gitee.com/flycash/notification-policy/internal/repository/mocks"
	eventsourcemocks "gitee.com/flycash/notification-policy/internal/service/eventsource/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func TestRegistrySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RegistryTestSuite))
}

type RegistryTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	repo   *repomocks.MockEventRepository
	source *eventsourcemocks.MockSource
	svc    Service
}

func (s *RegistryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = repomocks.NewMockEventRepository(s.ctrl)
	s.source = eventsourcemocks.NewMockSource(s.ctrl)
	s.svc = NewService(s.repo, s.source)
}

func (s *RegistryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RegistryTestSuite) TestScan_InsertNewSkipExisting() {
	t := s.T()
	s.source.EXPECT().Events(gomock.Any()).Return([]domain.EventDescriptor{
		{Key: "course.enrolled", Label: "报名"},
		{Key: "payment.succeeded", Label: "支付成功"},
	}, nil)
	s.repo.EXPECT().FindByKeys(gomock.Any(), []string{"course.enrolled", "payment.succeeded"}).
		Return([]domain.EventDescriptor{{Key: "course.enrolled", Label: "报名"}}, nil)
	s.repo.EXPECT().Create(gomock.Any(), domain.EventDescriptor{Key: "payment.succeeded", Label: "支付成功"}).
		Return(domain.EventDescriptor{Key: "payment.succeeded", Label: "支付成功", Ctime: 1}, nil)
	all := []domain.EventDescriptor{{Key: "course.enrolled"}, {Key: "payment.succeeded"}}
	s.repo.EXPECT().FindAll(gomock.Any()).Return(all, nil)

	res, err := s.svc.Scan(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"payment.succeeded"}, res.Inserted)
	assert.Equal(t, []string{"course.enrolled"}, res.Skipped)
	assert.Equal(t, all, res.Events)
}

func (s *RegistryTestSuite) TestScan_SecondScanInsertsNothing() {
	t := s.T()
	events := []domain.EventDescriptor{{Key: "a", Label: "A"}, {Key: "b", Label: "B"}}
	s.source.EXPECT().Events(gomock.Any()).Return(events, nil).Times(2)

	stored := map[string]domain.EventDescriptor{}
	s.repo.EXPECT().FindByKeys(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, keys []string) ([]domain.EventDescriptor, error) {
			var res []domain.EventDescriptor
			for _, k := range keys {
				if e, ok := stored[k]; ok {
					res = append(res, e)
				}
			}
			return res, nil
		}).Times(2)
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e domain.EventDescriptor) (domain.EventDescriptor, error) {
			stored[e.Key] = e
			return e, nil
		}).Times(2)
	s.repo.EXPECT().FindAll(gomock.Any()).Return(events, nil).Times(2)

	first, err := s.svc.Scan(t.Context())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, first.Inserted)

	second, err := s.svc.Scan(t.Context())
	require.NoError(t, err)
	assert.Empty(t, second.Inserted)
	assert.ElementsMatch(t, []string{"a", "b"}, second.Skipped)
}

func (s *RegistryTestSuite) TestScan_ConcurrentInsertCountsAsSkipped() {
	t := s.T()
	s.source.EXPECT().Events(gomock.Any()).Return([]domain.EventDescriptor{{Key: "a", Label: "A"}}, nil)
	s.repo.EXPECT().FindByKeys(gomock.Any(), gomock.Any()).Return(nil, nil)
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.EventDescriptor{}, errs.ErrEventDuplicate)
	s.repo.EXPECT().FindAll(gomock.Any()).Return([]domain.EventDescriptor{{Key: "a"}}, nil)

	res, err := s.svc.Scan(t.Context())
	require.NoError(t, err)
	assert.Empty(t, res.Inserted)
	assert.Equal(t, []string{"a"}, res.Skipped)
}

func (s *RegistryTestSuite) TestScan_SourceUnavailable() {
	t := s.T()
	s.source.EXPECT().Events(gomock.Any()).Return(nil, errors.New("file not found"))

	_, err := s.svc.Scan(t.Context())
	assert.ErrorIs(t, err, errs.ErrRegistryUnavailable)
}

func (s *RegistryTestSuite) TestScan_InvalidKeysWriteNothing() {
	t := s.T()
	s.source.EXPECT().Events(gomock.Any()).Return([]domain.EventDescriptor{
		{Key: "ok"}, {Key: ""}, {Key: "has space"},
	}, nil)

	_, err := s.svc.Scan(t.Context())
	require.ErrorIs(t, err, errs.ErrValidation)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"events[1].key", "events[2].key"}, ve.Fields())
}

func (s *RegistryTestSuite) TestCatalog() {
	t := s.T()
	s.repo.EXPECT().Exists(gomock.Any(), "a").Return(true, nil)
	vars := []domain.TemplateVariable{{Variable: "name", Description: "姓名"}}
	s.source.EXPECT().Catalog(gomock.Any(), "a").Return(vars, nil)

	res, err := s.svc.Catalog(t.Context(), "a")
	require.NoError(t, err)
	assert.Equal(t, vars, res)

	s.repo.EXPECT().Exists(gomock.Any(), "missing").Return(false, nil)
	_, err = s.svc.Catalog(t.Context(), "missing")
	assert.ErrorIs(t, err, errs.ErrUnknownEvent)
}

func (s *RegistryTestSuite) TestPurge() {
	testCases := []struct {
		name    string
		key     string
		before  func()
		wantErr error
	}{
		{
			name: "删除已登记事件",
			key:  "course.enrolled",
			before: func() {
				s.repo.EXPECT().Delete(gomock.Any(), "course.enrolled").Return(nil)
			},
		},
		{
			name:    "key 为空",
			before:  func() {},
			wantErr: errs.ErrInvalidParameter,
		},
		{
			name: "事件不存在",
			key:  "missing",
			before: func() {
				s.repo.EXPECT().Delete(gomock.Any(), "missing").Return(errs.ErrUnknownEvent)
			},
			wantErr: errs.ErrUnknownEvent,
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.before()
			err := s.svc.Purge(s.T().Context(), tc.key)
			assert.ErrorIs(s.T(), err, tc.wantErr)
		})
	}
}

func (s *RegistryTestSuite) TestPurge_RescanRestoresDeclaredEvent() {
	t := s.T()
	s.repo.EXPECT().Delete(gomock.Any(), "a").Return(nil)
	require.NoError(t, s.svc.Purge(t.Context(), "a"))

	s.source.EXPECT().Events(gomock.Any()).Return([]domain.EventDescriptor{{Key: "a", Label: "A"}}, nil)
	s.repo.EXPECT().FindByKeys(gomock.Any(), []string{"a"}).Return(nil, nil)
	s.repo.EXPECT().Create(gomock.Any(), domain.EventDescriptor{Key: "a", Label: "A"}).
		Return(domain.EventDescriptor{Key: "a", Label: "A"}, nil)
	s.repo.EXPECT().FindAll(gomock.Any()).Return([]domain.EventDescriptor{{Key: "a", Label: "A"}}, nil)

	res, err := s.svc.Scan(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Inserted)
}
