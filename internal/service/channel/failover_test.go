package channel_test

import (
	"errors"
	"testing"

	"gitee.com/flycash/notification-policy/internal/domain"
	"gitee.com/flycash/notification-policy/internal/errs"
	"gitee.com/flycash/notification-policy/internal/service/channel"
	channelmocks "gitee.com/flycash/notification-policy/internal/service/channel/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFailoverProvider_Send(t *testing.T) {
	t.Parallel()
	msg := channel.Message{DeliveryID: 1, Channel: domain.ChannelEmail, RecipientUserID: "u1", Body: "hi"}

	testCases := []struct {
		name      string
		mock      func(ctrl *gomock.Controller) []channel.Provider
		wantRes   channel.Result
		assertErr assert.ErrorAssertionFunc
	}{
		{
			name: "第一个供应商成功",
			mock: func(ctrl *gomock.Controller) []channel.Provider {
				p1 := channelmocks.NewMockProvider(ctrl)
				p1.EXPECT().Send(gomock.Any(), msg).Return(channel.Succeeded(), nil)
				p2 := channelmocks.NewMockProvider(ctrl)
				return []channel.Provider{p1, p2}
			},
			wantRes:   channel.Succeeded(),
			assertErr: assert.NoError,
		},
		{
			name: "第一个出错，切换到第二个",
			mock: func(ctrl *gomock.Controller) []channel.Provider {
				p1 := channelmocks.NewMockProvider(ctrl)
				p1.EXPECT().Send(gomock.Any(), msg).Return(channel.Result{}, errors.New("timeout"))
				p2 := channelmocks.NewMockProvider(ctrl)
				p2.EXPECT().Send(gomock.Any(), msg).Return(channel.Accepted(), nil)
				return []channel.Provider{p1, p2}
			},
			wantRes:   channel.Accepted(),
			assertErr: assert.NoError,
		},
		{
			name: "明确失败不重试",
			mock: func(ctrl *gomock.Controller) []channel.Provider {
				p1 := channelmocks.NewMockProvider(ctrl)
				p1.EXPECT().Send(gomock.Any(), msg).Return(channel.Failed("bad address"), nil)
				p2 := channelmocks.NewMockProvider(ctrl)
				return []channel.Provider{p1, p2}
			},
			wantRes:   channel.Failed("bad address"),
			assertErr: assert.NoError,
		},
		{
			name: "全部出错",
			mock: func(ctrl *gomock.Controller) []channel.Provider {
				p1 := channelmocks.NewMockProvider(ctrl)
				p1.EXPECT().Send(gomock.Any(), msg).Return(channel.Result{}, errors.New("e1"))
				p2 := channelmocks.NewMockProvider(ctrl)
				p2.EXPECT().Send(gomock.Any(), msg).Return(channel.Result{}, errors.New("e2"))
				return []channel.Provider{p1, p2}
			},
			assertErr: func(t assert.TestingT, err error, _ ...any) bool {
				return assert.ErrorIs(t, err, errs.ErrChannelDeliveryFailure)
			},
		},
		{
			name: "没有供应商",
			mock: func(ctrl *gomock.Controller) []channel.Provider {
				return nil
			},
			assertErr: func(t assert.TestingT, err error, _ ...any) bool {
				return assert.ErrorIs(t, err, errs.ErrNoAvailableChannel)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			p := channel.NewFailoverProvider(tc.mock(ctrl)...)
			res, err := p.Send(t.Context(), msg)
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantRes, res)
		})
	}
}

func TestDispatcher_Send(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	email := channelmocks.NewMockProvider(ctrl)
	email.EXPECT().Send(gomock.Any(), gomock.Any()).Return(channel.Succeeded(), nil)
	d := channel.NewDispatcher(map[domain.Channel]channel.Provider{domain.ChannelEmail: email})

	res, err := d.Send(t.Context(), channel.Message{Channel: domain.ChannelEmail})
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryStatusSuccess, res.Status)

	_, err = d.Send(t.Context(), channel.Message{Channel: domain.ChannelSMS})
	assert.ErrorIs(t, err, errs.ErrNoAvailableChannel)
}
