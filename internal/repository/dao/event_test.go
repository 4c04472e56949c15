package dao

import (
	"testing"

	"gitee.com/flycash/notification-policy/internal/errs"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestEventDAO_Delete(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "删除已登记事件", affected: 1},
		{name: "事件不存在", affected: 0, wantErr: errs.ErrUnknownEvent},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			mock.ExpectBegin()
			mock.ExpectExec("DELETE FROM `event_descriptors` WHERE `key` = \\?").
				WithArgs("course.enrolled").
				WillReturnResult(sqlmock.NewResult(0, tc.affected))
			mock.ExpectCommit()

			err := NewEventDAO(db).Delete(t.Context(), "course.enrolled")
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
