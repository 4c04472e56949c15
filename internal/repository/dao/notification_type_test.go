package dao

import (
	"testing"

	"gitee.com/flycash/notification-policy/internal/errs"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationTypeDAO_Update(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "版本匹配", affected: 1},
		{name: "版本不匹配", affected: 0, wantErr: errs.ErrNotificationTypeVersionMismatch},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			mock.ExpectBegin()
			mock.ExpectExec("UPDATE `notification_types` SET .* WHERE id = \\? AND version = \\? AND dtime = 0").
				WillReturnResult(sqlmock.NewResult(0, tc.affected))
			mock.ExpectCommit()

			err := NewNotificationTypeDAO(db).Update(t.Context(), NotificationType{ID: 7, Version: 2, Title: "t"})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotificationTypeDAO_SoftDeleteMissing(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `notification_types` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewNotificationTypeDAO(db).SoftDelete(t.Context(), 7)
	assert.ErrorIs(t, err, errs.ErrNotificationTypeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationTypeDAO_FindActiveByEvent(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `notification_types` WHERE event_type = \\? AND is_active = \\? AND dtime = 0 ORDER BY id ASC").
		WithArgs("course.enrolled", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_type", "is_active", "roles"}).
			AddRow(1, "course.enrolled", true, `["learner"]`).
			AddRow(2, "course.enrolled", true, `["instructor"]`))

	res, err := NewNotificationTypeDAO(db).FindActiveByEvent(t.Context(), "course.enrolled")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, `["instructor"]`, res[1].Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}
