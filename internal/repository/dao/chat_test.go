package dao

import (
	"testing"

	"gitee.com/flycash/notification-policy/internal/errs"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatDAO_SaveSettings(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name        string
		version     int64
		mock        func(mock sqlmock.Sqlmock)
		wantVersion int64
		wantErr     error
	}{
		{
			name:    "第一次保存",
			version: 0,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `chat_availability_settings`").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			wantVersion: 1,
		},
		{
			name:    "第一次保存时别人已经保存",
			version: 0,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `chat_availability_settings`").
					WillReturnError(&mysql.MySQLError{Number: 1062})
				mock.ExpectRollback()
			},
			wantErr: errs.ErrSettingsVersionConflict,
		},
		{
			name:    "版本匹配",
			version: 3,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE `chat_availability_settings` SET .* WHERE id = \\? AND version = \\?").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantVersion: 4,
		},
		{
			name:    "版本冲突",
			version: 3,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE `chat_availability_settings` SET").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
			wantErr: errs.ErrSettingsVersionConflict,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			tc.mock(mock)
			res, err := NewChatDAO(db).SaveSettings(t.Context(), tc.version, `{"globalWindow":{}}`)
			assert.NoError(t, mock.ExpectationsWereMet())
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantVersion, res.Version)
		})
	}
}

func TestChatDAO_ListRestrictionsByRole(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `chat_restrictions` WHERE role = \\? ORDER BY id ASC").
		WithArgs("learner").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "name"}).
			AddRow(1, "learner", "仅限课程相关"))

	res, err := NewChatDAO(db).ListRestrictions(t.Context(), "learner")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "仅限课程相关", res[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
