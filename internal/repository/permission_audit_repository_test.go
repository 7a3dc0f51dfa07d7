package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestPermissionAuditRepository_FindByUserID(t *testing.T) {
	countQuery := `SELECT count\(\*\) FROM "permission_audits" WHERE user_id = \$1`
	selectQuery := `SELECT \* FROM "permission_audits" WHERE user_id = \$1 ORDER BY created_at DESC LIMIT`

	type tc struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		assert    func(t *testing.T, uuids []string, total int64, err error)
	}

	cases := []tc{
		{
			name: "Success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(countQuery).WithArgs("u-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
				mock.ExpectQuery(selectQuery).
					WillReturnRows(sqlmock.NewRows([]string{"uuid", "user_id", "added", "created_at"}).
						AddRow("a-3", "u-1", `["leads:delete"]`, time.Now()).
						AddRow("a-2", "u-1", `[]`, time.Now().Add(-time.Hour)))
			},
			assert: func(t *testing.T, uuids []string, total int64, err error) {
				require.NoError(t, err)
				require.Equal(t, int64(3), total)
				require.Equal(t, []string{"a-3", "a-2"}, uuids)
			},
		},
		{
			name: "CountError",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(countQuery).WillReturnError(errors.New("db error"))
			},
			assert: func(t *testing.T, _ []string, _ int64, err error) {
				require.Error(t, err)
			},
		},
		{
			name: "SelectError",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(countQuery).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectQuery(selectQuery).WillReturnError(errors.New("db error"))
			},
			assert: func(t *testing.T, _ []string, total int64, err error) {
				require.Error(t, err)
				require.Zero(t, total)
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gdb, mock := newMockDB(t)
			c.setupMock(mock)

			audits, total, err := NewPermissionAuditRepository(gdb).FindByUserID(context.Background(), "u-1", 1, 2)
			var uuids []string
			for _, a := range audits {
				uuids = append(uuids, a.UUID)
			}
			c.assert(t, uuids, total, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
