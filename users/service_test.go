package users

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/user/inkwell-go/apperror"
)

func newServiceWithMock(t *testing.T) (*UserService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewUserService(mock), mock
}

func TestUserService_GetProfile(t *testing.T) {
	service, mock := newServiceWithMock(t)
	defer mock.Close()
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, email, created_at FROM users WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow(1, "Alice", "alice@example.com", now))
	mock.ExpectQuery(`SELECT id, title, created_at FROM posts WHERE author_id = \$1`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "created_at"}).
			AddRow(2, "Second", now).
			AddRow(1, "First", now.Add(-time.Hour)))

	profile, err := service.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Alice", profile.Name)
	require.Equal(t, 2, profile.PostsCount)
	require.Len(t, profile.Posts, 2)
	require.Equal(t, "Second", profile.Posts[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetProfile_NoPosts(t *testing.T) {
	service, mock := newServiceWithMock(t)
	defer mock.Close()
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, email, created_at FROM users WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow(1, "Alice", "alice@example.com", now))
	mock.ExpectQuery(`SELECT id, title, created_at FROM posts WHERE author_id = \$1`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "created_at"}))

	profile, err := service.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	require.Zero(t, profile.PostsCount)
	// Serializes as [] rather than null.
	require.NotNil(t, profile.Posts)
	require.Empty(t, profile.Posts)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	service, mock := newServiceWithMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, email, created_at FROM users WHERE id = \$1`).
		WithArgs(999).
		WillReturnError(pgx.ErrNoRows)

	_, err := service.GetProfile(context.Background(), 999)
	require.Error(t, err)
	require.True(t, apperror.IsNotFound(err))
}
