package comments

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/user/inkwell-go/apperror"
)

func newServiceWithMock(t *testing.T) (*CommentService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewCommentService(mock), mock
}

func TestCommentService_ListForPost(t *testing.T) {
	service, mock := newServiceWithMock(t)
	defer mock.Close()
	now := time.Now()
	authorID := 1
	authorName := "Alice"
	authorEmail := "alice@example.com"

	mock.ExpectQuery(`SELECT c.id, c.content, c.created_at, c.updated_at`).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"id", "content", "created_at", "updated_at", "author_id", "author_name", "author_email"}).
			AddRow(2, "newer", now, now, &authorID, &authorName, &authorEmail).
			AddRow(1, "older", now.Add(-time.Hour), now.Add(-time.Hour), nil, nil, nil))

	comments, err := service.ListForPost(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "newer", comments[0].Content)
	require.Equal(t, "Alice", comments[0].Author.Name)
	require.Nil(t, comments[1].Author)
}

func TestCommentService_Create(t *testing.T) {
	service, mock := newServiceWithMock(t)
	defer mock.Close()
	now := time.Now()

	mock.ExpectQuery(`SELECT 1 FROM posts WHERE id = \$1`).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO comments \(content, post_id, author_id\)`).
		WithArgs("Nice post.", 5, 7).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

	comment, err := service.Create(context.Background(), 5, 7, CreateCommentRequest{Content: "Nice post."})
	require.NoError(t, err)
	require.Equal(t, 1, comment.ID)
	require.Equal(t, 5, comment.PostID)
	require.Equal(t, 7, comment.AuthorID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentService_Create_PostMissing(t *testing.T) {
	service, mock := newServiceWithMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT 1 FROM posts WHERE id = \$1`).
		WithArgs(999).
		WillReturnError(pgx.ErrNoRows)

	_, err := service.Create(context.Background(), 999, 7, CreateCommentRequest{Content: "into the void"})
	require.Error(t, err)
	require.True(t, apperror.IsNotFound(err))
	// The insert never runs.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentService_Update_ByAuthor(t *testing.T) {
	service, mock := newServiceWithMock(t)
	defer mock.Close()
	now := time.Now()

	mock.ExpectQuery(`SELECT id, content, post_id, author_id, created_at, updated_at`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "content", "post_id", "author_id", "created_at", "updated_at"}).
			AddRow(1, "old", 5, 7, now.Add(-time.Hour), now.Add(-time.Hour)))
	mock.ExpectQuery(`UPDATE comments`).
		WithArgs(1, "new").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	comment, err := service.Update(context.Background(), 1, 7, UpdateCommentRequest{Content: "new"})
	require.NoError(t, err)
	require.Equal(t, "new", comment.Content)
	require.Equal(t, now, comment.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentService_Update_NotAuthor(t *testing.T) {
	service, mock := newServiceWithMock(t)
	defer mock.Close()
	now := time.Now()

	mock.ExpectQuery(`SELECT id, content, post_id, author_id, created_at, updated_at`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "content", "post_id", "author_id", "created_at", "updated_at"}).
			AddRow(1, "old", 5, 7, now, now))

	_, err := service.Update(context.Background(), 1, 8, UpdateCommentRequest{Content: "new"})
	require.Error(t, err)
	require.True(t, apperror.IsUnauthorizedError(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentService_Delete(t *testing.T) {
	service, mock := newServiceWithMock(t)
	defer mock.Close()
	now := time.Now()

	mock.ExpectQuery(`SELECT id, content, post_id, author_id, created_at, updated_at`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "content", "post_id", "author_id", "created_at", "updated_at"}).
			AddRow(1, "old", 5, 7, now, now))
	mock.ExpectExec(`DELETE FROM comments WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, service.Delete(context.Background(), 1, 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentService_Delete_NotFound(t *testing.T) {
	service, mock := newServiceWithMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, content, post_id, author_id, created_at, updated_at`).
		WithArgs(999).
		WillReturnError(pgx.ErrNoRows)

	err := service.Delete(context.Background(), 999, 7)
	require.Error(t, err)
	require.True(t, apperror.IsNotFound(err))
}
