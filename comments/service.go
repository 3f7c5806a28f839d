package comments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/user/inkwell-go/apperror"
	"github.com/user/inkwell-go/auth"
	"github.com/user/inkwell-go/db"
)

// CommentService contains the business logic and queries for comments.
type CommentService struct {
	pool db.Pool
}

// NewCommentService creates a new CommentService.
func NewCommentService(pool db.Pool) *CommentService {
	return &CommentService{pool: pool}
}

// ListForPost returns all comments on a post, newest first, with their
// authors joined in. Listing is public.
func (s *CommentService) ListForPost(ctx context.Context, postID int) ([]CommentWithAuthor, error) {
	const query = `
		SELECT c.id, c.content, c.created_at, c.updated_at,
		       u.id, u.name, u.email
		FROM comments c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC`
	rows, err := s.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch comments", err)
	}
	defer rows.Close()

	comments := []CommentWithAuthor{}
	for rows.Next() {
		var c CommentWithAuthor
		var authorID *int
		var authorName, authorEmail *string
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.UpdatedAt, &authorID, &authorName, &authorEmail); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan comment", err)
		}
		if authorID != nil {
			c.Author = &Author{ID: *authorID}
			if authorName != nil {
				c.Author.Name = *authorName
			}
			if authorEmail != nil {
				c.Author.Email = *authorEmail
			}
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch comments", err)
	}
	return comments, nil
}

// Create inserts a new comment on a post authored by userID. Commenting on a
// post that does not exist is a 404, not a foreign key crash.
func (s *CommentService) Create(ctx context.Context, postID, userID int, req CreateCommentRequest) (*Comment, error) {
	var exists int
	err := s.pool.QueryRow(ctx, `SELECT 1 FROM posts WHERE id = $1`, postID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", err)
		}
		return nil, apperror.NewDatabaseError("failed to fetch post", err)
	}

	comment := &Comment{
		Content:  req.Content,
		PostID:   postID,
		AuthorID: userID,
	}
	const query = `INSERT INTO comments (content, post_id, author_id)
              VALUES ($1, $2, $3)
              RETURNING id, created_at, updated_at`
	err = s.pool.QueryRow(ctx, query, req.Content, postID, userID).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create comment", err)
	}
	return comment, nil
}

// Update replaces a comment's content. Only the author may update.
func (s *CommentService) Update(ctx context.Context, id, userID int, req UpdateCommentRequest) (*Comment, error) {
	comment, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(comment.AuthorID, userID) {
		return nil, apperror.NewUnauthorizedError("not authorized to edit this comment", nil)
	}

	const query = `UPDATE comments
              SET content = $2, updated_at = now()
              WHERE id = $1
              RETURNING updated_at`
	if err := s.pool.QueryRow(ctx, query, id, req.Content).Scan(&comment.UpdatedAt); err != nil {
		return nil, apperror.NewDatabaseError("failed to update comment", err)
	}
	comment.Content = req.Content
	return comment, nil
}

// Delete removes a comment. Only the author may delete.
func (s *CommentService) Delete(ctx context.Context, id, userID int) error {
	comment, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanMutate(comment.AuthorID, userID) {
		return apperror.NewUnauthorizedError("not authorized to delete this comment", nil)
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return apperror.NewDatabaseError("failed to delete comment", err)
	}
	return nil
}

// get loads a comment row, or a NotFoundError.
func (s *CommentService) get(ctx context.Context, id int) (*Comment, error) {
	var c Comment
	const query = `SELECT id, content, post_id, author_id, created_at, updated_at
		FROM comments WHERE id = $1`
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Content, &c.PostID, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("comment not found", err)
		}
		return nil, apperror.NewDatabaseError("failed to fetch comment", err)
	}
	return &c, nil
}
