package posts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/user/inkwell-go/apperror"
	"github.com/user/inkwell-go/auth"
	"github.com/user/inkwell-go/db"
)

// PostService contains the business logic and queries for posts.
type PostService struct {
	pool db.Pool
}

// NewPostService creates a new PostService.
func NewPostService(pool db.Pool) *PostService {
	return &PostService{pool: pool}
}

// List returns all posts, newest first, with their authors joined in.
// Listing is public and never consults ownership.
func (s *PostService) List(ctx context.Context) ([]PostWithAuthor, error) {
	const query = `
		SELECT p.id, p.title, p.content, p.created_at, p.updated_at,
		       u.id, u.name, u.email
		FROM posts p
		LEFT JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch posts", err)
	}
	defer rows.Close()

	posts := []PostWithAuthor{}
	for rows.Next() {
		post, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch posts", err)
	}
	return posts, nil
}

// Get returns a single post by id with its author joined in.
func (s *PostService) Get(ctx context.Context, id int) (*PostWithAuthor, error) {
	const query = `
		SELECT p.id, p.title, p.content, p.created_at, p.updated_at,
		       u.id, u.name, u.email
		FROM posts p
		LEFT JOIN users u ON p.author_id = u.id
		WHERE p.id = $1`
	post, err := scanPostWithAuthor(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", err)
		}
		return nil, apperror.NewDatabaseError("failed to fetch post", err)
	}
	return post, nil
}

// Create inserts a new post authored by userID.
func (s *PostService) Create(ctx context.Context, userID int, req CreatePostRequest) (*Post, error) {
	post := &Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: userID,
	}
	const query = `INSERT INTO posts (title, content, author_id)
              VALUES ($1, $2, $3)
              RETURNING id, created_at, updated_at`
	err := s.pool.QueryRow(ctx, query, req.Title, req.Content, userID).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	return post, nil
}

// Update replaces a post's title and content. Only the author may update;
// anyone else gets a 403 regardless of what changed.
func (s *PostService) Update(ctx context.Context, id, userID int, req UpdatePostRequest) (*Post, error) {
	authorID, err := s.authorOf(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(authorID, userID) {
		return nil, apperror.NewUnauthorizedError("not authorized to edit this post", nil)
	}

	post := &Post{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}
	const query = `UPDATE posts
              SET title = $2, content = $3, updated_at = now()
              WHERE id = $1
              RETURNING created_at, updated_at`
	err = s.pool.QueryRow(ctx, query, id, req.Title, req.Content).
		Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to update post", err)
	}
	return post, nil
}

// Delete removes a post. Only the author may delete. Comments on the post go
// with it via the store's cascade.
func (s *PostService) Delete(ctx context.Context, id, userID int) error {
	authorID, err := s.authorOf(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanMutate(authorID, userID) {
		return apperror.NewUnauthorizedError("not authorized to delete this post", nil)
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	return nil
}

// authorOf loads the author id of a post, or a NotFoundError.
func (s *PostService) authorOf(ctx context.Context, id int) (int, error) {
	var authorID int
	err := s.pool.QueryRow(ctx, `SELECT author_id FROM posts WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFoundError("post not found", err)
		}
		return 0, apperror.NewDatabaseError("failed to fetch post", err)
	}
	return authorID, nil
}

// scanPostWithAuthor scans one joined post row. The author columns come from
// a LEFT JOIN and may all be NULL.
func scanPostWithAuthor(row pgx.Row) (*PostWithAuthor, error) {
	var post PostWithAuthor
	var authorID *int
	var authorName, authorEmail *string
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt,
		&authorID, &authorName, &authorEmail,
	)
	if err != nil {
		return nil, err
	}
	if authorID != nil {
		post.Author = &Author{ID: *authorID}
		if authorName != nil {
			post.Author.Name = *authorName
		}
		if authorEmail != nil {
			post.Author.Email = *authorEmail
		}
	}
	return &post, nil
}
