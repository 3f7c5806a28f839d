package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/user/inkwell-go/apperror"
	"github.com/user/inkwell-go/db"
)

// UserService assembles profile responses from the users and posts tables.
type UserService struct {
	pool db.Pool
}

// NewUserService creates a new UserService.
func NewUserService(pool db.Pool) *UserService {
	return &UserService{pool: pool}
}

// GetProfile returns a user's profile with their posts, newest first.
// Profiles are public; the same shape serves the authenticated "me" route.
func (s *UserService) GetProfile(ctx context.Context, userID int) (*ProfileResponse, error) {
	profile := &ProfileResponse{Posts: []PostSummary{}}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, created_at FROM users WHERE id = $1`, userID).
		Scan(&profile.ID, &profile.Name, &profile.Email, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", err)
		}
		return nil, apperror.NewDatabaseError("failed to fetch user", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, title, created_at FROM posts WHERE author_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch user posts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p PostSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.CreatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post", err)
		}
		profile.Posts = append(profile.Posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch user posts", err)
	}

	profile.PostsCount = len(profile.Posts)
	return profile, nil
}
