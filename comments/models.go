// Package comments implements commenting on posts: public listing per post,
// and author-only creation, update, and deletion.
package comments

import "time"

// Author is the public slice of a user embedded in comment responses.
type Author struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Comment represents a comment row. AuthorID is set once at creation and is
// the sole basis for mutation authorization.
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	PostID    int       `json:"post_id"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentWithAuthor is the read shape for list responses. Author is nil when
// the authoring user no longer exists.
type CommentWithAuthor struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    *Author   `json:"author"`
}
