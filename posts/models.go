// Package posts implements the blog post feature: public listing and
// retrieval, and author-only creation, update, and deletion.
package posts

import "time"

// Author is the public slice of a user embedded in post responses.
type Author struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Post represents a post row. AuthorID is set once at creation and never
// reassigned; it is the sole basis for mutation authorization.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostWithAuthor is the read shape for list and get responses, with the
// author joined in. Author is nil when the authoring user no longer exists.
type PostWithAuthor struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    *Author   `json:"author"`
}
