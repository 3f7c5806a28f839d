// Package users exposes public user profiles and the authenticated user's
// own profile.
package users

import "time"

// PostSummary is the compact post shape embedded in profile responses.
type PostSummary struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse is the profile payload: the user's public fields plus
// their posts.
type ProfileResponse struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	CreatedAt  time.Time     `json:"created_at"`
	PostsCount int           `json:"postsCount"`
	Posts      []PostSummary `json:"posts"`
}
