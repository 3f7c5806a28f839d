// Package auth contains authentication and authorization logic: password
// hashing, session token issuance and verification, the user store, the
// request-gating middleware, and the ownership check used before mutations.
package auth

import "time"

// User represents a registered user. HashedPassword is excluded from JSON so
// it can never leak into an API response.
type User struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
