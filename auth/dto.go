// Data transfer objects for the auth endpoints. Validation bounds mirror the
// registration form: names up to 30 characters, passwords 8..72 (the bcrypt
// input limit).
package auth

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=30" example:"Alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=8,max=72" example:"strongpassword123"`
}

// LoginRequest represents the login request payload. Login is by email only.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// AuthResponse is returned on successful registration or login. The session
// token itself travels in an httpOnly cookie, not in the body.
type AuthResponse struct {
	Message string `json:"message" example:"Login successful"`
	User    *User  `json:"user"`
}

// MessageResponse is a bare acknowledgment payload.
type MessageResponse struct {
	Message string `json:"message" example:"Logout successful"`
}
