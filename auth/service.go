package auth

import (
	"context"
	"strings"

	"github.com/user/inkwell-go/apperror"
)

// AuthService implements the registration and login flows on top of the user
// store, password hasher, and token issuer. Dependencies are injected through
// the constructor; the service holds no mutable state of its own.
type AuthService struct {
	store  UserStore
	hasher *PasswordHasher
	issuer *TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, hasher *PasswordHasher, issuer *TokenIssuer) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		issuer: issuer,
	}
}

// Register hashes the password, creates the user, and issues a session
// token. The insert itself detects duplicate emails (ConflictError), so
// there is no check-then-act race with a concurrent registration. The
// returned user never carries the plaintext password; its hash is excluded
// from serialization.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", err
	}

	// Emails are stored lowercase so lookups are case-consistent.
	user, err := s.store.Create(ctx, req.Name, strings.ToLower(req.Email), hashedPassword)
	if err != nil {
		return nil, "", err
	}

	token, _, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a user by email and password and issues a session
// token. An unknown email and a wrong password produce the identical
// AuthError so the response does not reveal which emails are registered.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	user, err := s.store.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, "", apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, "", err
	}

	if !s.hasher.Verify(req.Password, user.HashedPassword) {
		return nil, "", apperror.NewAuthError("invalid credentials", nil)
	}

	token, _, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
