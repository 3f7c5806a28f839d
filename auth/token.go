package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/inkwell-go/apperror"
	"github.com/user/inkwell-go/config"
)

// Claims is the session token payload: the user id over the standard
// registered claims (iat, exp).
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and verifies signed, time-limited session tokens.
// Tokens are stateless: validity is proven by the HS256 signature plus the
// expiry claim, and there is no server-side revocation before expiry.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer constructs a TokenIssuer from the auth configuration.
func NewTokenIssuer(cfg *config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenDuration,
	}
}

// TTL returns the configured token lifetime. The session cookie MaxAge is
// derived from it so cookie and token expire together.
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}

// Issue creates a signed token asserting that userID is authenticated until
// now plus the configured lifetime.
func (ti *TokenIssuer) Issue(userID int) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ti.ttl)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, apperror.NewInternalError("failed to sign session token", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token string and returns the embedded user
// id. Malformed tokens, signature mismatches, unexpected signing algorithms,
// expired tokens, and tokens without a user id all fail the same way: an
// UnauthorizedError the caller maps to 403.
func (ti *TokenIssuer) Verify(tokenString string) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return 0, apperror.NewUnauthorizedError("invalid or expired token", err)
	}
	if !token.Valid {
		return 0, apperror.NewUnauthorizedError("invalid or expired token", nil)
	}
	if claims.UserID == 0 {
		return 0, apperror.NewUnauthorizedError("invalid token: user_id claim is missing", nil)
	}
	return claims.UserID, nil
}
