package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/user/inkwell-go/apperror"
	"github.com/user/inkwell-go/config"
)

func testIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return NewTokenIssuer(&config.AuthConfig{JWTSecret: secret, TokenDuration: ttl})
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := testIssuer("test-secret", time.Hour)

	token, expiresAt, err := issuer.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, 42, userID)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := testIssuer("test-secret", -time.Minute)

	token, _, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.Error(t, err)
	require.True(t, apperror.IsUnauthorizedError(err))
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, _, err := testIssuer("right-secret", time.Hour).Issue(42)
	require.NoError(t, err)

	_, err = testIssuer("wrong-secret", time.Hour).Verify(token)
	require.Error(t, err)
	require.True(t, apperror.IsUnauthorizedError(err))
}

func TestTokenIssuer_TamperedPayload(t *testing.T) {
	issuer := testIssuer("test-secret", time.Hour)
	token, _, err := issuer.Issue(42)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	// Claims forged without re-signing must fail verification.
	forged := parts[0] + ".eyJ1c2VyX2lkIjo5OTl9." + parts[2]

	_, err = issuer.Verify(forged)
	require.Error(t, err)
	require.True(t, apperror.IsUnauthorizedError(err))
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer := testIssuer("test-secret", time.Hour)

	for _, input := range []string{"", "garbage", "a.b.c", "...."} {
		_, err := issuer.Verify(input)
		require.Error(t, err, "input %q", input)
		require.True(t, apperror.IsUnauthorizedError(err))
	}
}

func TestTokenIssuer_RejectsUnsignedAlg(t *testing.T) {
	claims := &Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testIssuer("test-secret", time.Hour).Verify(unsigned)
	require.Error(t, err)
	require.True(t, apperror.IsUnauthorizedError(err))
}

func TestTokenIssuer_MissingUserIDClaim(t *testing.T) {
	secret := "test-secret"
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = testIssuer(secret, time.Hour).Verify(token)
	require.Error(t, err)
	require.True(t, apperror.IsUnauthorizedError(err))
}
