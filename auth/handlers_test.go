package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/user/inkwell-go/config"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	service, _ := newTestService()
	cfg := &config.AuthConfig{TokenDuration: time.Hour, SecureCookies: false}
	return NewHandlers(service, cfg)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func TestHandleRegister_SetsSessionCookie(t *testing.T) {
	h := newTestHandlers(t)

	body := `{"name":"Alice","email":"alice@example.com","password":"strongpassword"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleRegister()(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"alice@example.com"`)
	// The password hash is excluded from serialization.
	require.NotContains(t, rec.Body.String(), "password")

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)
}

func TestHandleRegister_ValidationFailure(t *testing.T) {
	h := newTestHandlers(t)

	// Password below the minimum length.
	body := `{"name":"Alice","email":"alice@example.com","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleRegister()(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "validation failed")
	require.Nil(t, sessionCookie(t, rec))
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	h := newTestHandlers(t)
	body := `{"name":"Alice","email":"alice@example.com","password":"strongpassword"}`

	rec := httptest.NewRecorder()
	h.HandleRegister()(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleRegister()(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "email already registered")
}

func TestHandleLogin(t *testing.T) {
	h := newTestHandlers(t)

	registerBody := `{"name":"Alice","email":"alice@example.com","password":"strongpassword"}`
	rec := httptest.NewRecorder()
	h.HandleRegister()(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(registerBody)))
	require.Equal(t, http.StatusCreated, rec.Code)

	loginBody := `{"email":"alice@example.com","password":"strongpassword"}`
	rec = httptest.NewRecorder()
	h.HandleLogin()(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(loginBody)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, sessionCookie(t, rec))

	badLoginBody := `{"email":"alice@example.com","password":"wrongpassword"}`
	rec = httptest.NewRecorder()
	h.HandleLogin()(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(badLoginBody)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid credentials")
	require.Nil(t, sessionCookie(t, rec))
}

func TestHandleLogout_ClearsCookie(t *testing.T) {
	h := newTestHandlers(t)

	rec := httptest.NewRecorder()
	h.HandleLogout()(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
	require.Equal(t, -1, cookie.MaxAge)
}
