package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/inkwell-go/apperror"
	"github.com/user/inkwell-go/config"
)

// errorLogger records server-side error detail that must not reach clients.
// It defaults to a no-op logger so the package is usable in tests without
// wiring; main replaces it at startup.
var errorLogger = zap.NewNop()

// SetErrorLogger installs the process logger used for 5xx responses.
func SetErrorLogger(l *zap.Logger) {
	if l != nil {
		errorLogger = l
	}
}

// Handlers wraps the AuthService to provide HTTP handlers for registration,
// login, and logout, and owns the session cookie convention.
type Handlers struct {
	service       *AuthService
	cookieTTL     time.Duration
	secureCookies bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService, cfg *config.AuthConfig) *Handlers {
	return &Handlers{
		service:       service,
		cookieTTL:     cfg.TokenDuration,
		secureCookies: cfg.SecureCookies,
	}
}

// HandleRegister godoc
// @Summary User registration
// @Description Registers a new user and starts a session via an httpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 201 {object} auth.AuthResponse "User created, session cookie set"
// @Failure 400 {object} apperror.ErrorResponse "Validation failed or email already registered"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := ValidateStruct(req); err != nil {
			WriteError(w, r, err)
			return
		}

		user, token, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		h.setSessionCookie(w, token)
		writeJSON(w, http.StatusCreated, AuthResponse{
			Message: "User registered successfully",
			User:    user,
		})
	}
}

// HandleLogin godoc
// @Summary User login
// @Description Logs in an existing user and starts a session via an httpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.AuthResponse "Login successful, session cookie set"
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := ValidateStruct(req); err != nil {
			WriteError(w, r, err)
			return
		}

		user, token, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		h.setSessionCookie(w, token)
		writeJSON(w, http.StatusOK, AuthResponse{
			Message: "Login successful",
			User:    user,
		})
	}
}

// HandleLogout godoc
// @Summary User logout
// @Description Clears the session cookie. Tokens are stateless, so logout is purely a client-side convention; an already-issued token remains valid until it expires.
// @Tags auth
// @Produce json
// @Success 200 {object} auth.MessageResponse "Logout acknowledged"
// @Router /api/auth/logout [post]
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.clearSessionCookie(w)
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Logout successful"})
	}
}

// setSessionCookie delivers the session token in an httpOnly cookie whose
// MaxAge matches the token lifetime.
func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie immediately.
func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// writeJSON serializes data to JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError translates any error into a standardized JSON error response.
// Errors that are not already an *AppError become a generic InternalError so
// internal detail never leaks to the client; 5xx causes are logged
// server-side instead.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		errorLogger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(appErr),
		)
	}

	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
