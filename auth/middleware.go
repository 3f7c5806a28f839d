package auth

import (
	"net/http"

	"github.com/user/inkwell-go/apperror"
)

// SessionCookieName is the cookie carrying the session token. The cookie is
// the single credential transport: it is set on register/login, read here,
// and cleared on logout.
const SessionCookieName = "token"

// RequireAuth returns middleware gating protected routes. Per request it
// moves from unauthenticated to exactly one of: rejected with 401 (no cookie
// presented), rejected with 403 (cookie present but the token fails
// verification), or authenticated, with the resolved user id attached to the
// request context for downstream handlers. It has no other side effects and
// does not refresh or extend the session.
func RequireAuth(issuer *TokenIssuer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("authentication required", nil))
				return
			}

			userID, err := issuer.Verify(cookie.Value)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := NewContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
