package middleware

import (
	"net/http"

	"tradediary/internal/api/response"
	"tradediary/internal/service"
)

// TokenHeader carries the login token on authenticated requests.
const TokenHeader = "X-API-Token"

// RequireToken rejects requests that lack a valid login token. When the auth
// service is disabled (no key configured) the middleware passes everything
// through, which keeps local setups friction-free.
func RequireToken(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			token := r.Header.Get(TokenHeader)
			if token == "" {
				response.RespondError(w, http.StatusUnauthorized, "authentication required", "")
				return
			}
			if err := authService.VerifyToken(token); err != nil {
				response.RespondError(w, http.StatusUnauthorized, "invalid or expired token", "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
