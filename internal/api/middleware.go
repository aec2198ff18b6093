package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cedricworldwide/CuriosityQuest/internal/auth"
)

// AuthMiddleware handles bearer-token authentication. Verification only
// proves possession of a validly-signed token; handlers re-resolve the
// user from the store and deal with accounts that no longer exist.
type AuthMiddleware struct {
	tokens *auth.Tokens
}

// NewAuthMiddleware creates new auth middleware
func NewAuthMiddleware(tokens *auth.Tokens) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate verifies the session token from the Authorization header.
// A missing header and an invalid token produce distinct 401 messages,
// both surfaced verbatim to the caller.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		email, err := m.tokens.Verify(token)
		if err != nil {
			slog.Warn("invalid token attempt", "remote_addr", r.RemoteAddr)
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := ContextWithEmail(r.Context(), email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
