package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vantage-console/vantage/internal/platform/httpx"
	"github.com/vantage-console/vantage/internal/shared"
)

// Middleware resolves bearer tokens into a caller identity on the request
// context.
type Middleware struct {
	Tokens *TokenStore
	Logger *slog.Logger
}

// RequireAuth rejects requests without a valid bearer token.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			return
		}
		userID, err := m.Tokens.Resolve(r.Context(), token)
		if err != nil {
			if !errors.Is(err, shared.ErrUnauthorized) && m.Logger != nil {
				m.Logger.Error("resolve token", slog.Any("error", err))
			}
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithCaller(r.Context(), userID)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
