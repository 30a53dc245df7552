package rbac

import (
	"log/slog"
	"net/http"

	"github.com/vantage-console/vantage/internal/platform/httpx"
	"github.com/vantage-console/vantage/internal/shared"
)

// Middleware wires authorization checks into HTTP handlers.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Require ensures the caller may perform action on module before the wrapped
// handler runs. A denial produces a Forbidden problem, never a partial response.
func (m Middleware) Require(module string, action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerID, ok := shared.CallerFromContext(r.Context())
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
				return
			}
			allowed, err := m.Service.HasPermission(r.Context(), callerID, module, action)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("rbac require", slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if !allowed {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "missing "+string(action)+" permission on "+module)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
