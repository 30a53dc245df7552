package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vantage-console/vantage/internal/auth"
	"github.com/vantage-console/vantage/internal/groups"
	"github.com/vantage-console/vantage/internal/modules"
	"github.com/vantage-console/vantage/internal/permissions"
	"github.com/vantage-console/vantage/internal/rbac"
	"github.com/vantage-console/vantage/internal/roles"
	"github.com/vantage-console/vantage/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	AuthHandler        *auth.Handler
	AuthMiddleware     auth.Middleware
	UsersHandler       *users.Handler
	GroupsHandler      *groups.Handler
	RolesHandler       *roles.Handler
	ModulesHandler     *modules.Handler
	PermissionsHandler *permissions.Handler
	RBACHandler        *rbac.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware.RequireAuth)

		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/groups", params.GroupsHandler.MountRoutes)
		r.Route("/roles", params.RolesHandler.MountRoutes)
		r.Route("/modules", params.ModulesHandler.MountRoutes)
		r.Route("/permissions", params.PermissionsHandler.MountRoutes)
		params.RBACHandler.MountRoutes(r)
	})

	return r
}
