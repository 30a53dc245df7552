package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vantage-console/vantage/internal/platform/httpx"
	"github.com/vantage-console/vantage/internal/shared"
)

// Handler exposes introspection endpoints: the caller's own permission map
// and the what-if simulation of another user's access.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers introspection routes. Both are available to any
// authenticated caller and are not permission-gated themselves.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/me/permissions", h.myPermissions)
	r.Post("/simulate-action", h.simulate)
}

type simulateRequest struct {
	UserID int64  `json:"userId" validate:"required,gt=0"`
	Module string `json:"module" validate:"required"`
	Action string `json:"action" validate:"required"`
}

func (h *Handler) myPermissions(w http.ResponseWriter, r *http.Request) {
	callerID, ok := shared.CallerFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	perms, err := h.service.PermissionMap(r.Context(), callerID)
	if err != nil {
		h.logger.Error("permission map", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"permissions": perms})
}

func (h *Handler) simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", err.Error())
		return
	}
	decision, err := h.service.Simulate(r.Context(), req.UserID, req.Module, Action(req.Action))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, decision)
}
