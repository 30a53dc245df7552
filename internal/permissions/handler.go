package permissions

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vantage-console/vantage/internal/platform/httpx"
	"github.com/vantage-console/vantage/internal/rbac"
	"github.com/vantage-console/vantage/internal/shared"
)

// Handler wires the permission management endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	rbac     rbac.Middleware
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac, validate: validator.New()}
}

// MountRoutes registers permission routes with per-action permission gates.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ModulePermissions, rbac.ActionRead)).Get("/", h.list)
	r.With(h.rbac.Require(rbac.ModulePermissions, rbac.ActionRead)).Get("/grouped-by-module", h.grouped)
	r.With(h.rbac.Require(rbac.ModulePermissions, rbac.ActionRead)).Get("/{id}", h.get)
	r.With(h.rbac.Require(rbac.ModulePermissions, rbac.ActionCreate)).Post("/", h.create)
	r.With(h.rbac.Require(rbac.ModulePermissions, rbac.ActionUpdate)).Put("/{id}", h.update)
	r.With(h.rbac.Require(rbac.ModulePermissions, rbac.ActionDelete)).Delete("/{id}", h.delete)
}

type createPermissionRequest struct {
	Action   string `json:"action" validate:"required"`
	ModuleID int64  `json:"module_id" validate:"required,gt=0"`
}

type updatePermissionRequest struct {
	Action string `json:"action" validate:"required"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list permissions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Permission{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) grouped(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.GroupedByModule(r.Context())
	if err != nil {
		h.logger.Error("grouped permissions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, groups)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	perm, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, perm)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPermissionRequest
	if ok := h.decode(w, r, &req); !ok {
		return
	}
	perm, err := h.service.Create(r.Context(), req.Action, req.ModuleID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, perm)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req updatePermissionRequest
	if ok := h.decode(w, r, &req); !ok {
		return
	}
	perm, err := h.service.Update(r.Context(), id, req.Action)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, perm)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "malformed request body")
		return false
	}
	if err := h.validate.Struct(target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", err.Error())
		return false
	}
	return true
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.ErrInvalidInput
	}
	return id, nil
}
