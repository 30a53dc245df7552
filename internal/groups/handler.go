package groups

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vantage-console/vantage/internal/platform/httpx"
	"github.com/vantage-console/vantage/internal/rbac"
	"github.com/vantage-console/vantage/internal/shared"
)

type groupService interface {
	List(ctx context.Context) ([]Group, error)
	Get(ctx context.Context, id int64) (Detail, error)
	Create(ctx context.Context, name, description string) (Group, error)
	Update(ctx context.Context, id int64, name, description string) (Group, error)
	Delete(ctx context.Context, id int64) error
	AddUsers(ctx context.Context, groupID int64, userIDs []int64) error
	RemoveUsers(ctx context.Context, groupID int64, userIDs []int64) (int64, error)
	AddRoles(ctx context.Context, groupID int64, roleIDs []int64) error
	RemoveRoles(ctx context.Context, groupID int64, roleIDs []int64) (int64, error)
}

// Handler wires the group management endpoints.
type Handler struct {
	logger   *slog.Logger
	service  groupService
	rbac     rbac.Middleware
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service groupService, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac, validate: validator.New()}
}

// MountRoutes registers group routes with per-action permission gates.
// Membership and role assignment mutate the group, so they require update.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ModuleGroups, rbac.ActionRead)).Get("/", h.list)
	r.With(h.rbac.Require(rbac.ModuleGroups, rbac.ActionRead)).Get("/{id}", h.get)
	r.With(h.rbac.Require(rbac.ModuleGroups, rbac.ActionCreate)).Post("/", h.create)
	r.With(h.rbac.Require(rbac.ModuleGroups, rbac.ActionUpdate)).Put("/{id}", h.update)
	r.With(h.rbac.Require(rbac.ModuleGroups, rbac.ActionDelete)).Delete("/{id}", h.delete)

	r.With(h.rbac.Require(rbac.ModuleGroups, rbac.ActionUpdate)).Post("/{id}/users", h.addUsers)
	r.With(h.rbac.Require(rbac.ModuleGroups, rbac.ActionUpdate)).Delete("/{id}/users", h.removeUsers)
	r.With(h.rbac.Require(rbac.ModuleGroups, rbac.ActionUpdate)).Post("/{id}/roles", h.addRoles)
	r.With(h.rbac.Require(rbac.ModuleGroups, rbac.ActionUpdate)).Delete("/{id}/roles", h.removeRoles)
}

type groupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type userIDsRequest struct {
	UserIDs []int64 `json:"user_ids" validate:"required,min=1,dive,gt=0"`
}

type roleIDsRequest struct {
	RoleIDs []int64 `json:"role_ids" validate:"required,min=1,dive,gt=0"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list groups", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Group{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if ok := h.decode(w, r, &req); !ok {
		return
	}
	group, err := h.service.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		h.logger.Error("create group", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, group)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req groupRequest
	if ok := h.decode(w, r, &req); !ok {
		return
	}
	group, err := h.service.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, group)
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

func (h *Handler) addUsers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req userIDsRequest
	if ok := h.decode(w, r, &req); !ok {
		return
	}
	if err := h.service.AddUsers(r.Context(), id, req.UserIDs); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) removeUsers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req userIDsRequest
	if ok := h.decode(w, r, &req); !ok {
		return
	}
	removed, err := h.service.RemoveUsers(r.Context(), id, req.UserIDs)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func (h *Handler) addRoles(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req roleIDsRequest
	if ok := h.decode(w, r, &req); !ok {
		return
	}
	if err := h.service.AddRoles(r.Context(), id, req.RoleIDs); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) removeRoles(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req roleIDsRequest
	if ok := h.decode(w, r, &req); !ok {
		return
	}
	removed, err := h.service.RemoveRoles(r.Context(), id, req.RoleIDs)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int64{"removed": removed})
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
