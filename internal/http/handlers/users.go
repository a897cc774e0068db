package handlers

import (
	"context"
	"net/http"

	"github.com/hongminglow/atithi-inn/internal/http/respond"
	"github.com/hongminglow/atithi-inn/internal/middleware"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
)

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (models.User, error)
	Update(ctx context.Context, id string, req dto.UpdateUserRequest) (models.User, error)
	Delete(ctx context.Context, id string) error
	Promote(ctx context.Context, id string) (models.User, error)
	Demote(ctx context.Context, id string) (models.User, error)
}

// UserHandler is the admin user management surface.
type UserHandler struct {
	svc   UserService
	guard *middleware.Auth
	dev   bool
}

func NewUserHandler(svc UserService, guard *middleware.Auth, dev bool) *UserHandler {
	return &UserHandler{svc: svc, guard: guard, dev: dev}
}

func (h *UserHandler) Register(mux *http.ServeMux) {
	admin := func(fn http.HandlerFunc) http.Handler { return h.guard.Admin(fn) }

	mux.Handle("GET /api/v1/users", admin(h.handleList))
	mux.Handle("POST /api/v1/users", admin(h.handleCreate))
	mux.Handle("GET /api/v1/users/{id}", admin(h.handleGet))
	mux.Handle("PUT /api/v1/users/{id}", admin(h.handleUpdate))
	mux.Handle("DELETE /api/v1/users/{id}", admin(h.handleDelete))
	mux.Handle("PUT /api/v1/users/{id}/promote", admin(h.handlePromote))
	mux.Handle("PUT /api/v1/users/{id}/demote", admin(h.handleDemote))
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DataResponse[[]models.User]{Success: true, Count: len(users), Data: users})
}

func (h *UserHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.DataResponse[models.User]{Success: true, Data: user})
}

func (h *UserHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Get(r.Context(), r.PathValue("id"))
	h.writeUser(w, user, err)
}

func (h *UserHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.svc.Update(r.Context(), r.PathValue("id"), req)
	h.writeUser(w, user, err)
}

func (h *UserHandler) handlePromote(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Promote(r.Context(), r.PathValue("id"))
	h.writeUser(w, user, err)
}

func (h *UserHandler) handleDemote(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Demote(r.Context(), r.PathValue("id"))
	h.writeUser(w, user, err)
}

func (h *UserHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, deletedBody())
}

func (h *UserHandler) writeUser(w http.ResponseWriter, user models.User, err error) {
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DataResponse[models.User]{Success: true, Data: user})
}
