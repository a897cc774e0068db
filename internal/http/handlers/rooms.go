package handlers

import (
	"context"
	"net/http"

	"github.com/hongminglow/atithi-inn/internal/http/respond"
	"github.com/hongminglow/atithi-inn/internal/middleware"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
	"github.com/hongminglow/atithi-inn/internal/service"
)

type RoomService interface {
	List(ctx context.Context, q service.RoomQuery) (service.ListResult[models.Room], error)
	Get(ctx context.Context, id string) (models.Room, error)
	Create(ctx context.Context, req dto.RoomRequest) (models.Room, error)
	Update(ctx context.Context, id string, req dto.RoomRequest) (models.Room, error)
	Delete(ctx context.Context, id string) error
}

type RoomHandler struct {
	svc      RoomService
	guard    *middleware.Auth
	pageSize int
	dev      bool
}

func NewRoomHandler(svc RoomService, guard *middleware.Auth, pageSize int, dev bool) *RoomHandler {
	return &RoomHandler{svc: svc, guard: guard, pageSize: pageSize, dev: dev}
}

func (h *RoomHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/rooms", h.handleList)
	mux.HandleFunc("GET /api/v1/rooms/{id}", h.handleGet)
	mux.Handle("POST /api/v1/rooms", h.guard.Admin(http.HandlerFunc(h.handleCreate)))
	mux.Handle("PUT /api/v1/rooms/{id}", h.guard.Admin(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/v1/rooms/{id}", h.guard.Admin(http.HandlerFunc(h.handleDelete)))
}

func (h *RoomHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := service.ParseRoomQuery(r.URL.Query(), h.pageSize)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	res, err := h.svc.List(r.Context(), q)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, listResponse(res))
}

func (h *RoomHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	room, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DataResponse[models.Room]{Success: true, Data: room})
}

func (h *RoomHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.RoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	room, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.DataResponse[models.Room]{Success: true, Data: room})
}

func (h *RoomHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.RoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	room, err := h.svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DataResponse[models.Room]{Success: true, Data: room})
}

func (h *RoomHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, deletedBody())
}
