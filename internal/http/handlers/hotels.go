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

type HotelService interface {
	List(ctx context.Context, q service.HotelQuery) (service.ListResult[models.Hotel], error)
	All(ctx context.Context) ([]models.Hotel, error)
	Get(ctx context.Context, id string) (models.Hotel, error)
	Create(ctx context.Context, req dto.HotelRequest) (models.Hotel, error)
	Update(ctx context.Context, id string, req dto.HotelRequest) (models.Hotel, error)
	Delete(ctx context.Context, id string) error
}

// HotelHandler serves hotel search and admin hotel management.
type HotelHandler struct {
	svc      HotelService
	guard    *middleware.Auth
	pageSize int
	dev      bool
}

func NewHotelHandler(svc HotelService, guard *middleware.Auth, pageSize int, dev bool) *HotelHandler {
	return &HotelHandler{svc: svc, guard: guard, pageSize: pageSize, dev: dev}
}

// Register attaches the hotel routes. Reads are public and writes need an
// admin.
func (h *HotelHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/hotels", h.handleList)
	mux.HandleFunc("GET /api/v1/hotels/all", h.handleAll)
	mux.HandleFunc("GET /api/v1/hotels/{id}", h.handleGet)
	mux.Handle("POST /api/v1/hotels", h.guard.Admin(http.HandlerFunc(h.handleCreate)))
	mux.Handle("PUT /api/v1/hotels/{id}", h.guard.Admin(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/v1/hotels/{id}", h.guard.Admin(http.HandlerFunc(h.handleDelete)))
}

func (h *HotelHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := service.ParseHotelQuery(r.URL.Query(), h.pageSize)
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

func (h *HotelHandler) handleAll(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.svc.All(r.Context())
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DataResponse[[]models.Hotel]{Success: true, Count: len(hotels), Data: hotels})
}

func (h *HotelHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DataResponse[models.Hotel]{Success: true, Data: hotel})
}

func (h *HotelHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.HotelRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	hotel, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.DataResponse[models.Hotel]{Success: true, Data: hotel})
}

func (h *HotelHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.HotelRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	hotel, err := h.svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DataResponse[models.Hotel]{Success: true, Data: hotel})
}

func (h *HotelHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, deletedBody())
}

func listResponse[T any](res service.ListResult[T]) dto.ListResponse[T] {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	return dto.ListResponse[T]{
		Success:     true,
		Count:       len(items),
		TotalCount:  res.Total,
		CurrentPage: res.Page.Number,
		TotalPages:  res.TotalPages(),
		Data:        items,
	}
}
