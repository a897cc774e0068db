package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/hongminglow/atithi-inn/internal/http/respond"
	"github.com/hongminglow/atithi-inn/internal/middleware"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
	"github.com/hongminglow/atithi-inn/internal/service"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

type BookingService interface {
	Create(ctx context.Context, p models.Principal, roomID string, req dto.CreateBookingRequest) (models.Booking, error)
	CreateMultiRoom(ctx context.Context, p models.Principal, req dto.CreateBookingRequest) ([]models.Booking, error)
	Get(ctx context.Context, p models.Principal, id string) (models.Booking, error)
	Update(ctx context.Context, p models.Principal, id string, req dto.UpdateBookingRequest) (models.Booking, error)
	Delete(ctx context.Context, p models.Principal, id string) error
	ListMine(ctx context.Context, p models.Principal) ([]models.Booking, error)
	List(ctx context.Context, p models.Principal, page storage.Page) (service.ListResult[models.Booking], error)
}

// BookingHandler serves reservations. Every route requires a session.
type BookingHandler struct {
	svc      BookingService
	guard    *middleware.Auth
	pageSize int
	dev      bool
}

func NewBookingHandler(svc BookingService, guard *middleware.Auth, pageSize int, dev bool) *BookingHandler {
	return &BookingHandler{svc: svc, guard: guard, pageSize: pageSize, dev: dev}
}

func (h *BookingHandler) Register(mux *http.ServeMux) {
	protect := func(fn http.HandlerFunc) http.Handler { return h.guard.Protect(fn) }

	mux.Handle("GET /api/v1/bookings", protect(h.handleList))
	mux.Handle("POST /api/v1/bookings", protect(h.handleCreateMulti))
	mux.Handle("GET /api/v1/bookings/mybookings", protect(h.handleMine))
	mux.Handle("POST /api/v1/rooms/{roomId}/bookings", protect(h.handleCreate))
	mux.Handle("GET /api/v1/bookings/{id}", protect(h.handleGet))
	mux.Handle("PUT /api/v1/bookings/{id}", protect(h.handleUpdate))
	mux.Handle("DELETE /api/v1/bookings/{id}", protect(h.handleDelete))
}

func (h *BookingHandler) handleList(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())
	number, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	res, err := h.svc.List(r.Context(), p, storage.NewPage(number, size, h.pageSize))
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, listResponse(res))
}

func (h *BookingHandler) handleMine(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())
	bookings, err := h.svc.ListMine(r.Context(), p)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DataResponse[[]models.Booking]{Success: true, Count: len(bookings), Data: bookings})
}

func (h *BookingHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, _ := middleware.PrincipalFrom(r.Context())
	booking, err := h.svc.Create(r.Context(), p, r.PathValue("roomId"), req)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.DataResponse[models.Booking]{Success: true, Data: booking})
}

func (h *BookingHandler) handleCreateMulti(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, _ := middleware.PrincipalFrom(r.Context())
	bookings, err := h.svc.CreateMultiRoom(r.Context(), p, req)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.DataResponse[[]models.Booking]{Success: true, Count: len(bookings), Data: bookings})
}

func (h *BookingHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())
	booking, err := h.svc.Get(r.Context(), p, r.PathValue("id"))
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DataResponse[models.Booking]{Success: true, Data: booking})
}

func (h *BookingHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, _ := middleware.PrincipalFrom(r.Context())
	booking, err := h.svc.Update(r.Context(), p, r.PathValue("id"), req)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DataResponse[models.Booking]{Success: true, Data: booking})
}

func (h *BookingHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())
	if err := h.svc.Delete(r.Context(), p, r.PathValue("id")); err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, deletedBody())
}
