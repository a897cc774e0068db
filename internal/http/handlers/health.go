package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/atithi-inn/internal/http/respond"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler returns uptime and store status.
type HealthHandler struct {
	startedAt time.Time
	store     Pinger
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, store Pinger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	uptime := time.Since(h.startedAt).Truncate(time.Second).String()
	if err := h.store.Ping(ctx); err != nil {
		respond.JSON(w, http.StatusServiceUnavailable, respond.Envelope{
			"success": false,
			"message": "Store unavailable",
			"status":  "DOWN",
			"uptime":  uptime,
		})
		return
	}
	respond.JSON(w, http.StatusOK, respond.Envelope{
		"message": "API is healthy",
		"status":  "UP",
		"uptime":  uptime,
	})
}
