package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hongminglow/atithi-inn/internal/auth"
	"github.com/hongminglow/atithi-inn/internal/config"
	"github.com/hongminglow/atithi-inn/internal/http/handlers"
	"github.com/hongminglow/atithi-inn/internal/http/respond"
	"github.com/hongminglow/atithi-inn/internal/logging"
	"github.com/hongminglow/atithi-inn/internal/middleware"
	"github.com/hongminglow/atithi-inn/internal/service"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// Deps are the collaborators the routes are built on. Tokens may wrap
// Store's own token store, e.g. with a cache.
type Deps struct {
	Store    storage.Store
	Tokens   storage.TokenStore
	Payments service.PaymentGateway
	Log      logging.Logger
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewRouter builds the full handler chain: CORS, request logging, metrics
// and the route table.
func NewRouter(cfg config.Config, deps Deps) http.Handler {
	if deps.Tokens == nil {
		deps.Tokens = deps.Store
	}
	if deps.Payments == nil {
		deps.Payments = service.StubGateway{}
	}
	if deps.Log == nil {
		deps.Log = logging.Discard()
	}
	store, tokens, log := deps.Store, deps.Tokens, deps.Log
	dev := cfg.IsDevelopment()

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	hasher := auth.NewHasher(cfg.BcryptCost)

	authSvc := service.NewAuthService(store, store, tokens, tokenManager, hasher, cfg.AdminRegistrationSecret, log.With("component", "auth"))
	adminSvc := service.NewAdminService(store, store, tokens, tokenManager, hasher, cfg.AdminRegistrationSecret, log.With("component", "admin"))
	hotelSvc := service.NewHotelService(store, store, log.With("component", "hotels"))
	roomSvc := service.NewRoomService(store, store, log.With("component", "rooms"))
	bookingSvc := service.NewBookingService(store, store, deps.Payments, log.With("component", "bookings"))
	userSvc := service.NewUserService(store, hasher, log.With("component", "users"))

	guard := middleware.NewAuth(authSvc, dev)
	cookies := handlers.CookieOptionsFrom(cfg)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), store).Register(mux)
	handlers.NewAuthHandler(authSvc, guard, cookies, dev).Register(mux)
	handlers.NewAdminHandler(adminSvc, guard, cookies, dev).Register(mux)
	handlers.NewHotelHandler(hotelSvc, guard, cfg.DefaultPageSize, dev).Register(mux)
	handlers.NewRoomHandler(roomSvc, guard, cfg.DefaultPageSize, dev).Register(mux)
	handlers.NewBookingHandler(bookingSvc, guard, cfg.DefaultPageSize, dev).Register(mux)
	handlers.NewUserHandler(userSvc, guard, dev).Register(mux)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	mux.HandleFunc("/", notFound)

	return middleware.CORS(cfg.CORSOrigins, middleware.Logging(log, metrics.Instrument(mux)))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusNotFound, "Route "+r.URL.RequestURI()+" not found", "")
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
