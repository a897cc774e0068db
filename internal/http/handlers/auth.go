package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/atithi-inn/internal/http/respond"
	"github.com/hongminglow/atithi-inn/internal/middleware"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
	"github.com/hongminglow/atithi-inn/internal/service"
)

// AuthService is the session surface the auth endpoints depend on.
type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (service.Session, error)
	RegisterPrivileged(ctx context.Context, in service.RegisterInput, adminSecret string) (service.Session, error)
	Login(ctx context.Context, email, password string) (service.Session, error)
	LoginAdminUser(ctx context.Context, email, password string) (service.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, p models.Principal) (models.Principal, error)
}

// AuthHandler owns the user session endpoints.
type AuthHandler struct {
	svc     AuthService
	guard   *middleware.Auth
	cookies CookieOptions
	dev     bool
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc AuthService, guard *middleware.Auth, cookies CookieOptions, dev bool) *AuthHandler {
	return &AuthHandler{svc: svc, guard: guard, cookies: cookies, dev: dev}
}

// Register attaches auth routes to the mux. The session routes are served
// under both /auth and /api/v1/auth.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	for _, prefix := range []string{"/auth", "/api/v1/auth"} {
		mux.HandleFunc("POST "+prefix+"/register", h.handleRegister)
		mux.HandleFunc("POST "+prefix+"/login", h.handleLogin)
		mux.HandleFunc("POST "+prefix+"/logout", h.handleLogout)
		mux.HandleFunc("POST "+prefix+"/admin/register", h.handlePrivilegedRegister)
		mux.Handle("GET "+prefix+"/me", h.guard.Protect(http.HandlerFunc(h.handleMe)))
	}

	mux.HandleFunc("POST /api/v1/users/register", h.handleRegister)
	mux.HandleFunc("POST /api/v1/users/login", h.handleLogin)
	mux.HandleFunc("POST /api/v1/users/admin/login", h.handleAdminUserLogin)
	mux.Handle("GET /api/v1/users/me", h.guard.Protect(http.HandlerFunc(h.handleMe)))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.svc.Register(r.Context(), registerInput(req))
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	h.writeSession(w, http.StatusCreated, sess)
}

func (h *AuthHandler) handlePrivilegedRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.svc.RegisterPrivileged(r.Context(), registerInput(req), req.AdminSecret)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	h.writeSession(w, http.StatusCreated, sess)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	h.writeSession(w, http.StatusOK, sess)
}

func (h *AuthHandler) handleAdminUserLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.svc.LoginAdminUser(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	h.writeSession(w, http.StatusOK, sess)
}

// handleLogout does not require a valid session; whatever token was sent is
// revoked and the cookie cleared.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context(), middleware.ExtractToken(r)); err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	h.cookies.clear(w)
	respond.Message(w, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())
	current, err := h.svc.CurrentUser(r.Context(), p)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	switch v := current.(type) {
	case *models.Admin:
		respond.JSON(w, http.StatusOK, dto.AdminResponse{Success: true, Admin: *v})
	case *models.User:
		respond.JSON(w, http.StatusOK, dto.UserResponse{Success: true, User: *v})
	}
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, status int, sess service.Session) {
	h.cookies.set(w, sess.Token, sess.ExpiresAt)
	respond.JSON(w, status, dto.SessionResponse{
		Success:   true,
		Token:     sess.Token,
		ExpiresIn: service.ExpiresInSeconds(sess.ExpiresAt, time.Now()),
		User:      *sess.User,
	})
}

func registerInput(req dto.RegisterRequest) service.RegisterInput {
	return service.RegisterInput{Username: req.Username, Email: req.Email, Password: req.Password}
}
