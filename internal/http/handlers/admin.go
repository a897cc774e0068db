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

type AdminService interface {
	Register(ctx context.Context, in service.AdminRegisterInput) (service.Session, error)
	Login(ctx context.Context, email, password string) (service.Session, error)
	ValidateKey(ctx context.Context, email, secretKey string) (bool, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// AdminHandler serves the separate administrator account endpoints.
type AdminHandler struct {
	svc     AdminService
	guard   *middleware.Auth
	cookies CookieOptions
	dev     bool
}

func NewAdminHandler(svc AdminService, guard *middleware.Auth, cookies CookieOptions, dev bool) *AdminHandler {
	return &AdminHandler{svc: svc, guard: guard, cookies: cookies, dev: dev}
}

// Register attaches the admin account routes. Only the user listing needs
// an admin session.
func (h *AdminHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/register", h.handleRegister)
	mux.HandleFunc("POST /api/admin/login", h.handleLogin)
	mux.HandleFunc("POST /api/admin/validate-key", h.handleValidateKey)
	mux.Handle("GET /api/admin/users", h.guard.AdminAccount(http.HandlerFunc(h.handleUsers)))
}

func (h *AdminHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminRegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.svc.Register(r.Context(), service.AdminRegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		SecretKey:   req.SecretKey,
		AdminSecret: req.AdminSecret,
	})
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	h.writeSession(w, http.StatusCreated, sess)
}

func (h *AdminHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequest
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

func (h *AdminHandler) handleValidateKey(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateKeyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ok, err := h.svc.ValidateKey(r.Context(), req.Email, req.SecretKey)
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.ValidateKeyResponse{Success: true, IsValid: ok})
}

func (h *AdminHandler) handleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		respond.Fail(w, err, h.dev)
		return
	}
	respond.JSON(w, http.StatusOK, dto.UsersResponse{Success: true, Count: len(users), Users: users})
}

func (h *AdminHandler) writeSession(w http.ResponseWriter, status int, sess service.Session) {
	h.cookies.set(w, sess.Token, sess.ExpiresAt)
	respond.JSON(w, status, dto.AdminSessionResponse{
		Success:   true,
		Token:     sess.Token,
		ExpiresIn: service.ExpiresInSeconds(sess.ExpiresAt, time.Now()),
		Admin:     *sess.Admin,
	})
}
