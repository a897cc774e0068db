package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hongminglow/atithi-inn/internal/auth"
	"github.com/hongminglow/atithi-inn/internal/logging"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

type AdminRegisterInput struct {
	Name        string
	Email       string
	Password    string
	SecretKey   string
	AdminSecret string
}

// AdminService manages the separate administrator accounts.
type AdminService struct {
	admins      storage.AdminStore
	users       storage.UserStore
	sessions    sessions
	hasher      SecretHasher
	adminSecret string
	log         logging.Logger
}

func NewAdminService(admins storage.AdminStore, users storage.UserStore, tokens storage.TokenStore,
	tm *auth.TokenManager, hasher SecretHasher, adminSecret string, log logging.Logger) *AdminService {
	return &AdminService{
		admins:      admins,
		users:       users,
		sessions:    sessions{tm: tm, tokens: tokens},
		hasher:      hasher,
		adminSecret: adminSecret,
		log:         log,
	}
}

// Register creates an admin when the shared registration secret matches.
func (s *AdminService) Register(ctx context.Context, in AdminRegisterInput) (Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = models.NormalizeEmail(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" || in.SecretKey == "" {
		return Session{}, invalid(CodeValidationFailed, "Please provide name, email, password and secret key")
	}
	if !secretMatches(s.adminSecret, in.AdminSecret) {
		return Session{}, forbidden(CodeInvalidAdminSecret, "Invalid admin registration secret")
	}
	if err := models.ValidateEmail(in.Email); err != nil {
		return Session{}, invalidField(err)
	}
	if err := models.ValidatePassword(in.Password); err != nil {
		return Session{}, invalidField(err)
	}

	if _, err := s.admins.FindAdminByEmail(ctx, in.Email); err == nil {
		return Session{}, conflict(CodeAdminExists, "email", "Admin already exists")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return Session{}, unexpected(ctx, s.log, "find admin", err)
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, unexpected(ctx, s.log, "hash password", err)
	}
	secretHash, err := s.hasher.Hash(in.SecretKey)
	if err != nil {
		return Session{}, unexpected(ctx, s.log, "hash secret key", err)
	}

	admin, err := s.admins.CreateAdmin(ctx, models.Admin{
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  passwordHash,
		SecretKeyHash: secretHash,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return Session{}, conflict(CodeAdminExists, "email", "Admin already exists")
	}
	if err != nil {
		return Session{}, unexpected(ctx, s.log, "create admin", err)
	}
	return s.adminSession(ctx, admin)
}

func (s *AdminService) Login(ctx context.Context, email, password string) (Session, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, invalid(CodeMissingCredentials, "Please provide email and password")
	}
	admin, err := s.admins.FindAdminByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		s.hasher.MatchesNone(password)
		return Session{}, unauthorized(CodeInvalidCredentials, "Invalid credentials")
	}
	if err != nil {
		return Session{}, unexpected(ctx, s.log, "find admin", err)
	}
	ok, err := s.hasher.Matches(admin.PasswordHash, password)
	if err != nil {
		return Session{}, unexpected(ctx, s.log, "compare password", err)
	}
	if !ok {
		return Session{}, unauthorized(CodeInvalidCredentials, "Invalid credentials")
	}
	return s.adminSession(ctx, admin)
}

// ValidateKey checks an admin's secret key without changing any state.
func (s *AdminService) ValidateKey(ctx context.Context, email, secretKey string) (bool, error) {
	email = models.NormalizeEmail(email)
	if email == "" || secretKey == "" {
		return false, invalid(CodeValidationFailed, "Please provide email and secret key")
	}
	admin, err := s.admins.FindAdminByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return false, notFound(CodeAdminNotFound, "Admin not found")
	}
	if err != nil {
		return false, unexpected(ctx, s.log, "find admin", err)
	}
	ok, err := s.hasher.Matches(admin.SecretKeyHash, secretKey)
	if err != nil {
		return false, unexpected(ctx, s.log, "compare secret key", err)
	}
	return ok, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, unexpected(ctx, s.log, "list users", err)
	}
	return users, nil
}

// ExpiresInSeconds is reported to admin clients alongside the token.
func ExpiresInSeconds(expiresAt, now time.Time) int {
	d := expiresAt.Sub(now).Round(time.Second)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

func (s *AdminService) adminSession(ctx context.Context, admin models.Admin) (Session, error) {
	token, expiresAt, err := s.sessions.issue(ctx, &admin)
	if err != nil {
		return Session{}, unexpected(ctx, s.log, "issue session", err)
	}
	s.log.Info(ctx, "session issued", "admin_id", admin.ID, "kind", models.KindAdmin)
	return Session{Token: token, ExpiresAt: expiresAt, Admin: &admin}, nil
}
