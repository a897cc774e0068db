package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/hongminglow/atithi-inn/internal/auth"
	"github.com/hongminglow/atithi-inn/internal/logging"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

// Session is the result of a successful login or registration. Exactly one
// of User and Admin is set.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
	Admin     *models.Admin
}

// RegisterInput carries the fields for a new user account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// SecretHasher hashes and checks passwords and admin secret keys.
// MatchesNone spends one comparison on a miss so unknown accounts are not
// told apart by response time.
type SecretHasher interface {
	Hash(plain string) (string, error)
	Matches(hashed, plain string) (bool, error)
	MatchesNone(plain string)
}

// sessions issues tokens and records them so only the latest one per
// subject stays valid.
type sessions struct {
	tm     *auth.TokenManager
	tokens storage.TokenStore
}

func (s sessions) issue(ctx context.Context, p models.Principal) (string, time.Time, error) {
	raw, expiresAt, err := s.tm.Generate(p)
	if err != nil {
		return "", time.Time{}, err
	}
	err = s.tokens.ReplaceToken(ctx, models.Token{
		Token:       raw,
		SubjectID:   p.SubjectID(),
		SubjectKind: p.Kind(),
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return raw, expiresAt, nil
}

// AuthService handles user registration, login and session verification
// for both users and admins.
type AuthService struct {
	users       storage.UserStore
	admins      storage.AdminStore
	tokens      storage.TokenStore
	sessions    sessions
	tm          *auth.TokenManager
	hasher      SecretHasher
	adminSecret string
	log         logging.Logger
	now         func() time.Time
}

func NewAuthService(users storage.UserStore, admins storage.AdminStore, tokens storage.TokenStore,
	tm *auth.TokenManager, hasher SecretHasher, adminSecret string, log logging.Logger) *AuthService {
	return &AuthService{
		users:       users,
		admins:      admins,
		tokens:      tokens,
		sessions:    sessions{tm: tm, tokens: tokens},
		tm:          tm,
		hasher:      hasher,
		adminSecret: adminSecret,
		log:         log,
		now:         time.Now,
	}
}

// Register creates a customer account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	user, err := createUser(ctx, s.users, s.hasher, s.log, in)
	if err != nil {
		return Session{}, err
	}
	return s.userSession(ctx, user)
}

// RegisterPrivileged creates a user with the admin flag set. The caller must
// present the shared admin registration secret.
func (s *AuthService) RegisterPrivileged(ctx context.Context, in RegisterInput, adminSecret string) (Session, error) {
	if !secretMatches(s.adminSecret, adminSecret) {
		return Session{}, forbidden(CodeInvalidAdminSecret, "Invalid admin secret")
	}
	in.IsAdmin = true
	return s.Register(ctx, in)
}

// Login checks credentials. Unknown email and wrong password produce the
// same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.checkUserCredentials(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	return s.userSession(ctx, user)
}

// LoginAdminUser is Login restricted to users carrying the admin flag.
func (s *AuthService) LoginAdminUser(ctx context.Context, email, password string) (Session, error) {
	user, err := s.checkUserCredentials(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	if !user.IsAdmin {
		return Session{}, forbidden(CodeAdminAccessRequired, "Admin access required")
	}
	return s.userSession(ctx, user)
}

// Logout revokes the token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.tokens.DeleteToken(ctx, token); err != nil {
		return unexpected(ctx, s.log, "delete token", err)
	}
	return nil
}

// CurrentUser reloads the principal from its store.
func (s *AuthService) CurrentUser(ctx context.Context, p models.Principal) (models.Principal, error) {
	return s.loadPrincipal(ctx, p.Kind(), p.SubjectID())
}

// Authenticate verifies the token signature and expiry, checks that it is
// the subject's current token and loads the subject.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Principal, error) {
	if token == "" {
		return nil, unauthorized(CodeNoToken, "Not authorized, no token")
	}
	claims, err := s.tm.Parse(token)
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return nil, unauthorized(CodeTokenExpired, "Token expired")
	case err != nil:
		return nil, unauthorized(CodeInvalidTokenFormat, "Invalid token format")
	}

	if _, err := s.tokens.FindToken(ctx, token, claims.Subject, s.now()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, unauthorized(CodeInvalidToken, "Invalid token")
		}
		return nil, unexpected(ctx, s.log, "find token", err)
	}
	return s.loadPrincipal(ctx, claims.Kind, claims.Subject)
}

func (s *AuthService) loadPrincipal(ctx context.Context, kind models.SubjectKind, id string) (models.Principal, error) {
	if kind == models.KindAdmin {
		admin, err := s.admins.FindAdminByID(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, unauthorized(CodeAdminNotFound, "Admin not found")
		}
		if err != nil {
			return nil, unexpected(ctx, s.log, "load admin", err)
		}
		return &admin, nil
	}

	user, err := s.users.FindUserByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, unauthorized(CodeUserNotFound, "User not found")
	}
	if err != nil {
		return nil, unexpected(ctx, s.log, "load user", err)
	}
	return &user, nil
}

func (s *AuthService) checkUserCredentials(ctx context.Context, email, password string) (models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, invalid(CodeMissingCredentials, "Please provide email and password")
	}
	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		s.hasher.MatchesNone(password)
		return models.User{}, unauthorized(CodeInvalidCredentials, "Invalid credentials")
	}
	if err != nil {
		return models.User{}, unexpected(ctx, s.log, "find user", err)
	}
	ok, err := s.hasher.Matches(user.PasswordHash, password)
	if err != nil {
		return models.User{}, unexpected(ctx, s.log, "compare password", err)
	}
	if !ok {
		return models.User{}, unauthorized(CodeInvalidCredentials, "Invalid credentials")
	}
	return user, nil
}

func (s *AuthService) userSession(ctx context.Context, user models.User) (Session, error) {
	token, expiresAt, err := s.sessions.issue(ctx, &user)
	if err != nil {
		return Session{}, unexpected(ctx, s.log, "issue session", err)
	}
	s.log.Info(ctx, "session issued", "user_id", user.ID, "kind", models.KindUser)
	return Session{Token: token, ExpiresAt: expiresAt, User: &user}, nil
}

func secretMatches(expected, given string) bool {
	if expected == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(given))) == 1
}

// unexpected logs a store or crypto failure and hides it behind a 500.
func unexpected(ctx context.Context, log logging.Logger, op string, err error) *Error {
	log.Error(ctx, op+" failed", "error", err)
	return internal(err)
}
