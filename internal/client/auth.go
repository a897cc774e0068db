package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
)

// Profile is the identity behind the current bearer; exactly one field is set.
type Profile struct {
	User  *models.User
	Admin *models.Admin
}

// Register creates an account and remembers the returned session. A non-empty
// AdminSecret goes to the privileged registration route.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = models.NormalizeEmail(req.Email)

	path := "/api/v1/auth/register"
	if req.AdminSecret != "" {
		path = "/api/v1/auth/admin/register"
	}
	var out dto.SessionResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: path, body: req, out: &out}); err != nil {
		return models.User{}, err
	}
	return c.rememberUser(out)
}

func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	req := dto.LoginRequest{Email: models.NormalizeEmail(email), Password: password}
	var out dto.SessionResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/v1/auth/login", body: req, out: &out}); err != nil {
		return models.User{}, err
	}
	return c.rememberUser(out)
}

// Logout revokes every remembered session and forgets them locally. Local
// state is cleared even when the server cannot be reached.
func (c *Client) Logout(ctx context.Context) error {
	var errs []error
	if sess := c.state.AdminSession(); sess != nil {
		errs = append(errs, c.revoke(ctx, sess.Token), c.state.setAdmin(nil))
	}
	if sess := c.state.UserSession(); sess != nil {
		errs = append(errs, c.revoke(ctx, sess.Token), c.state.setUser(nil))
	}
	return errors.Join(errs...)
}

func (c *Client) revoke(ctx context.Context, token string) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/api/v1/auth/logout", token: token})
}

// Me fetches the profile behind the current bearer.
func (c *Client) Me(ctx context.Context) (Profile, error) {
	var out struct {
		User  *models.User  `json:"user"`
		Admin *models.Admin `json:"admin"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/auth/me", out: &out}); err != nil {
		return Profile{}, err
	}
	return Profile{User: out.User, Admin: out.Admin}, nil
}

func (c *Client) AdminRegister(ctx context.Context, req dto.AdminRegisterRequest) (models.Admin, error) {
	req.Email = models.NormalizeEmail(req.Email)
	var out dto.AdminSessionResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/admin/register", body: req, out: &out}); err != nil {
		return models.Admin{}, err
	}
	return c.rememberAdmin(out)
}

func (c *Client) AdminLogin(ctx context.Context, email, password string) (models.Admin, error) {
	req := dto.AdminLoginRequest{Email: models.NormalizeEmail(email), Password: password}
	var out dto.AdminSessionResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/admin/login", body: req, out: &out}); err != nil {
		return models.Admin{}, err
	}
	return c.rememberAdmin(out)
}

// ValidateKey checks an admin secret key without signing in.
func (c *Client) ValidateKey(ctx context.Context, email, secretKey string) (bool, error) {
	req := dto.ValidateKeyRequest{Email: models.NormalizeEmail(email), SecretKey: secretKey}
	var out dto.ValidateKeyResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/admin/validate-key", body: req, out: &out}); err != nil {
		return false, err
	}
	return out.IsValid, nil
}

// AdminUsers lists users; only an admin account session is accepted.
func (c *Client) AdminUsers(ctx context.Context) ([]models.User, error) {
	var out dto.UsersResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/admin/users", out: &out}); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) rememberUser(out dto.SessionResponse) (models.User, error) {
	user := out.User
	sess := &Session{Token: out.Token, ExpiresAt: expiry(out.ExpiresIn), User: &user}
	if err := c.state.setUser(sess); err != nil {
		return user, err
	}
	return user, nil
}

func (c *Client) rememberAdmin(out dto.AdminSessionResponse) (models.Admin, error) {
	admin := out.Admin
	sess := &Session{Token: out.Token, ExpiresAt: expiry(out.ExpiresIn), Admin: &admin}
	if err := c.state.setAdmin(sess); err != nil {
		return admin, err
	}
	return admin, nil
}

func expiry(seconds int) time.Time {
	if seconds <= 0 {
		return time.Time{}
	}
	return time.Now().Add(time.Duration(seconds) * time.Second)
}
