package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hongminglow/atithi-inn/internal/http/respond"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/service"
)

// TokenCookie is the name of the httpOnly session cookie.
const TokenCookie = "token"

type ctxKey int

const (
	principalKey ctxKey = iota
	tokenKey
)

// Authenticator resolves a raw session token to its principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Principal, error)
}

// Auth guards routes behind a verified session.
type Auth struct {
	authn Authenticator
	dev   bool
}

func NewAuth(authn Authenticator, dev bool) *Auth {
	return &Auth{authn: authn, dev: dev}
}

// Protect rejects requests without a valid session and stores the principal
// and raw token in the request context.
func (a *Auth) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		p, err := a.authn.Authenticate(r.Context(), token)
		if err != nil {
			respond.Fail(w, err, a.dev)
			return
		}
		ctx := context.WithValue(r.Context(), principalKey, p)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Admin allows admin accounts and users carrying the admin flag.
func (a *Auth) Admin(next http.Handler) http.Handler {
	return a.Protect(a.require(func(p models.Principal) bool { return p.HasAdminRights() }, next))
}

// AdminAccount allows admin accounts only.
func (a *Auth) AdminAccount(next http.Handler) http.Handler {
	return a.Protect(a.require(func(p models.Principal) bool { return p.Kind() == models.KindAdmin }, next))
}

func (a *Auth) require(allowed func(models.Principal) bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok || !allowed(p) {
			respond.Fail(w, &service.Error{
				Kind:    service.KindForbidden,
				Code:    service.CodeAdminAccessRequired,
				Message: "Admin access required",
			}, a.dev)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ExtractToken looks for the session token in the Authorization header, then
// the session cookie, then the token query parameter.
func ExtractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, found := strings.Cut(h, " ")
		if found && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// PrincipalFrom returns the principal stored by Protect.
func PrincipalFrom(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(models.Principal)
	return p, ok
}

// TokenFrom returns the raw token accepted by Protect.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
