package handlers

import (
	"net/http"
	"time"

	"github.com/hongminglow/atithi-inn/internal/config"
	"github.com/hongminglow/atithi-inn/internal/middleware"
)

// CookieOptions controls the attributes of the session cookie.
type CookieOptions struct {
	Domain string
	Secure bool
}

func CookieOptionsFrom(cfg config.Config) CookieOptions {
	return CookieOptions{Domain: cfg.CookieDomain, Secure: cfg.IsProduction()}
}

func (o CookieOptions) sameSite() http.SameSite {
	if o.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func (o CookieOptions) set(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   o.Domain,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.sameSite(),
	})
}

func (o CookieOptions) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		Domain:   o.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.sameSite(),
	})
}
