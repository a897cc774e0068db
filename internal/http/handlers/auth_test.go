package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/atithi-inn/internal/middleware"
)

func TestAuthHandler_RegisterAndMe(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "password1",
	})
	require.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, true, res.Body["success"])
	token := res.Body["token"].(string)
	user := res.Body["user"].(map[string]any)
	assert.NotEmpty(t, user["_id"])
	assert.NotContains(t, user, "password")
	assert.InDelta(t, 3600, res.Body["expiresIn"], 2)

	cookie := res.Header.Get("Set-Cookie")
	assert.Contains(t, cookie, middleware.TokenCookie+"=")
	assert.Contains(t, cookie, "HttpOnly")

	for _, path := range []string{"/auth/me", "/api/v1/auth/me", "/api/v1/users/me"} {
		me := api.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, me.Status, path)
		assert.Equal(t, "alice", me.Body["user"].(map[string]any)["username"])
	}
}

func TestAuthHandler_RegisterErrors(t *testing.T) {
	api := newTestAPI(t)
	api.registerUser(t, "alice")

	res := api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "alice2", "email": "ALICE@example.com", "password": "password1",
	})
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "USER_EXISTS", res.Body["code"])
	assert.Equal(t, "email", res.Body["field"])

	res = api.do(t, http.MethodPost, "/auth/register", "", map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, false, res.Body["success"])

	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	api := newTestAPI(t)
	api.registerUser(t, "alice")

	wrongPassword := api.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "alice@example.com", "password": "nope-nope"})
	unknownEmail := api.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "ghost@example.com", "password": "password123"})
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Status)
	assert.Equal(t, wrongPassword.Body, unknownEmail.Body)

	res := api.do(t, http.MethodPost, "/api/v1/users/login", "", map[string]string{"email": "alice@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, res.Status)
	assert.NotEmpty(t, res.Body["token"])

	res = api.do(t, http.MethodPost, "/api/v1/users/admin/login", "", map[string]string{"email": "alice@example.com", "password": "password123"})
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.Equal(t, "ADMIN_ACCESS_REQUIRED", res.Body["code"])
}

func TestAuthHandler_Logout(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.registerUser(t, "alice")

	res := api.do(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Logged out successfully", res.Body["message"])
	assert.Contains(t, res.Header.Get("Set-Cookie"), "Max-Age=0")

	res = api.do(t, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, res.Status)

	res = api.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "INVALID_TOKEN", res.Body["code"])
}

func TestAuthHandler_TokenFromCookieAndQuery(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.registerUser(t, "alice")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	api.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me?token="+token, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_PrivilegedRegister(t *testing.T) {
	api := newTestAPI(t)
	body := map[string]string{"username": "boss", "email": "boss@example.com", "password": "password123", "adminSecret": "wrong"}

	res := api.do(t, http.MethodPost, "/api/v1/auth/admin/register", "", body)
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.Equal(t, "INVALID_ADMIN_SECRET", res.Body["code"])

	body["adminSecret"] = testAdminSecret
	res = api.do(t, http.MethodPost, "/api/v1/auth/admin/register", "", body)
	require.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, true, res.Body["user"].(map[string]any)["isAdmin"])
}
