package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/atithi-inn/internal/auth"
	"github.com/hongminglow/atithi-inn/internal/logging"
	"github.com/hongminglow/atithi-inn/internal/middleware"
	"github.com/hongminglow/atithi-inn/internal/service"
	"github.com/hongminglow/atithi-inn/internal/storage/memory"
)

const testAdminSecret = "let-me-in"

type testAPI struct {
	mux   *http.ServeMux
	store *memory.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.New()
	log := logging.Discard()
	tm := auth.NewTokenManager("handler-secret", "atithi-inn-test", time.Hour)
	hasher := auth.NewHasher(bcrypt.MinCost)

	authSvc := service.NewAuthService(store, store, store, tm, hasher, testAdminSecret, log)
	guard := middleware.NewAuth(authSvc, false)
	cookies := CookieOptions{}

	mux := http.NewServeMux()
	NewHealthHandler(time.Now(), store).Register(mux)
	NewAuthHandler(authSvc, guard, cookies, false).Register(mux)
	NewAdminHandler(service.NewAdminService(store, store, store, tm, hasher, testAdminSecret, log), guard, cookies, false).Register(mux)
	NewHotelHandler(service.NewHotelService(store, store, log), guard, 20, false).Register(mux)
	NewRoomHandler(service.NewRoomService(store, store, log), guard, 20, false).Register(mux)
	NewBookingHandler(service.NewBookingService(store, store, service.StubGateway{}, log), guard, 20, false).Register(mux)
	NewUserHandler(service.NewUserService(store, hasher, log), guard, false).Register(mux)

	return &testAPI{mux: mux, store: store}
}

type response struct {
	Status int
	Header http.Header
	Body   map[string]any
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)

	out := response{Status: rec.Code, Header: rec.Header()}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out.Body), rec.Body.String())
	}
	return out
}

// registerUser signs up a customer and returns the session token and id.
func (a *testAPI) registerUser(t *testing.T, username string) (string, string) {
	t.Helper()
	res := a.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username, "email": username + "@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	user := res.Body["user"].(map[string]any)
	return res.Body["token"].(string), user["_id"].(string)
}

func (a *testAPI) registerAdmin(t *testing.T) string {
	t.Helper()
	res := a.do(t, http.MethodPost, "/api/admin/register", "", map[string]string{
		"name": "Root", "email": "root@example.com", "password": "password123",
		"secretKey": "s3cret", "adminSecret": testAdminSecret,
	})
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	return res.Body["token"].(string)
}

func (a *testAPI) createHotel(t *testing.T, adminToken, name, city string) string {
	t.Helper()
	res := a.do(t, http.MethodPost, "/api/v1/hotels", adminToken, map[string]any{
		"name": name, "city": city, "address": "1 Beach Rd", "description": "Quiet", "cheapestPrice": 90, "rating": 4.5,
	})
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	return res.Body["data"].(map[string]any)["_id"].(string)
}

func (a *testAPI) createRoom(t *testing.T, adminToken, hotelID string, price float64) string {
	t.Helper()
	res := a.do(t, http.MethodPost, "/api/v1/rooms", adminToken, map[string]any{
		"title": "Deluxe", "price": price, "maxPeople": 2, "description": "Sea view", "image": "deluxe.jpg",
		"roomNumbers": []any{"101", map[string]any{"number": "102", "unavailableDates": []string{}}},
		"hotel":       hotelID,
	})
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	return res.Body["data"].(map[string]any)["_id"].(string)
}
