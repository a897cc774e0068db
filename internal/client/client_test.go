package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/atithi-inn/internal/config"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
	"github.com/hongminglow/atithi-inn/internal/server"
	"github.com/hongminglow/atithi-inn/internal/storage/memory"
)

const testAdminSecret = "let-me-in"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		Port:                    "0",
		StoreDriver:             config.DriverMemory,
		JWTSecret:               "client-secret",
		JWTIssuer:               "atithi-inn-test",
		JWTTTL:                  time.Hour,
		AdminRegistrationSecret: testAdminSecret,
		FrontendURL:             "http://localhost:5173",
		CORSOrigins:             []string{"http://localhost:5173"},
		Environment:             "test",
		BcryptCost:              4,
		DefaultPageSize:         20,
	}
	srv := httptest.NewServer(server.NewRouter(cfg, server.Deps{Store: memory.New()}))
	t.Cleanup(srv.Close)
	return srv
}

func registerUser(t *testing.T, c *Client, username string) models.User {
	t.Helper()
	user, err := c.Register(context.Background(), dto.RegisterRequest{
		Username: username, Email: username + "@example.com", Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func registerAdmin(t *testing.T, c *Client) models.Admin {
	t.Helper()
	admin, err := c.AdminRegister(context.Background(), dto.AdminRegisterRequest{
		Name: "Root", Email: "root@example.com", Password: "password123",
		SecretKey: "s3cret", AdminSecret: testAdminSecret,
	})
	require.NoError(t, err)
	return admin
}

func ptr[T any](v T) *T { return &v }

func createHotel(t *testing.T, c *Client, name, city string) models.Hotel {
	t.Helper()
	hotel, err := c.CreateHotel(context.Background(), dto.HotelRequest{
		Name: ptr(name), City: ptr(city), Address: ptr("1 Beach Rd"), Description: ptr("Quiet"),
		CheapestPrice: ptr(90.0), Rating: ptr(4.5),
	})
	require.NoError(t, err)
	return hotel
}

func createRoom(t *testing.T, c *Client, hotelID string, price float64) models.Room {
	t.Helper()
	room, err := c.CreateRoom(context.Background(), dto.RoomRequest{
		Title: ptr("Deluxe"), Price: ptr(price), MaxPeople: ptr(2), Description: ptr("Sea view"),
		Image: ptr("deluxe.jpg"), RoomNumbers: &[]models.RoomNumber{{Number: "101"}}, Hotel: ptr(hotelID),
	})
	require.NoError(t, err)
	return room
}

func TestClient_SessionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "atithi", "state.json")

	state, err := LoadState(path)
	require.NoError(t, err)
	c := New(srv.URL, state)

	user := registerUser(t, c, "alice")
	assert.Equal(t, "alice@example.com", user.Email)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// a fresh process picks the session up from disk
	reloaded, err := LoadState(path)
	require.NoError(t, err)
	require.NotNil(t, reloaded.UserSession())
	assert.Equal(t, state.Token(), reloaded.Token())
	assert.WithinDuration(t, time.Now().Add(time.Hour), reloaded.UserSession().ExpiresAt, 5*time.Second)

	me, err := New(srv.URL, reloaded).Me(ctx)
	require.NoError(t, err)
	require.NotNil(t, me.User)
	assert.Nil(t, me.Admin)
	assert.Equal(t, user.ID, me.User.ID)

	require.NoError(t, c.Logout(ctx))
	assert.Nil(t, state.UserSession())
	assert.Empty(t, state.Token())

	// the token was revoked server-side too
	_, err = New(srv.URL, reloaded).Me(ctx)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, err = c.Login(ctx, "ALICE@example.com ", "wrong-password")
	assert.True(t, IsCode(err, "INVALID_CREDENTIALS"), err)

	_, err = c.Login(ctx, "ALICE@example.com ", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, state.Token())
}

func TestClient_RegisterErrors(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL, nil)
	registerUser(t, c, "alice")

	_, err := c.Register(context.Background(), dto.RegisterRequest{
		Username: "alice2", Email: "Alice@Example.com", Password: "password123",
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "USER_EXISTS", apiErr.Code)
	assert.Equal(t, "email", apiErr.Field)

	_, err = c.Register(context.Background(), dto.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "password123", AdminSecret: "nope",
	})
	assert.True(t, IsCode(err, "INVALID_ADMIN_SECRET"), err)

	user, err := c.Register(context.Background(), dto.RegisterRequest{
		Username: "carol", Email: "carol@example.com", Password: "password123", AdminSecret: testAdminSecret,
	})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestClient_AdminSessionPreferred(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := New(srv.URL, nil)

	registerUser(t, c, "alice")
	admin := registerAdmin(t, c)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.NotNil(t, me.Admin)
	assert.Equal(t, admin.ID, me.Admin.ID)

	users, err := c.AdminUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)

	ok, err := c.ValidateKey(ctx, "root@example.com", "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.ValidateKey(ctx, "root@example.com", "guess")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Logout(ctx))
	assert.Nil(t, c.State().AdminSession())
	assert.Nil(t, c.State().UserSession())

	_, err = c.AdminLogin(ctx, "root@example.com", "password123")
	require.NoError(t, err)
	assert.NotNil(t, c.State().AdminSession())
}

func TestClient_HotelsRoomsAndBookings(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	admin := New(srv.URL, nil)
	registerAdmin(t, admin)
	hotel := createHotel(t, admin, "Sea Breeze", "Goa")
	createHotel(t, admin, "Snow Peak", "Manali")
	room := createRoom(t, admin, hotel.ID, 100)

	guest := New(srv.URL, nil)
	registerUser(t, guest, "alice")

	page, err := guest.Hotels(ctx, HotelSearch{City: "Goa"})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalCount)
	assert.Equal(t, "Sea Breeze", page.Data[0].Name)
	last, ok := guest.State().LastHotels()
	require.True(t, ok)
	assert.Equal(t, page, last)

	detail, err := guest.Hotel(ctx, hotel.ID)
	require.NoError(t, err)
	require.Len(t, detail.Rooms, 1)
	cached, ok := guest.State().CachedHotel(hotel.ID)
	require.True(t, ok)
	assert.Equal(t, room.ID, cached.Rooms[0].ID)

	all, err := guest.AllHotels(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	rooms, err := guest.Rooms(ctx, hotel.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, rooms.TotalCount)

	_, err = guest.CreateHotel(ctx, dto.HotelRequest{Name: ptr("Nope")})
	assert.True(t, IsCode(err, "ADMIN_ACCESS_REQUIRED"), err)

	booking, err := guest.Book(ctx, room.ID, dto.CreateBookingRequest{
		CheckInDate: "2024-01-01", CheckOutDate: "2024-01-03", Guests: 2, PaymentMethod: "card",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 200, booking.TotalPrice)
	assert.Equal(t, models.StatusPending, booking.Status)
	require.Len(t, guest.State().MyBookings(), 1)

	mine, err := guest.MyBookings(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Sea Breeze", mine[0].HotelName)

	cancelled, err := guest.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, models.StatusCancelled, guest.State().MyBookings()[0].Status)

	_, err = guest.CancelBooking(ctx, "not-a-uuid")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	require.NoError(t, guest.DeleteBooking(ctx, booking.ID))
	assert.Empty(t, guest.State().MyBookings())

	// admin edits invalidate the cached details
	admin.State().cacheHotel(detail)
	require.NoError(t, admin.DeleteRoom(ctx, room.ID))
	_, ok = admin.State().CachedHotel(hotel.ID)
	assert.False(t, ok)

	require.NoError(t, admin.DeleteHotel(ctx, hotel.ID))
	_, err = guest.Hotel(ctx, hotel.ID)
	assert.True(t, IsCode(err, "HOTEL_NOT_FOUND"), err)
}

func TestClient_UserManagement(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	guest := New(srv.URL, nil)
	alice := registerUser(t, guest, "alice")

	_, err := guest.Users(ctx)
	assert.True(t, IsCode(err, "ADMIN_ACCESS_REQUIRED"), err)

	admin := New(srv.URL, nil)
	registerAdmin(t, admin)

	promoted, err := admin.Promote(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	// the promotion applies to the existing session
	users, err := guest.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	demoted, err := admin.Demote(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, demoted.IsAdmin)

	require.NoError(t, admin.DeleteUser(ctx, alice.ID))
	users, err = admin.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestClient_Health(t *testing.T) {
	srv := newTestServer(t)

	h, err := New(srv.URL+"/", nil).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "UP", h.Status)
}

func TestClient_BackendDown(t *testing.T) {
	srv := newTestServer(t)
	srv.Close()

	_, err := New(srv.URL, nil, WithTimeout(time.Second)).Hotels(context.Background(), HotelSearch{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

type failingTransport struct {
	next http.RoundTripper
}

func (f failingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.HasSuffix(req.URL.Path, "/health") {
		return f.next.RoundTrip(req)
	}
	return nil, errors.New("connection reset")
}

func TestClient_TransportErrorWithHealthyBackend(t *testing.T) {
	srv := newTestServer(t)
	hc := &http.Client{Transport: failingTransport{next: http.DefaultTransport}}

	_, err := New(srv.URL, nil, WithHTTPClient(hc)).Hotels(context.Background(), HotelSearch{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL, nil).Hotels(ctx, HotelSearch{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_BookRoomsAndListing(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	admin := New(srv.URL, nil)
	registerAdmin(t, admin)
	hotel := createHotel(t, admin, "Sea Breeze", "Goa")
	first := createRoom(t, admin, hotel.ID, 100)
	second := createRoom(t, admin, hotel.ID, 150)

	guest := New(srv.URL, nil)
	registerUser(t, guest, "alice")

	bookings, err := guest.BookRooms(ctx, dto.CreateBookingRequest{
		CheckInDate: "2024-03-01", CheckOutDate: "2024-03-02", Hotel: hotel.ID,
		Rooms: []string{first.ID, second.ID}, PaymentMethod: "card",
	})
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Len(t, guest.State().MyBookings(), 2)

	page, err := guest.Bookings(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 1)

	all, err := admin.Bookings(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalCount)

	// admin accounts cannot own bookings
	_, err = admin.Book(ctx, first.ID, dto.CreateBookingRequest{CheckInDate: "2024-03-01", CheckOutDate: "2024-03-02"})
	assert.True(t, IsCode(err, "FORBIDDEN"), err)

	moved, err := guest.UpdateBooking(ctx, bookings[0].ID, dto.UpdateBookingRequest{CheckOutDate: ptr("2024-03-04")})
	require.NoError(t, err)
	assert.Equal(t, 3, moved.DaysOfStay)
	assert.EqualValues(t, 300, moved.TotalPrice)
}
