package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/atithi-inn/internal/auth"
	"github.com/hongminglow/atithi-inn/internal/logging"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
	"github.com/hongminglow/atithi-inn/internal/storage/memory"
)

const testAdminSecret = "let-me-in"

type testEnv struct {
	store    *memory.Store
	tm       *auth.TokenManager
	auth     *AuthService
	admins   *AdminService
	users    *UserService
	hotels   *HotelService
	rooms    *RoomService
	bookings *BookingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	log := logging.Discard()
	tm := auth.NewTokenManager("test-secret", "atithi-inn-test", time.Hour)
	hasher := auth.NewHasher(bcrypt.MinCost)

	return &testEnv{
		store:    store,
		tm:       tm,
		auth:     NewAuthService(store, store, store, tm, hasher, testAdminSecret, log),
		admins:   NewAdminService(store, store, store, tm, hasher, testAdminSecret, log),
		users:    NewUserService(store, hasher, log),
		hotels:   NewHotelService(store, store, log),
		rooms:    NewRoomService(store, store, log),
		bookings: NewBookingService(store, store, StubGateway{}, log),
	}
}

func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	sess, err := e.auth.Register(context.Background(), RegisterInput{
		Username: username, Email: username + "@example.com", Password: "password123",
	})
	require.NoError(t, err)
	return sess.User
}

func (e *testEnv) hotel(t *testing.T, name, city string) models.Hotel {
	t.Helper()
	h, err := e.hotels.Create(context.Background(), dto.HotelRequest{
		Name: ptr(name), City: ptr(city), Address: ptr("1 Main St"), Description: ptr("Quiet stay"),
		CheapestPrice: ptr(90.0), Rating: ptr(4.2),
	})
	require.NoError(t, err)
	return h
}

func (e *testEnv) room(t *testing.T, hotelID string, price float64, maxPeople int) models.Room {
	t.Helper()
	r, err := e.rooms.Create(context.Background(), dto.RoomRequest{
		Title: ptr("Deluxe"), Price: ptr(price), MaxPeople: ptr(maxPeople), Description: ptr("Sea view"),
		Image: ptr("deluxe.jpg"), RoomNumbers: &[]models.RoomNumber{{Number: "101"}}, Hotel: ptr(hotelID),
	})
	require.NoError(t, err)
	return r
}

func ptr[T any](v T) *T { return &v }

// countingHasher records how many bcrypt comparisons a call performed.
type countingHasher struct {
	auth.Hasher
	compares int
}

func (h *countingHasher) Matches(hashed, plain string) (bool, error) {
	h.compares++
	return h.Hasher.Matches(hashed, plain)
}

func (h *countingHasher) MatchesNone(plain string) {
	h.compares++
	h.Hasher.MatchesNone(plain)
}

func requireCode(t *testing.T, err error, kind Kind, code string) {
	t.Helper()
	require.Error(t, err)
	var se *Error
	require.True(t, errors.As(err, &se), "expected *service.Error, got %T: %v", err, err)
	require.Equal(t, kind, se.Kind, se.Message)
	require.Equal(t, code, se.Code, se.Message)
}
