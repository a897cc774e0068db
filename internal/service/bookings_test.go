package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

func stay(checkIn, checkOut string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{CheckInDate: checkIn, CheckOutDate: checkOut, Guests: 2, PaymentMethod: "card"}
}

func TestBookingService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "guest")
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)

	b, err := env.bookings.Create(ctx, user, r.ID, stay("2024-01-01", "2024-01-03"))
	require.NoError(t, err)
	assert.Equal(t, 200.0, b.TotalPrice)
	assert.Equal(t, 2, b.DaysOfStay)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, user.ID, b.UserID)
	assert.Equal(t, h.ID, b.HotelID)
	require.NotNil(t, b.PaymentInfo)
	assert.Equal(t, StubPaymentID, b.PaymentInfo.ID)
	assert.Equal(t, StubPaymentStatus, b.PaymentInfo.Status)
	assert.Equal(t, 200.0, b.PaymentInfo.AmountPaid)

	mine, err := env.bookings.ListMine(ctx, user)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Sea Breeze", mine[0].HotelName)
	assert.Equal(t, "Deluxe", mine[0].RoomTitle)
}

func TestBookingService_CreateErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "guest")
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)

	_, err := env.bookings.Create(ctx, user, r.ID, stay("2024-01-03", "2024-01-01"))
	requireCode(t, err, KindValidation, CodeValidationFailed)

	_, err = env.bookings.Create(ctx, user, r.ID, stay("", "2024-01-01"))
	requireCode(t, err, KindValidation, CodeValidationFailed)

	_, err = env.bookings.Create(ctx, user, "7b0e8f36-7a36-4d4e-9e59-2f8c1a4b9d10", stay("2024-01-01", "2024-01-03"))
	requireCode(t, err, KindNotFound, CodeRoomNotFound)

	admin, err := env.admins.Register(ctx, validAdminInput())
	require.NoError(t, err)
	_, err = env.bookings.Create(ctx, admin.Admin, r.ID, stay("2024-01-01", "2024-01-03"))
	requireCode(t, err, KindForbidden, CodeForbidden)
}

func TestBookingService_SameDayStayRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "guest")
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)

	_, err := env.bookings.Create(ctx, user, r.ID, stay("2024-01-01", "2024-01-01"))
	requireCode(t, err, KindValidation, CodeValidationFailed)

	mine, err := env.bookings.ListMine(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestBookingService_OverlappingStaysAreKept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)

	first, err := env.bookings.Create(ctx, alice, r.ID, stay("2024-01-01", "2024-01-04"))
	require.NoError(t, err)
	second, err := env.bookings.Create(ctx, bob, r.ID, stay("2024-01-02", "2024-01-05"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	admin, err := env.admins.Register(ctx, validAdminInput())
	require.NoError(t, err)
	res, err := env.bookings.List(ctx, admin.Admin, storage.NewPage(1, 20, 20))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	ids := []string{res.Items[0].ID, res.Items[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)
	for _, b := range res.Items {
		assert.Equal(t, r.ID, b.RoomID)
	}
}

func TestBookingService_CreateMultiRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "guest")
	h := env.hotel(t, "Sea Breeze", "Goa")
	a := env.room(t, h.ID, 100, 2)
	b := env.room(t, h.ID, 150, 2)

	req := stay("2024-01-01", "2024-01-04")
	req.Hotel = h.ID
	req.Rooms = []string{a.ID, b.ID}
	created, err := env.bookings.CreateMultiRoom(ctx, user, req)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 300.0, created[0].TotalPrice)
	assert.Equal(t, 450.0, created[1].TotalPrice)
}

func TestBookingService_CreateMultiRoomIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "guest")
	h := env.hotel(t, "Sea Breeze", "Goa")
	other := env.hotel(t, "Hill Top", "Shimla")
	a := env.room(t, h.ID, 100, 2)
	foreign := env.room(t, other.ID, 90, 2)

	req := stay("2024-01-01", "2024-01-02")
	req.Rooms = []string{a.ID, "7b0e8f36-7a36-4d4e-9e59-2f8c1a4b9d10"}
	_, err := env.bookings.CreateMultiRoom(ctx, user, req)
	requireCode(t, err, KindNotFound, CodeRoomNotFound)

	req.Hotel = h.ID
	req.Rooms = []string{a.ID, foreign.ID}
	_, err = env.bookings.CreateMultiRoom(ctx, user, req)
	requireCode(t, err, KindValidation, CodeRoomHotelMismatch)

	req.Rooms = nil
	_, err = env.bookings.CreateMultiRoom(ctx, user, req)
	requireCode(t, err, KindValidation, CodeNoRooms)

	mine, err := env.bookings.ListMine(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestBookingService_CreateForDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "guest")
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)
	require.NoError(t, env.store.DeleteUser(ctx, user.ID))

	_, err := env.bookings.Create(ctx, user, r.ID, stay("2024-01-01", "2024-01-03"))
	requireCode(t, err, KindUnauthorized, CodeUserNotFound)
}

func TestBookingService_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner")
	stranger := env.register(t, "stranger")
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)
	b, err := env.bookings.Create(ctx, owner, r.ID, stay("2024-01-01", "2024-01-03"))
	require.NoError(t, err)

	_, err = env.bookings.Get(ctx, stranger, b.ID)
	requireCode(t, err, KindForbidden, CodeForbidden)
	err = env.bookings.Delete(ctx, stranger, b.ID)
	requireCode(t, err, KindForbidden, CodeForbidden)

	admin, err := env.admins.Register(ctx, validAdminInput())
	require.NoError(t, err)
	got, err := env.bookings.Get(ctx, admin.Admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = env.bookings.Get(ctx, owner, "7b0e8f36-7a36-4d4e-9e59-2f8c1a4b9d10")
	requireCode(t, err, KindNotFound, CodeBookingNotFound)

	require.NoError(t, env.bookings.Delete(ctx, owner, b.ID))
	_, err = env.bookings.Get(ctx, owner, b.ID)
	requireCode(t, err, KindNotFound, CodeBookingNotFound)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "guest")
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)
	b, err := env.bookings.Create(ctx, user, r.ID, stay("2024-01-01", "2024-01-03"))
	require.NoError(t, err)

	b, err = env.bookings.Update(ctx, user, b.ID, dto.UpdateBookingRequest{Status: ptr("confirmed")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, b.Status)

	_, err = env.bookings.Update(ctx, user, b.ID, dto.UpdateBookingRequest{Status: ptr("pending")})
	requireCode(t, err, KindValidation, CodeInvalidStatusTransition)

	_, err = env.bookings.Update(ctx, user, b.ID, dto.UpdateBookingRequest{Status: ptr("teleported")})
	requireCode(t, err, KindValidation, CodeValidationFailed)

	b, err = env.bookings.Update(ctx, user, b.ID, dto.UpdateBookingRequest{Status: ptr("cancelled")})
	require.NoError(t, err)
	_, err = env.bookings.Update(ctx, user, b.ID, dto.UpdateBookingRequest{Status: ptr("completed")})
	requireCode(t, err, KindValidation, CodeInvalidStatusTransition)
}

func TestBookingService_Reschedule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "guest")
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)
	b, err := env.bookings.Create(ctx, user, r.ID, stay("2024-01-01", "2024-01-03"))
	require.NoError(t, err)

	b, err = env.bookings.Update(ctx, user, b.ID, dto.UpdateBookingRequest{CheckOutDate: ptr("2024-01-06")})
	require.NoError(t, err)
	assert.Equal(t, 5, b.DaysOfStay)
	assert.Equal(t, 500.0, b.TotalPrice)

	_, err = env.bookings.Update(ctx, user, b.ID, dto.UpdateBookingRequest{CheckInDate: ptr("2024-01-07")})
	requireCode(t, err, KindValidation, CodeValidationFailed)

	// the room is gone, so the stay is repriced at the booked nightly rate
	require.NoError(t, env.rooms.Delete(ctx, r.ID))
	b, err = env.bookings.Update(ctx, user, b.ID, dto.UpdateBookingRequest{CheckInDate: ptr("2024-01-04")})
	require.NoError(t, err)
	assert.Equal(t, 2, b.DaysOfStay)
	assert.Equal(t, 200.0, b.TotalPrice)
}

func TestBookingService_List(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)
	for _, u := range []*models.User{alice, alice, bob} {
		_, err := env.bookings.Create(ctx, u, r.ID, stay("2024-01-01", "2024-01-02"))
		require.NoError(t, err)
	}

	page := storage.NewPage(1, 20, 20)
	res, err := env.bookings.List(ctx, alice, page)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	admin, err := env.admins.Register(ctx, validAdminInput())
	require.NoError(t, err)
	res, err = env.bookings.List(ctx, admin.Admin, page)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)

	res, err = env.bookings.List(ctx, alice, storage.NewPage(2, 1, 20))
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.TotalPages())
}
