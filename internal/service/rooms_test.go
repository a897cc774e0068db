package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
)

func TestRoomService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	h := env.hotel(t, "Sea Breeze", "Goa")

	r := env.room(t, h.ID, 120, 2)
	assert.Equal(t, h.ID, r.HotelID)
	assert.Equal(t, []models.RoomNumber{{Number: "101", UnavailableDates: []time.Time{}}}, r.RoomNumbers)

	got, err := env.rooms.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sea Breeze", got.HotelName)
}

func TestRoomService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.rooms.Create(ctx, dto.RoomRequest{Title: ptr("Deluxe")})
	requireCode(t, err, KindValidation, CodeValidationFailed)
	assert.Contains(t, err.Error(), "price")

	_, err = env.rooms.Create(ctx, dto.RoomRequest{
		Title: ptr("Deluxe"), Price: ptr(100.0), MaxPeople: ptr(2), Description: ptr("x"), Image: ptr("x.jpg"),
		RoomNumbers: &[]models.RoomNumber{}, Hotel: ptr("7b0e8f36-7a36-4d4e-9e59-2f8c1a4b9d10"),
	})
	requireCode(t, err, KindNotFound, CodeHotelNotFound)

	h := env.hotel(t, "Sea Breeze", "Goa")
	_, err = env.rooms.Create(ctx, dto.RoomRequest{
		Title: ptr("Deluxe"), Price: ptr(0.0), MaxPeople: ptr(2), Description: ptr("x"), Image: ptr("x.jpg"),
		RoomNumbers: &[]models.RoomNumber{}, Hotel: ptr(h.ID),
	})
	requireCode(t, err, KindValidation, CodeValidationFailed)
}

func TestRoomService_ListByHotel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.hotel(t, "Sea Breeze", "Goa")
	b := env.hotel(t, "Hill Top", "Shimla")
	env.room(t, a.ID, 100, 2)
	env.room(t, a.ID, 150, 3)
	env.room(t, b.ID, 90, 2)

	q, err := ParseRoomQuery(url.Values{"hotel": {a.ID}}, 20)
	require.NoError(t, err)
	res, err := env.rooms.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	for _, r := range res.Items {
		assert.Equal(t, a.ID, r.HotelID)
	}
}

func TestRoomService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)

	updated, err := env.rooms.Update(ctx, r.ID, dto.RoomRequest{Price: ptr(180.0)})
	require.NoError(t, err)
	assert.Equal(t, 180.0, updated.Price)
	assert.Equal(t, "Deluxe", updated.Title)

	_, err = env.rooms.Update(ctx, r.ID, dto.RoomRequest{Hotel: ptr("7b0e8f36-7a36-4d4e-9e59-2f8c1a4b9d10")})
	requireCode(t, err, KindNotFound, CodeHotelNotFound)

	require.NoError(t, env.rooms.Delete(ctx, r.ID))
	hotel, err := env.hotels.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.Empty(t, hotel.Rooms)

	err = env.rooms.Delete(ctx, r.ID)
	requireCode(t, err, KindNotFound, CodeRoomNotFound)
}
