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
	"github.com/hongminglow/atithi-inn/internal/storage"
)

func TestHotelService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.hotels.Create(ctx, dto.HotelRequest{Name: ptr("No City")})
	requireCode(t, err, KindValidation, CodeValidationFailed)

	h := env.hotel(t, "Sea Breeze", "Goa")
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, []models.Room{}, h.Rooms)
	assert.Equal(t, []string{}, h.Photos)
}

func TestHotelService_GetIncludesRooms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)

	got, err := env.hotels.Get(ctx, h.ID)
	require.NoError(t, err)
	require.Len(t, got.Rooms, 1)
	assert.Equal(t, r.ID, got.Rooms[0].ID)

	_, err = env.hotels.Get(ctx, "bogus")
	requireCode(t, err, KindValidation, CodeInvalidID)
	_, err = env.hotels.Get(ctx, "7b0e8f36-7a36-4d4e-9e59-2f8c1a4b9d10")
	requireCode(t, err, KindNotFound, CodeHotelNotFound)
}

func TestHotelService_List(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.hotel(t, "Sea Breeze", "Goa")
	env.hotel(t, "Hill Top", "Shimla")
	env.hotel(t, "Palm Grove", "goa")

	q, err := ParseHotelQuery(url.Values{"city": {"GOA"}}, 20)
	require.NoError(t, err)
	res, err := env.hotels.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Items, 2)

	q, err = ParseHotelQuery(url.Values{"limit": {"1"}, "page": {"3"}}, 20)
	require.NoError(t, err)
	res, err = env.hotels.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 3, res.TotalPages())
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Palm Grove", res.Items[0].Name)
}

func TestHotelService_ListPastLastPage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.hotel(t, "Sea Breeze", "Goa")
	env.hotel(t, "Hill Top", "Shimla")
	env.hotel(t, "Palm Grove", "Goa")

	q, err := ParseHotelQuery(url.Values{"limit": {"2"}, "page": {"3"}}, 20)
	require.NoError(t, err)
	res, err := env.hotels.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.TotalPages())
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
}

func TestHotelService_ListAvailability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	free := env.hotel(t, "Sea Breeze", "Goa")
	busy := env.hotel(t, "Hill Top", "Shimla")
	small := env.hotel(t, "Tiny Inn", "Pune")
	env.room(t, free.ID, 100, 4)
	env.room(t, small.ID, 80, 1)

	blocked, err := models.ParseDate("2024-03-02")
	require.NoError(t, err)
	_, err = env.rooms.Create(ctx, dto.RoomRequest{
		Title: ptr("Suite"), Price: ptr(300.0), MaxPeople: ptr(4), Description: ptr("Top floor"), Image: ptr("suite.jpg"),
		RoomNumbers: &[]models.RoomNumber{{Number: "501", UnavailableDates: []time.Time{blocked}}},
		Hotel:       ptr(busy.ID),
	})
	require.NoError(t, err)

	res, err := env.hotels.List(ctx, HotelQuery{
		Page: storage.NewPage(1, 20, 20),
		Availability: &storage.Availability{
			Start: mustDate(t, "2024-03-01"), End: mustDate(t, "2024-03-04"), Guests: 2,
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, free.ID, res.Items[0].ID)

	// nothing fits eight guests
	res, err = env.hotels.List(ctx, HotelQuery{
		Page: storage.NewPage(1, 20, 20),
		Availability: &storage.Availability{
			Start: mustDate(t, "2024-03-01"), End: mustDate(t, "2024-03-04"), Guests: 8,
		},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.Total)
}

func TestHotelService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	h := env.hotel(t, "Sea Breeze", "Goa")
	r := env.room(t, h.ID, 100, 2)

	updated, err := env.hotels.Update(ctx, h.ID, dto.HotelRequest{Rating: ptr(4.8)})
	require.NoError(t, err)
	assert.Equal(t, 4.8, updated.Rating)
	assert.Equal(t, "Sea Breeze", updated.Name)

	require.NoError(t, env.hotels.Delete(ctx, h.ID))
	_, err = env.rooms.Get(ctx, r.ID)
	requireCode(t, err, KindNotFound, CodeRoomNotFound)
	err = env.hotels.Delete(ctx, h.ID)
	requireCode(t, err, KindNotFound, CodeHotelNotFound)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}
