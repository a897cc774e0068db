package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNightsBetween(t *testing.T) {
	day := func(s string) time.Time {
		d, err := ParseDate(s)
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		return d
	}

	assert.Equal(t, 2, NightsBetween(day("2024-01-01"), day("2024-01-03")))
	assert.Equal(t, 1, NightsBetween(day("2024-01-01T10:00:00Z"), day("2024-01-01T11:00:00Z")))
	assert.Equal(t, 3, NightsBetween(day("2024-01-01T00:00:00Z"), day("2024-01-03T00:00:01Z")))
	assert.Equal(t, 0, NightsBetween(day("2024-01-03"), day("2024-01-01")))
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusCancelled, true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBooking_Validate(t *testing.T) {
	checkIn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	valid := Booking{
		UserID: "u", RoomID: "r", HotelID: "h",
		CheckIn: checkIn, CheckOut: checkIn.Add(48 * time.Hour),
		Guests: 1, TotalPrice: 200, Status: StatusPending,
	}
	assert.NoError(t, valid.Validate())

	same := valid
	same.CheckOut = same.CheckIn
	err := same.Validate()
	var fe *FieldError
	if assert.ErrorAs(t, err, &fe) {
		assert.Equal(t, "checkOut", fe.Field)
	}

	noGuests := valid
	noGuests.Guests = 0
	assert.Error(t, noGuests.Validate())

	badStatus := valid
	badStatus.Status = "archived"
	assert.Error(t, badStatus.Validate())
}
