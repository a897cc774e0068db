package models

import (
	"math"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in status s may move to next.
// Cancelled and completed are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentInfo records the outcome of charging a booking.
type PaymentInfo struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	AmountPaid    float64   `json:"amountPaid"`
	PaymentDate   time.Time `json:"paymentDate"`
}

// Booking links a user to a room of a hotel for a date range. RoomTitle,
// RoomPrice and HotelName are populated on read.
type Booking struct {
	ID            string        `json:"_id"`
	UserID        string        `json:"user"`
	RoomID        string        `json:"room"`
	HotelID       string        `json:"hotel"`
	CheckIn       time.Time     `json:"checkIn"`
	CheckOut      time.Time     `json:"checkOut"`
	Guests        int           `json:"guests"`
	TotalPrice    float64       `json:"totalPrice"`
	Status        BookingStatus `json:"status"`
	PaymentMethod string        `json:"paymentMethod,omitempty"`
	PaymentInfo   *PaymentInfo  `json:"paymentInfo,omitempty"`
	DaysOfStay    int           `json:"daysOfStay"`
	RoomTitle     string        `json:"roomTitle,omitempty"`
	RoomPrice     float64       `json:"roomPrice,omitempty"`
	HotelName     string        `json:"hotelName,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Validate is run before every write.
func (b Booking) Validate() error {
	switch {
	case b.UserID == "":
		return &FieldError{Field: "user", Message: "Booking must belong to a user"}
	case b.RoomID == "":
		return &FieldError{Field: "room", Message: "Booking must reference a room"}
	case b.HotelID == "":
		return &FieldError{Field: "hotel", Message: "Booking must reference a hotel"}
	case b.CheckIn.IsZero() || b.CheckOut.IsZero():
		return &FieldError{Field: "checkIn", Message: "Please provide both check-in and check-out dates"}
	case !b.CheckOut.After(b.CheckIn):
		return &FieldError{Field: "checkOut", Message: "Check-out date must be after check-in date"}
	case b.Guests < 1:
		return &FieldError{Field: "guests", Message: "At least one guest is required"}
	case b.TotalPrice < 0:
		return &FieldError{Field: "totalPrice", Message: "Total price must be positive"}
	case !b.Status.Valid():
		return &FieldError{Field: "status", Message: "Invalid booking status"}
	}
	return nil
}

// NightsBetween returns the stay length in whole days, rounding any partial
// day up.
func NightsBetween(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d) / float64(24*time.Hour)))
}
