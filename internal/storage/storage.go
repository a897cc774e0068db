package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hongminglow/atithi-inn/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ConflictError names the unique field that collided. It matches
// ErrAlreadyExists under errors.Is.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyExists, e.Field)
}

func (e *ConflictError) Unwrap() error {
	return ErrAlreadyExists
}

// UserStore captures persistence operations for customer accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// AdminStore persists the separate administrator accounts.
type AdminStore interface {
	CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error)
	FindAdminByID(ctx context.Context, id string) (models.Admin, error)
	FindAdminByEmail(ctx context.Context, email string) (models.Admin, error)
}

// TokenStore tracks issued session tokens so they can be revoked.
type TokenStore interface {
	// ReplaceToken drops every token of the subject and records t, atomically.
	ReplaceToken(ctx context.Context, t models.Token) error
	// FindToken returns the record for raw if it belongs to subjectID and has
	// not expired at now.
	FindToken(ctx context.Context, raw, subjectID string, now time.Time) (models.Token, error)
	DeleteToken(ctx context.Context, raw string) error
}

// HotelStore persists hotels. Reads populate the derived Rooms field.
type HotelStore interface {
	CreateHotel(ctx context.Context, hotel models.Hotel) (models.Hotel, error)
	FindHotelByID(ctx context.Context, id string) (models.Hotel, error)
	ListHotels(ctx context.Context, filter HotelFilter, page Page) ([]models.Hotel, int, error)
	AllHotels(ctx context.Context) ([]models.Hotel, error)
	UpdateHotel(ctx context.Context, hotel models.Hotel) (models.Hotel, error)
	// DeleteHotel removes the hotel and its rooms.
	DeleteHotel(ctx context.Context, id string) error
}

// RoomStore persists rooms. The owning hotel is referenced by HotelID only.
type RoomStore interface {
	// CreateRoom returns ErrNotFound when the parent hotel does not exist.
	CreateRoom(ctx context.Context, room models.Room) (models.Room, error)
	FindRoomByID(ctx context.Context, id string) (models.Room, error)
	ListRooms(ctx context.Context, filter RoomFilter, page Page) ([]models.Room, int, error)
	UpdateRoom(ctx context.Context, room models.Room) (models.Room, error)
	DeleteRoom(ctx context.Context, id string) error
	// AvailableHotelIDs returns the distinct hotels owning at least one room
	// that fits the query.
	AvailableHotelIDs(ctx context.Context, q Availability) ([]string, error)
}

// BookingStore persists bookings. Reads populate room and hotel display fields.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error)
	// CreateBookings writes all bookings or none.
	CreateBookings(ctx context.Context, bookings []models.Booking) ([]models.Booking, error)
	FindBookingByID(ctx context.Context, id string) (models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListBookings(ctx context.Context, page Page) ([]models.Booking, int, error)
	UpdateBooking(ctx context.Context, booking models.Booking) (models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// Store is the full persistence surface used by the server.
type Store interface {
	UserStore
	AdminStore
	TokenStore
	HotelStore
	RoomStore
	BookingStore
	Ping(ctx context.Context) error
	Close() error
}
