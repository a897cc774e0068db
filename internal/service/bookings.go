package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hongminglow/atithi-inn/internal/logging"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

// BookingService creates and manages reservations. Overlapping bookings of
// the same room are accepted.
type BookingService struct {
	bookings storage.BookingStore
	rooms    storage.RoomStore
	payments PaymentGateway
	log      logging.Logger
}

// NewBookingService charges new bookings through payments.
func NewBookingService(bookings storage.BookingStore, rooms storage.RoomStore, payments PaymentGateway, log logging.Logger) *BookingService {
	return &BookingService{bookings: bookings, rooms: rooms, payments: payments, log: log}
}

// Create books a single room for the caller.
func (s *BookingService) Create(ctx context.Context, p models.Principal, roomID string, req dto.CreateBookingRequest) (models.Booking, error) {
	if err := requireCustomer(p); err != nil {
		return models.Booking{}, err
	}
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return models.Booking{}, err
	}
	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return models.Booking{}, err
	}
	b, err := s.build(ctx, p, room, checkIn, checkOut, req)
	if err != nil {
		return models.Booking{}, err
	}

	created, err := s.bookings.CreateBooking(ctx, b)
	if err != nil {
		return models.Booking{}, s.writeError(ctx, err)
	}
	s.log.Info(ctx, "booking created", "booking_id", created.ID, "user_id", created.UserID, "room_id", created.RoomID)
	return created, nil
}

// CreateMultiRoom books several rooms at once. Every room is resolved before
// anything is written, and the bookings are stored together or not at all.
func (s *BookingService) CreateMultiRoom(ctx context.Context, p models.Principal, req dto.CreateBookingRequest) ([]models.Booking, error) {
	if err := requireCustomer(p); err != nil {
		return nil, err
	}
	if len(req.Rooms) == 0 {
		return nil, invalid(CodeNoRooms, "No rooms provided")
	}
	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	rooms := make([]models.Room, 0, len(req.Rooms))
	for _, id := range req.Rooms {
		room, err := s.findRoom(ctx, id)
		if err != nil {
			return nil, err
		}
		if req.Hotel != "" && room.HotelID != req.Hotel {
			return nil, invalid(CodeRoomHotelMismatch, fmt.Sprintf("Room %s does not belong to hotel %s", id, req.Hotel))
		}
		rooms = append(rooms, room)
	}

	batch := make([]models.Booking, 0, len(rooms))
	for _, room := range rooms {
		b, err := s.build(ctx, p, room, checkIn, checkOut, req)
		if err != nil {
			return nil, err
		}
		batch = append(batch, b)
	}

	created, err := s.bookings.CreateBookings(ctx, batch)
	if err != nil {
		return nil, s.writeError(ctx, err)
	}
	s.log.Info(ctx, "bookings created", "count", len(created), "user_id", p.SubjectID())
	return created, nil
}

// Get returns a booking visible to its owner or an admin.
func (s *BookingService) Get(ctx context.Context, p models.Principal, id string) (models.Booking, error) {
	if err := checkID(id); err != nil {
		return models.Booking{}, err
	}
	b, err := s.bookings.FindBookingByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Booking{}, notFound(CodeBookingNotFound, fmt.Sprintf("Booking not found with ID: %s", id))
	}
	if err != nil {
		return models.Booking{}, unexpected(ctx, s.log, "find booking", err)
	}
	if b.UserID != p.SubjectID() && !p.HasAdminRights() {
		return models.Booking{}, forbidden(CodeForbidden, "Not authorized to access this booking")
	}
	return b, nil
}

// Update applies a partial change. Date changes reprice the stay and status
// changes must follow the booking lifecycle.
func (s *BookingService) Update(ctx context.Context, p models.Principal, id string, req dto.UpdateBookingRequest) (models.Booking, error) {
	b, err := s.Get(ctx, p, id)
	if err != nil {
		return models.Booking{}, err
	}

	if req.CheckInDate != nil || req.CheckOutDate != nil {
		if err := s.reschedule(ctx, &b, req.CheckInDate, req.CheckOutDate); err != nil {
			return models.Booking{}, err
		}
	}
	if req.Guests != nil {
		b.Guests = *req.Guests
	}
	if req.PaymentMethod != nil {
		b.PaymentMethod = *req.PaymentMethod
	}
	if req.Status != nil {
		next := models.BookingStatus(*req.Status)
		if !next.Valid() {
			return models.Booking{}, &Error{Kind: KindValidation, Code: CodeValidationFailed, Field: "status", Message: "Invalid booking status"}
		}
		if !b.Status.CanTransitionTo(next) {
			return models.Booking{}, invalid(CodeInvalidStatusTransition,
				fmt.Sprintf("Cannot change booking status from %s to %s", b.Status, next))
		}
		b.Status = next
	}
	if err := b.Validate(); err != nil {
		return models.Booking{}, invalidField(err)
	}

	updated, err := s.bookings.UpdateBooking(ctx, b)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Booking{}, notFound(CodeBookingNotFound, fmt.Sprintf("Booking not found with ID: %s", id))
	}
	if err != nil {
		return models.Booking{}, unexpected(ctx, s.log, "update booking", err)
	}
	return updated, nil
}

// Delete removes a booking the caller owns, or any booking for an admin.
func (s *BookingService) Delete(ctx context.Context, p models.Principal, id string) error {
	if _, err := s.Get(ctx, p, id); err != nil {
		return err
	}
	err := s.bookings.DeleteBooking(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(CodeBookingNotFound, fmt.Sprintf("Booking not found with ID: %s", id))
	}
	if err != nil {
		return unexpected(ctx, s.log, "delete booking", err)
	}
	return nil
}

// ListMine returns the caller's bookings with hotel and room details.
func (s *BookingService) ListMine(ctx context.Context, p models.Principal) ([]models.Booking, error) {
	bookings, err := s.bookings.ListBookingsByUser(ctx, p.SubjectID())
	if err != nil {
		return nil, unexpected(ctx, s.log, "list bookings", err)
	}
	return bookings, nil
}

// List pages over every booking for admins and over the caller's own
// bookings otherwise.
func (s *BookingService) List(ctx context.Context, p models.Principal, page storage.Page) (ListResult[models.Booking], error) {
	if !p.HasAdminRights() {
		mine, err := s.ListMine(ctx, p)
		if err != nil {
			return ListResult[models.Booking]{}, err
		}
		return ListResult[models.Booking]{Items: pageOf(mine, page), Total: len(mine), Page: page}, nil
	}
	bookings, total, err := s.bookings.ListBookings(ctx, page)
	if err != nil {
		return ListResult[models.Booking]{}, unexpected(ctx, s.log, "list bookings", err)
	}
	return ListResult[models.Booking]{Items: bookings, Total: total, Page: page}, nil
}

func (s *BookingService) build(ctx context.Context, p models.Principal, room models.Room,
	checkIn, checkOut time.Time, req dto.CreateBookingRequest) (models.Booking, error) {
	guests := req.Guests
	if guests == 0 {
		guests = 1
	}
	nights := models.NightsBetween(checkIn, checkOut)
	total := float64(nights) * room.Price

	payment, err := s.payments.Charge(ctx, total, req.PaymentMethod)
	if err != nil {
		return models.Booking{}, unexpected(ctx, s.log, "charge booking", err)
	}

	b := models.Booking{
		UserID:        p.SubjectID(),
		RoomID:        room.ID,
		HotelID:       room.HotelID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        guests,
		TotalPrice:    total,
		Status:        models.StatusPending,
		PaymentMethod: req.PaymentMethod,
		PaymentInfo:   &payment,
		DaysOfStay:    nights,
	}
	if err := b.Validate(); err != nil {
		return models.Booking{}, invalidField(err)
	}
	return b, nil
}

// reschedule moves the stay and reprices it at the room's current rate, or
// at the booked nightly rate when the room no longer exists.
func (s *BookingService) reschedule(ctx context.Context, b *models.Booking, checkInRaw, checkOutRaw *string) error {
	checkIn, checkOut := b.CheckIn, b.CheckOut
	var err error
	if checkInRaw != nil {
		if checkIn, err = models.ParseDate(*checkInRaw); err != nil {
			return invalid(CodeValidationFailed, "Invalid check-in or check-out date")
		}
	}
	if checkOutRaw != nil {
		if checkOut, err = models.ParseDate(*checkOutRaw); err != nil {
			return invalid(CodeValidationFailed, "Invalid check-in or check-out date")
		}
	}
	if !checkOut.After(checkIn) {
		return invalid(CodeValidationFailed, "Check-out date must be after check-in date")
	}

	var nightly float64
	room, err := s.rooms.FindRoomByID(ctx, b.RoomID)
	switch {
	case err == nil:
		nightly = room.Price
	case errors.Is(err, storage.ErrNotFound):
		if b.DaysOfStay > 0 {
			nightly = b.TotalPrice / float64(b.DaysOfStay)
		}
	default:
		return unexpected(ctx, s.log, "find room", err)
	}

	b.CheckIn, b.CheckOut = checkIn, checkOut
	b.DaysOfStay = models.NightsBetween(checkIn, checkOut)
	b.TotalPrice = float64(b.DaysOfStay) * nightly
	return nil
}

func (s *BookingService) findRoom(ctx context.Context, id string) (models.Room, error) {
	if checkID(id) != nil {
		return models.Room{}, notFound(CodeRoomNotFound, fmt.Sprintf("No room found with ID: %s", id))
	}
	room, err := s.rooms.FindRoomByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Room{}, notFound(CodeRoomNotFound, fmt.Sprintf("No room found with ID: %s", id))
	}
	if err != nil {
		return models.Room{}, unexpected(ctx, s.log, "find room", err)
	}
	return room, nil
}

func (s *BookingService) writeError(ctx context.Context, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return unauthorized(CodeUserNotFound, "User not found")
	}
	return unexpected(ctx, s.log, "create booking", err)
}

func parseStay(checkInRaw, checkOutRaw string) (time.Time, time.Time, error) {
	if checkInRaw == "" || checkOutRaw == "" {
		return time.Time{}, time.Time{}, invalid(CodeValidationFailed, "Please provide both check-in and check-out dates")
	}
	checkIn, err := models.ParseDate(checkInRaw)
	if err != nil {
		return time.Time{}, time.Time{}, invalid(CodeValidationFailed, "Invalid check-in or check-out date")
	}
	checkOut, err := models.ParseDate(checkOutRaw)
	if err != nil {
		return time.Time{}, time.Time{}, invalid(CodeValidationFailed, "Invalid check-in or check-out date")
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, invalid(CodeValidationFailed, "Check-out date must be after check-in date")
	}
	return checkIn, checkOut, nil
}

// requireCustomer rejects admin accounts, which cannot own bookings.
func requireCustomer(p models.Principal) error {
	if p.Kind() != models.KindUser {
		return forbidden(CodeForbidden, "Only customer accounts can make bookings")
	}
	return nil
}

func pageOf[T any](items []T, page storage.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	return items[start:min(start+page.Size, len(items))]
}
