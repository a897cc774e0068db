package memory

import (
	"context"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

func (s *Store) CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	created, err := s.CreateBookings(ctx, []models.Booking{booking})
	if err != nil {
		return models.Booking{}, err
	}
	return created[0], nil
}

func (s *Store) CreateBookings(_ context.Context, bookings []models.Booking) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range bookings {
		if _, ok := s.users.get(b.UserID); !ok {
			return nil, storage.ErrNotFound
		}
	}

	now := s.now()
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		b.ID = newID()
		b.CreatedAt, b.UpdatedAt = now, now
		b = clearDisplay(b)
		s.bookings.put(b.ID, cloneBooking(b))
		out = append(out, s.withDisplay(b))
	}
	return out, nil
}

func (s *Store) FindBookingByID(_ context.Context, id string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings.get(id)
	if !ok {
		return models.Booking{}, storage.ErrNotFound
	}
	return s.withDisplay(b), nil
}

func (s *Store) ListBookingsByUser(_ context.Context, userID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	s.bookings.each(func(b models.Booking) {
		if b.UserID == userID {
			out = append(out, s.withDisplay(b))
		}
	})
	return out, nil
}

func (s *Store) ListBookings(_ context.Context, page storage.Page) ([]models.Booking, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Booking, 0, len(s.bookings.rows))
	s.bookings.each(func(b models.Booking) { all = append(all, b) })

	items := paginate(all, page)
	out := make([]models.Booking, 0, len(items))
	for _, b := range items {
		out = append(out, s.withDisplay(b))
	}
	return out, len(all), nil
}

func (s *Store) UpdateBooking(_ context.Context, booking models.Booking) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.bookings.get(booking.ID)
	if !ok {
		return models.Booking{}, storage.ErrNotFound
	}
	booking.CreatedAt = existing.CreatedAt
	booking.UpdatedAt = s.now()
	booking = clearDisplay(booking)
	s.bookings.put(booking.ID, cloneBooking(booking))
	return s.withDisplay(booking), nil
}

func (s *Store) DeleteBooking(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.bookings.remove(id) {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) withDisplay(b models.Booking) models.Booking {
	b = cloneBooking(b)
	if r, ok := s.rooms.get(b.RoomID); ok {
		b.RoomTitle, b.RoomPrice = r.Title, r.Price
	}
	if h, ok := s.hotels.get(b.HotelID); ok {
		b.HotelName = h.Name
	}
	return b
}

func clearDisplay(b models.Booking) models.Booking {
	b.RoomTitle, b.RoomPrice, b.HotelName = "", 0, ""
	return b
}

func cloneBooking(b models.Booking) models.Booking {
	if b.PaymentInfo != nil {
		info := *b.PaymentInfo
		b.PaymentInfo = &info
	}
	return b
}
