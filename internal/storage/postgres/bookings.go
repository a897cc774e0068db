package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

const bookingColumns = `b.id, b.user_id, b.room_id, b.hotel_id, b.check_in, b.check_out, b.guests,
	b.total_price, b.status, b.payment_method, b.payment_info, b.days_of_stay,
	COALESCE(r.title, ''), COALESCE(r.price, 0), COALESCE(h.name, ''), b.created_at, b.updated_at`

const bookingJoins = ` LEFT JOIN rooms r ON r.id = b.room_id LEFT JOIN hotels h ON h.id = b.hotel_id`

const bookingSelect = `SELECT ` + bookingColumns + ` FROM bookings b` + bookingJoins

func (s *Store) CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	created, err := s.CreateBookings(ctx, []models.Booking{booking})
	if err != nil {
		return models.Booking{}, err
	}
	return created[0], nil
}

// CreateBookings inserts every booking in one transaction.
func (s *Store) CreateBookings(ctx context.Context, bookings []models.Booking) ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(bookings))
	err := withTx(ctx, s.db, func(tx dbtx) error {
		for _, b := range bookings {
			created, err := insertBooking(ctx, tx, b)
			if err != nil {
				return err
			}
			out = append(out, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func insertBooking(ctx context.Context, tx dbtx, b models.Booking) (models.Booking, error) {
	payment, err := encodePayment(b.PaymentInfo)
	if err != nil {
		return models.Booking{}, err
	}
	const query = `
	WITH b AS (
		INSERT INTO bookings (id, user_id, room_id, hotel_id, check_in, check_out, guests, total_price,
			status, payment_method, payment_info, days_of_stay)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING *
	)
	SELECT ` + bookingColumns + ` FROM b` + bookingJoins

	row := tx.QueryRowContext(ctx, query, uuid.NewString(), b.UserID, b.RoomID, b.HotelID, b.CheckIn, b.CheckOut,
		b.Guests, b.TotalPrice, string(b.Status), b.PaymentMethod, payment, b.DaysOfStay)
	return scanBooking(row)
}

func (s *Store) FindBookingByID(ctx context.Context, id string) (models.Booking, error) {
	return scanBooking(s.db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = $1`, id))
}

func (s *Store) ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.queryBookings(ctx, bookingSelect+` WHERE b.user_id = $1 ORDER BY b.created_at, b.id`, userID)
}

func (s *Store) ListBookings(ctx context.Context, page storage.Page) ([]models.Booking, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}
	bookings, err := s.queryBookings(ctx, bookingSelect+` ORDER BY b.created_at, b.id LIMIT $1 OFFSET $2`,
		page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (s *Store) UpdateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	payment, err := encodePayment(booking.PaymentInfo)
	if err != nil {
		return models.Booking{}, err
	}
	const query = `
	WITH b AS (
		UPDATE bookings
		SET check_in = $2, check_out = $3, guests = $4, total_price = $5, status = $6,
			payment_method = $7, payment_info = $8, days_of_stay = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING *
	)
	SELECT ` + bookingColumns + ` FROM b` + bookingJoins

	row := s.db.QueryRowContext(ctx, query, booking.ID, booking.CheckIn, booking.CheckOut, booking.Guests,
		booking.TotalPrice, string(booking.Status), booking.PaymentMethod, payment, booking.DaysOfStay)
	return scanBooking(row)
}

func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectOne(res)
}

func (s *Store) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", mapError(err))
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var b models.Booking
	var status string
	var payment []byte
	if err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.HotelID, &b.CheckIn, &b.CheckOut, &b.Guests,
		&b.TotalPrice, &status, &b.PaymentMethod, &payment, &b.DaysOfStay, &b.RoomTitle, &b.RoomPrice,
		&b.HotelName, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return models.Booking{}, mapError(err)
	}
	b.Status = models.BookingStatus(status)
	if len(payment) > 0 {
		b.PaymentInfo = &models.PaymentInfo{}
		if err := json.Unmarshal(payment, b.PaymentInfo); err != nil {
			return models.Booking{}, fmt.Errorf("decode payment info: %w", err)
		}
	}
	return b, nil
}

// encodePayment returns nil for a missing record so the column stays NULL.
func encodePayment(p *models.PaymentInfo) (any, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payment info: %w", err)
	}
	return string(b), nil
}
