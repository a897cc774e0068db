package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

const roomColumns = `r.id, r.title, r.price, r.max_people, r.description, r.image, r.room_numbers,
	r.hotel_id, COALESCE(h.name, ''), r.created_at, r.updated_at`

const roomSelect = `SELECT ` + roomColumns + ` FROM rooms r LEFT JOIN hotels h ON h.id = r.hotel_id`

// CreateRoom inserts the room. A missing parent hotel surfaces as
// storage.ErrNotFound through the foreign key.
func (s *Store) CreateRoom(ctx context.Context, room models.Room) (models.Room, error) {
	numbers, err := encodeJSON(room.RoomNumbers, "[]")
	if err != nil {
		return models.Room{}, err
	}
	const query = `
	WITH r AS (
		INSERT INTO rooms (id, hotel_id, title, price, max_people, description, image, room_numbers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *
	)
	SELECT ` + roomColumns + ` FROM r LEFT JOIN hotels h ON h.id = r.hotel_id`

	row := s.db.QueryRowContext(ctx, query, uuid.NewString(), room.HotelID, room.Title, room.Price,
		room.MaxPeople, room.Description, room.Image, numbers)
	return scanRoom(row)
}

func (s *Store) FindRoomByID(ctx context.Context, id string) (models.Room, error) {
	return scanRoom(s.db.QueryRowContext(ctx, roomSelect+` WHERE r.id = $1`, id))
}

func (s *Store) ListRooms(ctx context.Context, filter storage.RoomFilter, page storage.Page) ([]models.Room, int, error) {
	w := &where{}
	if filter.HotelID != "" {
		w.add(`r.hotel_id = $%d`, filter.HotelID)
	}
	if filter.Title != "" {
		w.add(`r.title = $%d`, filter.Title)
	}
	if filter.Price != nil {
		w.add(`r.price = $%d`, *filter.Price)
	}
	if filter.MaxPeople != nil {
		w.add(`r.max_people = $%d`, *filter.MaxPeople)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms r`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", mapError(err))
	}

	query := roomSelect + w.String() + ` ORDER BY r.created_at, r.id`
	query += ` LIMIT ` + w.next(page.Size) + ` OFFSET ` + w.next(page.Offset())
	rooms, err := s.queryRooms(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

func (s *Store) UpdateRoom(ctx context.Context, room models.Room) (models.Room, error) {
	numbers, err := encodeJSON(room.RoomNumbers, "[]")
	if err != nil {
		return models.Room{}, err
	}
	const query = `
	WITH r AS (
		UPDATE rooms
		SET hotel_id = $2, title = $3, price = $4, max_people = $5, description = $6, image = $7,
			room_numbers = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING *
	)
	SELECT ` + roomColumns + ` FROM r LEFT JOIN hotels h ON h.id = r.hotel_id`

	row := s.db.QueryRowContext(ctx, query, room.ID, room.HotelID, room.Title, room.Price, room.MaxPeople,
		room.Description, room.Image, numbers)
	return scanRoom(row)
}

func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectOne(res)
}

// AvailableHotelIDs matches rooms whose capacity covers the guests and whose
// room numbers carry no unavailable date inside [start, end).
func (s *Store) AvailableHotelIDs(ctx context.Context, q storage.Availability) ([]string, error) {
	const query = `
	SELECT DISTINCT r.hotel_id
	FROM rooms r
	WHERE r.max_people >= $1
	AND NOT EXISTS (
		SELECT 1
		FROM jsonb_array_elements(r.room_numbers) AS rn,
			jsonb_array_elements_text(COALESCE(rn->'unavailableDates', '[]'::jsonb)) AS d
		WHERE d::timestamptz >= $2 AND d::timestamptz < $3
	)
	ORDER BY r.hotel_id`

	rows, err := s.db.QueryContext(ctx, query, q.Guests, q.Start, q.End)
	if err != nil {
		return nil, fmt.Errorf("query available rooms: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) queryRooms(ctx context.Context, query string, args ...any) ([]models.Room, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rooms: %w", mapError(err))
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

func scanRoom(row rowScanner) (models.Room, error) {
	var r models.Room
	var numbers []byte
	if err := row.Scan(&r.ID, &r.Title, &r.Price, &r.MaxPeople, &r.Description, &r.Image, &numbers,
		&r.HotelID, &r.HotelName, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return models.Room{}, mapError(err)
	}
	if len(numbers) > 0 {
		if err := json.Unmarshal(numbers, &r.RoomNumbers); err != nil {
			return models.Room{}, fmt.Errorf("decode room numbers: %w", err)
		}
	}
	r.Normalize()
	return r, nil
}
