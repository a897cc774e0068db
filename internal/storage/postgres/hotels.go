package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

const hotelColumns = `h.id, h.name, h.description, h.city, h.address, h.photos, h.rating, h.num_reviews,
	h.amenities, h.cheapest_price, h.created_at, h.updated_at`

func (s *Store) CreateHotel(ctx context.Context, hotel models.Hotel) (models.Hotel, error) {
	photos, amenities, err := encodeHotelLists(hotel)
	if err != nil {
		return models.Hotel{}, err
	}
	const query = `
	WITH h AS (
		INSERT INTO hotels (id, name, description, city, address, photos, rating, num_reviews, amenities, cheapest_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING *
	)
	SELECT ` + hotelColumns + ` FROM h`

	row := s.db.QueryRowContext(ctx, query, uuid.NewString(), hotel.Name, hotel.Description, hotel.City,
		hotel.Address, photos, hotel.Rating, hotel.NumReviews, amenities, hotel.CheapestPrice)
	created, err := scanHotel(row)
	if err != nil {
		return models.Hotel{}, err
	}
	created.Rooms = []models.Room{}
	return created, nil
}

// FindHotelByID returns the hotel with its rooms populated.
func (s *Store) FindHotelByID(ctx context.Context, id string) (models.Hotel, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+hotelColumns+` FROM hotels h WHERE h.id = $1`, id)
	hotel, err := scanHotel(row)
	if err != nil {
		return models.Hotel{}, err
	}
	hotels := []models.Hotel{hotel}
	if err := s.attachRooms(ctx, hotels); err != nil {
		return models.Hotel{}, err
	}
	return hotels[0], nil
}

func (s *Store) ListHotels(ctx context.Context, filter storage.HotelFilter, page storage.Page) ([]models.Hotel, int, error) {
	if filter.RestrictIDs && len(filter.IDs) == 0 {
		return []models.Hotel{}, 0, nil
	}
	w := hotelWhere(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels h`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count hotels: %w", err)
	}

	query := `SELECT ` + hotelColumns + ` FROM hotels h` + w.String() + ` ORDER BY h.created_at, h.id`
	query += ` LIMIT ` + w.next(page.Size) + ` OFFSET ` + w.next(page.Offset())
	hotels, err := s.queryHotels(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachRooms(ctx, hotels); err != nil {
		return nil, 0, err
	}
	return hotels, total, nil
}

// AllHotels lists every hotel without populating rooms.
func (s *Store) AllHotels(ctx context.Context) ([]models.Hotel, error) {
	return s.queryHotels(ctx, `SELECT `+hotelColumns+` FROM hotels h ORDER BY h.created_at, h.id`)
}

func (s *Store) UpdateHotel(ctx context.Context, hotel models.Hotel) (models.Hotel, error) {
	photos, amenities, err := encodeHotelLists(hotel)
	if err != nil {
		return models.Hotel{}, err
	}
	const query = `
	WITH h AS (
		UPDATE hotels
		SET name = $2, description = $3, city = $4, address = $5, photos = $6, rating = $7,
			num_reviews = $8, amenities = $9, cheapest_price = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING *
	)
	SELECT ` + hotelColumns + ` FROM h`

	row := s.db.QueryRowContext(ctx, query, hotel.ID, hotel.Name, hotel.Description, hotel.City, hotel.Address,
		photos, hotel.Rating, hotel.NumReviews, amenities, hotel.CheapestPrice)
	updated, err := scanHotel(row)
	if err != nil {
		return models.Hotel{}, err
	}
	hotels := []models.Hotel{updated}
	if err := s.attachRooms(ctx, hotels); err != nil {
		return models.Hotel{}, err
	}
	return hotels[0], nil
}

// DeleteHotel removes the hotel; its rooms cascade.
func (s *Store) DeleteHotel(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM hotels WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectOne(res)
}

func hotelWhere(f storage.HotelFilter) *where {
	w := &where{}
	if f.RestrictIDs {
		w.in("h.id", f.IDs)
	}
	if f.City != "" {
		w.add(`h.city ILIKE $%d`, "%"+escapeLike(f.City)+"%")
	}
	if f.MinPrice != nil {
		w.add(`h.cheapest_price >= $%d`, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		w.add(`h.cheapest_price <= $%d`, *f.MaxPrice)
	}
	if f.MinRating != nil {
		w.add(`h.rating >= $%d`, *f.MinRating)
	}
	if f.Name != nil {
		w.add(`h.name = $%d`, *f.Name)
	}
	if f.Address != nil {
		w.add(`h.address = $%d`, *f.Address)
	}
	if f.Description != nil {
		w.add(`h.description = $%d`, *f.Description)
	}
	if f.Rating != nil {
		w.add(`h.rating = $%d`, *f.Rating)
	}
	if f.NumReviews != nil {
		w.add(`h.num_reviews = $%d`, *f.NumReviews)
	}
	if f.CheapestPrice != nil {
		w.add(`h.cheapest_price = $%d`, *f.CheapestPrice)
	}
	return w
}

func (s *Store) queryHotels(ctx context.Context, query string, args ...any) ([]models.Hotel, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query hotels: %w", err)
	}
	defer rows.Close()

	hotels := []models.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		h.Rooms = []models.Room{}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// attachRooms fills the derived Rooms field of each hotel with one query.
func (s *Store) attachRooms(ctx context.Context, hotels []models.Hotel) error {
	if len(hotels) == 0 {
		return nil
	}
	ids := make([]string, len(hotels))
	index := make(map[string]int, len(hotels))
	for i := range hotels {
		ids[i] = hotels[i].ID
		index[hotels[i].ID] = i
		hotels[i].Rooms = []models.Room{}
	}

	w := &where{}
	w.in("r.hotel_id", ids)
	rooms, err := s.queryRooms(ctx, roomSelect+w.String()+` ORDER BY r.created_at, r.id`, w.args...)
	if err != nil {
		return err
	}
	for _, r := range rooms {
		i := index[r.HotelID]
		hotels[i].Rooms = append(hotels[i].Rooms, r)
	}
	return nil
}

func scanHotel(row rowScanner) (models.Hotel, error) {
	var h models.Hotel
	var photos, amenities []byte
	if err := row.Scan(&h.ID, &h.Name, &h.Description, &h.City, &h.Address, &photos, &h.Rating,
		&h.NumReviews, &amenities, &h.CheapestPrice, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return models.Hotel{}, mapError(err)
	}
	if err := decodeJSON(photos, &h.Photos); err != nil {
		return models.Hotel{}, fmt.Errorf("decode hotel photos: %w", err)
	}
	if err := decodeJSON(amenities, &h.Amenities); err != nil {
		return models.Hotel{}, fmt.Errorf("decode hotel amenities: %w", err)
	}
	h.Normalize()
	return h, nil
}

func encodeHotelLists(h models.Hotel) (string, string, error) {
	photos, err := encodeJSON(h.Photos, "[]")
	if err != nil {
		return "", "", err
	}
	amenities, err := encodeJSON(h.Amenities, "[]")
	if err != nil {
		return "", "", err
	}
	return photos, amenities, nil
}

// encodeJSON marshals v for a JSONB column, substituting empty for nil.
func encodeJSON[T any](v []T, empty string) (string, error) {
	if v == nil {
		return empty, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json column: %w", err)
	}
	return string(b), nil
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
