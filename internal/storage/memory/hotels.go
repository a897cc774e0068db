package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

func (s *Store) CreateHotel(_ context.Context, hotel models.Hotel) (models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	hotel.ID = newID()
	hotel.CreatedAt, hotel.UpdatedAt = now, now
	s.hotels.put(hotel.ID, cloneHotel(hotel))
	return s.withRooms(hotel), nil
}

func (s *Store) FindHotelByID(_ context.Context, id string) (models.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hotel, ok := s.hotels.get(id)
	if !ok {
		return models.Hotel{}, storage.ErrNotFound
	}
	return s.withRooms(hotel), nil
}

func (s *Store) ListHotels(_ context.Context, filter storage.HotelFilter, page storage.Page) ([]models.Hotel, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Hotel
	s.hotels.each(func(h models.Hotel) {
		if matchHotel(h, filter) {
			matched = append(matched, h)
		}
	})

	items := paginate(matched, page)
	out := make([]models.Hotel, 0, len(items))
	for _, h := range items {
		out = append(out, s.withRooms(h))
	}
	return out, len(matched), nil
}

func (s *Store) AllHotels(context.Context) ([]models.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Hotel, 0, len(s.hotels.rows))
	s.hotels.each(func(h models.Hotel) {
		h = cloneHotel(h)
		h.Normalize()
		out = append(out, h)
	})
	return out, nil
}

func (s *Store) UpdateHotel(_ context.Context, hotel models.Hotel) (models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.hotels.get(hotel.ID)
	if !ok {
		return models.Hotel{}, storage.ErrNotFound
	}
	hotel.CreatedAt = existing.CreatedAt
	hotel.UpdatedAt = s.now()
	s.hotels.put(hotel.ID, cloneHotel(hotel))
	return s.withRooms(hotel), nil
}

func (s *Store) DeleteHotel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hotels.remove(id) {
		return storage.ErrNotFound
	}
	var owned []string
	s.rooms.each(func(r models.Room) {
		if r.HotelID == id {
			owned = append(owned, r.ID)
		}
	})
	for _, rid := range owned {
		s.rooms.remove(rid)
	}
	return nil
}

func matchHotel(h models.Hotel, f storage.HotelFilter) bool {
	switch {
	case f.RestrictIDs && !slices.Contains(f.IDs, h.ID):
		return false
	case f.City != "" && !strings.Contains(strings.ToLower(h.City), strings.ToLower(f.City)):
		return false
	case f.MinPrice != nil && h.CheapestPrice < *f.MinPrice:
		return false
	case f.MaxPrice != nil && h.CheapestPrice > *f.MaxPrice:
		return false
	case f.MinRating != nil && h.Rating < *f.MinRating:
		return false
	case f.Name != nil && h.Name != *f.Name:
		return false
	case f.Address != nil && h.Address != *f.Address:
		return false
	case f.Description != nil && h.Description != *f.Description:
		return false
	case f.Rating != nil && h.Rating != *f.Rating:
		return false
	case f.NumReviews != nil && h.NumReviews != *f.NumReviews:
		return false
	case f.CheapestPrice != nil && h.CheapestPrice != *f.CheapestPrice:
		return false
	}
	return true
}

// withRooms must be called with the lock held.
func (s *Store) withRooms(h models.Hotel) models.Hotel {
	h = cloneHotel(h)
	h.Rooms = []models.Room{}
	s.rooms.each(func(r models.Room) {
		if r.HotelID == h.ID {
			h.Rooms = append(h.Rooms, cloneRoom(r))
		}
	})
	h.Normalize()
	return h
}

func cloneHotel(h models.Hotel) models.Hotel {
	h.Photos = slices.Clone(h.Photos)
	h.Amenities = slices.Clone(h.Amenities)
	h.Rooms = nil
	return h
}
