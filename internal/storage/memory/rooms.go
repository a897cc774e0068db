package memory

import (
	"context"
	"slices"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

func (s *Store) CreateRoom(_ context.Context, room models.Room) (models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hotels.get(room.HotelID); !ok {
		return models.Room{}, storage.ErrNotFound
	}
	now := s.now()
	room.ID = newID()
	room.CreatedAt, room.UpdatedAt = now, now
	room.HotelName = ""
	s.rooms.put(room.ID, cloneRoom(room))
	return s.withHotel(room), nil
}

func (s *Store) FindRoomByID(_ context.Context, id string) (models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms.get(id)
	if !ok {
		return models.Room{}, storage.ErrNotFound
	}
	return s.withHotel(room), nil
}

func (s *Store) ListRooms(_ context.Context, filter storage.RoomFilter, page storage.Page) ([]models.Room, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Room
	s.rooms.each(func(r models.Room) {
		switch {
		case filter.HotelID != "" && r.HotelID != filter.HotelID:
		case filter.Title != "" && r.Title != filter.Title:
		case filter.Price != nil && r.Price != *filter.Price:
		case filter.MaxPeople != nil && r.MaxPeople != *filter.MaxPeople:
		default:
			matched = append(matched, r)
		}
	})

	items := paginate(matched, page)
	out := make([]models.Room, 0, len(items))
	for _, r := range items {
		out = append(out, s.withHotel(r))
	}
	return out, len(matched), nil
}

func (s *Store) UpdateRoom(_ context.Context, room models.Room) (models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rooms.get(room.ID)
	if !ok {
		return models.Room{}, storage.ErrNotFound
	}
	if _, ok := s.hotels.get(room.HotelID); !ok {
		return models.Room{}, storage.ErrNotFound
	}
	room.CreatedAt = existing.CreatedAt
	room.UpdatedAt = s.now()
	room.HotelName = ""
	s.rooms.put(room.ID, cloneRoom(room))
	return s.withHotel(room), nil
}

func (s *Store) DeleteRoom(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.rooms.remove(id) {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) AvailableHotelIDs(_ context.Context, q storage.Availability) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := []string{}
	s.rooms.each(func(r models.Room) {
		if r.AvailableFor(q.Start, q.End, q.Guests) && !slices.Contains(ids, r.HotelID) {
			ids = append(ids, r.HotelID)
		}
	})
	return ids, nil
}

func (s *Store) withHotel(r models.Room) models.Room {
	r = cloneRoom(r)
	if h, ok := s.hotels.get(r.HotelID); ok {
		r.HotelName = h.Name
	}
	r.Normalize()
	return r
}

func cloneRoom(r models.Room) models.Room {
	numbers := make([]models.RoomNumber, len(r.RoomNumbers))
	for i, rn := range r.RoomNumbers {
		numbers[i] = models.RoomNumber{Number: rn.Number, UnavailableDates: slices.Clone(rn.UnavailableDates)}
	}
	r.RoomNumbers = numbers
	return r
}
