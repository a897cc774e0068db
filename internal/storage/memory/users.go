package memory

import (
	"context"
	"strings"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.userConflict("", user); err != nil {
		return models.User{}, err
	}
	now := s.now()
	user.ID = newID()
	user.CreatedAt, user.UpdatedAt = now, now
	user.Bookings = nil
	s.users.put(user.ID, user)
	return s.withBookings(user), nil
}

func (s *Store) FindUserByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users.get(id)
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return s.withBookings(user), nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *Store) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Username == username })
}

func (s *Store) findUser(match func(models.User) bool) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.users.order {
		if u := s.users.rows[id]; match(u) {
			return s.withBookings(u), nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) ListUsers(context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users.rows))
	s.users.each(func(u models.User) { out = append(out, s.withBookings(u)) })
	return out, nil
}

func (s *Store) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users.get(user.ID)
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	if err := s.userConflict(user.ID, user); err != nil {
		return models.User{}, err
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = s.now()
	user.Bookings = nil
	s.users.put(user.ID, user)
	return s.withBookings(user), nil
}

// DeleteUser also removes the user's bookings.
func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.users.remove(id) {
		return storage.ErrNotFound
	}
	var owned []string
	s.bookings.each(func(b models.Booking) {
		if b.UserID == id {
			owned = append(owned, b.ID)
		}
	})
	for _, bid := range owned {
		s.bookings.remove(bid)
	}
	return nil
}

func (s *Store) userConflict(selfID string, user models.User) error {
	for _, id := range s.users.order {
		if id == selfID {
			continue
		}
		other := s.users.rows[id]
		if strings.EqualFold(other.Email, user.Email) {
			return &storage.ConflictError{Field: "email"}
		}
		if other.Username == user.Username {
			return &storage.ConflictError{Field: "username"}
		}
	}
	return nil
}

func (s *Store) withBookings(user models.User) models.User {
	user.Bookings = []string{}
	s.bookings.each(func(b models.Booking) {
		if b.UserID == user.ID {
			user.Bookings = append(user.Bookings, b.ID)
		}
	})
	return user
}
