package memory

import (
	"context"
	"strings"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

func (s *Store) CreateAdmin(_ context.Context, admin models.Admin) (models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.admins.order {
		if strings.EqualFold(s.admins.rows[id].Email, admin.Email) {
			return models.Admin{}, &storage.ConflictError{Field: "email"}
		}
	}
	admin.ID = newID()
	admin.CreatedAt = s.now()
	s.admins.put(admin.ID, admin)
	return admin, nil
}

func (s *Store) FindAdminByID(_ context.Context, id string) (models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	admin, ok := s.admins.get(id)
	if !ok {
		return models.Admin{}, storage.ErrNotFound
	}
	return admin, nil
}

func (s *Store) FindAdminByEmail(_ context.Context, email string) (models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.admins.order {
		if a := s.admins.rows[id]; strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return models.Admin{}, storage.ErrNotFound
}
