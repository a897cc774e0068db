package memory

import (
	"context"
	"time"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

func (s *Store) ReplaceToken(_ context.Context, t models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stale []string
	s.tokens.each(func(existing models.Token) {
		if existing.SubjectID == t.SubjectID {
			stale = append(stale, existing.Token)
		}
	})
	for _, raw := range stale {
		s.tokens.remove(raw)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	s.tokens.put(t.Token, t)
	return nil
}

func (s *Store) FindToken(_ context.Context, raw, subjectID string, now time.Time) (models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tokens.get(raw)
	if !ok || t.SubjectID != subjectID || !t.Active(now) {
		return models.Token{}, storage.ErrNotFound
	}
	return t, nil
}

func (s *Store) DeleteToken(_ context.Context, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens.remove(raw)
	return nil
}
