package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/hongminglow/atithi-inn/internal/models"
)

// ReplaceToken purges the subject's previous tokens and records the new one
// in a single transaction.
func (s *Store) ReplaceToken(ctx context.Context, t models.Token) error {
	return withTx(ctx, s.db, func(tx dbtx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tokens WHERE subject_id = $1`, t.SubjectID); err != nil {
			return fmt.Errorf("purge tokens: %w", mapError(err))
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tokens (token, subject_id, subject_kind, expires_at) VALUES ($1, $2, $3, $4)`,
			t.Token, t.SubjectID, string(t.SubjectKind), t.ExpiresAt)
		if err != nil {
			return fmt.Errorf("insert token: %w", mapError(err))
		}
		return nil
	})
}

func (s *Store) FindToken(ctx context.Context, raw, subjectID string, now time.Time) (models.Token, error) {
	const query = `
	SELECT token, subject_id, subject_kind, expires_at, created_at
	FROM tokens
	WHERE token = $1 AND subject_id = $2 AND expires_at > $3`

	var t models.Token
	var kind string
	err := s.db.QueryRowContext(ctx, query, raw, subjectID, now).
		Scan(&t.Token, &t.SubjectID, &kind, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return models.Token{}, mapError(err)
	}
	t.SubjectKind = models.SubjectKind(kind)
	return t, nil
}

// DeleteToken is idempotent.
func (s *Store) DeleteToken(ctx context.Context, raw string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tokens WHERE token = $1`, raw); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
