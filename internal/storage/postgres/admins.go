package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/hongminglow/atithi-inn/internal/models"
)

const adminColumns = `id, name, email, password_hash, secret_key_hash, created_at`

func (s *Store) CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	const query = `
	INSERT INTO admins (id, name, email, password_hash, secret_key_hash)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + adminColumns

	row := s.db.QueryRowContext(ctx, query, uuid.NewString(), admin.Name, admin.Email, admin.PasswordHash, admin.SecretKeyHash)
	return scanAdmin(row)
}

func (s *Store) FindAdminByID(ctx context.Context, id string) (models.Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
	return scanAdmin(row)
}

func (s *Store) FindAdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE lower(email) = lower($1)`, email)
	return scanAdmin(row)
}

func scanAdmin(row rowScanner) (models.Admin, error) {
	var a models.Admin
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.SecretKeyHash, &a.CreatedAt); err != nil {
		return models.Admin{}, mapError(err)
	}
	return a, nil
}
