package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hongminglow/atithi-inn/internal/models"
)

const userColumns = `u.id, u.username, u.email, u.password_hash, u.is_admin, u.email_verified,
	u.profile_picture, u.created_at, u.updated_at,
	(SELECT COALESCE(json_agg(b.id ORDER BY b.created_at), '[]'::json) FROM bookings b WHERE b.user_id = u.id)`

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	WITH u AS (
		INSERT INTO users (id, username, email, password_hash, is_admin, email_verified, profile_picture)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *
	)
	SELECT ` + userColumns + ` FROM u`

	row := s.db.QueryRowContext(ctx, query, uuid.NewString(), user.Username, user.Email, user.PasswordHash,
		user.IsAdmin, user.EmailVerified, user.ProfilePicture)
	return scanUser(row)
}

// FindUserByID fetches a user together with the ids of their bookings.
func (s *Store) FindUserByID(ctx context.Context, id string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	return scanUser(s.db.QueryRowContext(ctx, query, id))
}

// FindUserByEmail matches case-insensitively.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE lower(u.email) = lower($1)`
	return scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.username = $1`
	return scanUser(s.db.QueryRowContext(ctx, query, username))
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u ORDER BY u.created_at, u.id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser overwrites the mutable columns of an existing user.
func (s *Store) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	WITH u AS (
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, is_admin = $5, email_verified = $6,
			profile_picture = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING *
	)
	SELECT ` + userColumns + ` FROM u`

	row := s.db.QueryRowContext(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash,
		user.IsAdmin, user.EmailVerified, user.ProfilePicture)
	return scanUser(row)
}

// DeleteUser removes the user; bookings go with it through the foreign key.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectOne(res)
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var bookings []byte
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsAdmin,
		&user.EmailVerified, &user.ProfilePicture, &user.CreatedAt, &user.UpdatedAt, &bookings); err != nil {
		return models.User{}, mapError(err)
	}
	user.Bookings = []string{}
	if len(bookings) > 0 {
		if err := json.Unmarshal(bookings, &user.Bookings); err != nil {
			return models.User{}, fmt.Errorf("decode user bookings: %w", err)
		}
	}
	return user, nil
}
