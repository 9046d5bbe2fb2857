package repository

import (
	"context"

	"github.com/tasknest/tasknest-backend/internal/models"
)

// UserRepository persists accounts
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. A taken username yields ErrUniqueViolation.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)
		 RETURNING id, username, password_hash, created_at`,
		username, passwordHash,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, translate("insert user", err)
	}
	return &u, nil
}

// GetByUsername loads a user including the password hash
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, translate("select user", err)
	}
	return &u, nil
}
