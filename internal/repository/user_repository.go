package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jengzang/flightarcs-backend-go/internal/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. A taken username returns ErrConflict.
func (r *UserRepository) Create(u *models.User) error {
	res, err := r.db.Exec("INSERT INTO users (username, password_hash) VALUES (?, ?)", u.Username, u.PasswordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("user %q: %w", u.Username, ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}
	u.ID = id
	return nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	return r.get("username = ?", username)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	return r.get("id = ?", id)
}

// UpdateSavedFilters stores the user's map layer state
func (r *UserRepository) UpdateSavedFilters(id int64, filters string) error {
	res, err := r.db.Exec("UPDATE users SET saved_filters = ? WHERE id = ?", filters, id)
	if err != nil {
		return fmt.Errorf("failed to update saved filters: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *UserRepository) get(cond string, arg interface{}) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(
		"SELECT id, username, password_hash, saved_filters, created_at FROM users WHERE "+cond, arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.SavedFilters, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %v: %w", arg, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
